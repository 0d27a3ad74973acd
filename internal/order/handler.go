package order

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wildflour/bakery-backend/internal/inventory"
	"github.com/wildflour/bakery-backend/internal/user"
)

type Handler struct {
	service *Service
	baseURL string
}

func NewHandler(s *Service, baseURL string) *Handler {
	return &Handler{service: s, baseURL: baseURL}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/orders", h.listOrders)
	app.Post("/api/orders", h.createOrder)
	app.Get("/api/orders/my-orders", h.listMyOrders)
	app.Get("/api/orders/:id", h.getOrder)
	app.Put("/api/orders/:id/status", h.updateStatus)
	app.Post("/api/orders/:id/refund", h.refundOrder)
}

func actorFromCtx(c *fiber.Ctx) (Actor, error) {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return Actor{}, err
	}
	return Actor{UserID: userID, Role: user.GetRoleFromCtx(c)}, nil
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(CreateInput)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Total < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "total must be non-negative"})
	}

	created, err := h.service.Create(*payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyOrder), errors.Is(err, ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, inventory.ErrProductNotFound), errors.Is(err, inventory.ErrInsufficientStock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	ord, err := h.service.Get(id, actor)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(ResolveItemImages(ord, h.baseURL))
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	f := Filter{Status: c.Query("status")}
	if d := c.Query("date"); d != "" {
		day, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid date, expected YYYY-MM-DD"})
		}
		f.Date = &day
	}

	orders, err := h.service.List(f, actor)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(h.resolveAll(orders))
}

func (h *Handler) listMyOrders(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(actor)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(h.resolveAll(orders))
}

type updateStatusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.UpdateStatus(id, payload.Status, actor)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order status updated", "order": ord})
}

func (h *Handler) refundOrder(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	ord, err := h.service.Refund(id, actor)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order refunded successfully", "order": ord})
}

func (h *Handler) resolveAll(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, ord := range orders {
		out = append(out, ResolveItemImages(ord, h.baseURL))
	}
	return out
}

func (h *Handler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not authorized"})
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
