package page

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wildflour/bakery-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/pages", h.getPages)
	app.Get("/api/pages/:slug", h.getPage)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Put("/api/pages/:slug", h.upsertPage)
	app.Delete("/api/pages/:slug", h.deletePage)
}

func (h *Handler) getPages(c *fiber.Ctx) error {
	pages, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(pages)
}

func (h *Handler) getPage(c *fiber.Ctx) error {
	p, err := h.service.GetBySlug(c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Page not found"})
	}
	return c.JSON(p)
}

func (h *Handler) upsertPage(c *fiber.Ctx) error {
	if user.GetRoleFromCtx(c) != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	p := new(Page)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	p.Slug = c.Params("slug")
	if p.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title is required"})
	}
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	saved, err := h.service.Upsert(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(saved)
}

func (h *Handler) deletePage(c *fiber.Ctx) error {
	if user.GetRoleFromCtx(c) != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	if err := h.service.Delete(c.Params("slug")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Page not found"})
	}
	return c.JSON(fiber.Map{"message": "Page deleted"})
}
