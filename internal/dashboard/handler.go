package dashboard

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// Dashboard and report data are public, matching the storefront's admin UI
// which fetches them without a token.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/dashboard", h.getDashboard)
	app.Get("/api/reports", h.getReports)
}

func (h *Handler) getDashboard(c *fiber.Ctx) error {
	snap, err := h.service.Dashboard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(snap)
}

func (h *Handler) getReports(c *fiber.Ctx) error {
	report, err := h.service.Reports()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(report)
}
