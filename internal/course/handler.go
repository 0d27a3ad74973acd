package course

import (
	"strconv"
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
	app.Get("/api/courses", h.getCourses)
	app.Get("/api/courses/:id", h.getCourse)
	app.Post("/api/course-applications", h.apply)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/courses", h.createCourse)
	app.Put("/api/courses/:id", h.updateCourse)
	app.Delete("/api/courses/:id", h.deleteCourse)
	app.Get("/api/course-applications", h.getApplications)
}

func (h *Handler) getCourses(c *fiber.Ctx) error {
	courses, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(courses)
}

func (h *Handler) getCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	course, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}
	return c.JSON(course)
}

func (h *Handler) createCourse(c *fiber.Ctx) error {
	if user.GetRoleFromCtx(c) != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	course := new(Course)
	if err := c.BodyParser(course); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if course.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title is required"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	course.CreatedAt = now
	course.UpdatedAt = now

	created, err := h.service.Create(*course)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateCourse(c *fiber.Ctx) error {
	if user.GetRoleFromCtx(c) != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	course := new(Course)
	if err := c.BodyParser(course); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	course.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := h.service.Update(id, *course)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteCourse(c *fiber.Ctx) error {
	if user.GetRoleFromCtx(c) != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}
	return c.JSON(fiber.Map{"message": "Course deleted"})
}

func (h *Handler) apply(c *fiber.Ctx) error {
	a := new(Application)
	if err := c.BodyParser(a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if a.Name == "" || a.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name and email are required"})
	}
	a.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	created, err := h.service.Apply(*a)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getApplications(c *fiber.Ctx) error {
	if user.GetRoleFromCtx(c) != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	apps, err := h.service.ListApplications()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(apps)
}
