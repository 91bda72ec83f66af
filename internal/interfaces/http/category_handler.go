package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dulceria-api/internal/application/catalog"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
)

// CategoryHandler categorías de productos.
type CategoryHandler struct {
	uc *catalog.CategoryUseCase
}

func NewCategoryHandler(uc *catalog.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
