package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dulceria-api/internal/application/catalog"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
)

// WarehouseHandler maneja las peticiones HTTP para bodegas (protegido).
type WarehouseHandler struct {
	uc *catalog.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *catalog.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "codigo, nombre, direccion"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        activas  query  bool  false  "Solo bodegas activas"
// @Success      200  {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("activas", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar o desactivar bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la bodega"
// @Param        body  body  dto.UpdateWarehouseRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.WarehouseResponse
// @Router       /api/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar bodega
// @Description  Una bodega con movimientos no se puede eliminar (409); desactívela.
// @Tags         warehouses
// @Security     Bearer
// @Param        id   path  string  true  "ID de la bodega"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
