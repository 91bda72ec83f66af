package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dulceria-api/internal/application/catalog"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
)

// SupplierHandler proveedores.
type SupplierHandler struct {
	uc *catalog.SupplierUseCase
}

func NewSupplierHandler(uc *catalog.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "rut, razon_social..."
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
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
// @Summary      Obtener proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "RUT, razón social o nombre de fantasía"
// @Param        estado  query  string  false  "ACTIVO o BLOQUEADO"
// @Success      200  {object}  dto.SupplierListResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	var in dto.SupplierFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del proveedor"
// @Param        body  body  dto.UpdateSupplierRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SupplierResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Block bloquea al proveedor; no admite nuevos movimientos.
// POST /api/suppliers/:id/block
func (h *SupplierHandler) Block(c *fiber.Ctx) error {
	return h.setBlocked(c, true)
}

// Unblock POST /api/suppliers/:id/unblock
func (h *SupplierHandler) Unblock(c *fiber.Ctx) error {
	return h.setBlocked(c, false)
}

func (h *SupplierHandler) setBlocked(c *fiber.Ctx, blocked bool) error {
	out, err := h.uc.SetBlocked(c.UserContext(), actorFrom(c), c.Params("id"), blocked)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proveedor
// @Description  Los movimientos asociados quedan sin proveedor.
// @Tags         suppliers
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      204
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
