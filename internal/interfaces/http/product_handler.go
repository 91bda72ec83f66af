package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dulceria-api/internal/application/catalog"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/application/report"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc     *catalog.ProductUseCase
	kardex *report.KardexUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase, kardex *report.KardexUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, kardex: kardex}
}

// Create godoc
// @Summary      Crear producto
// @Description  El SKU se asigna automáticamente. Creado por admin o gerente queda aprobado; por empleado queda pendiente.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q             query  string  false  "SKU, nombre, EAN o marca"
// @Param        categoria_id  query  string  false  "Categoría"
// @Param        estado        query  string  false  "PENDIENTE, APROBADO o RECHAZADO"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        per_page      query  int     false  "25, 50, 100, 250 o 500"  default(25)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductFilterRequest
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
// @Summary      Actualizar producto
// @Description  Stock y costo promedio no se editan; cambian solo con movimientos.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar producto pendiente
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/approve [post]
func (h *ProductHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.RejectProductRequest  true  "motivo"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/products/{id}/reject [post]
func (h *ProductHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Reject(c.UserContext(), actorFrom(c), c.Params("id"), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Un producto con movimientos no se puede eliminar (409).
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Kardex godoc
// @Summary      Kardex del producto en PDF
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Router       /api/products/{id}/kardex [get]
func (h *ProductHandler) Kardex(c *fiber.Ctx) error {
	data, filename, err := h.kardex.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", filename, data)
}
