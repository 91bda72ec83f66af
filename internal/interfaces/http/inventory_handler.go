package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/application/inventory"
	"github.com/jhoicas/dulceria-api/internal/application/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandler maneja el ledger de movimientos, conciliación, reposición y exportación.
type InventoryHandler struct {
	movements     *inventory.MovementUseCase
	replenishment *inventory.ReplenishmentUseCase
	export        *report.ExportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementUseCase, replenishment *inventory.ReplenishmentUseCase, export *report.ExportUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, replenishment: replenishment, export: export}
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q            query  string  false  "SKU, producto, RUT, proveedor, doc. referencia, lote o serie"
// @Param        tipo         query  string  false  "ingreso, salida, ajuste, devolucion, transferencia"
// @Param        producto_id  query  string  false  "ID del producto"
// @Param        fecha_desde  query  string  false  "AAAA-MM-DD (inclusive)"
// @Param        fecha_hasta  query  string  false  "AAAA-MM-DD (inclusive)"
// @Param        page         query  int     false  "Página"  default(1)
// @Param        per_page     query  int     false  "25, 50, 100, 250 o 500"  default(25)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.movements.ListMovements(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Actualiza el stock del producto en la misma transacción. Una salida mayor al stock deja el stock en 0.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "tipo, producto_id, bodega_id, cantidad, proveedor_id (ingreso)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.CreateFromRequest(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetMovement godoc
// @Summary      Obtener movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.movements.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMovementResponse(mov))
}

// UpdateMovement godoc
// @Summary      Editar datos descriptivos de un movimiento
// @Description  tipo, producto, cantidad, bodega y fecha no se modifican; para corregirlos elimine y vuelva a registrar.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MovementResponse
// @Router       /api/inventory/movements/{id} [patch]
func (h *InventoryHandler) UpdateMovement(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.UpdateFromRequest(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento
// @Description  Revierte en el stock el efecto aplicado al registrarlo.
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.movements.DeleteMovement(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reconcile godoc
// @Summary      Conciliar stock contra el historial
// @Description  GET informa la diferencia; POST además corrige el stock del producto.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/inventory/reconcile/{product_id} [get]
// @Router       /api/inventory/reconcile/{product_id} [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	apply := c.Method() == fiber.MethodPost
	out, err := h.movements.Reconcile(c.UserContext(), actorFrom(c), c.Params("product_id"), apply)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReorderList godoc
// @Summary      Lista de reposición
// @Description  Productos activos y aprobados con stock en o bajo el punto de reorden, con la cantidad sugerida.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReorderSuggestionDTO
// @Router       /api/inventory/reorder [get]
func (h *InventoryHandler) GetReorderList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(list),
		"sugerencias": list,
	})
}

// Export godoc
// @Summary      Exportar inventario a Excel
// @Description  Hojas: Productos, una por rol de usuario y Movimientos.
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/inventory/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.export.Workbook(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, xlsxContentType, filename, data)
}
