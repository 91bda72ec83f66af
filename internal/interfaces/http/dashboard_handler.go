package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/dulceria-api/internal/application/analytics"
)

// DashboardHandler maneja el panel de inventario.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del día y del mes en curso.
// GET /api/inventory/dashboard
//
// Respuesta: DashboardSummaryDTO (movimientos de hoy, stock total, productos con stock,
// últimos 10 movimientos y movimientos del mes por tipo).
// Las fechas se calculan en el servidor con la zona horaria configurada.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
