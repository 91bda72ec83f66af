package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
)

// AuditHandler consulta de la bitácora (solo admin).
type AuditHandler struct {
	uc    *audit.LogUseCase
	stats func() audit.Stats
}

// NewAuditHandler construye el handler. stats expone los contadores del despachador.
func NewAuditHandler(uc *audit.LogUseCase, stats func() audit.Stats) *AuditHandler {
	return &AuditHandler{uc: uc, stats: stats}
}

// List godoc
// @Summary      Bitácora de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        usuario_id   query  string  false  "ID de usuario"
// @Param        accion       query  string  false  "CREATE, UPDATE, DELETE, LOGIN, APPROVE, REJECT, EXPORT"
// @Param        modelo       query  string  false  "Modelo afectado"
// @Param        fecha_desde  query  string  false  "AAAA-MM-DD"
// @Param        fecha_hasta  query  string  false  "AAAA-MM-DD"
// @Success      200  {object}  dto.AuditListResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var in dto.AuditFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats GET /api/audit/stats
func (h *AuditHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.stats())
}
