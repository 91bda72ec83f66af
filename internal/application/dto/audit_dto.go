package dto

import (
	"encoding/json"
	"time"
)

// AuditFilterRequest query params de la bitácora.
type AuditFilterRequest struct {
	UserID   string `query:"usuario_id"`
	Action   string `query:"accion"`
	Model    string `query:"modelo"`
	DateFrom string `query:"fecha_desde"`
	DateTo   string `query:"fecha_hasta"`
	PageRequest
}

// AuditLogResponse entrada de la bitácora.
type AuditLogResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"usuario_id,omitempty"`
	Action      string          `json:"accion"`
	Model       string          `json:"modelo"`
	ObjectID    string          `json:"object_id,omitempty"`
	Description string          `json:"descripcion"`
	IP          string          `json:"ip,omitempty"`
	UserAgent   string          `json:"user_agent,omitempty"`
	Before      json.RawMessage `json:"datos_anteriores,omitempty"`
	After       json.RawMessage `json:"datos_nuevos,omitempty"`
	CreatedAt   time.Time       `json:"fecha"`
}

// AuditListResponse lista paginada.
type AuditListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
