package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en la bitácora.
const (
	AuditCreate  = "CREATE"
	AuditUpdate  = "UPDATE"
	AuditDelete  = "DELETE"
	AuditLogin   = "LOGIN"
	AuditApprove = "APPROVE"
	AuditReject  = "REJECT"
	AuditExport  = "EXPORT"
)

// AuditLog registro de auditoría con los datos antes/después en JSON.
type AuditLog struct {
	ID          string
	UserID      string
	Action      string
	Model       string
	ObjectID    string
	Description string
	IP          string
	UserAgent   string
	Before      json.RawMessage
	After       json.RawMessage
	CreatedAt   time.Time
}
