package repository

import (
	"context"
	"time"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

// AuditFilter criterios de la bitácora.
type AuditFilter struct {
	UserID string
	Action string
	Model  string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// AuditLogRepository persiste la bitácora de auditoría.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, f AuditFilter) ([]*entity.AuditLog, int, error)
}
