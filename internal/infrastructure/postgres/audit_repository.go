package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditRepo)(nil)

// AuditRepo bitácora de auditoría (solo inserción y consulta).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de la bitácora.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta un registro. Un user_id desconocido (login fallido) se guarda como NULL.
func (r *AuditRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, model, object_id, description, ip, user_agent,
			before_data, after_data, created_at)
		VALUES ($1, (SELECT id FROM users WHERE id::text = $2), $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.UserID, l.Action, l.Model, l.ObjectID, l.Description, l.IP, l.UserAgent,
		jsonArg(l.Before), jsonArg(l.After), l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func jsonArg(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// List más reciente primero, con el total sin paginar.
func (r *AuditRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLog, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.UserID != "" {
		conds = append(conds, "user_id::text = "+arg(f.UserID))
	}
	if f.Action != "" {
		conds = append(conds, "action = "+arg(f.Action))
	}
	if f.Model != "" {
		conds = append(conds, "model = "+arg(f.Model))
	}
	if f.From != nil {
		conds = append(conds, "created_at >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "created_at < "+arg(*f.To))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}
	query := `
		SELECT id, COALESCE(user_id::text, ''), action, model, object_id, description, ip, user_agent,
			before_data, after_data, created_at
		FROM audit_logs` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AuditLog, 0)
	for rows.Next() {
		var l entity.AuditLog
		var before, after []byte
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Model, &l.ObjectID, &l.Description, &l.IP, &l.UserAgent,
			&before, &after, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		l.Before, l.After = before, after
		list = append(list, &l)
	}
	return list, total, rows.Err()
}
