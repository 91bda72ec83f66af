package audit

import (
	"context"
	"time"

	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

// LogUseCase consulta de la bitácora.
type LogUseCase struct {
	repo repository.AuditLogRepository
	loc  *time.Location
}

// NewLogUseCase construye el caso de uso.
func NewLogUseCase(repo repository.AuditLogRepository, loc *time.Location) *LogUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &LogUseCase{repo: repo, loc: loc}
}

// List devuelve la bitácora más reciente primero. Fechas inválidas se ignoran.
func (uc *LogUseCase) List(ctx context.Context, in dto.AuditFilterRequest) (*dto.AuditListResponse, error) {
	in.Normalize()
	f := repository.AuditFilter{
		UserID: in.UserID,
		Action: in.Action,
		Model:  in.Model,
		Limit:  in.Limit(),
		Offset: in.Offset(),
	}
	if from, err := dto.ParseDay(in.DateFrom, uc.loc); err == nil {
		f.From = from
	}
	if to, err := dto.ParseDay(in.DateTo, uc.loc); err == nil && to != nil {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}
	logs, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.AuditListResponse{
		Items: make([]dto.AuditLogResponse, 0, len(logs)),
		Page:  dto.NewPageResponse(in.PageRequest, total),
	}
	for _, l := range logs {
		out.Items = append(out.Items, dto.AuditLogResponse{
			ID:          l.ID,
			UserID:      l.UserID,
			Action:      l.Action,
			Model:       l.Model,
			ObjectID:    l.ObjectID,
			Description: l.Description,
			IP:          l.IP,
			UserAgent:   l.UserAgent,
			Before:      l.Before,
			After:       l.After,
			CreatedAt:   l.CreatedAt,
		})
	}
	return out, nil
}
