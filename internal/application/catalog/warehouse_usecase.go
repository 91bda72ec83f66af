package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

const warehouseModel = "Bodega"

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo  repository.WarehouseRepository
	audit audit.Publisher
	now   func() time.Time
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, publisher audit.Publisher) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, audit: publisher, now: time.Now}
}

// Create crea una nueva bodega. El código se guarda en mayúsculas y es único.
func (uc *WarehouseUseCase) Create(ctx context.Context, actor audit.Actor, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return nil, domain.Invalid("codigo", "el código es obligatorio")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre", "el nombre es obligatorio")
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	warehouse := &entity.Warehouse{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        name,
		Description: in.Description,
		Address:     in.Address,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	out := ToWarehouseResponse(warehouse)
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditCreate,
		Model:       warehouseModel,
		ObjectID:    warehouse.ID,
		Description: "Bodega " + code + " creada",
		After:       out,
	})
	return out, nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return ToWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega. Desactivarla impide registrar movimientos en ella.
func (uc *WarehouseUseCase) Update(ctx context.Context, actor audit.Actor, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	before := ToWarehouseResponse(warehouse)
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("nombre", "el nombre es obligatorio")
		}
		warehouse.Name = name
	}
	if in.Description != nil {
		warehouse.Description = *in.Description
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.IsActive != nil {
		warehouse.IsActive = *in.IsActive
	}
	warehouse.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	out := ToWarehouseResponse(warehouse)
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditUpdate,
		Model:       warehouseModel,
		ObjectID:    warehouse.ID,
		Description: "Bodega " + warehouse.Code + " actualizada",
		Before:      before,
		After:       out,
	})
	return out, nil
}

// List lista las bodegas ordenadas por código.
func (uc *WarehouseUseCase) List(ctx context.Context, onlyActive bool) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *ToWarehouseResponse(w))
	}
	return items, nil
}

// Delete elimina una bodega sin movimientos; con movimientos el repositorio devuelve ErrConflict.
func (uc *WarehouseUseCase) Delete(ctx context.Context, actor audit.Actor, id string) error {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditDelete,
		Model:       warehouseModel,
		ObjectID:    id,
		Description: "Bodega " + warehouse.Code + " eliminada",
		Before:      ToWarehouseResponse(warehouse),
	})
	return nil
}

func ToWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:          w.ID,
		Code:        w.Code,
		Name:        w.Name,
		Description: w.Description,
		Address:     w.Address,
		IsActive:    w.IsActive,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
