package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseSelect = `
	SELECT id, code, name, description, address, is_active, created_at, updated_at
	FROM warehouses`

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	if err := row.Scan(&w.ID, &w.Code, &w.Name, &w.Description, &w.Address, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create persiste una nueva bodega. Código repetido devuelve ErrDuplicate.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, code, name, description, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.Code, w.Name, w.Description, w.Address, w.IsActive, w.CreatedAt, w.UpdatedAt,
	)
	return mapWriteError("insert warehouse", err)
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, warehouseSelect+` WHERE id = $1`, id)
}

// GetByCode obtiene una bodega por código (BOD-CENTRAL, SUC-001...).
func (r *WarehouseRepo) GetByCode(ctx context.Context, code string) (*entity.Warehouse, error) {
	return r.getOne(ctx, warehouseSelect+` WHERE code = $1`, code)
}

func (r *WarehouseRepo) getOne(ctx context.Context, query, arg string) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET code = $2, name = $3, description = $4, address = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, w.ID, w.Code, w.Name, w.Description, w.Address, w.IsActive, w.UpdatedAt)
	if err != nil {
		return mapWriteError("update warehouse", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ordena por código.
func (r *WarehouseRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Warehouse, error) {
	query := warehouseSelect
	if onlyActive {
		query += ` WHERE is_active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Warehouse, 0)
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Delete elimina la bodega; con movimientos asociados devuelve ErrConflict.
func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete warehouse", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
