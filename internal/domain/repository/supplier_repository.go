package repository

import (
	"context"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByRUT(ctx context.Context, rut string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	// List busca por RUT, razón social o nombre de fantasía.
	List(ctx context.Context, query, status string, limit, offset int) ([]*entity.Supplier, int, error)
	// Delete deja en NULL el proveedor de los movimientos que lo referencian.
	Delete(ctx context.Context, id string) error
}
