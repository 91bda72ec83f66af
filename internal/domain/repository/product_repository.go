package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

// ProductFilter criterios de búsqueda del catálogo.
type ProductFilter struct {
	Query          string // SKU, nombre, EAN o marca
	CategoryID     string
	ApprovalStatus string
	OnlyActive     bool
	Limit          int // 0 = sin límite
	Offset         int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// NextSeq reserva el siguiente valor de la secuencia de productos.
	NextSeq(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE); solo dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock int64) error
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	// List devuelve la página pedida con DisplaySKU calculado sobre todo el catálogo.
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	ListBelowReorderPoint(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
