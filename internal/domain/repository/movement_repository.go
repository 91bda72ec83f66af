package repository

import (
	"context"
	"time"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

// MovementFilter criterios del listado de movimientos.
// Rango [From, To); nil significa sin límite.
type MovementFilter struct {
	Query     string // SKU o nombre de producto, RUT o razón social, doc. referencia, lote, serie
	Type      string
	ProductID string
	From      *time.Time
	To        *time.Time
	Limit     int // 0 = sin límite
	Offset    int
}

// MovementRepository define el puerto de persistencia para el ledger de inventario.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// GetForUpdate bloquea la fila del movimiento; evita revertir dos veces el mismo registro.
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	UpdateDetails(ctx context.Context, id string, d entity.MovementDetails) error
	Delete(ctx context.Context, id string) error
	// List ordena por fecha DESC, created_at DESC y devuelve el total sin paginar.
	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, int, error)
	// ListByProduct devuelve el historial completo en orden cronológico.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
}
