package inventory

import (
	"context"

	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El movimiento y la actualización de stock se confirman o se descartan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
