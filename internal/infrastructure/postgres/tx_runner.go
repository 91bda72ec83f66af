package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/dulceria-api/internal/application/inventory"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

const (
	codeLockNotAvailable = "55P03"
	defaultLockTimeout   = 5 * time.Second
)

// TxRunner abre la transacción del libro de movimientos. Los repos que recibe fn
// comparten la tx, así que el FOR UPDATE del producto dura hasta el Commit.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: defaultLockTimeout}
}

// Run ejecuta fn y confirma; cualquier error descarta movimiento y stock juntos.
// Si otra operación retiene la fila del producto más de lockTimeout devuelve ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, lockTimeoutStmt(r.lockTimeout)); err != nil {
		return fmt.Errorf("lock_timeout: %w", err)
	}
	if err := fn(NewMovementRepository(tx), NewProductRepository(tx)); err != nil {
		return mapLockError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}

// SET no acepta parámetros; el valor sale de una duración, no de la entrada del usuario.
func lockTimeoutStmt(d time.Duration) string {
	return fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds())
}

func mapLockError(err error) error {
	if hasCode(err, codeLockNotAvailable) {
		return fmt.Errorf("%w: el producto está siendo modificado por otra operación", domain.ErrConflict)
	}
	return err
}
