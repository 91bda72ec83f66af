package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/dulceria-api/internal/domain"
)

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"único", &pgconn.PgError{Code: "23505"}, domain.ErrDuplicate},
		{"fk restrict", &pgconn.PgError{Code: "23503", ConstraintName: "inventory_movements_product_id_fkey"}, domain.ErrConflict},
		{"stock negativo", &pgconn.PgError{Code: "23514", ConstraintName: "products_stock_check"}, domain.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapWriteError("op", tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	other := mapWriteError("insert product", errors.New("conexión cerrada"))
	assert.EqualError(t, other, "insert product: conexión cerrada")
}

func TestMapWriteError_IncludesConstraint(t *testing.T) {
	err := mapWriteError("delete product", &pgconn.PgError{Code: "23503", ConstraintName: "inventory_movements_product_id_fkey"})
	assert.Contains(t, err.Error(), "inventory_movements_product_id_fkey")
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", *nullable("x"))
}

func TestMapLockError(t *testing.T) {
	locked := mapLockError(fmt.Errorf("lock product: %w", &pgconn.PgError{Code: "55P03"}))
	assert.ErrorIs(t, locked, domain.ErrConflict)

	assert.ErrorIs(t, mapLockError(domain.ErrNotFound), domain.ErrNotFound)
}

func TestLockTimeoutStmt(t *testing.T) {
	assert.Equal(t, "SET LOCAL lock_timeout = '5000ms'", lockTimeoutStmt(defaultLockTimeout))
}
