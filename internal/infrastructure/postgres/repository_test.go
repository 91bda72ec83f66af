package postgres

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

// stubQuerier registra el SQL recibido y responde con filas fijas, sin PostgreSQL.
type stubQuerier struct {
	calls []stubCall
	row   []any   // respuesta de QueryRow
	rows  [][]any // respuesta de Query
}

type stubCall struct {
	sql  string
	args []any
}

func (q *stubQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, stubCall{sql, args})
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func (q *stubQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, stubCall{sql, args})
	return &stubRows{data: q.rows}, nil
}

func (q *stubQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls = append(q.calls, stubCall{sql, args})
	if q.row == nil {
		return stubRow{err: pgx.ErrNoRows}
	}
	return stubRow{vals: q.row}
}

type stubRow struct {
	vals []any
	err  error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.vals)
}

type stubRows struct {
	data [][]any
	i    int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Next() bool                                   { r.i++; return r.i <= len(r.data) }
func (r *stubRows) Scan(dest ...any) error                       { return assign(dest, r.data[r.i-1]) }
func (r *stubRows) Values() ([]any, error)                       { return r.data[r.i-1], nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

// assign copia vals en dest por posición; nil deja el valor cero.
func assign(dest, vals []any) error {
	if len(vals) > len(dest) {
		return fmt.Errorf("stub: %d valores para %d columnas", len(vals), len(dest))
	}
	for i, v := range vals {
		if v == nil {
			continue
		}
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

const someID = "6f1c2a9e-3b7d-4c1a-9e2f-0a1b2c3d4e5f"

func TestValidID(t *testing.T) {
	assert.True(t, validID(someID))
	assert.True(t, validID(strings.ToUpper(someID)))

	for _, bad := range []string{"", "abc", "123", strings.ReplaceAll(someID, "-", ""),
		"{" + someID + "}", "urn:uuid:" + someID, someID[:35] + "x"} {
		assert.False(t, validID(bad), bad)
	}
}

func TestRepositories_MalformedIDNeverReachesDatabase(t *testing.T) {
	ctx := context.Background()
	q := &stubQuerier{}
	products := NewProductRepository(q)
	movements := NewMovementRepository(q)
	warehouses := NewWarehouseRepository(q)
	suppliers := NewSupplierRepository(q)
	categories := NewCategoryRepository(q)
	users := NewUserRepository(q)

	lookups := map[string]func(id string) (any, error){
		"producto":         func(id string) (any, error) { return products.GetByID(ctx, id) },
		"producto bloqueo": func(id string) (any, error) { return products.GetForUpdate(ctx, id) },
		"movimiento":       func(id string) (any, error) { return movements.GetByID(ctx, id) },
		"movimiento bloq.": func(id string) (any, error) { return movements.GetForUpdate(ctx, id) },
		"kardex":           func(id string) (any, error) { return movements.ListByProduct(ctx, id) },
		"bodega":           func(id string) (any, error) { return warehouses.GetByID(ctx, id) },
		"proveedor":        func(id string) (any, error) { return suppliers.GetByID(ctx, id) },
		"categoría":        func(id string) (any, error) { return categories.GetByID(ctx, id) },
		"usuario":          func(id string) (any, error) { return users.GetByID(ctx, id) },
	}
	for name, get := range lookups {
		t.Run("get "+name, func(t *testing.T) {
			got, err := get("abc")
			require.NoError(t, err)
			assert.True(t, reflect.ValueOf(got).IsNil(), "un id mal formado no existe")
		})
	}

	writes := map[string]func(id string) error{
		"producto":   func(id string) error { return products.Delete(ctx, id) },
		"movimiento": func(id string) error { return movements.Delete(ctx, id) },
		"detalle":    func(id string) error { return movements.UpdateDetails(ctx, id, entity.MovementDetails{}) },
		"bodega":     func(id string) error { return warehouses.Delete(ctx, id) },
		"proveedor":  func(id string) error { return suppliers.Delete(ctx, id) },
	}
	for name, write := range writes {
		t.Run("delete "+name, func(t *testing.T) {
			assert.ErrorIs(t, write("abc"), domain.ErrNotFound)
		})
	}

	assert.Empty(t, q.calls, "ninguna consulta llega a columnas UUID con ids inválidos")
}

func TestMovementList_MalformedProductFilterMatchesNothing(t *testing.T) {
	q := &stubQuerier{row: []any{0}}
	list, total, err := NewMovementRepository(q).List(context.Background(), repository.MovementFilter{ProductID: "abc"})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	require.Len(t, q.calls, 2)
	for _, c := range q.calls {
		assert.Contains(t, c.sql, "FALSE")
		for _, a := range c.args {
			assert.NotEqual(t, "abc", a)
		}
	}
}

func TestProductList_DisplaySKUNumberedOverWholeCatalog(t *testing.T) {
	// SKU-002 fue eliminado: la BD devuelve display_no 1 y 2 para seq 1 y 3
	q := &stubQuerier{
		row: []any{2},
		rows: [][]any{
			{someID, int64(1), "SKU-001", int64(1), nil, "Gomitas"},
			{"7a2d3b8f-1c4e-4d2a-8f3b-1b2c3d4e5f60", int64(3), "SKU-003", int64(2), nil, "Chocolate"},
		},
	}
	list, total, err := NewProductRepository(q).List(context.Background(), repository.ProductFilter{
		ApprovalStatus: entity.ApprovalApproved, Limit: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "SKU-001", list[0].DisplaySKU)
	assert.Equal(t, "SKU-002", list[1].DisplaySKU)
	assert.Equal(t, "SKU-003", list[1].SKU, "el SKU almacenado no cambia")

	query := q.calls[1].sql
	cte, outer, found := strings.Cut(query, "SELECT p.id")
	require.True(t, found)
	assert.Contains(t, cte, "ROW_NUMBER() OVER (ORDER BY seq)")
	assert.NotContains(t, cte, "WHERE", "la numeración no depende de los filtros")
	assert.Contains(t, outer, "p.approval_status = $1")
	assert.Contains(t, outer, "ORDER BY p.seq")
}

func TestProductRepo_GetByIDFormatsDisplaySKU(t *testing.T) {
	q := &stubQuerier{row: []any{someID, int64(7), "SKU-007", int64(4), nil, "Calugas"}}
	p, err := NewProductRepository(q).GetByID(context.Background(), someID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "SKU-004", p.DisplaySKU)
	assert.Equal(t, "SKU-007", p.SKU)
	require.Len(t, q.calls, 1)
	assert.Equal(t, []any{someID}, q.calls[0].args)

	missing := &stubQuerier{}
	p, err = NewProductRepository(missing).GetByID(context.Background(), someID)
	require.NoError(t, err)
	assert.Nil(t, p)
}
