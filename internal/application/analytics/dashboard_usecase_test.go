package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

type stubDashboardRepo struct {
	countFrom, countTo time.Time
	rollupFrom         time.Time
	rollup             []repository.TypeRollup
	err                error
}

func (r *stubDashboardRepo) CountMovements(_ context.Context, from, to time.Time) (int, error) {
	r.countFrom, r.countTo = from, to
	return 7, nil
}

func (r *stubDashboardRepo) CountProductsWithStock(context.Context) (int, error) { return 12, nil }

func (r *stubDashboardRepo) TotalStock(context.Context) (int64, error) { return 940, r.err }

func (r *stubDashboardRepo) RollupByType(_ context.Context, from, _ time.Time) ([]repository.TypeRollup, error) {
	r.rollupFrom = from
	return r.rollup, nil
}

type stubMovementRepo struct {
	repository.MovementRepository
	limit int
	movs  []*entity.Movement
}

func (r *stubMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	r.limit = f.Limit
	return r.movs, len(r.movs), nil
}

func TestGetSummary(t *testing.T) {
	santiago := time.FixedZone("CLT", -3*3600)
	dash := &stubDashboardRepo{rollup: []repository.TypeRollup{
		{Type: entity.MovementTypeOUT, Count: 4, Quantity: 120},
		{Type: entity.MovementTypeADJUSTMENT, Count: 1, Quantity: -3},
	}}
	movs := &stubMovementRepo{movs: []*entity.Movement{{ID: "m1", Type: entity.MovementTypeIN, ProductSKU: "SKU-001"}}}

	uc := NewDashboardUseCase(dash, movs, santiago)
	// 01:30 UTC del 1 de octubre sigue siendo 30 de septiembre en Santiago
	uc.now = func() time.Time { return time.Date(2026, 10, 1, 1, 30, 0, 0, time.UTC) }

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, out.MovementsToday)
	assert.Equal(t, int64(940), out.TotalStock)
	assert.Equal(t, 12, out.ProductsWithStock)
	assert.Equal(t, dashboardLatest, movs.limit)
	require.Len(t, out.LatestMovements, 1)
	assert.Equal(t, "Ingreso", out.LatestMovements[0].TypeLabel)

	assert.Equal(t, time.Date(2026, 9, 30, 0, 0, 0, 0, santiago), dash.countFrom)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, santiago), dash.countTo)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, santiago), dash.rollupFrom)
	assert.Equal(t, "Septiembre 2026", out.DateLabel)

	require.Len(t, out.MonthByType, len(entity.MovementTypes))
	assert.Equal(t, entity.MovementTypeIN, out.MonthByType[0].Type)
	assert.Zero(t, out.MonthByType[0].Count)
	assert.Equal(t, 4, out.MonthByType[1].Count)
	assert.Equal(t, int64(-3), out.MonthByType[2].Quantity)
}

func TestGetSummary_PropagatesErrors(t *testing.T) {
	dash := &stubDashboardRepo{err: errors.New("conexión cerrada")}
	uc := NewDashboardUseCase(dash, &stubMovementRepo{}, time.UTC)

	_, err := uc.GetSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock total")
}
