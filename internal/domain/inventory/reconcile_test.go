package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

func mov(tipo string, c int64) *entity.Movement {
	return &entity.Movement{Type: tipo, Quantity: qty(c)}
}

func TestReconcile_MatchesIncrementalWithoutClamp(t *testing.T) {
	movs := []*entity.Movement{
		mov(entity.MovementTypeIN, 100),
		mov(entity.MovementTypeOUT, 30),
		mov(entity.MovementTypeRETURN, 5),
		mov(entity.MovementTypeADJUSTMENT, -10),
		mov(entity.MovementTypeTRANSFER, 40),
		mov(entity.MovementTypeADJUSTMENT, 2),
	}

	var stock int64
	for _, m := range movs {
		stock, _ = ApplyEffect(m.Type, stock, m.Quantity)
	}

	r := Reconcile(movs)
	assert.Equal(t, int64(100), r.In)
	assert.Equal(t, int64(30), r.Out)
	assert.Equal(t, int64(5), r.Returns)
	assert.Equal(t, int64(-8), r.Adjustment)
	assert.Equal(t, 1, r.Transfers)
	assert.Equal(t, 6, r.Movements)
	assert.Equal(t, int64(67), r.Expected)
	assert.Equal(t, stock, r.Expected)
	assert.Equal(t, stock, r.Replayed)
	assert.False(t, r.Clamped())
}

func TestReconcile_ClampedHistoryDiverges(t *testing.T) {
	movs := []*entity.Movement{
		mov(entity.MovementTypeOUT, 10),
		mov(entity.MovementTypeIN, 5),
	}
	r := Reconcile(movs)
	assert.Equal(t, int64(0), r.Expected, "la fórmula se recorta en cero")
	assert.Equal(t, int64(5), r.Replayed)
	assert.True(t, r.Clamped())
}

func TestReconcile_Empty(t *testing.T) {
	r := Reconcile(nil)
	assert.Zero(t, r.Expected)
	assert.Zero(t, r.Movements)
}

func TestFormatSKU(t *testing.T) {
	assert.Equal(t, "SKU-007", FormatSKU(7))
	assert.Equal(t, "SKU-1234", FormatSKU(1234))
}
