package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReplenishmentList(t *testing.T) {
	s := newMemStore()
	agotado := s.addProduct("agotado", 0)
	agotado.ReorderPoint = 10
	agotado.MaxStock = 50
	agotado.Cost = decimal.NewFromInt(300)

	bajo := s.addProduct("bajo", 4)
	bajo.ReorderPoint = 5
	bajo.StandardCost = decimal.NewFromInt(100)

	ok := s.addProduct("ok", 40)
	ok.ReorderPoint = 10

	inactivo := s.addProduct("inactivo", 0)
	inactivo.ReorderPoint = 10
	inactivo.IsActive = false

	uc := NewReplenishmentUseCase(&memProductRepo{s})
	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "agotado", list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, int64(50), list[0].SuggestedOrderQty, "completa hasta stock_maximo")
	assert.True(t, list[0].EstimatedOrderCost.Equal(decimal.NewFromInt(15000)))

	assert.Equal(t, "bajo", list[1].ProductID)
	assert.Equal(t, int64(6), list[1].SuggestedOrderQty, "sin máximo: doble del punto de reorden")
	assert.True(t, list[1].UnitCost.Equal(decimal.NewFromInt(100)), "sin costo promedio usa el estándar")
}
