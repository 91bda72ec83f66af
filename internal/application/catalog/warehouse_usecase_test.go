package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
)

func TestWarehouseLifecycle(t *testing.T) {
	repo := newMemWarehouses()
	uc := NewWarehouseUseCase(repo, &recordingPublisher{})

	central, err := uc.Create(ctx, admin, dto.CreateWarehouseRequest{Code: " bod-central ", Name: "Bodega Central"})
	require.NoError(t, err)
	assert.Equal(t, "BOD-CENTRAL", central.Code)
	assert.True(t, central.IsActive)

	_, err = uc.Create(ctx, admin, dto.CreateWarehouseRequest{Code: "BOD-CENTRAL", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	suc, err := uc.Create(ctx, admin, dto.CreateWarehouseRequest{Code: "SUC-001", Name: "Sucursal Centro"})
	require.NoError(t, err)

	inactive := false
	_, err = uc.Update(ctx, admin, suc.ID, dto.UpdateWarehouseRequest{IsActive: &inactive})
	require.NoError(t, err)

	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "BOD-CENTRAL", active[0].Code)

	repo.referenced[central.ID] = true
	assert.ErrorIs(t, uc.Delete(ctx, admin, central.ID), domain.ErrConflict)
	assert.NoError(t, uc.Delete(ctx, admin, suc.ID))
}

func TestCategoryCreate_FoldedDuplicate(t *testing.T) {
	uc := NewCategoryUseCase(&memCategories{})

	c, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "  Bombones   rellenos "})
	require.NoError(t, err)
	assert.Equal(t, "Bombones rellenos", c.Name)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "BOMBONES RELLENOS"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Café"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "cafe"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
