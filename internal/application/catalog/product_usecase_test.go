package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

var (
	ctx     = context.Background()
	admin   = audit.Actor{UserID: "admin-1"}
	cajero  = audit.Actor{UserID: "emp-1"}
	gomitas = &entity.Category{ID: "cat-gomitas", Name: "Gomitas", IsActive: true}
)

func newProductUC() (*ProductUseCase, *memProducts, *recordingPublisher) {
	repo := newMemProducts()
	cats := &memCategories{items: []*entity.Category{gomitas}}
	pub := &recordingPublisher{}
	return NewProductUseCase(repo, cats, pub, time.UTC), repo, pub
}

func TestProductCreate_AssignsSequentialSKU(t *testing.T) {
	uc, _, pub := newProductUC()

	a, err := uc.Create(ctx, admin, entity.RoleAdmin, dto.CreateProductRequest{Name: "Gomitas ácidas", CategoryID: gomitas.ID, MinStock: 10})
	require.NoError(t, err)
	b, err := uc.Create(ctx, admin, entity.RoleAdmin, dto.CreateProductRequest{Name: "Chocolate amargo"})
	require.NoError(t, err)

	assert.Equal(t, "SKU-001", a.SKU)
	assert.Equal(t, "SKU-002", b.SKU)
	assert.Equal(t, int64(10), a.ReorderPoint, "punto de reorden toma el stock mínimo")
	assert.True(t, decimal.NewFromInt(19).Equal(a.TaxRate))
	assert.Equal(t, int64(0), a.Stock)
	assert.Equal(t, entity.ApprovalApproved, a.ApprovalStatus)
	assert.Equal(t, []string{entity.AuditCreate, entity.AuditCreate}, pub.actions())
}

func TestProductCreate_EmployeeNeedsApproval(t *testing.T) {
	uc, _, pub := newProductUC()

	p, err := uc.Create(ctx, cajero, entity.RoleEmployee, dto.CreateProductRequest{Name: "Caramelo"})
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalPending, p.ApprovalStatus)

	_, err = uc.Reject(ctx, admin, p.ID, "  ")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	approved, err := uc.Approve(ctx, admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalApproved, approved.ApprovalStatus)
	assert.Equal(t, "admin-1", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)

	_, err = uc.Approve(ctx, admin, p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	rejected, err := uc.Reject(ctx, admin, p.ID, "duplicado")
	require.NoError(t, err)
	assert.Equal(t, "duplicado", rejected.RejectionReason)
	assert.Equal(t, []string{entity.AuditCreate, entity.AuditApprove, entity.AuditReject}, pub.actions())
}

func TestProductCreate_Validation(t *testing.T) {
	uc, _, _ := newProductUC()
	cases := []struct {
		name  string
		in    dto.CreateProductRequest
		field string
	}{
		{"sin nombre", dto.CreateProductRequest{Name: "  "}, "nombre"},
		{"iva", dto.CreateProductRequest{Name: "x", TaxRate: decimal.NewFromInt(5)}, "iva"},
		{"niveles", dto.CreateProductRequest{Name: "x", MinStock: 20, MaxStock: 10}, "stock_maximo"},
		{"categoría", dto.CreateProductRequest{Name: "x", CategoryID: "no-existe"}, "categoria_id"},
		{"vencimiento", dto.CreateProductRequest{Name: "x", ExpiryDate: "31/12/2026"}, "fecha_vencimiento"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, admin, entity.RoleAdmin, tc.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestProductUpdate_DoesNotTouchStock(t *testing.T) {
	uc, repo, _ := newProductUC()
	p, err := uc.Create(ctx, admin, entity.RoleAdmin, dto.CreateProductRequest{Name: "Gomitas"})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStock(ctx, p.ID, 40))

	name := "Gomitas de fruta"
	price := decimal.NewFromInt(1290)
	out, err := uc.Update(ctx, admin, p.ID, dto.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "Gomitas de fruta", out.Name)
	assert.Equal(t, int64(40), out.Stock)
	assert.Equal(t, p.SKU, out.SKU)

	_, err = uc.Update(ctx, admin, "nada", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_DisplaySKUIsGapFree(t *testing.T) {
	uc, _, _ := newProductUC()
	var ids []string
	for _, n := range []string{"A", "B", "C", "D"} {
		p, err := uc.Create(ctx, admin, entity.RoleAdmin, dto.CreateProductRequest{Name: n})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	require.NoError(t, uc.Delete(ctx, admin, ids[1]))

	list, err := uc.List(ctx, dto.ProductFilterRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 3)

	got := map[string]string{}
	for _, it := range list.Items {
		got[it.SKU] = it.DisplaySKU
	}
	assert.Equal(t, map[string]string{"SKU-001": "SKU-001", "SKU-003": "SKU-002", "SKU-004": "SKU-003"}, got)
	assert.Equal(t, 3, list.Page.Total)
	assert.Equal(t, dto.DefaultPageSize, list.Page.PerPage)
}

func TestProductDelete_ReferencedIsConflict(t *testing.T) {
	uc, repo, pub := newProductUC()
	p, err := uc.Create(ctx, admin, entity.RoleAdmin, dto.CreateProductRequest{Name: "Chicle"})
	require.NoError(t, err)
	repo.referenced[p.ID] = true

	err = uc.Delete(ctx, admin, p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, []string{entity.AuditCreate}, pub.actions())

	assert.ErrorIs(t, uc.Delete(ctx, admin, "nada"), domain.ErrNotFound)
}
