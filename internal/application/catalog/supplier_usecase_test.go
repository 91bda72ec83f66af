package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

func TestSupplierCreate_NormalizesRUTAndDefaults(t *testing.T) {
	uc := NewSupplierUseCase(newMemSuppliers(), &recordingPublisher{})

	s, err := uc.Create(ctx, admin, dto.CreateSupplierRequest{RUT: "76086428-5", BusinessName: "Dulces del Sur SpA"})
	require.NoError(t, err)

	assert.Equal(t, "76.086.428-5", s.RUT)
	assert.Equal(t, "Chile", s.Country)
	assert.Equal(t, "CLP", s.Currency)
	assert.Equal(t, 30, s.PaymentTerms)
	assert.Equal(t, entity.SupplierActive, s.Status)

	_, err = uc.Create(ctx, admin, dto.CreateSupplierRequest{RUT: "76.086.428-5", BusinessName: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSupplierCreate_Validation(t *testing.T) {
	uc := NewSupplierUseCase(newMemSuppliers(), &recordingPublisher{})
	cases := []struct {
		name  string
		in    dto.CreateSupplierRequest
		field string
	}{
		{"dv incorrecto", dto.CreateSupplierRequest{RUT: "76086428-4", BusinessName: "x"}, "rut"},
		{"sin razón social", dto.CreateSupplierRequest{RUT: "11111111-1"}, "razon_social"},
		{"email", dto.CreateSupplierRequest{RUT: "11111111-1", BusinessName: "x", Email: "no-es-email"}, "email"},
		{"moneda", dto.CreateSupplierRequest{RUT: "11111111-1", BusinessName: "x", Currency: "ARS"}, "moneda"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, admin, tc.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestSupplierBlockUnblock(t *testing.T) {
	pub := &recordingPublisher{}
	uc := NewSupplierUseCase(newMemSuppliers(), pub)
	s, err := uc.Create(ctx, admin, dto.CreateSupplierRequest{RUT: "1000005-K", BusinessName: "Confites Ltda"})
	require.NoError(t, err)

	out, err := uc.SetBlocked(ctx, admin, s.ID, true)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierBlocked, out.Status)

	// bloquear de nuevo no genera evento
	_, err = uc.SetBlocked(ctx, admin, s.ID, true)
	require.NoError(t, err)

	out, err = uc.SetBlocked(ctx, admin, s.ID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierActive, out.Status)
	assert.Equal(t, []string{entity.AuditCreate, entity.AuditUpdate, entity.AuditUpdate}, pub.actions())

	list, err := uc.List(ctx, dto.SupplierFilterRequest{Status: "activo"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, admin, s.ID))
	_, err = uc.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
