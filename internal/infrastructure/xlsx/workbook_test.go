package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/dulceria-api/internal/application/report"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

func TestRenderWorkbook(t *testing.T) {
	expiry := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	wb := &report.Workbook{
		Location: time.UTC,
		Products: []*entity.Product{{
			SKU: "SKU-001", Name: "Gomitas ácidas", Stock: 70, MinStock: 10,
			Price: decimal.NewFromInt(990), TaxRate: decimal.NewFromInt(19),
			ConversionFactor: decimal.NewFromInt(1), ApprovalStatus: entity.ApprovalApproved,
			Perishable: true, ExpiryDate: &expiry,
			CreatedBy: "6f1c2a9e-0000-4000-8000-000000000001", CreatedByName: "Camila Rojas",
		}},
		UserRoles: []report.RoleSheet{{
			Role: entity.RoleManager, SheetName: "Usuarios Gerente",
			Users: []*entity.User{{Email: "gerente@dulceria.cl", Name: "Gabriela", Role: entity.RoleManager, Status: "active"}},
		}},
		Movements: []*entity.Movement{{
			Date: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC), Type: entity.MovementTypeOUT,
			ProductSKU: "SKU-001", ProductName: "Gomitas ácidas", WarehouseName: "BOD-CENTRAL",
			Quantity: decimal.NewFromInt(12), CreatedBy: "u1",
		}},
	}

	data, err := NewRenderer().RenderWorkbook(context.Background(), wb)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Productos", "Usuarios Gerente", "Movimientos"}, f.GetSheetList())

	rows, err := f.GetRows("Productos")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SKU", rows[0][0])
	assert.Equal(t, "Gomitas ácidas", rows[1][1])
	assert.Equal(t, "Aprobado", rows[1][3])
	assert.Equal(t, "70", rows[1][4])
	assert.Equal(t, "Sí", rows[1][12])
	assert.Equal(t, "01-03-2027", rows[1][15])
	assert.Equal(t, "Camila Rojas", rows[1][16], "creado por muestra el nombre, no el id")

	users, err := f.GetRows("Usuarios Gerente")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Gerente", users[1][2])

	movs, err := f.GetRows("Movimientos")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "19-10-2026 09:30", movs[1][0])
	assert.Equal(t, "Salida", movs[1][1])
	assert.Equal(t, "12", movs[1][6])
	assert.Equal(t, "u1", movs[1][13])
}
