// Package report genera los documentos descargables del inventario: la planilla
// de exportación y el kardex por producto.
package report

import (
	"context"
	"time"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/inventory"
)

// WorkbookRenderer serializa la exportación a .xlsx.
type WorkbookRenderer interface {
	RenderWorkbook(ctx context.Context, wb *Workbook) ([]byte, error)
}

// KardexPDFGenerator genera el PDF del kardex de un producto.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, k *Kardex) ([]byte, error)
}

// Workbook contenido de la planilla: productos, una hoja por rol con usuarios y movimientos.
type Workbook struct {
	Products  []*entity.Product
	UserRoles []RoleSheet
	Movements []*entity.Movement
	Location  *time.Location // zona horaria para formatear fechas
}

// RoleSheet usuarios de un rol y el nombre de su hoja.
type RoleSheet struct {
	Role      string
	SheetName string
	Users     []*entity.User
}

// Kardex historial de un producto con saldo corrido.
type Kardex struct {
	Product        *entity.Product
	Lines          []KardexLine
	Reconciliation inventory.Reconciliation
	GeneratedAt    time.Time
	Location       *time.Location
}

// KardexLine movimiento con el delta que produce y el saldo resultante.
type KardexLine struct {
	Movement *entity.Movement
	Delta    int64
	Balance  int64
}
