// Package xlsx implementa report.WorkbookRenderer con excelize.
package xlsx

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/dulceria-api/internal/application/report"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

const (
	sheetProducts  = "Productos"
	sheetMovements = "Movimientos"
	dateLayout     = "02-01-2006"
	dateTimeLayout = "02-01-2006 15:04"
)

var (
	productHeaders = []string{
		"SKU", "Nombre", "Categoría", "Estado Aprobación", "Stock", "Stock Mínimo",
		"Stock Máximo", "Precio Venta", "IVA (%)", "Unidad Compra", "Unidad Venta",
		"Factor Conversión", "Perecible", "Control Lote", "Control Serie",
		"Fecha Vencimiento", "Creado Por",
	}
	userHeaders = []string{
		"Email", "Nombre", "Rol", "Estado", "Teléfono", "Último acceso",
	}
	movementHeaders = []string{
		"Fecha", "Tipo", "SKU", "Producto", "Proveedor", "Bodega", "Cantidad",
		"Lote", "Serie", "Fecha Vencimiento", "Doc. Referencia", "Motivo",
		"Observaciones", "Creado Por",
	}
)

// Renderer escribe la planilla de exportación.
type Renderer struct{}

// NewRenderer construye el renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// RenderWorkbook genera el .xlsx con hojas Productos, Usuarios <Rol> y Movimientos.
func (r *Renderer) RenderWorkbook(_ context.Context, wb *report.Workbook) ([]byte, error) {
	loc := wb.Location
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}

	if err := f.SetSheetName("Sheet1", sheetProducts); err != nil {
		return nil, fmt.Errorf("xlsx: hoja productos: %w", err)
	}
	rows := make([][]any, 0, len(wb.Products))
	for _, p := range wb.Products {
		createdBy := p.CreatedByName
		if createdBy == "" {
			createdBy = p.CreatedBy
		}
		rows = append(rows, []any{
			p.SKU,
			p.Name,
			p.CategoryName,
			approvalLabel(p.ApprovalStatus),
			p.Stock,
			p.MinStock,
			optionalInt(p.MaxStock),
			p.Price.InexactFloat64(),
			p.TaxRate.InexactFloat64(),
			p.PurchaseUnit,
			p.SaleUnit,
			p.ConversionFactor.InexactFloat64(),
			yesNo(p.Perishable),
			yesNo(p.LotControl),
			yesNo(p.SerialControl),
			formatDay(p.ExpiryDate, loc),
			createdBy,
		})
	}
	if err := writeSheet(f, sheetProducts, headerStyle, productHeaders, rows); err != nil {
		return nil, err
	}

	for _, rs := range wb.UserRoles {
		if _, err := f.NewSheet(rs.SheetName); err != nil {
			return nil, fmt.Errorf("xlsx: hoja %s: %w", rs.SheetName, err)
		}
		rows := make([][]any, 0, len(rs.Users))
		for _, u := range rs.Users {
			lastLogin := ""
			if u.LastLoginAt != nil {
				lastLogin = u.LastLoginAt.In(loc).Format(dateTimeLayout)
			}
			rows = append(rows, []any{u.Email, u.Name, entity.RoleLabel(u.Role), u.Status, u.Phone, lastLogin})
		}
		if err := writeSheet(f, rs.SheetName, headerStyle, userHeaders, rows); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(sheetMovements); err != nil {
		return nil, fmt.Errorf("xlsx: hoja movimientos: %w", err)
	}
	rows = make([][]any, 0, len(wb.Movements))
	for _, m := range wb.Movements {
		createdBy := m.CreatedByName
		if createdBy == "" {
			createdBy = m.CreatedBy
		}
		rows = append(rows, []any{
			m.Date.In(loc).Format(dateTimeLayout),
			entity.MovementTypeLabel(m.Type),
			m.ProductSKU,
			m.ProductName,
			m.SupplierName,
			m.WarehouseName,
			m.Quantity.InexactFloat64(),
			m.Lot,
			m.Serial,
			formatDay(m.ExpiryDate, loc),
			m.DocReference,
			m.Reason,
			m.Notes,
			createdBy,
		})
	}
	if err := writeSheet(f, sheetMovements, headerStyle, movementHeaders, rows); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet escribe cabecera con estilo, filas, autofiltro y cabecera fija.
func writeSheet(f *excelize.File, sheet string, headerStyle int, headers []string, rows [][]any) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: %s: %w", sheet, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: %s: %w", sheet, err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: %s fila %d: %w", sheet, i+2, err)
		}
	}
	if err := f.AutoFilter(sheet, "A1:"+last, []excelize.AutoFilterOptions{}); err != nil {
		return fmt.Errorf("xlsx: %s: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, Split: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func approvalLabel(s string) string {
	switch s {
	case entity.ApprovalApproved:
		return "Aprobado"
	case entity.ApprovalRejected:
		return "Rechazado"
	case entity.ApprovalPending:
		return "Pendiente"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func optionalInt(v int64) any {
	if v == 0 {
		return ""
	}
	return v
}

func formatDay(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format(dateLayout)
}
