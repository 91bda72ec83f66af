// Package pdf implementa la generación del kardex de producto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: SKU + Nombre        │  Fecha de emisión            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FICHA: Categoría / Stock / Punto de reorden / Costo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Doc | Cantidad | Δ | Saldo           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONCILIACIÓN: totales por tipo + stock esperado            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/dulceria-api/internal/application/report"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 140, Green: 30, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 190, Green: 60, Blue: 20}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// KardexGenerator implementa report.KardexPDFGenerator usando Maroto v2.
type KardexGenerator struct {
	company string
}

// NewKardexGenerator construye el generador; company va en los metadatos del documento.
func NewKardexGenerator(company string) *KardexGenerator {
	return &KardexGenerator{company: company}
}

// GenerateKardexPDF genera el PDF y devuelve sus bytes.
func (g *KardexGenerator) GenerateKardexPDF(_ context.Context, k *report.Kardex) ([]byte, error) {
	loc := k.Location
	if loc == nil {
		loc = time.Local
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex "+k.Product.SKU, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(k, loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRow(k.Product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(k.Lines) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(k.Lines, loc)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(reconciliationRows(k)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: SKU + nombre (izq) y fecha de emisión (der).
func headerRow(k *report.Kardex, loc *time.Location) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(k.Product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+k.Product.SKU, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("KARDEX DE PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+k.GeneratedAt.In(loc).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// productRow: ficha resumida del producto.
func productRow(p *entity.Product) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("FICHA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Categoría: %s   |   Stock actual: %s   |   Punto de reorden: %s   |   Costo promedio: $%s",
				nonEmpty(p.CategoryName, "-"),
				formatMoney(strconv.FormatInt(p.Stock, 10)),
				formatMoney(strconv.FormatInt(p.ReorderPoint, 10)),
				formatMoney(p.Cost.StringFixed(0)),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Doc. / Lote", 3, align.Left),
		h("Cantidad", 2, align.Right),
		h("Efecto", 1, align.Right),
		h("Saldo", 2, align.Right),
	)
}

// tableDetailRows: una fila por movimiento, con el saldo corrido.
func tableDetailRows(lines []report.KardexLine, loc *time.Location) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		m := l.Movement
		ref := m.DocReference
		if m.Lot != "" {
			ref = nonEmpty(ref, "-") + " / " + m.Lot
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				m.Date.In(loc).Format("02/01/2006"),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				entity.MovementTypeLabel(m.Type),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(ref, "-"),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				m.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				signed(l.Delta),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(strconv.FormatInt(l.Balance, 10)),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// reconciliationRows: totales por tipo y comparación con el stock registrado.
func reconciliationRows(k *report.Kardex) []core.Row {
	r := k.Reconciliation
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONCILIACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Ingresos: %d   |   Devoluciones: %d   |   Ajustes: %s   |   Salidas: %d   |   Transferencias: %d",
				r.In, r.Returns, signed(r.Adjustment), r.Out, r.Transfers,
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Stock esperado: %d   |   Saldo secuencial: %d   |   Stock registrado: %d",
				r.Expected, r.Replayed, k.Product.Stock,
			), props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
		)),
	}
	if r.Expected != k.Product.Stock {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Diferencia de %s unidades entre el stock registrado y el historial.",
				signed(k.Product.Stock-r.Expected)),
				props.Text{Size: 8, Top: 1, Color: colorWarn}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func signed(v int64) string {
	if v > 0 {
		return "+" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
