// Package inventory contiene las reglas puras del ledger: efecto de cada tipo de movimiento
// sobre el stock, su reversión, la conciliación y la numeración de SKU.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

// Units convierte la cantidad del movimiento a unidades enteras de stock (trunca hacia cero).
func Units(qty decimal.Decimal) int64 {
	return qty.IntPart()
}

// ApplyEffect calcula el nuevo stock tras aplicar un movimiento de tipo t.
// Devuelve también el delta efectivamente aplicado, que puede diferir del nominal
// cuando salida o ajuste se recortan en cero.
//
//	ingreso, devolucion: stock + cantidad
//	salida:              max(0, stock - cantidad)
//	ajuste:              max(0, stock + cantidad) con cantidad con signo
//	transferencia:       sin efecto
func ApplyEffect(t string, stock int64, qty decimal.Decimal) (newStock, applied int64) {
	units := Units(qty)
	switch t {
	case entity.MovementTypeIN, entity.MovementTypeRETURN:
		newStock = stock + units
	case entity.MovementTypeOUT:
		newStock = clamp(stock - units)
	case entity.MovementTypeADJUSTMENT:
		newStock = clamp(stock + units)
	default:
		newStock = stock
	}
	return newStock, newStock - stock
}

// Reverse deshace un delta aplicado. El piso en cero solo actúa si movimientos
// posteriores ya consumieron parte de lo ingresado.
func Reverse(stock, applied int64) int64 {
	return clamp(stock - applied)
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
