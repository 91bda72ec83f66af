package inventory

import "github.com/shopspring/decimal"

// AverageCost recalcula el costo promedio ponderado tras un ingreso valorizado:
//
//	(stock*costo + recibido*costoUnitario) / (stock + recibido)
//
// Stock sin costo registrado (costo 0) no diluye el promedio: el nuevo costo es el del ingreso.
func AverageCost(stock int64, cost decimal.Decimal, received int64, unitCost decimal.Decimal) decimal.Decimal {
	if received <= 0 {
		return cost
	}
	if stock <= 0 || cost.IsZero() {
		return unitCost.Round(4)
	}
	units := decimal.NewFromInt(stock + received)
	value := decimal.NewFromInt(stock).Mul(cost).Add(decimal.NewFromInt(received).Mul(unitCost))
	return value.Div(units).Round(4)
}
