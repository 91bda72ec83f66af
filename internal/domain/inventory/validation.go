package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

// ValidateMovement reglas de formulario previas a cualquier escritura.
// Solo ajuste admite cantidad con signo (distinta de cero); el resto exige cantidad > 0.
// La cantidad se expresa en unidades enteras. Ingreso requiere proveedor.
func ValidateMovement(t string, qty decimal.Decimal, productID, warehouseID, supplierID string) error {
	if !entity.ValidMovementType(t) {
		return domain.Invalid("tipo", "tipo de movimiento inválido")
	}
	if productID == "" {
		return domain.Invalid("producto", "el producto es obligatorio")
	}
	if warehouseID == "" {
		return domain.Invalid("bodega", "la bodega es obligatoria")
	}
	if t == entity.MovementTypeADJUSTMENT {
		if qty.IsZero() {
			return domain.Invalid("cantidad", "el ajuste no puede ser cero")
		}
	} else if !qty.GreaterThan(decimal.Zero) {
		return domain.Invalid("cantidad", "la cantidad debe ser mayor a 0")
	}
	// el stock se lleva en unidades enteras: una fracción quedaría en el libro sin efecto real
	if !qty.Equal(qty.Truncate(0)) {
		return domain.Invalid("cantidad", "la cantidad debe ser un número entero de unidades")
	}
	if t == entity.MovementTypeIN && supplierID == "" {
		return domain.Invalid("proveedor", "el proveedor es obligatorio para ingresos")
	}
	return nil
}
