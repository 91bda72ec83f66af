package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "ingreso"
	MovementTypeOUT        = "salida"
	MovementTypeADJUSTMENT = "ajuste"
	MovementTypeRETURN     = "devolucion"
	MovementTypeTRANSFER   = "transferencia" // sin efecto sobre el stock agregado
)

var movementLabels = map[string]string{
	MovementTypeIN:         "Ingreso",
	MovementTypeOUT:        "Salida",
	MovementTypeADJUSTMENT: "Ajuste",
	MovementTypeRETURN:     "Devolución",
	MovementTypeTRANSFER:   "Transferencia",
}

// MovementTypes en el orden en que se muestran.
var MovementTypes = []string{
	MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeRETURN, MovementTypeTRANSFER,
}

// ValidMovementType indica si t es un tipo conocido.
func ValidMovementType(t string) bool {
	_, ok := movementLabels[t]
	return ok
}

// MovementTypeLabel devuelve la etiqueta legible del tipo.
func MovementTypeLabel(t string) string {
	if l, ok := movementLabels[t]; ok {
		return l
	}
	return t
}

// Movement es una entrada del ledger de inventario.
// AppliedDelta guarda el cambio efectivamente aplicado a Product.Stock (tras el recorte en cero);
// al eliminar el movimiento se revierte exactamente ese valor.
type Movement struct {
	ID                string
	Date              time.Time
	Type              string
	ProductID         string
	SupplierID        string // opcional salvo en ingreso; queda vacío si se elimina el proveedor
	WarehouseID       string
	TargetWarehouseID string // solo informativo en transferencia
	Quantity          decimal.Decimal
	UnitCost          *decimal.Decimal
	AppliedDelta      int64
	Lot               string
	Serial            string
	ExpiryDate        *time.Time
	DocReference      string
	Notes             string
	Reason            string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Datos de lectura (joins) para listados y exportación.
	ProductSKU    string
	ProductName   string
	SupplierName  string
	SupplierRUT   string
	WarehouseName string
	CreatedByName string
}

// MovementDetails campos descriptivos editables de un movimiento ya registrado.
type MovementDetails struct {
	SupplierID   *string
	Lot          *string
	Serial       *string
	ExpiryDate   *time.Time
	ClearExpiry  bool // deja fecha_vencimiento en NULL; tiene precedencia sobre ExpiryDate
	DocReference *string
	Notes        *string
	Reason       *string
}
