package entity

import "time"

// Estados de proveedor.
const (
	SupplierActive  = "ACTIVO"
	SupplierBlocked = "BLOQUEADO"
)

// Monedas aceptadas para proveedores.
var Currencies = []string{"CLP", "USD", "EUR"}

// Supplier representa un proveedor identificado por RUT.
type Supplier struct {
	ID           string
	RUT          string // normalizado 12.345.678-5, único
	BusinessName string // razón social
	TradeName    string // nombre de fantasía
	Email        string
	Phone        string
	Address      string
	City         string
	Country      string
	PaymentTerms int // días
	Currency     string
	Status       string
	Preferred    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ApplyDefaults valores por omisión del proveedor.
func (s *Supplier) ApplyDefaults() {
	if s.Country == "" {
		s.Country = "Chile"
	}
	if s.PaymentTerms == 0 {
		s.PaymentTerms = 30
	}
	if s.Currency == "" {
		s.Currency = "CLP"
	}
	if s.Status == "" {
		s.Status = SupplierActive
	}
}

// Active indica si se le pueden asociar movimientos.
func (s *Supplier) Active() bool { return s.Status == SupplierActive }
