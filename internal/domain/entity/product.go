package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del flujo de aprobación de productos.
const (
	ApprovalPending  = "PENDIENTE"
	ApprovalApproved = "APROBADO"
	ApprovalRejected = "RECHAZADO"
)

// Product representa un producto del catálogo de la dulcería.
// Stock es el contador agregado en unidades; solo lo modifica el ledger de movimientos.
type Product struct {
	ID  string
	Seq int64 // identidad interna monótona; ordena la numeración visible
	// SKU se asigna una sola vez al crear (SKU-001, SKU-002...) y no se reescribe.
	SKU string
	// DisplaySKU es el correlativo sin huecos calculado en lectura.
	DisplaySKU       string
	EAN              string
	Name             string
	Description      string
	CategoryID       string
	CategoryName     string
	Brand            string
	StandardCost     decimal.Decimal
	Cost             decimal.Decimal // costo promedio ponderado
	Price            decimal.Decimal
	TaxRate          decimal.Decimal // IVA en porcentaje (19 por defecto)
	PurchaseUnit     string
	SaleUnit         string
	ConversionFactor decimal.Decimal
	Stock            int64
	MinStock         int64
	MaxStock         int64
	ReorderPoint     int64
	Perishable       bool
	LotControl       bool
	SerialControl    bool
	ExpiryDate       *time.Time
	IsActive         bool
	ApprovalStatus   string
	ApprovedBy       string
	ApprovedAt       *time.Time
	RejectionReason  string
	CreatedBy        string
	CreatedByName    string // solo lectura, resuelto desde usuarios
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ApplyDefaults completa los valores por omisión antes de persistir.
func (p *Product) ApplyDefaults() {
	if p.ReorderPoint == 0 {
		p.ReorderPoint = p.MinStock
	}
	if p.TaxRate.IsZero() {
		p.TaxRate = decimal.NewFromInt(19)
	}
	if p.ConversionFactor.IsZero() {
		p.ConversionFactor = decimal.NewFromInt(1)
	}
	if p.PurchaseUnit == "" {
		p.PurchaseUnit = "UN"
	}
	if p.SaleUnit == "" {
		p.SaleUnit = "UN"
	}
	if p.ApprovalStatus == "" {
		p.ApprovalStatus = ApprovalPending
	}
}

// Available indica si el producto puede recibir movimientos (activo y aprobado).
func (p *Product) Available() bool {
	return p.IsActive && p.ApprovalStatus == ApprovalApproved
}

// BelowReorderPoint indica si el stock llegó al punto de reorden.
func (p *Product) BelowReorderPoint() bool {
	return p.Stock <= p.ReorderPoint
}
