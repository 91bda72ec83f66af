package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dulceria-api/internal/domain/inventory"
)

// CreateMovementRequest body para POST /api/inventory/movements.
// Fechas: fecha en RFC3339 o YYYY-MM-DD (vacía = ahora); fecha_vencimiento en YYYY-MM-DD.
type CreateMovementRequest struct {
	Date              string           `json:"fecha"`
	Type              string           `json:"tipo"`
	ProductID         string           `json:"producto_id"`
	SupplierID        string           `json:"proveedor_id,omitempty"`
	WarehouseID       string           `json:"bodega_id"`
	TargetWarehouseID string           `json:"bodega_destino_id,omitempty"`
	Quantity          decimal.Decimal  `json:"cantidad"`
	UnitCost          *decimal.Decimal `json:"costo_unitario,omitempty"`
	Lot               string           `json:"lote,omitempty"`
	Serial            string           `json:"serie,omitempty"`
	ExpiryDate        string           `json:"fecha_vencimiento,omitempty"`
	DocReference      string           `json:"doc_referencia,omitempty"`
	Notes             string           `json:"observaciones,omitempty"`
	Reason            string           `json:"motivo,omitempty"`
}

// UpdateMovementRequest body para PATCH: solo campos descriptivos.
type UpdateMovementRequest struct {
	SupplierID   *string `json:"proveedor_id"`
	Lot          *string `json:"lote"`
	Serial       *string `json:"serie"`
	ExpiryDate   *string `json:"fecha_vencimiento"`
	DocReference *string `json:"doc_referencia"`
	Notes        *string `json:"observaciones"`
	Reason       *string `json:"motivo"`
}

// MovementFilterRequest query params del listado.
type MovementFilterRequest struct {
	Query     string `query:"q"`
	Type      string `query:"tipo"`
	ProductID string `query:"producto_id"`
	DateFrom  string `query:"fecha_desde"`
	DateTo    string `query:"fecha_hasta"`
	PageRequest
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID                string           `json:"id"`
	Date              time.Time        `json:"fecha"`
	Type              string           `json:"tipo"`
	TypeLabel         string           `json:"tipo_display"`
	ProductID         string           `json:"producto_id"`
	ProductSKU        string           `json:"producto_sku,omitempty"`
	ProductName       string           `json:"producto_nombre,omitempty"`
	SupplierID        string           `json:"proveedor_id,omitempty"`
	SupplierName      string           `json:"proveedor_nombre,omitempty"`
	SupplierRUT       string           `json:"proveedor_rut,omitempty"`
	WarehouseID       string           `json:"bodega_id"`
	WarehouseName     string           `json:"bodega_nombre,omitempty"`
	TargetWarehouseID string           `json:"bodega_destino_id,omitempty"`
	Quantity          decimal.Decimal  `json:"cantidad"`
	UnitCost          *decimal.Decimal `json:"costo_unitario,omitempty"`
	AppliedDelta      int64            `json:"delta_aplicado"`
	Lot               string           `json:"lote,omitempty"`
	Serial            string           `json:"serie,omitempty"`
	ExpiryDate        *time.Time       `json:"fecha_vencimiento,omitempty"`
	DocReference      string           `json:"doc_referencia,omitempty"`
	Notes             string           `json:"observaciones,omitempty"`
	Reason            string           `json:"motivo,omitempty"`
	CreatedBy         string           `json:"creado_por"`
	CreatedByName     string           `json:"creado_por_nombre,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReconcileResponse resultado de la conciliación de un producto.
type ReconcileResponse struct {
	ProductID    string                   `json:"producto_id"`
	SKU          string                   `json:"sku"`
	CurrentStock int64                    `json:"stock_actual"`
	Detail       inventory.Reconciliation `json:"detalle"`
	Difference   int64                    `json:"diferencia"` // stock_actual - stock_esperado
	Applied      bool                     `json:"aplicado"`
	NewStock     int64                    `json:"stock_nuevo"`
}

// ReorderSuggestionDTO producto en o bajo su punto de reorden con la cantidad sugerida.
type ReorderSuggestionDTO struct {
	ProductID          string          `json:"producto_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"producto_nombre"`
	CurrentStock       int64           `json:"stock_actual"`
	ReorderPoint       int64           `json:"punto_reorden"`
	MaxStock           int64           `json:"stock_maximo"`
	SuggestedOrderQty  int64           `json:"cantidad_sugerida"`
	UnitCost           decimal.Decimal `json:"costo_unitario"`
	EstimatedOrderCost decimal.Decimal `json:"costo_estimado"`
	Priority           int             `json:"prioridad"` // 1 = más urgente
}
