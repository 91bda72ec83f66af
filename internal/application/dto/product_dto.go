package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El SKU lo asigna el sistema.
type CreateProductRequest struct {
	Name             string          `json:"nombre"`
	EAN              string          `json:"ean_upc"`
	Description      string          `json:"descripcion"`
	CategoryID       string          `json:"categoria_id"`
	Brand            string          `json:"marca"`
	StandardCost     decimal.Decimal `json:"costo_estandar"`
	Price            decimal.Decimal `json:"precio"`
	TaxRate          decimal.Decimal `json:"iva"`
	PurchaseUnit     string          `json:"uom_compra"`
	SaleUnit         string          `json:"uom_venta"`
	ConversionFactor decimal.Decimal `json:"factor_conversion"`
	MinStock         int64           `json:"stock_minimo"`
	MaxStock         int64           `json:"stock_maximo"`
	ReorderPoint     int64           `json:"punto_reorden"`
	Perishable       bool            `json:"es_perecible"`
	LotControl       bool            `json:"control_por_lote"`
	SerialControl    bool            `json:"control_por_serie"`
	ExpiryDate       string          `json:"fecha_vencimiento"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock ni costo promedio).
type UpdateProductRequest struct {
	Name          *string          `json:"nombre"`
	EAN           *string          `json:"ean_upc"`
	Description   *string          `json:"descripcion"`
	CategoryID    *string          `json:"categoria_id"`
	Brand         *string          `json:"marca"`
	StandardCost  *decimal.Decimal `json:"costo_estandar"`
	Price         *decimal.Decimal `json:"precio"`
	TaxRate       *decimal.Decimal `json:"iva"`
	MinStock      *int64           `json:"stock_minimo"`
	MaxStock      *int64           `json:"stock_maximo"`
	ReorderPoint  *int64           `json:"punto_reorden"`
	Perishable    *bool            `json:"es_perecible"`
	LotControl    *bool            `json:"control_por_lote"`
	SerialControl *bool            `json:"control_por_serie"`
	ExpiryDate    *string          `json:"fecha_vencimiento"`
	IsActive      *bool            `json:"is_active"`
}

// RejectProductRequest motivo del rechazo.
type RejectProductRequest struct {
	Reason string `json:"motivo"`
}

// ProductFilterRequest query params del catálogo.
type ProductFilterRequest struct {
	Query          string `query:"q"`
	CategoryID     string `query:"categoria_id"`
	ApprovalStatus string `query:"estado"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	DisplaySKU       string          `json:"sku_correlativo,omitempty"`
	EAN              string          `json:"ean_upc,omitempty"`
	Name             string          `json:"nombre"`
	Description      string          `json:"descripcion,omitempty"`
	CategoryID       string          `json:"categoria_id,omitempty"`
	CategoryName     string          `json:"categoria,omitempty"`
	Brand            string          `json:"marca,omitempty"`
	StandardCost     decimal.Decimal `json:"costo_estandar"`
	Cost             decimal.Decimal `json:"costo_promedio"`
	Price            decimal.Decimal `json:"precio"`
	TaxRate          decimal.Decimal `json:"iva"`
	PurchaseUnit     string          `json:"uom_compra"`
	SaleUnit         string          `json:"uom_venta"`
	ConversionFactor decimal.Decimal `json:"factor_conversion"`
	Stock            int64           `json:"stock"`
	MinStock         int64           `json:"stock_minimo"`
	MaxStock         int64           `json:"stock_maximo"`
	ReorderPoint     int64           `json:"punto_reorden"`
	Perishable       bool            `json:"es_perecible"`
	LotControl       bool            `json:"control_por_lote"`
	SerialControl    bool            `json:"control_por_serie"`
	ExpiryDate       *time.Time      `json:"fecha_vencimiento,omitempty"`
	IsActive         bool            `json:"is_active"`
	ApprovalStatus   string          `json:"estado_aprobacion"`
	ApprovedBy       string          `json:"aprobado_por,omitempty"`
	ApprovedAt       *time.Time      `json:"fecha_aprobacion,omitempty"`
	RejectionReason  string          `json:"motivo_rechazo,omitempty"`
	CreatedBy        string          `json:"creado_por"`
	CreatedByName    string          `json:"creado_por_nombre,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
	IsActive    bool   `json:"is_active"`
}
