package dto

import "time"

// CreateSupplierRequest entrada para registrar un proveedor.
type CreateSupplierRequest struct {
	RUT          string `json:"rut"`
	BusinessName string `json:"razon_social"`
	TradeName    string `json:"nombre_fantasia"`
	Email        string `json:"email"`
	Phone        string `json:"telefono"`
	Address      string `json:"direccion"`
	City         string `json:"ciudad"`
	Country      string `json:"pais"`
	PaymentTerms int    `json:"plazo_pago"`
	Currency     string `json:"moneda"`
	Preferred    bool   `json:"es_preferente"`
}

// UpdateSupplierRequest campos editables (el RUT no cambia).
type UpdateSupplierRequest struct {
	BusinessName *string `json:"razon_social"`
	TradeName    *string `json:"nombre_fantasia"`
	Email        *string `json:"email"`
	Phone        *string `json:"telefono"`
	Address      *string `json:"direccion"`
	City         *string `json:"ciudad"`
	Country      *string `json:"pais"`
	PaymentTerms *int    `json:"plazo_pago"`
	Currency     *string `json:"moneda"`
	Preferred    *bool   `json:"es_preferente"`
}

// SupplierFilterRequest query params del listado de proveedores.
type SupplierFilterRequest struct {
	Query  string `query:"q"`
	Status string `query:"estado"`
	PageRequest
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	RUT          string    `json:"rut"`
	BusinessName string    `json:"razon_social"`
	TradeName    string    `json:"nombre_fantasia,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"telefono,omitempty"`
	Address      string    `json:"direccion,omitempty"`
	City         string    `json:"ciudad,omitempty"`
	Country      string    `json:"pais"`
	PaymentTerms int       `json:"plazo_pago"`
	Currency     string    `json:"moneda"`
	Status       string    `json:"estado"`
	Preferred    bool      `json:"es_preferente"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
