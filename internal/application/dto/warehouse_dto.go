package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Code        string `json:"codigo"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Address     string `json:"direccion"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
	Address     *string `json:"direccion"`
	IsActive    *bool   `json:"is_active"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"codigo"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion,omitempty"`
	Address     string    `json:"direccion,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
