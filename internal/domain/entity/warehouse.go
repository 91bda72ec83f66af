package entity

import "time"

// Warehouse representa una bodega o sucursal (BOD-CENTRAL, SUC-001...).
type Warehouse struct {
	ID          string
	Code        string
	Name        string
	Description string
	Address     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
