package repository

import (
	"context"
	"time"
)

// TypeRollup agregado de movimientos por tipo en un período.
type TypeRollup struct {
	Type     string
	Count    int
	Quantity int64 // unidades, ajustes con signo
}

// DashboardRepository consultas de conteo para el panel. Read-only.
type DashboardRepository interface {
	// CountMovements cuenta movimientos con fecha en [from, to).
	CountMovements(ctx context.Context, from, to time.Time) (int, error)
	// CountProductsWithStock productos activos y aprobados con stock > 0.
	CountProductsWithStock(ctx context.Context) (int, error)
	// TotalStock suma de stock de productos activos y aprobados.
	TotalStock(ctx context.Context) (int64, error)
	RollupByType(ctx context.Context, from, to time.Time) ([]TypeRollup, error)
}
