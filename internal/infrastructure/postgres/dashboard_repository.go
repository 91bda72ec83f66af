package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el panel de inventario.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del panel.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountMovements cuenta movimientos con fecha en [from, to).
func (r *DashboardRepo) CountMovements(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_movements WHERE date >= $1 AND date < $2`, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dashboard.CountMovements: %w", err)
	}
	return n, nil
}

// CountProductsWithStock productos activos y aprobados con stock > 0.
func (r *DashboardRepo) CountProductsWithStock(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM products
		WHERE is_active AND approval_status = 'APROBADO' AND stock > 0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dashboard.CountProductsWithStock: %w", err)
	}
	return n, nil
}

// TotalStock usa COALESCE para devolver cero con el catálogo vacío.
func (r *DashboardRepo) TotalStock(ctx context.Context) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(stock), 0)::bigint FROM products
		WHERE is_active AND approval_status = 'APROBADO'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("dashboard.TotalStock: %w", err)
	}
	return total, nil
}

// RollupByType agrupa los movimientos del período por tipo. Las unidades son el delta aplicado
// en valor absoluto; los ajustes conservan el signo y las transferencias usan la cantidad registrada.
func (r *DashboardRepo) RollupByType(ctx context.Context, from, to time.Time) ([]repository.TypeRollup, error) {
	const query = `
	SELECT
	    type,
	    COUNT(*) AS movements,
	    COALESCE(SUM(CASE type
	        WHEN 'transferencia' THEN TRUNC(quantity)
	        WHEN 'ajuste' THEN applied_delta
	        ELSE ABS(applied_delta) END), 0)::bigint AS units
	FROM inventory_movements
	WHERE date >= $1 AND date < $2
	GROUP BY type
	ORDER BY type`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard.RollupByType: %w", err)
	}
	defer rows.Close()

	var results []repository.TypeRollup
	for rows.Next() {
		var row repository.TypeRollup
		if err := rows.Scan(&row.Type, &row.Count, &row.Quantity); err != nil {
			return nil, fmt.Errorf("dashboard.RollupByType scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
