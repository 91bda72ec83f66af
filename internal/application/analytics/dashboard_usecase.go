// Package analytics contiene los casos de uso del panel de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/application/inventory"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

const dashboardLatest = 10 // movimientos recientes en el widget del panel

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: DashboardRepository (consultas read-only) y MovementRepository
// para los últimos movimientos.
type DashboardUseCase struct {
	dashRepo repository.DashboardRepository
	movRepo  repository.MovementRepository
	loc      *time.Location
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc define el "hoy" del panel.
func NewDashboardUseCase(dashRepo repository.DashboardRepository, movRepo repository.MovementRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{dashRepo: dashRepo, movRepo: movRepo, loc: loc, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco llamadas en paralelo:
//  1. CountMovements(hoy)        → MovementsToday
//  2. TotalStock                 → TotalStock
//  3. CountProductsWithStock     → ProductsWithStock
//  4. List(limit 10)             → LatestMovements
//  5. RollupByType(mes)          → MonthByType
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.loc)

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	// Hoy: [00:00, 00:00 del día siguiente)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	todayEnd := todayStart.AddDate(0, 0, 1)

	// Mes en curso: día 1 a las 00:00 hasta el fin de hoy
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type countResult struct {
		n   int
		err error
	}
	type stockResult struct {
		total int64
		err   error
	}
	type latestResult struct {
		movs []*entity.Movement
		err  error
	}
	type rollupResult struct {
		rows []repository.TypeRollup
		err  error
	}

	todayCh := make(chan countResult, 1)
	stockCh := make(chan stockResult, 1)
	withStockCh := make(chan countResult, 1)
	latestCh := make(chan latestResult, 1)
	rollupCh := make(chan rollupResult, 1)

	go func() {
		n, err := uc.dashRepo.CountMovements(ctx, todayStart, todayEnd)
		todayCh <- countResult{n, err}
	}()
	go func() {
		total, err := uc.dashRepo.TotalStock(ctx)
		stockCh <- stockResult{total, err}
	}()
	go func() {
		n, err := uc.dashRepo.CountProductsWithStock(ctx)
		withStockCh <- countResult{n, err}
	}()
	go func() {
		movs, _, err := uc.movRepo.List(ctx, repository.MovementFilter{Limit: dashboardLatest})
		latestCh <- latestResult{movs, err}
	}()
	go func() {
		rows, err := uc.dashRepo.RollupByType(ctx, monthStart, todayEnd)
		rollupCh <- rollupResult{rows, err}
	}()

	today := <-todayCh
	stock := <-stockCh
	withStock := <-withStockCh
	latest := <-latestCh
	rollup := <-rollupCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos de hoy: %w", today.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: stock total: %w", stock.err)
	}
	if withStock.err != nil {
		return nil, fmt.Errorf("dashboard: productos con stock: %w", withStock.err)
	}
	if latest.err != nil {
		return nil, fmt.Errorf("dashboard: últimos movimientos: %w", latest.err)
	}
	if rollup.err != nil {
		return nil, fmt.Errorf("dashboard: resumen por tipo: %w", rollup.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := &dto.DashboardSummaryDTO{
		MovementsToday:    today.n,
		TotalStock:        stock.total,
		ProductsWithStock: withStock.n,
		LatestMovements:   make([]dto.MovementResponse, 0, len(latest.movs)),
		MonthByType:       monthByType(rollup.rows),
		DateLabel:         monthLabel(now),
	}
	for _, m := range latest.movs {
		out.LatestMovements = append(out.LatestMovements, inventory.ToMovementResponse(m))
	}
	return out, nil
}

// monthByType devuelve una fila por cada tipo conocido, en orden fijo, con ceros si no hubo movimientos.
func monthByType(rows []repository.TypeRollup) []dto.TypeRollupDTO {
	byType := make(map[string]repository.TypeRollup, len(rows))
	for _, r := range rows {
		byType[r.Type] = r
	}
	out := make([]dto.TypeRollupDTO, 0, len(entity.MovementTypes))
	for _, t := range entity.MovementTypes {
		r := byType[t]
		out = append(out, dto.TypeRollupDTO{
			Type:     t,
			Label:    entity.MovementTypeLabel(t),
			Count:    r.Count,
			Quantity: r.Quantity,
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
