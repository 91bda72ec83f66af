package dto

// DashboardSummaryDTO respuesta de GET /api/inventory/dashboard.
type DashboardSummaryDTO struct {
	MovementsToday    int                `json:"movimientos_hoy"`
	TotalStock        int64              `json:"stock_total"`
	ProductsWithStock int                `json:"productos_con_stock"`
	LatestMovements   []MovementResponse `json:"ultimos_movimientos"`
	// Agregado por tipo del mes en curso.
	MonthByType []TypeRollupDTO `json:"mes_por_tipo"`
	DateLabel   string          `json:"periodo"` // ej: "Octubre 2026"
}

// TypeRollupDTO conteo y unidades por tipo de movimiento.
type TypeRollupDTO struct {
	Type     string `json:"tipo"`
	Label    string `json:"tipo_display"`
	Count    int    `json:"cantidad_movimientos"`
	Quantity int64  `json:"unidades"`
}
