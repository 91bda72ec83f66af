package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
	"github.com/jhoicas/dulceria-api/pkg/search"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL (pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementSelect = `
	SELECT m.id, m.date, m.type, m.product_id::text, COALESCE(m.supplier_id::text, ''),
		m.warehouse_id::text, COALESCE(m.target_warehouse_id::text, ''),
		m.quantity, m.unit_cost, m.applied_delta, m.lot, m.serial, m.expiry_date,
		m.doc_reference, m.notes, m.reason, COALESCE(m.created_by::text, ''), m.created_at, m.updated_at,
		p.sku, p.name, COALESCE(s.business_name, ''), COALESCE(s.rut, ''), w.name, COALESCE(u.name, '')
	FROM inventory_movements m
	JOIN products p ON p.id = m.product_id
	JOIN warehouses w ON w.id = m.warehouse_id
	LEFT JOIN suppliers s ON s.id = m.supplier_id
	LEFT JOIN users u ON u.id = m.created_by`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var unitCost decimal.NullDecimal
	err := row.Scan(
		&m.ID, &m.Date, &m.Type, &m.ProductID, &m.SupplierID,
		&m.WarehouseID, &m.TargetWarehouseID,
		&m.Quantity, &unitCost, &m.AppliedDelta, &m.Lot, &m.Serial, &m.ExpiryDate,
		&m.DocReference, &m.Notes, &m.Reason, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
		&m.ProductSKU, &m.ProductName, &m.SupplierName, &m.SupplierRUT, &m.WarehouseName, &m.CreatedByName,
	)
	if err != nil {
		return nil, err
	}
	if unitCost.Valid {
		m.UnitCost = &unitCost.Decimal
	}
	return &m, nil
}

// Create inserta el movimiento con el delta ya aplicado al stock.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO inventory_movements (
			id, date, type, product_id, supplier_id, warehouse_id, target_warehouse_id,
			quantity, unit_cost, applied_delta, lot, serial, expiry_date,
			doc_reference, notes, reason, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	var unitCost decimal.NullDecimal
	if m.UnitCost != nil {
		unitCost = decimal.NewNullDecimal(*m.UnitCost)
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Date, m.Type, m.ProductID, nullable(m.SupplierID), m.WarehouseID, nullable(m.TargetWarehouseID),
		m.Quantity, unitCost, m.AppliedDelta, m.Lot, m.Serial, m.ExpiryDate,
		m.DocReference, m.Notes, m.Reason, nullable(m.CreatedBy), m.CreatedAt, m.UpdatedAt,
	)
	return mapWriteError("insert movement", err)
}

// GetByID obtiene un movimiento con sus datos de lectura; nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, movementSelect+` WHERE m.id = $1`, id)
}

// GetForUpdate bloquea solo la fila del movimiento; el producto se bloquea aparte.
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, movementSelect+` WHERE m.id = $1 FOR UPDATE OF m`, id)
}

func (r *MovementRepo) getOne(ctx context.Context, query, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// UpdateDetails modifica solo los campos presentes en d.
func (r *MovementRepo) UpdateDetails(ctx context.Context, id string, d entity.MovementDetails) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	sets := []string{"updated_at = now()"}
	args := []any{id}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if d.SupplierID != nil {
		set("supplier_id", nullable(*d.SupplierID))
	}
	if d.Lot != nil {
		set("lot", *d.Lot)
	}
	if d.Serial != nil {
		set("serial", *d.Serial)
	}
	switch {
	case d.ClearExpiry:
		set("expiry_date", nil)
	case d.ExpiryDate != nil:
		set("expiry_date", *d.ExpiryDate)
	}
	if d.DocReference != nil {
		set("doc_reference", *d.DocReference)
	}
	if d.Notes != nil {
		set("notes", *d.Notes)
	}
	if d.Reason != nil {
		set("reason", *d.Reason)
	}
	query := `UPDATE inventory_movements SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError("update movement", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el registro; revertir el stock es responsabilidad del caso de uso.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List aplica filtros, ordena por fecha DESC y devuelve también el total sin paginar.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Query != "" {
		ph := arg(search.LikePattern(f.Query))
		conds = append(conds, fmt.Sprintf(`(p.sku ILIKE %[1]s OR p.name ILIKE %[1]s
			OR s.rut ILIKE %[1]s OR s.business_name ILIKE %[1]s
			OR m.doc_reference ILIKE %[1]s OR m.lot ILIKE %[1]s OR m.serial ILIKE %[1]s)`, ph))
	}
	if f.Type != "" {
		conds = append(conds, "m.type = "+arg(f.Type))
	}
	switch {
	case f.ProductID == "":
	case validID(f.ProductID):
		conds = append(conds, "m.product_id = "+arg(f.ProductID))
	default:
		conds = append(conds, "FALSE")
	}
	if f.From != nil {
		conds = append(conds, "m.date >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "m.date < "+arg(*f.To))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := `
		SELECT COUNT(*) FROM inventory_movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN suppliers s ON s.id = m.supplier_id` + where
	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := movementSelect + where + ` ORDER BY m.date DESC, m.created_at DESC`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}
	list, err := r.queryMovements(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByProduct historial completo del producto en orden cronológico.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	if !validID(productID) {
		return nil, nil
	}
	return r.queryMovements(ctx,
		movementSelect+` WHERE m.product_id = $1 ORDER BY m.date, m.created_at`, productID)
}

func (r *MovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
