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
	"github.com/jhoicas/dulceria-api/internal/domain/inventory"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
	"github.com/jhoicas/dulceria-api/pkg/search"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// numbered calcula el correlativo visible sobre todo el catálogo antes de aplicar filtros.
const numberedCTE = `
	WITH numbered AS (
		SELECT id, ROW_NUMBER() OVER (ORDER BY seq) AS display_no FROM products
	)`

const productSelect = `
	SELECT p.id, p.seq, p.sku, n.display_no, p.ean, p.name, p.description,
		COALESCE(p.category_id::text, ''), COALESCE(c.name, ''), p.brand,
		p.standard_cost, p.cost, p.price, p.tax_rate, p.purchase_unit, p.sale_unit, p.conversion_factor,
		p.stock, p.min_stock, p.max_stock, p.reorder_point,
		p.perishable, p.lot_control, p.serial_control, p.expiry_date, p.is_active,
		p.approval_status, COALESCE(p.approved_by::text, ''), p.approved_at, p.rejection_reason,
		COALESCE(p.created_by::text, ''), COALESCE(cu.name, ''), p.created_at, p.updated_at
	FROM products p
	JOIN numbered n ON n.id = p.id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN users cu ON cu.id = p.created_by`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var displayNo int64
	err := row.Scan(
		&p.ID, &p.Seq, &p.SKU, &displayNo, &p.EAN, &p.Name, &p.Description,
		&p.CategoryID, &p.CategoryName, &p.Brand,
		&p.StandardCost, &p.Cost, &p.Price, &p.TaxRate, &p.PurchaseUnit, &p.SaleUnit, &p.ConversionFactor,
		&p.Stock, &p.MinStock, &p.MaxStock, &p.ReorderPoint,
		&p.Perishable, &p.LotControl, &p.SerialControl, &p.ExpiryDate, &p.IsActive,
		&p.ApprovalStatus, &p.ApprovedBy, &p.ApprovedAt, &p.RejectionReason,
		&p.CreatedBy, &p.CreatedByName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.DisplaySKU = inventory.FormatSKU(displayNo)
	return &p, nil
}

// NextSeq reserva el siguiente valor de product_seq. Los valores no usados se pierden (la numeración visible no tiene huecos igual).
func (r *ProductRepo) NextSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('product_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next product seq: %w", err)
	}
	return seq, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (
			id, seq, sku, ean, name, description, category_id, brand,
			standard_cost, cost, price, tax_rate, purchase_unit, sale_unit, conversion_factor,
			stock, min_stock, max_stock, reorder_point, perishable, lot_control, serial_control,
			expiry_date, is_active, approval_status, approved_by, approved_at, rejection_reason,
			created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Seq, p.SKU, p.EAN, p.Name, p.Description, nullable(p.CategoryID), p.Brand,
		p.StandardCost, p.Cost, p.Price, p.TaxRate, p.PurchaseUnit, p.SaleUnit, p.ConversionFactor,
		p.Stock, p.MinStock, p.MaxStock, p.ReorderPoint, p.Perishable, p.LotControl, p.SerialControl,
		p.ExpiryDate, p.IsActive, p.ApprovalStatus, nullable(p.ApprovedBy), p.ApprovedAt, p.RejectionReason,
		nullable(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	return mapWriteError("insert product", err)
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, numberedCTE+productSelect+` WHERE p.id = $1`, id)
}

// GetForUpdate como GetByID pero bloquea la fila del producto hasta el fin de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, numberedCTE+productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos descriptivos; stock y costo promedio solo cambian vía UpdateStock/UpdateCost.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET
			ean = $2, name = $3, description = $4, category_id = $5, brand = $6,
			standard_cost = $7, price = $8, tax_rate = $9, purchase_unit = $10, sale_unit = $11,
			conversion_factor = $12, min_stock = $13, max_stock = $14, reorder_point = $15,
			perishable = $16, lot_control = $17, serial_control = $18, expiry_date = $19, is_active = $20,
			approval_status = $21, approved_by = $22, approved_at = $23, rejection_reason = $24, updated_at = $25
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.EAN, p.Name, p.Description, nullable(p.CategoryID), p.Brand,
		p.StandardCost, p.Price, p.TaxRate, p.PurchaseUnit, p.SaleUnit,
		p.ConversionFactor, p.MinStock, p.MaxStock, p.ReorderPoint,
		p.Perishable, p.LotControl, p.SerialControl, p.ExpiryDate, p.IsActive,
		p.ApprovalStatus, nullable(p.ApprovedBy), p.ApprovedAt, p.RejectionReason, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el contador agregado. El CHECK stock >= 0 rechaza valores negativos.
func (r *ProductRepo) UpdateStock(ctx context.Context, productID string, stock int64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, productID, stock)
	if err != nil {
		return mapWriteError("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost fija el costo promedio ponderado.
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET cost = $2, updated_at = now() WHERE id = $1`, productID, cost)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	return nil
}

// List filtra y pagina en orden de seq; DisplaySKU se numera sobre el catálogo completo.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
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
		conds = append(conds, fmt.Sprintf(
			"(p.sku ILIKE %[1]s OR p.name ILIKE %[1]s OR p.ean ILIKE %[1]s OR p.brand ILIKE %[1]s)", ph))
	}
	switch {
	case f.CategoryID == "":
	case validID(f.CategoryID):
		conds = append(conds, "p.category_id = "+arg(f.CategoryID))
	default:
		conds = append(conds, "FALSE")
	}
	if f.ApprovalStatus != "" {
		conds = append(conds, "p.approval_status = "+arg(f.ApprovalStatus))
	}
	if f.OnlyActive {
		conds = append(conds, "p.is_active")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := numberedCTE + productSelect + where + ` ORDER BY p.seq`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}
	list, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListBelowReorderPoint productos activos y aprobados con stock <= punto de reorden.
func (r *ProductRepo) ListBelowReorderPoint(ctx context.Context) ([]*entity.Product, error) {
	query := numberedCTE + productSelect + `
		WHERE p.is_active AND p.approval_status = 'APROBADO' AND p.stock <= p.reorder_point
		ORDER BY p.seq`
	return r.queryProducts(ctx, query)
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el producto. Con movimientos asociados devuelve ErrConflict (FK RESTRICT).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
