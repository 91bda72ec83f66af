package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
	"github.com/jhoicas/dulceria-api/pkg/search"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierSelect = `
	SELECT id, rut, business_name, trade_name, email, phone, address, city, country,
		payment_terms, currency, status, preferred, created_at, updated_at
	FROM suppliers`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(
		&s.ID, &s.RUT, &s.BusinessName, &s.TradeName, &s.Email, &s.Phone, &s.Address, &s.City, &s.Country,
		&s.PaymentTerms, &s.Currency, &s.Status, &s.Preferred, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un proveedor. RUT repetido devuelve ErrDuplicate.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, rut, business_name, trade_name, email, phone, address, city, country,
			payment_terms, currency, status, preferred, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.RUT, s.BusinessName, s.TradeName, s.Email, s.Phone, s.Address, s.City, s.Country,
		s.PaymentTerms, s.Currency, s.Status, s.Preferred, s.CreatedAt, s.UpdatedAt,
	)
	return mapWriteError("insert supplier", err)
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, supplierSelect+` WHERE id = $1`, id)
}

// GetByRUT busca por RUT ya normalizado.
func (r *SupplierRepo) GetByRUT(ctx context.Context, rut string) (*entity.Supplier, error) {
	return r.getOne(ctx, supplierSelect+` WHERE rut = $1`, rut)
}

func (r *SupplierRepo) getOne(ctx context.Context, query, arg string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// Update actualiza un proveedor existente.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET rut = $2, business_name = $3, trade_name = $4, email = $5, phone = $6,
			address = $7, city = $8, country = $9, payment_terms = $10, currency = $11, status = $12,
			preferred = $13, updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.RUT, s.BusinessName, s.TradeName, s.Email, s.Phone,
		s.Address, s.City, s.Country, s.PaymentTerms, s.Currency, s.Status,
		s.Preferred, s.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update supplier", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ordena por razón social; query busca en RUT, razón social y nombre de fantasía.
func (r *SupplierRepo) List(ctx context.Context, query, status string, limit, offset int) ([]*entity.Supplier, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if query != "" {
		ph := arg(search.LikePattern(query))
		conds = append(conds, fmt.Sprintf("(rut ILIKE %[1]s OR business_name ILIKE %[1]s OR trade_name ILIKE %[1]s)", ph))
	}
	if status != "" {
		conds = append(conds, "status = "+arg(status))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}
	sql := supplierSelect + where + ` ORDER BY business_name`
	if limit > 0 {
		sql += " LIMIT " + arg(limit) + " OFFSET " + arg(offset)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Supplier, 0)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Delete elimina el proveedor; los movimientos quedan con supplier_id NULL.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete supplier", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
