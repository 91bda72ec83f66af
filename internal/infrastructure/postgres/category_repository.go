package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías de productos.
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO categories (id, name, description, is_active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.IsActive, c.CreatedAt)
	return mapWriteError("insert category", err)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, `WHERE lower(name) = lower($1)`, name)
}

func (r *CategoryRepo) getOne(ctx context.Context, where, arg string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, is_active, created_at FROM categories `+where, arg,
	).Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, is_active, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
