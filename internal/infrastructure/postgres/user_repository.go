package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT id, email, password_hash, name, role, phone, status, last_login_at, created_at, updated_at
	FROM users`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Phone, &u.Status,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Phone, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, userSelect+` WHERE id = $1`, id)
}

// GetByEmail sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, userSelect+` WHERE lower(email) = lower($1) LIMIT 1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// TouchLastLogin registra la fecha del último login exitoso.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

// ListByRole lista usuarios de un rol (o todos) ordenados por nombre.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	query := userSelect
	var args []any
	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name, email`, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
