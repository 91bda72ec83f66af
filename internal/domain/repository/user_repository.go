package repository

import (
	"context"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	TouchLastLogin(ctx context.Context, id string) error
	// ListByRole devuelve los usuarios del rol ordenados por nombre; role vacío = todos.
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
}
