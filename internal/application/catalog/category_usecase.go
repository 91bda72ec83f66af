package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
	"github.com/jhoicas/dulceria-api/pkg/search"
)

// CategoryUseCase categorías del catálogo.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create rechaza nombres que solo difieren en mayúsculas o tildes ("Gomitas" y "gomitas").
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := search.Normalize(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre", "el nombre es obligatorio")
	}
	existing, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	key := search.Fold(name)
	for _, c := range existing {
		if search.Fold(c.Name) == key {
			return nil, domain.ErrDuplicate
		}
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, IsActive: c.IsActive}
}
