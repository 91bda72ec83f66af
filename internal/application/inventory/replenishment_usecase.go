package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos y aprobados
// con stock en o bajo su punto de reorden.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList sugiere completar hasta stock_maximo, o hasta el doble del punto
// de reorden si no hay máximo definido. Ordena por déficit relativo (sin stock primero).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReorderSuggestionDTO, error) {
	products, err := uc.productRepo.ListBelowReorderPoint(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(products))
	for _, p := range products {
		if !p.Available() || !p.BelowReorderPoint() {
			continue
		}
		target := p.MaxStock
		if target <= p.ReorderPoint {
			target = 2 * p.ReorderPoint
		}
		qty := target - p.Stock
		if qty < 1 {
			qty = 1
		}
		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			CurrentStock:       p.Stock,
			ReorderPoint:       p.ReorderPoint,
			MaxStock:           p.MaxStock,
			SuggestedOrderQty:  qty,
			UnitCost:           unitCost(p.Cost, p.StandardCost),
			EstimatedOrderCost: unitCost(p.Cost, p.StandardCost).Mul(decimal.NewFromInt(qty)),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ra, rb := coverage(a), coverage(b)
		if !ra.Equal(rb) {
			return ra.LessThan(rb)
		}
		return a.ReorderPoint-a.CurrentStock > b.ReorderPoint-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// coverage stock actual como fracción del punto de reorden (0 = agotado).
func coverage(s dto.ReorderSuggestionDTO) decimal.Decimal {
	if s.ReorderPoint <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(s.CurrentStock).Div(decimal.NewFromInt(s.ReorderPoint))
}

// unitCost prefiere el costo promedio; sin ingresos valorizados cae al costo estándar.
func unitCost(avg, standard decimal.Decimal) decimal.Decimal {
	if avg.GreaterThan(decimal.Zero) {
		return avg
	}
	return standard
}
