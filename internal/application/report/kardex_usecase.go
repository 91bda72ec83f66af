package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/inventory"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

// KardexUseCase genera el kardex en PDF de un producto.
type KardexUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	generator   KardexPDFGenerator
	loc         *time.Location
	now         func() time.Time
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	generator KardexPDFGenerator,
	loc *time.Location,
) *KardexUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &KardexUseCase{productRepo: productRepo, movRepo: movRepo, generator: generator, loc: loc, now: time.Now}
}

// Build arma el kardex: saldo corrido desde cero aplicando cada movimiento en orden cronológico.
func (uc *KardexUseCase) Build(ctx context.Context, productID string) (*Kardex, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("kardex: obtener producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("kardex: movimientos: %w", err)
	}

	k := &Kardex{
		Product:        product,
		Lines:          make([]KardexLine, 0, len(movs)),
		Reconciliation: inventory.Reconcile(movs),
		GeneratedAt:    uc.now().In(uc.loc),
		Location:       uc.loc,
	}
	var balance int64
	for _, m := range movs {
		var delta int64
		balance, delta = inventory.ApplyEffect(m.Type, balance, m.Quantity)
		k.Lines = append(k.Lines, KardexLine{Movement: m, Delta: delta, Balance: balance})
	}
	return k, nil
}

// PDF devuelve los bytes del PDF y el nombre kardex_<SKU>.pdf.
func (uc *KardexUseCase) PDF(ctx context.Context, productID string) ([]byte, string, error) {
	k, err := uc.Build(ctx, productID)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.generator.GenerateKardexPDF(ctx, k)
	if err != nil {
		return nil, "", err
	}
	return data, "kardex_" + k.Product.SKU + ".pdf", nil
}
