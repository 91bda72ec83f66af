package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/inventory"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
	"github.com/jhoicas/dulceria-api/pkg/search"
)

// ListMovements listado paginado, más reciente primero.
// fecha_desde y fecha_hasta son días inclusivos; valores que no parsean se ignoran.
func (uc *MovementUseCase) ListMovements(ctx context.Context, in dto.MovementFilterRequest) (*dto.MovementListResponse, error) {
	in.Normalize()
	f := repository.MovementFilter{
		Query:     search.Normalize(in.Query),
		ProductID: in.ProductID,
		Limit:     in.Limit(),
		Offset:    in.Offset(),
	}
	if entity.ValidMovementType(in.Type) {
		f.Type = in.Type
	}
	if from, err := dto.ParseDay(in.DateFrom, uc.loc); err == nil {
		f.From = from
	}
	if to, err := dto.ParseDay(in.DateTo, uc.loc); err == nil && to != nil {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	movs, total, err := uc.movRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(movs)),
		Page:  dto.NewPageResponse(in.PageRequest, total),
	}
	for _, m := range movs {
		out.Items = append(out.Items, ToMovementResponse(m))
	}
	return out, nil
}

// Reconcile recalcula el stock desde el historial: ingresos + devoluciones + ajustes - salidas,
// con piso en cero. Sin apply solo informa; con apply fija Product.Stock a ese valor
// dentro de una transacción con el producto bloqueado.
func (uc *MovementUseCase) Reconcile(ctx context.Context, actor audit.Actor, productID string, apply bool) (*dto.ReconcileResponse, error) {
	if !apply {
		product, err := uc.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		movs, err := uc.movRepo.ListByProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		return reconcileResponse(product, inventory.Reconcile(movs), false), nil
	}

	var out *dto.ReconcileResponse
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		movs, err := movRepo.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		r := inventory.Reconcile(movs)
		if r.Expected != product.Stock {
			if err := productRepo.UpdateStock(ctx, productID, r.Expected); err != nil {
				return err
			}
		}
		out = reconcileResponse(product, r, true)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Difference != 0 {
		uc.log.Warn().
			Str("sku", out.SKU).
			Int64("stock_anterior", out.CurrentStock).
			Int64("stock_nuevo", out.NewStock).
			Msg("stock corregido por conciliación")
		uc.audit.Publish(audit.Event{
			Actor:       actor,
			Action:      entity.AuditUpdate,
			Model:       "Product",
			ObjectID:    productID,
			Description: fmt.Sprintf("Conciliación de stock de %s", out.SKU),
			Before:      map[string]any{"stock": out.CurrentStock},
			After:       map[string]any{"stock": out.NewStock},
		})
	}
	return out, nil
}

func reconcileResponse(p *entity.Product, r inventory.Reconciliation, applied bool) *dto.ReconcileResponse {
	out := &dto.ReconcileResponse{
		ProductID:    p.ID,
		SKU:          p.SKU,
		CurrentStock: p.Stock,
		Detail:       r,
		Difference:   p.Stock - r.Expected,
		Applied:      applied,
		NewStock:     p.Stock,
	}
	if applied {
		out.NewStock = r.Expected
	}
	return out
}

// ToMovementResponse mapea la entidad a la respuesta HTTP.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                m.ID,
		Date:              m.Date,
		Type:              m.Type,
		TypeLabel:         entity.MovementTypeLabel(m.Type),
		ProductID:         m.ProductID,
		ProductSKU:        m.ProductSKU,
		ProductName:       m.ProductName,
		SupplierID:        m.SupplierID,
		SupplierName:      m.SupplierName,
		SupplierRUT:       m.SupplierRUT,
		WarehouseID:       m.WarehouseID,
		WarehouseName:     m.WarehouseName,
		TargetWarehouseID: m.TargetWarehouseID,
		Quantity:          m.Quantity,
		UnitCost:          m.UnitCost,
		AppliedDelta:      m.AppliedDelta,
		Lot:               m.Lot,
		Serial:            m.Serial,
		ExpiryDate:        m.ExpiryDate,
		DocReference:      m.DocReference,
		Notes:             m.Notes,
		Reason:            m.Reason,
		CreatedBy:         m.CreatedBy,
		CreatedByName:     m.CreatedByName,
		CreatedAt:         m.CreatedAt,
	}
}
