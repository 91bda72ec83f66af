package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/inventory"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

const movementModel = "MovimientoInventario"

// MovementUseCase es el ledger de inventario: registra, edita y elimina movimientos
// aplicando su efecto sobre Product.Stock dentro de la misma transacción, con la fila
// del producto bloqueada (SELECT FOR UPDATE).
type MovementUseCase struct {
	txRunner      TxRunner
	movRepo       repository.MovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	audit         audit.Publisher
	log           zerolog.Logger
	loc           *time.Location
	now           func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	publisher audit.Publisher,
	log zerolog.Logger,
	loc *time.Location,
) *MovementUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &MovementUseCase{
		txRunner:      txRunner,
		movRepo:       movRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		audit:         publisher,
		log:           log,
		loc:           loc,
		now:           time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	Date              *time.Time
	Type              string
	ProductID         string
	SupplierID        string
	WarehouseID       string
	TargetWarehouseID string
	Quantity          decimal.Decimal
	UnitCost          *decimal.Decimal
	Lot               string
	Serial            string
	ExpiryDate        *time.Time
	DocReference      string
	Notes             string
	Reason            string
}

// CreateMovement valida, bloquea el producto, aplica el efecto una sola vez y persiste el
// movimiento con el delta aplicado. La auditoría se publica después del commit.
func (uc *MovementUseCase) CreateMovement(ctx context.Context, actor audit.Actor, in MovementInput) (*entity.Movement, error) {
	if err := inventory.ValidateMovement(in.Type, in.Quantity, in.ProductID, in.WarehouseID, in.SupplierID); err != nil {
		return nil, err
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.Invalid("costo_unitario", "el costo unitario no puede ser negativo")
	}
	if err := uc.checkWarehouses(ctx, in); err != nil {
		return nil, err
	}
	if in.SupplierID != "" {
		if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	mov := &entity.Movement{
		ID:                uuid.New().String(),
		Date:              date,
		Type:              in.Type,
		ProductID:         in.ProductID,
		SupplierID:        in.SupplierID,
		WarehouseID:       in.WarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		Quantity:          in.Quantity,
		UnitCost:          in.UnitCost,
		Lot:               in.Lot,
		Serial:            in.Serial,
		ExpiryDate:        in.ExpiryDate,
		DocReference:      in.DocReference,
		Notes:             in.Notes,
		Reason:            in.Reason,
		CreatedBy:         actor.UserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var before, after int64
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.Invalid("producto", "el producto no existe")
		}
		if !product.Available() {
			return domain.Invalid("producto", "el producto debe estar activo y aprobado")
		}

		newStock, applied := inventory.ApplyEffect(in.Type, product.Stock, in.Quantity)
		if in.Type == entity.MovementTypeIN && in.UnitCost != nil && applied > 0 {
			newCost := inventory.AverageCost(product.Stock, product.Cost, applied, *in.UnitCost)
			if err := productRepo.UpdateCost(ctx, product.ID, newCost); err != nil {
				return err
			}
		}
		if applied != 0 {
			if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
				return err
			}
		}
		mov.AppliedDelta = applied
		mov.ProductSKU = product.SKU
		mov.ProductName = product.Name
		before, after = product.Stock, newStock
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movimiento_id", mov.ID).
		Str("tipo", mov.Type).
		Str("sku", mov.ProductSKU).
		Int64("stock_anterior", before).
		Int64("stock_nuevo", after).
		Msg("movimiento registrado")

	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditCreate,
		Model:       movementModel,
		ObjectID:    mov.ID,
		Description: fmt.Sprintf("%s de %s unidades de %s", entity.MovementTypeLabel(mov.Type), mov.Quantity.String(), mov.ProductSKU),
		Before:      map[string]any{"stock": before},
		After:       map[string]any{"stock": after, "delta_aplicado": mov.AppliedDelta, "cantidad": mov.Quantity},
	})
	return mov, nil
}

// DeleteMovement revierte exactamente el delta aplicado al crear (con piso en 0) y elimina la fila.
func (uc *MovementUseCase) DeleteMovement(ctx context.Context, actor audit.Actor, id string) error {
	var (
		deleted       *entity.Movement
		before, after int64
	)
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		mov, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStock := inventory.Reverse(product.Stock, mov.AppliedDelta)
		if newStock != product.Stock {
			if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
				return err
			}
		}
		if err := movRepo.Delete(ctx, mov.ID); err != nil {
			return err
		}
		mov.ProductSKU = product.SKU
		deleted = mov
		before, after = product.Stock, newStock
		return nil
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("movimiento_id", deleted.ID).
		Str("tipo", deleted.Type).
		Int64("delta_revertido", deleted.AppliedDelta).
		Int64("stock_nuevo", after).
		Msg("movimiento eliminado")

	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditDelete,
		Model:       movementModel,
		ObjectID:    deleted.ID,
		Description: fmt.Sprintf("Eliminado %s de %s (%s)", entity.MovementTypeLabel(deleted.Type), deleted.ProductSKU, deleted.Quantity.String()),
		Before:      map[string]any{"stock": before, "delta_aplicado": deleted.AppliedDelta},
		After:       map[string]any{"stock": after},
	})
	return nil
}

// UpdateMovement solo modifica campos descriptivos; nunca reaplica el efecto sobre el stock.
// Para corregir cantidad, tipo, producto o bodega se elimina y se registra de nuevo.
func (uc *MovementUseCase) UpdateMovement(ctx context.Context, actor audit.Actor, id string, d entity.MovementDetails) (*entity.Movement, error) {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	if d.SupplierID != nil {
		if *d.SupplierID == "" {
			if mov.Type == entity.MovementTypeIN {
				return nil, domain.Invalid("proveedor", "el proveedor es obligatorio para ingresos")
			}
		} else if err := uc.checkSupplier(ctx, *d.SupplierID); err != nil {
			return nil, err
		}
	}
	if err := uc.movRepo.UpdateDetails(ctx, id, d); err != nil {
		return nil, err
	}
	updated, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditUpdate,
		Model:       movementModel,
		ObjectID:    id,
		Description: "Actualizados datos descriptivos del movimiento",
		Before:      detailsOf(mov),
		After:       detailsOf(updated),
	})
	return updated, nil
}

// GetMovement devuelve un movimiento o ErrNotFound.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*entity.Movement, error) {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

func (uc *MovementUseCase) checkWarehouses(ctx context.Context, in MovementInput) error {
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.Invalid("bodega", "la bodega no existe")
	}
	if !wh.IsActive {
		return domain.Invalid("bodega", "la bodega está inactiva")
	}
	if in.TargetWarehouseID == "" {
		return nil
	}
	if in.Type != entity.MovementTypeTRANSFER {
		return domain.Invalid("bodega_destino", "solo las transferencias tienen bodega de destino")
	}
	if in.TargetWarehouseID == in.WarehouseID {
		return domain.Invalid("bodega_destino", "la bodega de destino debe ser distinta a la de origen")
	}
	target, err := uc.warehouseRepo.GetByID(ctx, in.TargetWarehouseID)
	if err != nil {
		return err
	}
	if target == nil || !target.IsActive {
		return domain.Invalid("bodega_destino", "la bodega de destino no existe o está inactiva")
	}
	return nil
}

func (uc *MovementUseCase) checkSupplier(ctx context.Context, id string) error {
	sup, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sup == nil {
		return domain.Invalid("proveedor", "el proveedor no existe")
	}
	if !sup.Active() {
		return domain.Invalid("proveedor", "el proveedor está bloqueado")
	}
	return nil
}

func detailsOf(m *entity.Movement) map[string]any {
	return map[string]any{
		"proveedor_id":   m.SupplierID,
		"lote":           m.Lot,
		"serie":          m.Serial,
		"doc_referencia": m.DocReference,
		"observaciones":  m.Notes,
		"motivo":         m.Reason,
	}
}
