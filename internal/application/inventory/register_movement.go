package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

// CreateFromRequest adapta el body HTTP al caso de uso CreateMovement.
func (uc *MovementUseCase) CreateFromRequest(ctx context.Context, actor audit.Actor, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	date, err := dto.ParseDateTime(in.Date, uc.loc)
	if err != nil {
		return nil, domain.Invalid("fecha", "fecha inválida")
	}
	expiry, err := dto.ParseDay(in.ExpiryDate, uc.loc)
	if err != nil {
		return nil, domain.Invalid("fecha_vencimiento", "use el formato AAAA-MM-DD")
	}
	mov, err := uc.CreateMovement(ctx, actor, MovementInput{
		Date:              date,
		Type:              strings.ToLower(strings.TrimSpace(in.Type)),
		ProductID:         in.ProductID,
		SupplierID:        in.SupplierID,
		WarehouseID:       in.WarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		Quantity:          in.Quantity,
		UnitCost:          in.UnitCost,
		Lot:               strings.TrimSpace(in.Lot),
		Serial:            strings.TrimSpace(in.Serial),
		ExpiryDate:        expiry,
		DocReference:      strings.TrimSpace(in.DocReference),
		Notes:             in.Notes,
		Reason:            in.Reason,
	})
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(mov)
	return &out, nil
}

// UpdateFromRequest adapta el PATCH al caso de uso UpdateMovement.
func (uc *MovementUseCase) UpdateFromRequest(ctx context.Context, actor audit.Actor, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	d := entity.MovementDetails{
		SupplierID:   in.SupplierID,
		Lot:          in.Lot,
		Serial:       in.Serial,
		DocReference: in.DocReference,
		Notes:        in.Notes,
		Reason:       in.Reason,
	}
	if in.ExpiryDate != nil {
		// "" borra la fecha de vencimiento
		expiry, err := dto.ParseDay(*in.ExpiryDate, uc.loc)
		if err != nil {
			return nil, domain.Invalid("fecha_vencimiento", "use el formato AAAA-MM-DD")
		}
		d.ExpiryDate = expiry
		d.ClearExpiry = expiry == nil
	}
	mov, err := uc.UpdateMovement(ctx, actor, id, d)
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(mov)
	return &out, nil
}
