package catalog

import (
	"context"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
	"github.com/jhoicas/dulceria-api/pkg/rut"
	"github.com/jhoicas/dulceria-api/pkg/search"
)

const supplierModel = "Proveedor"

// SupplierUseCase administra proveedores identificados por RUT.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	audit audit.Publisher
	now   func() time.Time
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, publisher audit.Publisher) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, audit: publisher, now: time.Now}
}

// Create registra un proveedor. El RUT se valida con su dígito verificador y se guarda normalizado.
func (uc *SupplierUseCase) Create(ctx context.Context, actor audit.Actor, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	normalized, err := rut.Normalize(in.RUT)
	if err != nil {
		return nil, domain.Invalid("rut", err.Error())
	}
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	if in.BusinessName == "" {
		return nil, domain.Invalid("razon_social", "la razón social es obligatoria")
	}
	if err := validateSupplierFields(in.Email, in.PaymentTerms, in.Currency); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByRUT(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.now()
	s := &entity.Supplier{
		ID:           uuid.New().String(),
		RUT:          normalized,
		BusinessName: in.BusinessName,
		TradeName:    strings.TrimSpace(in.TradeName),
		Email:        strings.TrimSpace(in.Email),
		Phone:        in.Phone,
		Address:      in.Address,
		City:         in.City,
		Country:      in.Country,
		PaymentTerms: in.PaymentTerms,
		Currency:     strings.ToUpper(in.Currency),
		Preferred:    in.Preferred,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.ApplyDefaults()
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := ToSupplierResponse(s)
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditCreate,
		Model:       supplierModel,
		ObjectID:    s.ID,
		Description: fmt.Sprintf("Proveedor %s creado: %s", s.RUT, s.BusinessName),
		After:       out,
	})
	return out, nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return ToSupplierResponse(s), nil
}

// Update actualiza los datos comerciales; el RUT no cambia.
func (uc *SupplierUseCase) Update(ctx context.Context, actor audit.Actor, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	before := ToSupplierResponse(s)

	if in.BusinessName != nil {
		name := strings.TrimSpace(*in.BusinessName)
		if name == "" {
			return nil, domain.Invalid("razon_social", "la razón social es obligatoria")
		}
		s.BusinessName = name
	}
	if in.TradeName != nil {
		s.TradeName = strings.TrimSpace(*in.TradeName)
	}
	if in.Email != nil {
		s.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.City != nil {
		s.City = *in.City
	}
	if in.Country != nil {
		s.Country = *in.Country
	}
	if in.PaymentTerms != nil {
		s.PaymentTerms = *in.PaymentTerms
	}
	if in.Currency != nil {
		s.Currency = strings.ToUpper(*in.Currency)
	}
	if in.Preferred != nil {
		s.Preferred = *in.Preferred
	}
	s.ApplyDefaults()
	if err := validateSupplierFields(s.Email, s.PaymentTerms, s.Currency); err != nil {
		return nil, err
	}
	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := ToSupplierResponse(s)
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditUpdate,
		Model:       supplierModel,
		ObjectID:    s.ID,
		Description: fmt.Sprintf("Proveedor %s actualizado", s.RUT),
		Before:      before,
		After:       out,
	})
	return out, nil
}

// SetBlocked bloquea o desbloquea un proveedor. Un proveedor bloqueado no acepta ingresos.
func (uc *SupplierUseCase) SetBlocked(ctx context.Context, actor audit.Actor, id string, blocked bool) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	status := entity.SupplierActive
	if blocked {
		status = entity.SupplierBlocked
	}
	if s.Status == status {
		return ToSupplierResponse(s), nil
	}
	prev := s.Status
	s.Status = status
	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditUpdate,
		Model:       supplierModel,
		ObjectID:    s.ID,
		Description: fmt.Sprintf("Proveedor %s: %s -> %s", s.RUT, prev, status),
		Before:      map[string]string{"estado": prev},
		After:       map[string]string{"estado": status},
	})
	return ToSupplierResponse(s), nil
}

// List busca por RUT, razón social o nombre de fantasía.
func (uc *SupplierUseCase) List(ctx context.Context, in dto.SupplierFilterRequest) (*dto.SupplierListResponse, error) {
	in.Normalize()
	status := strings.ToUpper(in.Status)
	if status != entity.SupplierActive && status != entity.SupplierBlocked {
		status = ""
	}
	list, total, err := uc.repo.List(ctx, search.Normalize(in.Query), status, in.Limit(), in.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.NewPageResponse(in.PageRequest, total)}, nil
}

// Delete elimina el proveedor; los movimientos conservan el registro sin proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, actor audit.Actor, id string) error {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditDelete,
		Model:       supplierModel,
		ObjectID:    id,
		Description: fmt.Sprintf("Proveedor %s eliminado: %s", s.RUT, s.BusinessName),
		Before:      ToSupplierResponse(s),
	})
	return nil
}

func validateSupplierFields(email string, terms int, currency string) error {
	if email = strings.TrimSpace(email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.Invalid("email", "email inválido")
		}
	}
	if terms < 0 {
		return domain.Invalid("plazo_pago", "el plazo de pago no puede ser negativo")
	}
	if currency != "" && !slices.Contains(entity.Currencies, strings.ToUpper(currency)) {
		return domain.Invalid("moneda", "moneda no soportada")
	}
	return nil
}

// ToSupplierResponse mapea la entidad a la respuesta HTTP.
func ToSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:           s.ID,
		RUT:          s.RUT,
		BusinessName: s.BusinessName,
		TradeName:    s.TradeName,
		Email:        s.Email,
		Phone:        s.Phone,
		Address:      s.Address,
		City:         s.City,
		Country:      s.Country,
		PaymentTerms: s.PaymentTerms,
		Currency:     s.Currency,
		Status:       s.Status,
		Preferred:    s.Preferred,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
