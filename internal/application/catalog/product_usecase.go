package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/inventory"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
	"github.com/jhoicas/dulceria-api/pkg/search"
)

const productModel = "Producto"

// ProductUseCase casos de uso del catálogo. Cost y Stock se manejan vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	audit        audit.Publisher
	loc          *time.Location
	now          func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, publisher audit.Publisher, loc *time.Location) *ProductUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, audit: publisher, loc: loc, now: time.Now}
}

// Create crea un producto con el siguiente SKU de la secuencia. Stock y costo promedio inician en 0.
// Lo creado por admin o gerente queda aprobado; el resto espera aprobación.
func (uc *ProductUseCase) Create(ctx context.Context, actor audit.Actor, role string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.Invalid("nombre", "el nombre es obligatorio")
	}
	if err := validateTax(in.TaxRate); err != nil {
		return nil, err
	}
	if err := validateLevels(in.MinStock, in.MaxStock, in.ReorderPoint); err != nil {
		return nil, err
	}
	if in.StandardCost.IsNegative() || in.Price.IsNegative() {
		return nil, domain.Invalid("precio", "precio y costo no pueden ser negativos")
	}
	if in.CategoryID != "" {
		if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}
	expiry, err := dto.ParseDay(in.ExpiryDate, uc.loc)
	if err != nil {
		return nil, domain.Invalid("fecha_vencimiento", "use el formato AAAA-MM-DD")
	}

	seq, err := uc.repo.NextSeq(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Seq:              seq,
		SKU:              inventory.FormatSKU(seq),
		EAN:              strings.TrimSpace(in.EAN),
		Name:             in.Name,
		Description:      in.Description,
		CategoryID:       in.CategoryID,
		Brand:            in.Brand,
		StandardCost:     in.StandardCost,
		Cost:             decimal.Zero,
		Price:            in.Price,
		TaxRate:          in.TaxRate,
		PurchaseUnit:     in.PurchaseUnit,
		SaleUnit:         in.SaleUnit,
		ConversionFactor: in.ConversionFactor,
		MinStock:         in.MinStock,
		MaxStock:         in.MaxStock,
		ReorderPoint:     in.ReorderPoint,
		Perishable:       in.Perishable,
		LotControl:       in.LotControl,
		SerialControl:    in.SerialControl,
		ExpiryDate:       expiry,
		IsActive:         true,
		CreatedBy:        actor.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if role == entity.RoleAdmin || role == entity.RoleManager {
		product.ApprovalStatus = entity.ApprovalApproved
		product.ApprovedBy = actor.UserID
		product.ApprovedAt = &now
	}
	product.ApplyDefaults()
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	out := ToProductResponse(product)
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditCreate,
		Model:       productModel,
		ObjectID:    product.ID,
		Description: fmt.Sprintf("Producto %s creado: %s", product.SKU, product.Name),
		After:       out,
	})
	return out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Cost ni Stock (se manejan vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, actor audit.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	before := ToProductResponse(product)

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("nombre", "el nombre es obligatorio")
		}
		product.Name = name
	}
	if in.EAN != nil {
		product.EAN = strings.TrimSpace(*in.EAN)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
				return nil, err
			}
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.StandardCost != nil {
		if in.StandardCost.IsNegative() {
			return nil, domain.Invalid("costo_estandar", "no puede ser negativo")
		}
		product.StandardCost = *in.StandardCost
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.Invalid("precio", "no puede ser negativo")
		}
		product.Price = *in.Price
	}
	if in.TaxRate != nil {
		if err := validateTax(*in.TaxRate); err != nil {
			return nil, err
		}
		product.TaxRate = *in.TaxRate
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = *in.MaxStock
	}
	if in.ReorderPoint != nil {
		product.ReorderPoint = *in.ReorderPoint
	}
	product.ApplyDefaults()
	if err := validateLevels(product.MinStock, product.MaxStock, product.ReorderPoint); err != nil {
		return nil, err
	}
	if in.Perishable != nil {
		product.Perishable = *in.Perishable
	}
	if in.LotControl != nil {
		product.LotControl = *in.LotControl
	}
	if in.SerialControl != nil {
		product.SerialControl = *in.SerialControl
	}
	if in.ExpiryDate != nil {
		expiry, err := dto.ParseDay(*in.ExpiryDate, uc.loc)
		if err != nil {
			return nil, domain.Invalid("fecha_vencimiento", "use el formato AAAA-MM-DD")
		}
		product.ExpiryDate = expiry
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	out := ToProductResponse(product)
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditUpdate,
		Model:       productModel,
		ObjectID:    product.ID,
		Description: fmt.Sprintf("Producto %s actualizado", product.SKU),
		Before:      before,
		After:       out,
	})
	return out, nil
}

// Approve deja el producto disponible para movimientos.
func (uc *ProductUseCase) Approve(ctx context.Context, actor audit.Actor, id string) (*dto.ProductResponse, error) {
	return uc.review(ctx, actor, id, entity.ApprovalApproved, "")
}

// Reject rechaza el producto con un motivo obligatorio.
func (uc *ProductUseCase) Reject(ctx context.Context, actor audit.Actor, id, reason string) (*dto.ProductResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.Invalid("motivo", "indique el motivo del rechazo")
	}
	return uc.review(ctx, actor, id, entity.ApprovalRejected, reason)
}

func (uc *ProductUseCase) review(ctx context.Context, actor audit.Actor, id, status, reason string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.ApprovalStatus == status {
		return nil, domain.ErrConflict
	}
	now := uc.now()
	product.ApprovalStatus = status
	product.ApprovedBy = actor.UserID
	product.ApprovedAt = &now
	product.RejectionReason = reason
	product.UpdatedAt = now
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	action, verb := entity.AuditApprove, "aprobado"
	if status == entity.ApprovalRejected {
		action, verb = entity.AuditReject, "rechazado"
	}
	out := ToProductResponse(product)
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      action,
		Model:       productModel,
		ObjectID:    product.ID,
		Description: fmt.Sprintf("Producto %s %s", product.SKU, verb),
		After:       map[string]any{"estado_aprobacion": status, "motivo_rechazo": reason},
	})
	return out, nil
}

// List lista el catálogo paginado con el SKU correlativo calculado sobre todo el catálogo.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	in.Normalize()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Query:          search.Normalize(in.Query),
		CategoryID:     in.CategoryID,
		ApprovalStatus: strings.ToUpper(in.ApprovalStatus),
		Limit:          in.Limit(),
		Offset:         in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.NewPageResponse(in.PageRequest, total),
	}, nil
}

// Delete elimina un producto. Si tiene movimientos el repositorio devuelve ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, actor audit.Actor, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditDelete,
		Model:       productModel,
		ObjectID:    id,
		Description: fmt.Sprintf("Producto %s eliminado: %s", product.SKU, product.Name),
		Before:      ToProductResponse(product),
	})
	return nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, id string) error {
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil || !c.IsActive {
		return domain.Invalid("categoria_id", "la categoría no existe o está inactiva")
	}
	return nil
}

// validateTax IVA chileno; 0 toma el 19% por defecto.
func validateTax(rate decimal.Decimal) error {
	if rate.IsZero() || rate.Equal(decimal.NewFromInt(19)) {
		return nil
	}
	return domain.Invalid("iva", "el IVA debe ser 19")
}

func validateLevels(min, max, reorder int64) error {
	if min < 0 || max < 0 || reorder < 0 {
		return domain.Invalid("stock_minimo", "los niveles de stock no pueden ser negativos")
	}
	if max > 0 && min > max {
		return domain.Invalid("stock_maximo", "el stock máximo debe ser mayor o igual al mínimo")
	}
	return nil
}

// ToProductResponse mapea la entidad a la respuesta HTTP.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		SKU:              p.SKU,
		DisplaySKU:       p.DisplaySKU,
		EAN:              p.EAN,
		Name:             p.Name,
		Description:      p.Description,
		CategoryID:       p.CategoryID,
		CategoryName:     p.CategoryName,
		Brand:            p.Brand,
		StandardCost:     p.StandardCost,
		Cost:             p.Cost,
		Price:            p.Price,
		TaxRate:          p.TaxRate,
		PurchaseUnit:     p.PurchaseUnit,
		SaleUnit:         p.SaleUnit,
		ConversionFactor: p.ConversionFactor,
		Stock:            p.Stock,
		MinStock:         p.MinStock,
		MaxStock:         p.MaxStock,
		ReorderPoint:     p.ReorderPoint,
		Perishable:       p.Perishable,
		LotControl:       p.LotControl,
		SerialControl:    p.SerialControl,
		ExpiryDate:       p.ExpiryDate,
		IsActive:         p.IsActive,
		ApprovalStatus:   p.ApprovalStatus,
		ApprovedBy:       p.ApprovedBy,
		ApprovedAt:       p.ApprovedAt,
		RejectionReason:  p.RejectionReason,
		CreatedBy:        p.CreatedBy,
		CreatedByName:    p.CreatedByName,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
