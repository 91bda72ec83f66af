package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

// maxSheetName largo máximo de nombre de hoja en Excel.
const maxSheetName = 31

// ExportUseCase arma la planilla de inventario.
type ExportUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	movRepo     repository.MovementRepository
	renderer    WorkbookRenderer
	audit       audit.Publisher
	loc         *time.Location
	now         func() time.Time
}

// NewExportUseCase construye el caso de uso. loc se usa para fechas y nombre de archivo.
func NewExportUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	movRepo repository.MovementRepository,
	renderer WorkbookRenderer,
	publisher audit.Publisher,
	loc *time.Location,
) *ExportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ExportUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		movRepo:     movRepo,
		renderer:    renderer,
		audit:       publisher,
		loc:         loc,
		now:         time.Now,
	}
}

// Workbook devuelve los bytes del .xlsx y el nombre de archivo reporte_inventario_AAAAMMDD_HHMMSS.xlsx.
func (uc *ExportUseCase) Workbook(ctx context.Context, actor audit.Actor) ([]byte, string, error) {
	products, _, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, "", fmt.Errorf("export: productos: %w", err)
	}

	wb := &Workbook{Products: products, Location: uc.loc}
	for _, role := range entity.Roles {
		users, err := uc.userRepo.ListByRole(ctx, role)
		if err != nil {
			return nil, "", fmt.Errorf("export: usuarios %s: %w", role, err)
		}
		if len(users) == 0 {
			continue
		}
		wb.UserRoles = append(wb.UserRoles, RoleSheet{
			Role:      role,
			SheetName: SheetName("Usuarios " + entity.RoleLabel(role)),
			Users:     users,
		})
	}

	wb.Movements, _, err = uc.movRepo.List(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, "", fmt.Errorf("export: movimientos: %w", err)
	}

	data, err := uc.renderer.RenderWorkbook(ctx, wb)
	if err != nil {
		return nil, "", err
	}

	now := uc.now().In(uc.loc)
	filename := "reporte_inventario_" + now.Format("20060102_150405") + ".xlsx"
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditExport,
		Model:       "Inventario",
		Description: fmt.Sprintf("Exportación %s: %d productos, %d movimientos", filename, len(products), len(wb.Movements)),
	})
	return data, filename, nil
}

// SheetName recorta a 31 caracteres terminando en "..." cuando el nombre no cabe.
func SheetName(name string) string {
	r := []rune(name)
	if len(r) <= maxSheetName {
		return name
	}
	return string(r[:maxSheetName-3]) + "..."
}
