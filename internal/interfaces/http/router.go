package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/dulceria-api/internal/application/analytics"
	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/auth"
	"github.com/jhoicas/dulceria-api/internal/application/catalog"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/application/inventory"
	"github.com/jhoicas/dulceria-api/internal/application/report"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	MovementUC    *inventory.MovementUseCase
	Replenishment *inventory.ReplenishmentUseCase
	DashboardUC   *analytics.DashboardUseCase
	ProductUC     *catalog.ProductUseCase
	SupplierUC    *catalog.SupplierUseCase
	WarehouseUC   *catalog.WarehouseUseCase
	CategoryUC    *catalog.CategoryUseCase
	ExportUC      *report.ExportUseCase
	KardexUC      *report.KardexUseCase
	AuditLogUC    *audit.LogUseCase
	AuditStats    func() audit.Stats
	JWTSecret     string
}

var (
	rolesAll      = []string{entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee, entity.RoleViewer}
	rolesStaff    = []string{entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee}
	rolesManagers = []string{entity.RoleAdmin, entity.RoleManager}
	rolesAdmin    = []string{entity.RoleAdmin}
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público). El limiter corta ráfagas antes del bloqueo por intentos fallidos.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas solicitudes"})
		},
	}), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de un usuario activo)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveUser(deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)

	// Inventario
	inv := protected.Group("/inventory")
	invHandler := NewInventoryHandler(deps.MovementUC, deps.Replenishment, deps.ExportUC)
	dashHandler := NewDashboardHandler(deps.DashboardUC)
	inv.Get("/dashboard", RequireRole(rolesManagers...), dashHandler.GetSummary)
	inv.Get("/movements", RequireRole(rolesAll...), invHandler.ListMovements)
	inv.Post("/movements", RequireRole(rolesStaff...), invHandler.CreateMovement)
	inv.Get("/movements/:id", RequireRole(rolesAll...), invHandler.GetMovement)
	inv.Patch("/movements/:id", RequireRole(rolesManagers...), invHandler.UpdateMovement)
	inv.Delete("/movements/:id", RequireRole(rolesManagers...), invHandler.DeleteMovement)
	inv.Get("/reconcile/:product_id", RequireRole(rolesAdmin...), invHandler.Reconcile)
	inv.Post("/reconcile/:product_id", RequireRole(rolesAdmin...), invHandler.Reconcile)
	inv.Get("/reorder", RequireRole(rolesManagers...), invHandler.GetReorderList)
	inv.Get("/export", RequireRole(rolesStaff...), invHandler.Export)

	// Productos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.KardexUC)
	products.Get("/", RequireRole(rolesAll...), productHandler.List)
	products.Post("/", RequireRole(rolesStaff...), productHandler.Create)
	products.Get("/:id", RequireRole(rolesAll...), productHandler.GetByID)
	products.Put("/:id", RequireRole(rolesManagers...), productHandler.Update)
	products.Delete("/:id", RequireRole(rolesAdmin...), productHandler.Delete)
	products.Post("/:id/approve", RequireRole(rolesManagers...), productHandler.Approve)
	products.Post("/:id/reject", RequireRole(rolesManagers...), productHandler.Reject)
	products.Get("/:id/kardex", RequireRole(rolesStaff...), productHandler.Kardex)

	// Proveedores
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", RequireRole(rolesAll...), supplierHandler.List)
	suppliers.Post("/", RequireRole(rolesManagers...), supplierHandler.Create)
	suppliers.Get("/:id", RequireRole(rolesAll...), supplierHandler.GetByID)
	suppliers.Put("/:id", RequireRole(rolesManagers...), supplierHandler.Update)
	suppliers.Post("/:id/block", RequireRole(rolesManagers...), supplierHandler.Block)
	suppliers.Post("/:id/unblock", RequireRole(rolesManagers...), supplierHandler.Unblock)
	suppliers.Delete("/:id", RequireRole(rolesAdmin...), supplierHandler.Delete)

	// Bodegas
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", RequireRole(rolesAll...), warehouseHandler.List)
	warehouses.Post("/", RequireRole(rolesAdmin...), warehouseHandler.Create)
	warehouses.Get("/:id", RequireRole(rolesAll...), warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(rolesAdmin...), warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(rolesAdmin...), warehouseHandler.Delete)

	// Categorías
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", RequireRole(rolesAll...), categoryHandler.List)
	categories.Post("/", RequireRole(rolesManagers...), categoryHandler.Create)

	// Auditoría
	auditHandler := NewAuditHandler(deps.AuditLogUC, deps.AuditStats)
	protected.Get("/audit", RequireRole(rolesAdmin...), auditHandler.List)
	protected.Get("/audit/stats", RequireRole(rolesAdmin...), auditHandler.Stats)
}
