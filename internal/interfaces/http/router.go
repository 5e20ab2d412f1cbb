package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sga-pro-api/internal/application/analytics"
	"github.com/jhoicas/sga-pro-api/internal/application/auth"
	"github.com/jhoicas/sga-pro-api/internal/application/fulfillment"
	"github.com/jhoicas/sga-pro-api/internal/application/inventory"
	"github.com/jhoicas/sga-pro-api/internal/application/receiving"
	"github.com/jhoicas/sga-pro-api/internal/application/usecase"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	LocationUC  *usecase.LocationUseCase
	AuditUC     *usecase.AuditLogUseCase
	Ledger      *inventory.LedgerUseCase
	LowStock    *inventory.LowStockUseCase
	ShipmentUC  *receiving.ShipmentUseCase
	OrderUC     *fulfillment.OrderUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
//
// Permisos por rol: el catálogo escribe solo admin; los movimientos de
// inventario, recepciones y picking los hacen admin y bodeguero; crear
// pedidos puede hacerlo también vendedor. Las lecturas requieren solo un
// token válido.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	warehouseStaff := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	anySeller := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)

	// Products (lecturas: cualquier rol; escrituras: admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Locations
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", adminOnly, locationHandler.Create)
	locations.Put("/:id", adminOnly, locationHandler.Update)
	locations.Delete("/:id", adminOnly, locationHandler.Delete)

	// Inventory (mutaciones: admin y bodeguero)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.LowStock)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/low-stock", inventoryHandler.GetLowStock)
	invGroup.Get("/stock-level/:product_id", inventoryHandler.GetStockLevel)
	invGroup.Post("/add", warehouseStaff, inventoryHandler.AddStock)
	invGroup.Post("/remove", warehouseStaff, inventoryHandler.RemoveStock)
	invGroup.Post("/reserve", warehouseStaff, inventoryHandler.ReserveStock)
	invGroup.Post("/unreserve", warehouseStaff, inventoryHandler.UnreserveStock)
	invGroup.Post("/adjust", warehouseStaff, inventoryHandler.AdjustStock)
	invGroup.Post("/move", warehouseStaff, inventoryHandler.MoveStock)

	// Shipments (recepción: admin y bodeguero)
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Post("/", warehouseStaff, shipmentHandler.Create)
	shipments.Put("/:id", warehouseStaff, shipmentHandler.Update)
	shipments.Delete("/:id", warehouseStaff, shipmentHandler.Delete)
	shipments.Post("/:id/receive", warehouseStaff, shipmentHandler.Receive)

	// Orders (crear: también vendedor; picking y despacho: admin y bodeguero)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/", anySeller, orderHandler.Create)
	orders.Put("/:id", warehouseStaff, orderHandler.Update)
	orders.Delete("/:id", warehouseStaff, orderHandler.Delete)
	orders.Post("/:id/pick", warehouseStaff, orderHandler.Pick)
	orders.Post("/:id/ship", warehouseStaff, orderHandler.Ship)

	// Dashboard y auditoría
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.AuditUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/audit-logs", adminOnly, dashboardHandler.ListAuditLogs)
}
