package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/inventario-retail/internal/application/activity"
	"github.com/jmcastano/inventario-retail/internal/application/alerts"
	"github.com/jmcastano/inventario-retail/internal/application/auth"
	"github.com/jmcastano/inventario-retail/internal/application/ledger"
	"github.com/jmcastano/inventario-retail/internal/application/reports"
	"github.com/jmcastano/inventario-retail/internal/application/usecase"
	"github.com/jmcastano/inventario-retail/internal/domain/entity"
	"github.com/jmcastano/inventario-retail/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	PriceUC       *usecase.PriceUseCase
	SupplierUC    *usecase.SupplierUseCase
	LedgerUC      *ledger.LedgerUseCase
	LedgerQueries *ledger.Queries
	ReportUC      *reports.ReportUseCase
	AlertUC       *alerts.AlertUseCase
	ActivityUC    *activity.FeedUseCase
	AuthUC        *auth.AuthUseCase
	PDFGen        *pdf.StockReportGenerator
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products + serie de precios (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.PriceUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Post("/:id/prices", productHandler.AddPrice)
	products.Get("/:id/prices", productHandler.ListPrices)
	products.Get("/:id/prices/active", productHandler.ActivePrice)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// Sales (protegido, ledger)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.LedgerUC, deps.LedgerQueries)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Delete("/:id", saleHandler.Delete)

	// Purchases (protegido, ledger)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.LedgerUC, deps.LedgerQueries)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDFGen)
	reportsGroup.Get("/monthly-sales", reportHandler.MonthlySales)
	reportsGroup.Get("/monthly-sales/export", reportHandler.MonthlySalesExport)
	reportsGroup.Get("/purchases-vs-sales", reportHandler.PurchasesVsSales)
	reportsGroup.Get("/purchases-vs-sales/export", reportHandler.PurchasesVsSalesExport)
	reportsGroup.Get("/top-products", reportHandler.TopProducts)
	reportsGroup.Get("/stock-total", reportHandler.TotalStock)
	reportsGroup.Get("/stock-value", reportHandler.StockValue)
	reportsGroup.Get("/stock-value/export", reportHandler.StockValueExport)

	// Alerts (protegido)
	alertHandler := NewAlertHandler(deps.AlertUC)
	protected.Get("/alerts", alertHandler.List)

	// Activity feed (protegido)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", activityHandler.Recent)
}
