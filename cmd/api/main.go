package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jmcastano/inventario-retail/internal/application/activity"
	"github.com/jmcastano/inventario-retail/internal/application/alerts"
	"github.com/jmcastano/inventario-retail/internal/application/auth"
	"github.com/jmcastano/inventario-retail/internal/application/ledger"
	"github.com/jmcastano/inventario-retail/internal/application/reports"
	"github.com/jmcastano/inventario-retail/internal/application/usecase"
	"github.com/jmcastano/inventario-retail/internal/infrastructure/metrics"
	infrapdf "github.com/jmcastano/inventario-retail/internal/infrastructure/pdf"
	"github.com/jmcastano/inventario-retail/internal/infrastructure/postgres"
	httpRouter "github.com/jmcastano/inventario-retail/internal/interfaces/http"
	"github.com/jmcastano/inventario-retail/pkg/config"
	"github.com/jmcastano/inventario-retail/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	priceRepo := postgres.NewProductPriceRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	priceUC := usecase.NewPriceUseCase(priceRepo, productRepo, time.Now)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	ledgerUC := ledger.NewLedgerUseCase(txRunner, productRepo, supplierRepo, time.Now)
	ledgerQueries := ledger.NewQueries(saleRepo, purchaseRepo)
	reportUC := reports.NewReportUseCase(reportRepo, time.Now)
	alertUC := alerts.NewAlertUseCase(reportRepo, time.Now)
	activityUC := activity.NewFeedUseCase(reportRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewStockReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Retail API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		PriceUC:       priceUC,
		SupplierUC:    supplierUC,
		LedgerUC:      ledgerUC,
		LedgerQueries: ledgerQueries,
		ReportUC:      reportUC,
		AlertUC:       alertUC,
		ActivityUC:    activityUC,
		AuthUC:        authUC,
		PDFGen:        pdfGenerator,
		JWTSecret:     cfg.JWT.Secret,
	})

	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metrics.NewServer(cfg.Metrics.Addr)
		go func() {
			if err := metricsSrv.Start(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("métricas expuestas")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor de métricas")
		}
	}

	log.Info().Msg("aplicación detenida")
}
