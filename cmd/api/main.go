package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/access"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/auth"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/supply"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/usecase"
	"github.com/Aglamorousfortuneteller/crm-api/internal/infrastructure/excel"
	infrapdf "github.com/Aglamorousfortuneteller/crm-api/internal/infrastructure/pdf"
	"github.com/Aglamorousfortuneteller/crm-api/internal/infrastructure/postgres"
	httpRouter "github.com/Aglamorousfortuneteller/crm-api/internal/interfaces/http"
	"github.com/Aglamorousfortuneteller/crm-api/pkg/config"
	"github.com/Aglamorousfortuneteller/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Migraciones con goose antes de abrir el pool de la app.
	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	storageRepo := postgres.NewStorageRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	guard := access.NewGuard()
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, guard, txRunner, authUC)
	storageUC := usecase.NewStorageUseCase(storageRepo, guard)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, guard)
	productUC := usecase.NewProductUseCase(productRepo, storageRepo, guard)
	createSupplyUC := supply.NewCreateSupplyUseCase(txRunner, guard, supplyRepo)
	reportUC := supply.NewReportUseCase(
		guard, supplyRepo, companyRepo, supplierRepo,
		infrapdf.NewMarotoReceiptGenerator(),
		excel.NewSupplyExportGenerator(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		JWTSecret:      cfg.JWT.Secret,
		MetricsEnabled: cfg.Metrics.Enabled,
		Auth:           httpRouter.NewAuthHandler(authUC),
		Company:        httpRouter.NewCompanyHandler(companyUC),
		Storage:        httpRouter.NewStorageHandler(storageUC),
		Supplier:       httpRouter.NewSupplierHandler(supplierUC),
		Product:        httpRouter.NewProductHandler(productUC),
		Supply:         httpRouter.NewSupplyHandler(createSupplyUC, reportUC),
	})

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

	log.Info().Msg("aplicación detenida")
}

// runMigrations aplica las migraciones pendientes del directorio migrations/.
func runMigrations(dsn string) error {
	db, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return goose.Up(db, "migrations")
}
