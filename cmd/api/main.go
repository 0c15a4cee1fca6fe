package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/gestor-notas/internal/application/auth"
	"github.com/jhoicas/gestor-notas/internal/application/backup"
	"github.com/jhoicas/gestor-notas/internal/application/billing"
	"github.com/jhoicas/gestor-notas/internal/application/records"
	"github.com/jhoicas/gestor-notas/internal/application/settings"
	"github.com/jhoicas/gestor-notas/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/gestor-notas/internal/infrastructure/pdf"
	"github.com/jhoicas/gestor-notas/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/gestor-notas/internal/interfaces/http"
	"github.com/jhoicas/gestor-notas/pkg/config"
	"github.com/jhoicas/gestor-notas/pkg/logger"
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
		Str("driver", cfg.Store.Driver).
		Str("data_dir", cfg.Store.DataDir).
		Msg("iniciando aplicación")

	stores, err := storage.Open(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenes")
	}
	defer stores.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New(cfg.App.Name, reg)

	store, err := records.Open(stores.Customers, stores.Invoices, records.Options{
		Logger:  log,
		Metrics: collector,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar clientes y notas")
	}

	settingsSvc := settings.NewService(stores.Settings, log)
	if err := settingsSvc.EnsureDefaults(); err != nil {
		log.Fatal().Err(err).Msg("inicializar configuración")
	}
	authUC := auth.NewAuthUseCase(stores.Settings, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.DefaultPassword, log)
	if err := authUC.EnsureInitialized(); err != nil {
		log.Fatal().Err(err).Msg("inicializar contraseña de administrador")
	}

	customerUC := billing.NewCustomerUseCase(store, collector)
	invoiceUC := billing.NewInvoiceUseCase(store, collector)
	invoiceUC.RefreshMetrics()

	// PDF: versión imprimible de la nota
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name, store.Now)
	invoicePDFUC := billing.NewPDFUseCase(store, pdfGenerator)

	backups := backup.NewManager(store, cfg.Store.BackupDir, backup.Options{
		Logger:  log,
		Metrics: collector,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log, collector))

	// Swagger UI en local: http://127.0.0.1:<port>/docs
	if _, err := os.Stat(cfg.Swagger.File); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.File,
			Path:     "docs",
			Title:    "Gestor de Notas API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.File).Msg("swagger no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		Settings:   settingsSvc,
		CustomerUC: customerUC,
		InvoiceUC:  invoiceUC,
		PDFUC:      invoicePDFUC,
		Backups:    backups,
		Metrics:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
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
