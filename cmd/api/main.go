package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sahaya/docs"
	"sahaya/internal/catalog"
	"sahaya/internal/config"
	"sahaya/internal/database"
	"sahaya/internal/database/migration"
	handlers "sahaya/internal/http/handler"
	"sahaya/internal/http/middleware"
	"sahaya/internal/logger"
	sahayaotel "sahaya/internal/otel"
	"sahaya/internal/repository"
	"sahaya/internal/repository/memory"
	"sahaya/internal/repository/postgres"
	kvredis "sahaya/internal/repository/redis"
	"sahaya/internal/service"
	"sahaya/internal/storage"
	"sahaya/internal/validation"
)

// multipart framing on top of the largest accepted file
const bodyOverhead = 1 << 20

// @title Smart Sahaya API
// @version 1.0
// @description Citizen services portal: document vault, appointments, application tracking and profile.
// @BasePath /
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := sahayaotel.Init(ctx, logger.Component(log, "otel"))
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal("failed to load catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}

	kv, closeKV, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open key-value store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeKV()
	store := repository.WithNamespace(kv, cfg.Store.KeyPrefix)

	objStore, err := openObjectStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	vault := service.NewVaultStore(store, objStore, logger.Component(log, "vault"), service.VaultOptions{
		MaxUploadBytes: cfg.Vault.MaxUploadBytes,
		PresignExpiry:  cfg.Vault.PresignExpiry,
	})
	appointments := service.NewAppointmentStore(store, cat, nil, logger.Component(log, "appointments"))
	profile := service.NewProfileStore(store, vault, cat, validation.New(), logger.Component(log, "profile"), service.ProfileOptions{
		VerifyDelay:       cfg.Vault.VerifyDelay,
		MaxSignatureBytes: cfg.Vault.MaxUploadBytes,
	})
	tracker := service.NewTracker(cat.Applications())

	restoreCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	for name, restore := range map[string]func(context.Context) error{
		"vault":        vault.Restore,
		"appointments": appointments.Restore,
		"profile":      profile.Restore,
	} {
		if err := restore(restoreCtx); err != nil {
			cancel()
			log.Fatal("failed to restore state", zap.String("store", name), zap.Error(err))
		}
	}
	cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             int(cfg.Vault.MaxUploadBytes) + bodyOverhead,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger.Component(log, "http")))
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, handlers.Deps{
		Store:        store,
		Catalog:      cat,
		Vault:        vault,
		Appointments: appointments,
		Tracker:      tracker,
		Profile:      profile,
		Dashboard:    service.NewDashboard(vault, appointments, tracker),
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server starting",
		zap.String("addr", addr),
		zap.String("store_backend", cfg.Store.Backend),
		zap.Bool("minio", cfg.MinIO.Endpoint != ""),
		zap.Int("services", len(cat.Services())),
	)
	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// openStore connects the configured key-value backend. The returned func
// releases its connections.
func openStore(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (repository.KeyValueRepository, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database, logger.Component(log, "database"))
		if err != nil {
			return nil, nil, err
		}
		if err := migration.EnsureMigrated(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewKVPostgres(db), func() { _ = db.Close() }, nil

	case config.BackendRedis:
		r := kvredis.NewKVRedis(cfg.Redis)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			_ = r.Close()
			return nil, nil, err
		}
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))
		return r, func() { _ = r.Close() }, nil

	case config.BackendMemory:
		log.Warn("using in-memory key-value store; state is lost on restart")
		return memory.NewKVMemory(), func() {}, nil

	default:
		return nil, nil, errors.New("unknown STORE_BACKEND " + cfg.Store.Backend)
	}
}

func openObjectStorage(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (storage.Storage, error) {
	if cfg.MinIO.Endpoint == "" {
		log.Warn("MINIO_ENDPOINT not set; document bytes are kept in memory")
		return storage.NewMemory(), nil
	}
	return storage.NewMinIO(ctx, cfg.MinIO)
}
