package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	catalogapp "github.com/secondhandshop/backend/internal/application/catalog"
	identityapp "github.com/secondhandshop/backend/internal/application/identity"
	inquiryapp "github.com/secondhandshop/backend/internal/application/inquiry"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/auth"
	"github.com/secondhandshop/backend/internal/infrastructure/cache"
	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"github.com/secondhandshop/backend/internal/infrastructure/email"
	"github.com/secondhandshop/backend/internal/infrastructure/imaging"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"github.com/secondhandshop/backend/internal/infrastructure/persistence"
	"github.com/secondhandshop/backend/internal/infrastructure/scheduler"
	"github.com/secondhandshop/backend/internal/infrastructure/storage"
	"github.com/secondhandshop/backend/internal/infrastructure/telemetry"
	"github.com/secondhandshop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/secondhandshop/backend/docs"
)

//	@title			SecondHandShop API
//	@version		1.0
//	@description	Storefront catalog, inquiry form and admin back office for a second-hand goods shop.

//	@contact.name	SecondHandShop
//	@license.name	MIT

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is stamped at build time with -ldflags "-X main.version=..."
var version = telemetry.DefaultServiceVersion

// objectStore is what the server needs from R2 or the mock store
type objectStore interface {
	catalogapp.ObjectStorageService
	router.MockObjectStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.Pyroscope, version, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			bootLog.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// Re-create the logger so entries are also exported over OTLP when enabled.
	log, err := logger.New(logCfg, telemetry.NewZapOTELCore(providers.Logs, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SecondHandShop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.Bool("mock", cfg.Mock.Enabled),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver()))

	dbInstrumentation, err := telemetry.InstrumentDB(db.DB, providers.Meter.Meter("secondhandshop/db"), telemetry.DBInstrumentationConfig{
		TraceEnabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	defer func() {
		_ = dbInstrumentation.Close()
	}()

	clock := shared.SystemClock{}

	if cfg.Mock.Enabled {
		if err := db.AutoMigrate(ctx); err != nil {
			log.Fatal("Failed to create mock schema", zap.Error(err))
		}
		seeded, err := persistence.Seed(ctx, db, clock)
		if err != nil {
			log.Fatal("Failed to seed mock data", zap.Error(err))
		}
		log.Info("Mock data seeded",
			zap.Int("categories", seeded.Categories),
			zap.Int("products", seeded.Products),
			zap.Int("images", seeded.Images),
		)
	}

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	imageRepo := persistence.NewGormProductImageRepository(db.DB)
	inquiryRepo := persistence.NewGormInquiryRepository(db.DB)
	adminRepo := persistence.NewGormAdminUserRepository(db.DB)
	txScope := persistence.NewGormInquiryTransactionScope(db.DB)

	// Object storage
	var objects objectStore
	if cfg.Mock.Enabled {
		objects = storage.NewLocalObjectStorage("http://localhost:" + cfg.App.Port)
		log.Info("Using in-memory object storage")
	} else {
		r2, err := storage.NewR2ObjectStorage(&cfg.R2, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize R2 storage", zap.Error(err))
		}
		objects = r2
		log.Info("Using R2 object storage", zap.String("bucket", r2.GetBucket()))
	}

	// Catalog cache and token revocation share the Redis connection settings
	catalogCache, err := cache.NewCatalogCacheFactory(cfg.Redis, cache.WithLogger(log)).CreateCache(ctx)
	if err != nil {
		log.Fatal("Failed to initialize catalog cache", zap.Error(err))
	}
	revocations := newRevocationList(ctx, cfg.Redis, log)

	// Email
	var sender inquiryapp.EmailSender
	if cfg.Email.Enabled {
		smtpSender, err := email.NewSMTPEmailSender(cfg.Email, log)
		if err != nil {
			log.Fatal("Failed to initialize SMTP sender", zap.Error(err))
		}
		sender = smtpSender
	} else {
		sender = email.NewNoOpEmailSender(log)
		log.Info("Email delivery disabled, inquiries are only logged")
	}

	var businessMetrics *telemetry.BusinessMetrics
	if providers.Meter.IsEnabled() {
		businessMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:  providers.Meter.Meter("secondhandshop/business"),
			Logger: log,
		})
		if err != nil {
			log.Fatal("Failed to initialize business metrics", zap.Error(err))
		}
	}

	// Application services
	adminCatalogService := catalogapp.NewAdminCatalogService(productRepo, categoryRepo, imageRepo, objects, clock, log)
	catalogQueryService := catalogapp.NewCatalogQueryService(productRepo, categoryRepo, imageRepo, objects, log)
	if catalogCache != nil {
		adminCatalogService.SetCache(catalogCache)
		catalogQueryService.SetCache(catalogCache)
	}
	adminCatalogService.SetBusinessMetrics(businessMetrics)

	imageService := catalogapp.NewImageProcessingService(
		imaging.NewRemoveBgClient(cfg.RemoveBg, log),
		cfg.RemoveBg.MaxFileSizeBytes,
		log,
	)

	inquiryService := inquiryapp.NewInquiryService(productRepo, inquiryRepo, txScope, sender, clock, log)
	inquiryService.SetConfig(inquiryapp.InquiryServiceConfig{RetryDelay: cfg.Email.RetryDelay})
	inquiryService.SetBusinessMetrics(businessMetrics)

	emailRetryService := inquiryapp.NewEmailRetryService(inquiryRepo, productRepo, sender, clock, log)
	emailRetryService.SetConfig(inquiryapp.EmailRetryConfig{
		BatchSize:     cfg.Email.BatchSize,
		MaxAttempts:   cfg.Email.MaxAttempts,
		RetryDelay:    cfg.Email.RetryDelay,
		MaxRetryDelay: cfg.Email.MaxRetryDelay,
	})
	emailRetryService.SetBusinessMetrics(businessMetrics)

	jwtService := auth.NewJWTService(cfg.JWT)
	adminAuthService := identityapp.NewAdminAuthService(adminRepo, jwtService, auth.NewBcryptHasher(bcrypt.DefaultCost), clock, log)

	if cfg.Mock.Enabled {
		ensureMockAdmin(ctx, adminAuthService, cfg.Mock, log)
	}

	// Email retry job
	retryScheduler := scheduler.NewEmailRetryScheduler(scheduler.EmailRetrySchedulerConfig{
		Schedule: cfg.Email.Schedule,
	}, emailRetryService, log)
	if err := retryScheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start email retry scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := retryScheduler.Stop(stopCtx); err != nil {
			log.Error("Error stopping email retry scheduler", zap.Error(err))
		}
	}()
	log.Info("Email retry scheduler started", zap.String("schedule", cfg.Email.Schedule))

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := router.Dependencies{
		Logger:       log,
		Database:     db,
		CatalogQuery: catalogQueryService,
		AdminCatalog: adminCatalogService,
		Images:       imageService,
		Inquiries:    inquiryService,
		AdminAuth:    adminAuthService,
		JWTService:   jwtService,
		Revocations:  revocations,
		Meter:        providers.Meter,
	}
	if cfg.Mock.Enabled {
		deps.MockStore = objects
	}

	engine, err := router.NewEngine(router.EngineConfigFromConfig(cfg), deps)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}
	defer engine.Close()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newRevocationList stores revoked token ids in Redis when it is enabled and
// reachable, and in process memory otherwise.
func newRevocationList(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) auth.TokenRevocationList {
	if !cfg.Enabled {
		return auth.NewInMemoryTokenRevocationList()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		log.Warn("Redis unavailable, token revocations are kept in memory", zap.Error(err))
		return auth.NewInMemoryTokenRevocationList()
	}
	return auth.NewRedisTokenRevocationList(client)
}

// ensureMockAdmin creates the configured login for the in-memory database.
func ensureMockAdmin(ctx context.Context, svc *identityapp.AdminAuthService, cfg config.MockConfig, log *zap.Logger) {
	_, err := svc.CreateAdmin(ctx, identityapp.CreateAdminInput{
		DisplayName: "Mock Admin",
		Email:       cfg.AdminEmail,
		Password:    cfg.AdminPassword,
	})
	var domainErr *shared.DomainError
	switch {
	case err == nil:
		log.Info("Mock admin created", zap.String("email", cfg.AdminEmail))
	case errors.As(err, &domainErr) && domainErr.Code == shared.CodeAlreadyExists:
		log.Debug("Mock admin already exists", zap.String("email", cfg.AdminEmail))
	default:
		log.Fatal("Failed to create mock admin", zap.Error(err))
	}
}