// Command imageproxy serves product images straight out of the R2 bucket with
// long-lived cache headers, so the storefront never links to the bucket itself.
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
	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"github.com/secondhandshop/backend/internal/infrastructure/storage"
	"github.com/secondhandshop/backend/internal/infrastructure/telemetry"
	"github.com/secondhandshop/backend/internal/interfaces/http/middleware"
	"github.com/secondhandshop/backend/internal/interfaces/proxy"
	"go.uber.org/zap"
)

var version = telemetry.DefaultServiceVersion

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

	serviceName := cfg.Telemetry.ServiceName + "-imageproxy"
	telemetryCfg := cfg.Telemetry
	telemetryCfg.ServiceName = serviceName
	providers, err := telemetry.Setup(ctx, telemetryCfg, cfg.Pyroscope, version, bootLog)
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

	log, err := logger.New(logCfg, telemetry.NewZapOTELCore(providers.Logs, serviceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if cfg.Mock.Enabled {
		log.Fatal("The image proxy reads from R2; mock mode serves images from the API server instead")
	}

	objects, err := storage.NewR2ObjectStorage(&cfg.R2, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize R2 storage", zap.Error(err))
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	h := proxy.NewHandler(objects, proxy.Config{
		CacheControl: cfg.Proxy.CacheControl,
		CORSMaxAge:   cfg.Proxy.CORSMaxAge,
	}, log)
	engine := proxy.NewEngine(h, log,
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{ServiceName: serviceName, Enabled: cfg.Telemetry.Enabled}),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Proxy.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Image proxy starting",
			zap.String("addr", srv.Addr),
			zap.String("bucket", objects.GetBucket()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start image proxy", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down image proxy...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Image proxy forced to shutdown", zap.Error(err))
	}
	log.Info("Image proxy exited")
}