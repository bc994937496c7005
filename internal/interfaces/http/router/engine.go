package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/auth"
	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"github.com/secondhandshop/backend/internal/infrastructure/telemetry"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
	"github.com/secondhandshop/backend/internal/interfaces/http/handler"
	"github.com/secondhandshop/backend/internal/interfaces/http/middleware"
	"github.com/secondhandshop/backend/internal/interfaces/proxy"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	healthPath         = "/health"
	loginPath          = "/api/admin/auth/login"
	previewPath        = "/api/admin/images/remove-background-preview"
	mockStoragePrefix  = "/mock-storage/"
	defaultPreviewSize = 12 << 20
)

// EngineConfig holds the HTTP settings the engine is built from
type EngineConfig struct {
	ServiceName        string
	TrustedProxies     []string
	CORS               middleware.CORSConfig
	Security           middleware.SecurityConfig
	MaxBodySize        int64
	PreviewMaxBodySize int64

	RateLimitEnabled      bool
	RateLimitRequests     int
	RateLimitWindow       time.Duration
	AuthRateLimitRequests int
	AuthRateLimitWindow   time.Duration

	TracingEnabled   bool
	ProfilingEnabled bool
	SwaggerEnabled   bool
	MockStorage      bool
	ImageProxy       proxy.Config
}

// EngineConfigFromConfig maps the application config to engine settings
func EngineConfigFromConfig(cfg *config.Config) EngineConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORS.AllowedOrigins
	if len(cfg.CORS.AllowedMethods) > 0 {
		cors.AllowMethods = cfg.CORS.AllowedMethods
	}
	if len(cfg.CORS.AllowedHeaders) > 0 {
		cors.AllowHeaders = cfg.CORS.AllowedHeaders
	}

	return EngineConfig{
		ServiceName:           cfg.Telemetry.ServiceName,
		TrustedProxies:        cfg.HTTP.TrustedProxies,
		CORS:                  cors,
		Security:              middleware.DefaultSecurityConfig(),
		MaxBodySize:           cfg.HTTP.MaxBodySize,
		PreviewMaxBodySize:    cfg.HTTP.PreviewMaxBodySize,
		RateLimitEnabled:      cfg.HTTP.RateLimitEnabled,
		RateLimitRequests:     cfg.HTTP.RateLimitRequests,
		RateLimitWindow:       cfg.HTTP.RateLimitWindow,
		AuthRateLimitRequests: cfg.HTTP.AuthRateLimitRequests,
		AuthRateLimitWindow:   cfg.HTTP.AuthRateLimitWindow,
		TracingEnabled:        cfg.Telemetry.Enabled,
		ProfilingEnabled:      cfg.Pyroscope.Enabled,
		SwaggerEnabled:        cfg.Swagger.Enabled && !cfg.App.IsProduction(),
		MockStorage:           cfg.Mock.Enabled,
		ImageProxy: proxy.Config{
			CacheControl: cfg.Proxy.CacheControl,
			CORSMaxAge:   cfg.Proxy.CORSMaxAge,
		},
	}
}

// previewLimit is the body limit for routes that carry image bytes
func (c EngineConfig) previewLimit() int64 {
	if c.PreviewMaxBodySize <= 0 {
		return defaultPreviewSize
	}
	return c.PreviewMaxBodySize
}

// MockObjectStore is the object store behind the mock-storage routes
type MockObjectStore interface {
	handler.ObjectUploader
	proxy.ObjectReader
}

// Dependencies are the services the routes are bound to
type Dependencies struct {
	Logger       *zap.Logger
	Database     handler.DatabasePinger
	CatalogQuery handler.CatalogQuery
	AdminCatalog handler.AdminCatalog
	Images       handler.BackgroundPreviewer
	Inquiries    handler.InquiryCreator
	AdminAuth    handler.AdminAuthenticator
	JWTService   *auth.JWTService
	Revocations  auth.TokenRevocationList
	Meter        *telemetry.MeterProvider
	MockStore    MockObjectStore
}

// Engine is the storefront HTTP engine plus the resources it owns
type Engine struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close stops background work started for the engine
func (e *Engine) Close() {
	for _, l := range e.limiters {
		l.Stop()
	}
}

// NewEngine builds the gin engine with the global middleware stack and all
// storefront, admin and support routes.
func NewEngine(cfg EngineConfig, deps Dependencies) (*Engine, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if err := middleware.SetupValidator(); err != nil {
		return nil, err
	}

	engine := gin.New()
	e := &Engine{Engine: engine}

	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, healthPath))
	engine.Use(middleware.SecureWithConfig(cfg.Security))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	engine.Use(middleware.BodyLimitExcept(cfg.MaxBodySize, previewPath, mockStoragePrefix))

	if cfg.RateLimitEnabled && cfg.RateLimitRequests > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.RateLimitRequests),
			zap.Duration("window", cfg.RateLimitWindow),
		)
	}

	if cfg.TracingEnabled {
		engine.Use(middleware.Tracing(middleware.TracingConfig{ServiceName: cfg.ServiceName, Enabled: true}))
		engine.Use(middleware.SpanAttributes())
	}

	metrics, err := middleware.HTTPMetrics(deps.Meter)
	if err != nil {
		return nil, err
	}
	engine.Use(metrics)
	engine.Use(middleware.Profiling(middleware.ProfilingConfig{
		Enabled:   cfg.ProfilingEnabled,
		SkipPaths: []string{healthPath},
	}))

	health := handler.NewHealthHandler(deps.Database)
	engine.GET(healthPath, health.Check)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{Enabled: cfg.SwaggerEnabled}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	if cfg.MockStorage && deps.MockStore != nil {
		images := proxy.NewHandler(deps.MockStore, cfg.ImageProxy, log)
		mockStorage := handler.NewMockStorageHandler(deps.MockStore, images)
		engine.PUT("/mock-storage/*key", middleware.BodyLimit(cfg.previewLimit()), mockStorage.Put)
		engine.GET("/mock-storage/*key", mockStorage.Get)
		engine.HEAD("/mock-storage/*key", mockStorage.Get)
		log.Info("Mock object storage routes enabled")
	}

	r := NewRouter(engine)
	r.Register(storefrontRoutes(deps))
	r.Register(adminRoutes(cfg, deps, log, e))
	r.Setup()

	engine.NoRoute(func(c *gin.Context) {
		resp := dto.NewErrorResponse(shared.CodeNotFound, "Resource not found.")
		resp.Error.RequestID = middleware.GetRequestID(c)
		c.AbortWithStatusJSON(http.StatusNotFound, resp)
	})

	return e, nil
}

func storefrontRoutes(deps Dependencies) *DomainGroup {
	catalog := handler.NewCatalogHandler(deps.CatalogQuery)
	inquiries := handler.NewInquiryHandler(deps.Inquiries)

	public := NewDomainGroup("storefront", "")
	public.GET("/categories", catalog.ListCategories)
	public.GET("/products", catalog.ListProducts)
	public.GET("/products/slug/:slug", catalog.GetProductBySlug)
	public.POST("/inquiries", inquiries.Create)
	return public
}

func adminRoutes(cfg EngineConfig, deps Dependencies, log *zap.Logger, e *Engine) *DomainGroup {
	authHandler := handler.NewAuthHandler(deps.AdminAuth, deps.Revocations)
	products := handler.NewAdminProductHandler(deps.AdminCatalog)
	categories := handler.NewAdminCategoryHandler(deps.AdminCatalog)
	images := handler.NewImageProcessingHandler(deps.Images)

	admin := NewDomainGroup("admin", "/admin")
	admin.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:  deps.JWTService,
		Revocations: deps.Revocations,
		SkipPaths:   []string{loginPath},
		Logger:      log,
	}))

	authGroup := admin.Group("auth", "/auth")
	loginHandlers := []gin.HandlerFunc{authHandler.Login}
	if cfg.AuthRateLimitRequests > 0 {
		limiter := middleware.NewRateLimiter(cfg.AuthRateLimitRequests, cfg.AuthRateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		loginHandlers = append([]gin.HandlerFunc{middleware.RateLimit(limiter)}, loginHandlers...)
	}
	authGroup.POST("/login", loginHandlers...)
	authGroup.GET("/me", authHandler.Me)
	authGroup.POST("/logout", authHandler.Logout)

	productGroup := admin.Group("products", "/products")
	productGroup.GET("", products.List)
	productGroup.POST("", products.Create)
	productGroup.PUT("/:id", products.Update)
	productGroup.PUT("/:id/status", products.UpdateStatus)
	productGroup.POST("/:id/images/presigned-url", products.CreateImageUploadURL)
	productGroup.POST("/:id/images", products.AddImage)
	productGroup.DELETE("/:id/images/:imageId", products.DeleteImage)

	categoryGroup := admin.Group("categories", "/categories")
	categoryGroup.GET("", categories.List)
	categoryGroup.POST("", categories.Create)
	categoryGroup.PUT("/:id", categories.Update)

	imageGroup := admin.Group("images", "/images")
	imageGroup.POST("/remove-background-preview", middleware.BodyLimit(cfg.previewLimit()), images.Preview)

	return admin
}
