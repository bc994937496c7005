package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultJWTSecret = "change-me-in-development-only-secret"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Log       LogConfig
	CORS      CORSConfig
	HTTP      HTTPConfig
	R2        R2Config
	RemoveBg  RemoveBgConfig
	Email     EmailConfig
	Swagger   SwaggerConfig
	Telemetry TelemetryConfig
	Pyroscope PyroscopeConfig
	Proxy     ProxyConfig
	Mock      MockConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// IsProduction reports whether the app runs in production
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // postgres or sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SQLitePath      string // file path or ":memory:"
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                string
	AccessTokenExpiration time.Duration
	Issuer                string
}

// CORSConfig holds cross-origin settings for the storefront and admin UI
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	IdleTimeout           time.Duration
	MaxHeaderBytes        int
	MaxBodySize           int64
	PreviewMaxBodySize    int64
	RateLimitEnabled      bool
	RateLimitRequests     int
	RateLimitWindow       time.Duration
	AuthRateLimitRequests int
	AuthRateLimitWindow   time.Duration
	TrustedProxies        []string
}

// R2Config holds Cloudflare R2 object storage settings
type R2Config struct {
	AccountID         string
	AccessKeyID       string
	SecretAccessKey   string
	BucketName        string
	WorkerBaseURL     string // public base URL of the image proxy
	Endpoint          string // optional override of the account endpoint
	Region            string
	PresignExpiration time.Duration
}

// EndpointURL returns the S3-compatible endpoint for the account
func (r R2Config) EndpointURL() string {
	if r.Endpoint != "" {
		return r.Endpoint
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.AccountID)
}

// RemoveBgConfig holds remove.bg API settings
type RemoveBgConfig struct {
	APIKey           string
	BaseURL          string
	Timeout          time.Duration
	MaxRetries       int
	MaxFileSizeBytes int64
}

// EmailConfig holds SMTP and inquiry notification settings
type EmailConfig struct {
	Enabled         bool
	Host            string
	Port            int
	UseSSL          bool
	Username        string
	Password        string
	FromEmail       string
	FromName        string
	AdminInboxEmail string
	FrontendBaseURL string
	RetryDelay      time.Duration
	MaxRetryDelay   time.Duration
	MaxAttempts     int
	BatchSize       int
	Schedule        string // cron spec for the retry job
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled bool
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable tracing
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string
	Insecure          bool
	MetricsEnabled    bool
	MetricsInterval   time.Duration
	LogsEnabled       bool
	DBTraceEnabled    bool
	DBLogFullSQL      bool
	DBSlowQueryThresh time.Duration
}

// PyroscopeConfig holds continuous profiling settings
type PyroscopeConfig struct {
	Enabled         bool
	ServerAddress   string
	ApplicationName string
}

// ProxyConfig holds settings for the image edge proxy
type ProxyConfig struct {
	Port         string
	CacheControl string
	CORSMaxAge   int // seconds
}

// MockConfig switches the server to an in-memory dataset
type MockConfig struct {
	Enabled bool
	// AdminEmail and AdminPassword seed a login for the in-memory database
	AdminEmail    string
	AdminPassword string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SHOP_ prefix (e.g., SHOP_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			SQLitePath:      v.GetString("database.sqlite_path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			CacheTTL: v.GetDuration("redis.cache_ttl"),
		},
		JWT: JWTConfig{
			Secret:                v.GetString("jwt.secret"),
			AccessTokenExpiration: v.GetDuration("jwt.access_token_expiration"),
			Issuer:                v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
			AllowedMethods: v.GetStringSlice("cors.allowed_methods"),
			AllowedHeaders: v.GetStringSlice("cors.allowed_headers"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:           v.GetDuration("http.read_timeout"),
			WriteTimeout:          v.GetDuration("http.write_timeout"),
			IdleTimeout:           v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:        v.GetInt("http.max_header_bytes"),
			MaxBodySize:           v.GetInt64("http.max_body_size"),
			PreviewMaxBodySize:    v.GetInt64("http.preview_max_body_size"),
			RateLimitEnabled:      v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests:     v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:       v.GetDuration("http.rate_limit_window"),
			AuthRateLimitRequests: v.GetInt("http.auth_rate_limit_requests"),
			AuthRateLimitWindow:   v.GetDuration("http.auth_rate_limit_window"),
			TrustedProxies:        v.GetStringSlice("http.trusted_proxies"),
		},
		R2: R2Config{
			AccountID:         v.GetString("r2.account_id"),
			AccessKeyID:       v.GetString("r2.access_key_id"),
			SecretAccessKey:   v.GetString("r2.secret_access_key"),
			BucketName:        v.GetString("r2.bucket_name"),
			WorkerBaseURL:     v.GetString("r2.worker_base_url"),
			Endpoint:          v.GetString("r2.endpoint"),
			Region:            v.GetString("r2.region"),
			PresignExpiration: v.GetDuration("r2.presign_expiration"),
		},
		RemoveBg: RemoveBgConfig{
			APIKey:           v.GetString("remove_bg.api_key"),
			BaseURL:          v.GetString("remove_bg.base_url"),
			Timeout:          v.GetDuration("remove_bg.timeout"),
			MaxRetries:       v.GetInt("remove_bg.max_retries"),
			MaxFileSizeBytes: v.GetInt64("remove_bg.max_file_size_bytes"),
		},
		Email: EmailConfig{
			Enabled:         v.GetBool("email.enabled"),
			Host:            v.GetString("email.host"),
			Port:            v.GetInt("email.port"),
			UseSSL:          v.GetBool("email.use_ssl"),
			Username:        v.GetString("email.username"),
			Password:        v.GetString("email.password"),
			FromEmail:       v.GetString("email.from_email"),
			FromName:        v.GetString("email.from_name"),
			AdminInboxEmail: v.GetString("email.admin_inbox_email"),
			FrontendBaseURL: v.GetString("email.frontend_base_url"),
			RetryDelay:      v.GetDuration("email.retry_delay"),
			MaxRetryDelay:   v.GetDuration("email.max_retry_delay"),
			MaxAttempts:     v.GetInt("email.max_attempts"),
			BatchSize:       v.GetInt("email.batch_size"),
			Schedule:        v.GetString("email.schedule"),
		},
		Swagger: SwaggerConfig{
			Enabled: v.GetBool("swagger.enabled"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:      v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
		},
		Pyroscope: PyroscopeConfig{
			Enabled:         v.GetBool("pyroscope.enabled"),
			ServerAddress:   v.GetString("pyroscope.server_address"),
			ApplicationName: v.GetString("pyroscope.application_name"),
		},
		Proxy: ProxyConfig{
			Port:         v.GetString("proxy.port"),
			CacheControl: v.GetString("proxy.cache_control"),
			CORSMaxAge:   v.GetInt("proxy.cors_max_age"),
		},
		Mock: MockConfig{
			Enabled:       v.GetBool("mock.enabled"),
			AdminEmail:    v.GetString("mock.admin_email"),
			AdminPassword: v.GetString("mock.admin_password"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "secondhandshop-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverPostgres
	}
	if cfg.Mock.Enabled {
		if cfg.Mock.AdminEmail == "" {
			cfg.Mock.AdminEmail = "admin@secondhandshop.local"
		}
		if cfg.Mock.AdminPassword == "" {
			cfg.Mock.AdminPassword = "mock-admin-password"
		}
		cfg.Database.Driver = DriverSQLite
		if cfg.Database.SQLitePath == "" {
			cfg.Database.SQLitePath = "file::memory:?cache=shared"
		}
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "secondhandshop.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "secondhandshop"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.CacheTTL == 0 {
		cfg.Redis.CacheTTL = 5 * time.Minute
	}

	if cfg.JWT.Secret == "" && !cfg.App.IsProduction() {
		cfg.JWT.Secret = defaultJWTSecret
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 12 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "secondhandshop"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	// An empty origin list allows no cross-origin requests.
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if cfg.HTTP.PreviewMaxBodySize == 0 {
		cfg.HTTP.PreviewMaxBodySize = 12 << 20 // 12MB
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	if cfg.HTTP.AuthRateLimitRequests == 0 {
		cfg.HTTP.AuthRateLimitRequests = 5
	}
	if cfg.HTTP.AuthRateLimitWindow == 0 {
		cfg.HTTP.AuthRateLimitWindow = time.Minute
	}

	if cfg.R2.Region == "" {
		cfg.R2.Region = "auto"
	}
	if cfg.R2.PresignExpiration == 0 {
		cfg.R2.PresignExpiration = 10 * time.Minute
	}

	if cfg.RemoveBg.BaseURL == "" {
		cfg.RemoveBg.BaseURL = "https://api.remove.bg"
	}
	if cfg.RemoveBg.Timeout == 0 {
		cfg.RemoveBg.Timeout = 30 * time.Second
	}
	if cfg.RemoveBg.MaxRetries == 0 {
		cfg.RemoveBg.MaxRetries = 1
	}
	if cfg.RemoveBg.MaxFileSizeBytes == 0 {
		cfg.RemoveBg.MaxFileSizeBytes = 10 << 20 // 10MB
	}

	if cfg.Email.Port == 0 {
		cfg.Email.Port = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "SecondHandShop"
	}
	if cfg.Email.FrontendBaseURL == "" {
		cfg.Email.FrontendBaseURL = "http://localhost:5173"
	}
	if cfg.Email.RetryDelay == 0 {
		cfg.Email.RetryDelay = 5 * time.Minute
	}
	if cfg.Email.MaxRetryDelay == 0 {
		cfg.Email.MaxRetryDelay = time.Hour
	}
	if cfg.Email.MaxAttempts == 0 {
		cfg.Email.MaxAttempts = 5
	}
	if cfg.Email.BatchSize == 0 {
		cfg.Email.BatchSize = 50
	}
	if cfg.Email.Schedule == "" {
		cfg.Email.Schedule = "@every 1m"
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}

	if cfg.Pyroscope.ServerAddress == "" {
		cfg.Pyroscope.ServerAddress = "http://localhost:4040"
	}
	if cfg.Pyroscope.ApplicationName == "" {
		cfg.Pyroscope.ApplicationName = cfg.App.Name
	}

	if cfg.Proxy.Port == "" {
		cfg.Proxy.Port = "8787"
	}
	if cfg.Proxy.CacheControl == "" {
		cfg.Proxy.CacheControl = "public, max-age=86400, s-maxage=604800, immutable"
	}
	if cfg.Proxy.CORSMaxAge == 0 {
		cfg.Proxy.CORSMaxAge = 86400
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.App.IsProduction() {
		if c.Mock.Enabled {
			return fmt.Errorf("mock.enabled cannot be used in production")
		}
		if c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf("cors.allowed_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
		}
	}

	if !c.Mock.Enabled {
		if c.R2.AccountID == "" && c.R2.Endpoint == "" {
			return fmt.Errorf("r2.account_id is required")
		}
		if c.R2.AccessKeyID == "" || c.R2.SecretAccessKey == "" {
			return fmt.Errorf("r2.access_key_id and r2.secret_access_key are required")
		}
		if c.R2.BucketName == "" {
			return fmt.Errorf("r2.bucket_name is required")
		}
		if c.R2.WorkerBaseURL == "" {
			return fmt.Errorf("r2.worker_base_url is required")
		}
	}

	if c.Email.Enabled {
		if c.Email.Host == "" {
			return fmt.Errorf("email.host is required when email is enabled")
		}
		if c.Email.FromEmail == "" {
			return fmt.Errorf("email.from_email is required when email is enabled")
		}
		if c.Email.AdminInboxEmail == "" {
			return fmt.Errorf("email.admin_inbox_email is required when email is enabled")
		}
	}
	if c.Email.MaxAttempts <= 0 {
		return fmt.Errorf("email.max_attempts must be positive")
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
