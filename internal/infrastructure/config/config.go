package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Gateway   GatewayConfig
	Telemetry TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

// StorageConfig selects and configures the inventory store
type StorageConfig struct {
	Driver          string // memory, sqlite, postgres
	Seed            bool   // load the demo inventory on startup
	SQLitePath      string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout            time.Duration
	WriteTimeout           time.Duration
	IdleTimeout            time.Duration
	MaxHeaderBytes         int
	MaxBodySize            int64
	LoginRateLimitEnabled  bool
	LoginRateLimitRequests int
	LoginRateLimitWindow   time.Duration
	RateLimitEnabled       bool // per-IP limit on every /api route
	RateLimitRequests      int
	RateLimitWindow        time.Duration
	CORSAllowOrigins       []string
	CORSAllowMethods       []string
	CORSAllowHeaders       []string
	TrustedProxies         []string
}

// GatewayConfig holds the route tables of the authorization gateway
type GatewayConfig struct {
	PublicPaths    []string // UI prefixes reachable without a session
	PublicAPIPaths []string // API paths reachable without a session
	AdminPaths     []string // UI prefixes restricted to admins
	APIPrefix      string
	LoginPath      string
	HomePath       string // where authenticated users land
	CookieName     string
	CookieSecure   bool
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with INVDASH_ prefix (e.g., INVDASH_STORAGE_DRIVER)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("INVDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Version: v.GetString("app.version"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
		},
		Storage: StorageConfig{
			Driver:          strings.ToLower(v.GetString("storage.driver")),
			Seed:            !v.IsSet("storage.seed") || v.GetBool("storage.seed"),
			SQLitePath:      v.GetString("storage.sqlite_path"),
			Host:            v.GetString("storage.host"),
			Port:            v.GetInt("storage.port"),
			User:            v.GetString("storage.user"),
			Password:        v.GetString("storage.password"),
			DBName:          v.GetString("storage.dbname"),
			SSLMode:         v.GetString("storage.sslmode"),
			MaxOpenConns:    v.GetInt("storage.max_open_conns"),
			MaxIdleConns:    v.GetInt("storage.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("storage.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("storage.conn_max_idle_time"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:            v.GetDuration("http.read_timeout"),
			WriteTimeout:           v.GetDuration("http.write_timeout"),
			IdleTimeout:            v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:         v.GetInt("http.max_header_bytes"),
			MaxBodySize:            v.GetInt64("http.max_body_size"),
			LoginRateLimitEnabled:  !v.IsSet("http.login_rate_limit_enabled") || v.GetBool("http.login_rate_limit_enabled"),
			LoginRateLimitRequests: v.GetInt("http.login_rate_limit_requests"),
			LoginRateLimitWindow:   v.GetDuration("http.login_rate_limit_window"),
			RateLimitEnabled:       v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests:      v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:        v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:       v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:       v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:       v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:         v.GetStringSlice("http.trusted_proxies"),
		},
		Gateway: GatewayConfig{
			PublicPaths:    v.GetStringSlice("gateway.public_paths"),
			PublicAPIPaths: v.GetStringSlice("gateway.public_api_paths"),
			AdminPaths:     v.GetStringSlice("gateway.admin_paths"),
			APIPrefix:      v.GetString("gateway.api_prefix"),
			LoginPath:      v.GetString("gateway.login_path"),
			HomePath:       v.GetString("gateway.home_path"),
			CookieName:     v.GetString("gateway.cookie_name"),
			CookieSecure:   v.GetBool("gateway.cookie_secure"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
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
		cfg.App.Name = "stockdash"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverMemory
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "file::memory:?cache=shared"
	}
	if cfg.Storage.Host == "" {
		cfg.Storage.Host = "localhost"
	}
	if cfg.Storage.Port == 0 {
		cfg.Storage.Port = 5432
	}
	if cfg.Storage.User == "" {
		cfg.Storage.User = "postgres"
	}
	if cfg.Storage.DBName == "" {
		cfg.Storage.DBName = "stockdash"
	}
	if cfg.Storage.SSLMode == "" {
		cfg.Storage.SSLMode = "disable"
	}
	if cfg.Storage.MaxOpenConns == 0 {
		cfg.Storage.MaxOpenConns = 10
	}
	if cfg.Storage.MaxIdleConns == 0 {
		cfg.Storage.MaxIdleConns = 2
	}
	if cfg.Storage.ConnMaxLifetime == 0 {
		cfg.Storage.ConnMaxLifetime = 60
	}
	if cfg.Storage.ConnMaxIdleTime == 0 {
		cfg.Storage.ConnMaxIdleTime = 30
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
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
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
	if cfg.HTTP.LoginRateLimitRequests == 0 {
		cfg.HTTP.LoginRateLimitRequests = 5
	}
	if cfg.HTTP.LoginRateLimitWindow == 0 {
		cfg.HTTP.LoginRateLimitWindow = time.Minute
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	// An empty origin list allows no cross-origin requests.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if len(cfg.Gateway.PublicPaths) == 0 {
		cfg.Gateway.PublicPaths = []string{"/login", "/register", "/forgot-password"}
	}
	if len(cfg.Gateway.PublicAPIPaths) == 0 {
		cfg.Gateway.PublicAPIPaths = []string{"/api/auth/login", "/api/auth/register"}
	}
	if len(cfg.Gateway.AdminPaths) == 0 {
		cfg.Gateway.AdminPaths = []string{"/users", "/settings"}
	}
	if cfg.Gateway.APIPrefix == "" {
		cfg.Gateway.APIPrefix = "/api/"
	}
	if cfg.Gateway.LoginPath == "" {
		cfg.Gateway.LoginPath = "/login"
	}
	if cfg.Gateway.HomePath == "" {
		cfg.Gateway.HomePath = "/dashboard"
	}
	if cfg.Gateway.CookieName == "" {
		cfg.Gateway.CookieName = "auth_token"
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
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	drivers := []string{DriverMemory, DriverSQLite, DriverPostgres}
	if !slices.Contains(drivers, c.Storage.Driver) {
		return fmt.Errorf("storage.driver must be one of %v, got %q", drivers, c.Storage.Driver)
	}
	if c.Storage.MaxOpenConns <= 0 {
		return fmt.Errorf("storage.max_open_conns must be positive")
	}
	if c.Storage.MaxIdleConns < 0 {
		return fmt.Errorf("storage.max_idle_conns cannot be negative")
	}
	if c.Storage.MaxIdleConns > c.Storage.MaxOpenConns {
		return fmt.Errorf("storage.max_idle_conns (%d) cannot exceed storage.max_open_conns (%d)",
			c.Storage.MaxIdleConns, c.Storage.MaxOpenConns)
	}

	if !strings.HasPrefix(c.Gateway.LoginPath, "/") || !strings.HasPrefix(c.Gateway.HomePath, "/") {
		return fmt.Errorf("gateway.login_path and gateway.home_path must be absolute paths")
	}
	if !strings.HasPrefix(c.Gateway.APIPrefix, "/") {
		return fmt.Errorf("gateway.api_prefix must start with '/'")
	}

	if c.App.Env == "production" {
		if c.Storage.Driver == DriverPostgres && c.Storage.SSLMode == "disable" {
			return fmt.Errorf("storage.sslmode cannot be 'disable' in production")
		}
		if !c.Gateway.CookieSecure {
			return fmt.Errorf("gateway.cookie_secure must be true in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// DSN returns the postgres connection string with properly escaped values
func (s *StorageConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(s.User, s.Password),
		Host:   fmt.Sprintf("%s:%d", s.Host, s.Port),
		Path:   s.DBName,
	}
	q := u.Query()
	q.Set("sslmode", s.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
