package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/lordsmint/portal-api/internal/secrets"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	ERP       ERPConfig
	Session   SessionConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	// Timezone is used to interpret ERP posting dates and times
	Timezone string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// ERPConfig describes how the portal reaches the ERP REST API.
// When both APIKey and APISecret are set every ERP call is made with token
// auth; otherwise each portal user carries their own ERP session.
type ERPConfig struct {
	// BaseURL is the ERP API root, e.g. https://erp.example.com/api
	BaseURL   string
	APIKey    string
	APISecret string
	// Timeout for a single ERP request (seconds)
	Timeout int
	// Currency for newly created sales orders
	Currency string
	// DeliveryLeadDays is added to today's date to form the requested delivery date
	DeliveryLeadDays int
	// DeliveryNoteFormats are tried in order when rendering a delivery note PDF
	DeliveryNoteFormats []string
	InvoiceFormat       string
	ReceiptFormat       string
}

// SessionConfig controls portal sessions and the signed session token
type SessionConfig struct {
	SigningKey string
	// TTL in minutes
	TTL        int
	CookieName string
	Secure     bool
	Issuer     string
}

// RedisConfig is optional; an empty Addr disables the catalog cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// CatalogTTL in seconds
	CatalogTTL int
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
	// ArchiveEnabled stores rendered PDFs of submitted documents
	ArchiveEnabled bool
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
	// File enables a rotating log file next to stdout when set
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
	EnableMetrics  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	// AllowedOrigins is a list of allowed origins for CORS requests
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	// MaxAge is the max age (in seconds) for preflight cache
	MaxAge int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	XSSProtection         string
	ReferrerPolicy        string
	PermissionsPolicy     string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute is the limit for unauthenticated requests (per IP)
	RequestsPerMinute int
	// RequestsPerMinuteAuth is the limit for authenticated requests (per portal user)
	RequestsPerMinuteAuth int
	// LoginAttemptsPerMinute limits POST /auth/login per IP
	LoginAttemptsPerMinute int
	WhitelistIPs           []string
	WhitelistPaths         []string
	// TrustedProxies (IPs or CIDRs) are the only peers whose
	// X-Forwarded-For / X-Real-IP headers are honoured
	TrustedProxies []string
}

// JobsConfig holds background job schedules
type JobsConfig struct {
	Enabled            bool
	SessionCleanupCron string
	DraftCleanupCron   string
	// DraftMaxAgeDays removes open drafts untouched for longer than this
	DraftMaxAgeDays  int
	AuditCleanupCron string
	// AuditRetentionDays keeps audit entries this long; 0 keeps them forever
	AuditRetentionDays int
	// Timeout for a single job run (seconds)
	Timeout int
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// TokenAuth reports whether the ERP is reached with a shared API token
func (e *ERPConfig) TokenAuth() bool {
	return e.APIKey != "" && e.APISecret != ""
}

// TimeoutDuration returns the ERP request timeout as duration
func (e *ERPConfig) TimeoutDuration() time.Duration {
	return time.Duration(e.Timeout) * time.Second
}

// TTLDuration returns the session lifetime as duration
func (s *SessionConfig) TTLDuration() time.Duration {
	return time.Duration(s.TTL) * time.Minute
}

// Enabled reports whether a Redis address is configured
func (r *RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// CatalogTTLDuration returns the catalog cache TTL as duration
func (r *RedisConfig) CatalogTTLDuration() time.Duration {
	return time.Duration(r.CatalogTTL) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// TimeoutDuration returns the job run timeout as duration
func (j *JobsConfig) TimeoutDuration() time.Duration {
	return time.Duration(j.Timeout) * time.Second
}

// DraftMaxAge returns the stale draft threshold as duration
func (j *JobsConfig) DraftMaxAge() time.Duration {
	return time.Duration(j.DraftMaxAgeDays) * 24 * time.Hour
}

// Location resolves the configured timezone, falling back to UTC
func (a *AppConfig) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load loads configuration from file and environment variables.
// Secrets from Key Vault are resolved by LoadWithSecrets.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Plain env names used by the deployment manifests
	if cfg.ERP.BaseURL == "" {
		cfg.ERP.BaseURL = v.GetString("ERP_BASE_URL")
	}
	if cfg.ERP.APIKey == "" {
		cfg.ERP.APIKey = v.GetString("ERP_API_KEY")
	}
	if cfg.ERP.APISecret == "" {
		cfg.ERP.APISecret = v.GetString("ERP_API_SECRET")
	}
	if cfg.Session.SigningKey == "" {
		cfg.Session.SigningKey = v.GetString("SESSION_SIGNING_KEY")
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.ERP.BaseURL == "" {
		return fmt.Errorf("erp.baseURL is required")
	}
	if c.Session.SigningKey == "" {
		return fmt.Errorf("session.signingKey is required")
	}
	if len(c.Session.SigningKey) < 32 && c.App.Environment == "production" {
		return fmt.Errorf("session.signingKey must be at least 32 characters in production")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	return nil
}

// LoadWithSecrets loads configuration and resolves secrets from Azure Key Vault.
//
// Key Vault is used when USE_AZURE_KEY_VAULT=true and the environment is
// staging or production. Otherwise values come from the environment.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	logger.Info("Loading secrets from Azure Key Vault",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	resolve := func(secretName, envName string, target *string) {
		value, err := provider.GetSecretOrEnv(ctx, secretName, envName)
		if err != nil {
			logger.Warn("secret not resolved, keeping configured value",
				zap.String("secret_name", secretName),
				zap.Error(err),
			)
			return
		}
		if value != "" {
			*target = value
		}
	}

	resolve("POSTGRES-PORTAL-HOST", "DATABASE_HOST", &cfg.Database.Host)
	resolve("POSTGRES-PORTAL-USER", "DATABASE_USER", &cfg.Database.User)
	resolve("POSTGRES-PORTAL-PASSWORD", "DATABASE_PASSWORD", &cfg.Database.Password)
	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}

	resolve("erp-api-key", "ERP_API_KEY", &cfg.ERP.APIKey)
	resolve("erp-api-secret", "ERP_API_SECRET", &cfg.ERP.APISecret)
	resolve("portal-session-signing-key", "SESSION_SIGNING_KEY", &cfg.Session.SigningKey)
	resolve("redis-password", "REDIS_PASSWORD", &cfg.Redis.Password)
	resolve("storage-connection-string", "STORAGE_CLOUDCONNECTIONSTRING", &cfg.Storage.CloudConnectionString)

	logger.Info("Secrets loaded from vault successfully",
		zap.Bool("erp_token_auth", cfg.ERP.TokenAuth()),
	)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "LordsMint Portal API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.timezone", "Africa/Lagos")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "portal")
	v.SetDefault("database.user", "portal_user")
	v.SetDefault("database.password", "portal_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	v.SetDefault("erp.timeout", 30)
	v.SetDefault("erp.currency", "NGN")
	v.SetDefault("erp.deliveryLeadDays", 7)
	v.SetDefault("erp.deliveryNoteFormats", []string{"Waybill.", "Standard"})
	v.SetDefault("erp.invoiceFormat", "Sales Invoice")
	v.SetDefault("erp.receiptFormat", "Receipts")

	v.SetDefault("session.ttl", 720) // 12 hours
	v.SetDefault("session.cookieName", "portal_session")
	v.SetDefault("session.secure", true)
	v.SetDefault("session.issuer", "lordsmint-portal")

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.catalogTTL", 300)

	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.cloudContainer", "portal-documents")
	v.SetDefault("storage.maxUploadSizeMB", 10)
	v.SetDefault("storage.archiveEnabled", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.maxSizeMB", 100)
	v.SetDefault("logging.maxBackups", 7)
	v.SetDefault("logging.maxAgeDays", 30)
	v.SetDefault("logging.compress", true)

	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)
	v.SetDefault("server.enableMetrics", true)

	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Content-Disposition", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.xssProtection", "1; mode=block")
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 240)
	v.SetDefault("rateLimit.loginAttemptsPerMinute", 5)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.trustedProxies", []string{})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready", "/metrics"})

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.sessionCleanupCron", "0 */15 * * * *")
	v.SetDefault("jobs.draftCleanupCron", "0 30 2 * * *")
	v.SetDefault("jobs.draftMaxAgeDays", 30)
	v.SetDefault("jobs.auditCleanupCron", "0 0 3 * * *")
	v.SetDefault("jobs.auditRetentionDays", 365)
	v.SetDefault("jobs.timeout", 120)
}
