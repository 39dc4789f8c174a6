package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kfone/console/pkg/keycloak"
	"github.com/kfone/console/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Keycloak identity provider configuration
	Keycloak KeycloakConfig

	// Roles storage configuration
	Roles RolesConfig

	// Redis configuration (impersonation session persistence)
	Redis RedisConfig

	// Audit log configuration
	Audit AuditConfig

	// Catalog overlay configuration
	Catalog CatalogConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string

	// CORS origins allowed to call the API
	AllowedOrigins []string
}

// KeycloakConfig wraps the identity provider settings with an enable switch
// so local development can run without a Keycloak instance.
type KeycloakConfig struct {
	Enabled bool
	keycloak.Config
}

// RolesConfig selects where saved role templates live
type RolesConfig struct {
	// StorageType is "memory" or "postgres"
	StorageType string
	PostgresURL string
}

// RedisConfig holds the impersonation persistence settings
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	// SessionTTL bounds how long a persisted impersonation survives
	SessionTTL time.Duration
}

// AuditConfig holds audit log settings
type AuditConfig struct {
	// Path is the SQLite database file, ":memory:" for ephemeral
	Path string
	// RetentionDays is how long audit events are kept
	RetentionDays int
	// PruneSchedule is a cron expression for the retention job
	PruneSchedule string
}

// CatalogConfig holds permission catalog overlay settings
type CatalogConfig struct {
	// OverlayPath is an optional YAML file merged over the built-in catalog
	OverlayPath string
	// Watch reloads the overlay when the file changes
	Watch bool
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Keycloak:      loadKeycloakConfig(),
		Roles:         loadRolesConfig(),
		Redis:         loadRedisConfig(),
		Audit:         loadAuditConfig(),
		Catalog:       loadCatalogConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("CONSOLE_HOST", "0.0.0.0"),
		Port:            getEnv("CONSOLE_PORT", "8080"),
		ReadTimeout:     getEnvDuration("CONSOLE_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("CONSOLE_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("CONSOLE_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("CONSOLE_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("CONSOLE_HEALTH_PORT", "9090"),
		AllowedOrigins:  splitNonEmpty(getEnv("CONSOLE_ALLOWED_ORIGINS", "*")),
	}
}

// loadKeycloakConfig loads identity provider configuration from environment
func loadKeycloakConfig() KeycloakConfig {
	return KeycloakConfig{
		Enabled: getEnvBool("CONSOLE_AUTH_ENABLED", false),
		Config: keycloak.Config{
			BaseURL:                   getEnv("CONSOLE_KEYCLOAK_URL", "http://localhost:8180"),
			Realm:                     getEnv("CONSOLE_KEYCLOAK_REALM", "kfone"),
			ClientID:                  getEnv("CONSOLE_KEYCLOAK_CLIENT_ID", "console"),
			ClientSecret:              getEnv("CONSOLE_KEYCLOAK_CLIENT_SECRET", ""),
			RedirectURL:               getEnv("CONSOLE_KEYCLOAK_REDIRECT_URL", "http://localhost:8080/api/v1/auth/callback"),
			ImpersonationClientID:     getEnv("CONSOLE_KEYCLOAK_IMPERSONATION_CLIENT_ID", "pf001"),
			ImpersonationClientSecret: getEnv("CONSOLE_KEYCLOAK_IMPERSONATION_CLIENT_SECRET", ""),
		},
	}
}

// loadRolesConfig loads role template storage configuration from environment
func loadRolesConfig() RolesConfig {
	return RolesConfig{
		StorageType: getEnv("CONSOLE_ROLES_STORAGE_TYPE", "memory"),
		PostgresURL: getEnv("CONSOLE_POSTGRES_URL", ""),
	}
}

// loadRedisConfig loads Redis configuration from environment
func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:    getEnvBool("CONSOLE_REDIS_ENABLED", false),
		Addr:       getEnv("CONSOLE_REDIS_ADDR", "localhost:6379"),
		Password:   getEnv("CONSOLE_REDIS_PASSWORD", ""),
		DB:         getEnvInt("CONSOLE_REDIS_DB", 0),
		SessionTTL: getEnvDuration("CONSOLE_REDIS_SESSION_TTL", 12*time.Hour),
	}
}

// loadAuditConfig loads audit configuration from environment
func loadAuditConfig() AuditConfig {
	return AuditConfig{
		Path:          getEnv("CONSOLE_AUDIT_PATH", "console-audit.db"),
		RetentionDays: getEnvInt("CONSOLE_AUDIT_RETENTION_DAYS", 90),
		PruneSchedule: getEnv("CONSOLE_AUDIT_PRUNE_SCHEDULE", "0 3 * * *"),
	}
}

// loadCatalogConfig loads catalog overlay configuration from environment
func loadCatalogConfig() CatalogConfig {
	return CatalogConfig{
		OverlayPath: getEnv("CONSOLE_CATALOG_OVERLAY", ""),
		Watch:       getEnvBool("CONSOLE_CATALOG_WATCH", false),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       parseLogLevel(getEnv("CONSOLE_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("CONSOLE_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	if c.Keycloak.Enabled {
		if err := c.Keycloak.Config.Validate(); err != nil {
			return err
		}
	}

	switch c.Roles.StorageType {
	case "memory":
	case "postgres":
		if c.Roles.PostgresURL == "" {
			return fmt.Errorf("postgres URL is required for postgres role storage")
		}
	default:
		return fmt.Errorf("invalid roles storage type: %s (must be memory or postgres)", c.Roles.StorageType)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required when redis is enabled")
	}

	if c.Audit.Path == "" {
		return fmt.Errorf("audit database path is required")
	}
	if c.Audit.RetentionDays <= 0 {
		return fmt.Errorf("audit retention must be positive")
	}

	if c.Catalog.Watch && c.Catalog.OverlayPath == "" {
		return fmt.Errorf("catalog overlay path is required when watching is enabled")
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// splitNonEmpty splits a comma-separated list, dropping blank entries
func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
