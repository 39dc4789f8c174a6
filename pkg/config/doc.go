// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	CONSOLE_HOST="0.0.0.0"
//	CONSOLE_PORT="8080"
//	CONSOLE_HEALTH_PORT="9090"
//	CONSOLE_READ_TIMEOUT="15s"
//	CONSOLE_ALLOWED_ORIGINS="https://console.example.com"
//
// Identity provider settings:
//
//	CONSOLE_AUTH_ENABLED="true"
//	CONSOLE_KEYCLOAK_URL="http://localhost:8180"
//	CONSOLE_KEYCLOAK_REALM="kfone"
//	CONSOLE_KEYCLOAK_CLIENT_ID="console"
//	CONSOLE_KEYCLOAK_IMPERSONATION_CLIENT_ID="pf001"
//
// Role template storage:
//
//	CONSOLE_ROLES_STORAGE_TYPE="postgres"  # memory, postgres
//	CONSOLE_POSTGRES_URL="postgres://localhost/console"
//
// Impersonation session persistence:
//
//	CONSOLE_REDIS_ENABLED="true"
//	CONSOLE_REDIS_ADDR="localhost:6379"
//	CONSOLE_REDIS_SESSION_TTL="12h"
//
// Audit log:
//
//	CONSOLE_AUDIT_PATH="console-audit.db"
//	CONSOLE_AUDIT_RETENTION_DAYS="90"
//	CONSOLE_AUDIT_PRUNE_SCHEDULE="0 3 * * *"
//
// Permission catalog overlay:
//
//	CONSOLE_CATALOG_OVERLAY="/etc/console/catalog.yaml"
//	CONSOLE_CATALOG_WATCH="true"
//
// Observability settings:
//
//	CONSOLE_LOG_LEVEL="info"  # debug, info, warn, error
//	CONSOLE_METRICS_ENABLED="true"
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Server: %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//	fmt.Printf("Roles storage: %s\n", cfg.Roles.StorageType)
//
// # Related Packages
//
//   - pkg/keycloak: Uses identity provider configuration
//   - pkg/observability: Uses observability configuration
package config
