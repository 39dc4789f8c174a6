package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	redis "github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/kfone/console/pkg/api"
	"github.com/kfone/console/pkg/audit"
	"github.com/kfone/console/pkg/catalog"
	"github.com/kfone/console/pkg/config"
	"github.com/kfone/console/pkg/keycloak"
	"github.com/kfone/console/pkg/middleware"
	"github.com/kfone/console/pkg/observability"
	"github.com/kfone/console/pkg/roles"
	"github.com/kfone/console/pkg/session"
	"github.com/kfone/console/pkg/tenants"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.WithField("version", observability.Version).Info("Starting admin console")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var registry *prometheus.Registry
	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		registry = prometheus.NewRegistry()
		metrics = observability.NewMetrics(registry)
	}

	// Stores.
	tenantStore := tenants.NewFixtureStore()

	var db *sql.DB
	var roleStore roles.Store
	switch cfg.Roles.StorageType {
	case "postgres":
		db, err = sql.Open("postgres", cfg.Roles.PostgresURL)
		if err != nil {
			return fmt.Errorf("failed to open roles database: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping roles database: %w", err)
		}
		roleStore = roles.NewPostgresStore(db)
		if metrics != nil {
			metrics.StartDBStatsCollector(ctx, db, 15*time.Second)
		}
		logger.Info("Role templates stored in Postgres")
	default:
		roleStore = roles.NewMemoryStoreWithBuiltins()
		logger.Info("Role templates stored in memory")
	}

	auditStore, err := audit.NewStore(cfg.Audit.Path)
	if err != nil {
		return err
	}
	defer auditStore.Close()

	retention := audit.NewRetentionJob(auditStore, cfg.Audit.RetentionDays, cfg.Audit.PruneSchedule, logger)
	if err := retention.Start(); err != nil {
		return fmt.Errorf("failed to start audit retention job: %w", err)
	}
	defer retention.Stop()

	// Redis persists the impersonation whitelist across restarts and backs
	// the shared impersonation rate limit.
	var redisClient *redis.Client
	var limiter *middleware.DistributedRateLimiter
	sessionOpts := []session.Option{}
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			// Redis only degrades session persistence; keep starting.
			logger.WithError(err).Warn("Redis unreachable at startup")
		}
		sessionOpts = append(sessionOpts,
			session.WithPersistence(session.NewRedisStore(redisClient, cfg.Redis.SessionTTL)))
		limiter = middleware.NewDistributedRateLimiter(redisClient,
			middleware.ImpersonationRateLimitConfig(), "")
	}

	// Identity provider.
	var provider *keycloak.Provider
	var impersonator *keycloak.Impersonator
	if cfg.Keycloak.Enabled {
		provider, err = keycloak.NewProvider(ctx, cfg.Keycloak.Config)
		if err != nil {
			return fmt.Errorf("failed to initialize Keycloak provider: %w", err)
		}
		impersonator, err = keycloak.NewImpersonator(cfg.Keycloak.Config, nil)
		if err != nil {
			return err
		}
		sessionOpts = append(sessionOpts, session.WithRefresher(provider))
		logger.WithField("realm", cfg.Keycloak.Realm).Info("Keycloak authentication enabled")
	} else {
		logger.Warn("Authentication disabled; all routes are open")
	}
	sessions := session.NewRegistry(sessionOpts...)

	// Permission catalog, with the optional file overlay.
	holder := catalog.NewHolder(catalog.Default())
	if cfg.Catalog.OverlayPath != "" {
		c, err := catalog.Load(cfg.Catalog.OverlayPath)
		if err != nil {
			return fmt.Errorf("failed to load catalog overlay: %w", err)
		}
		holder.Set(c)
		if cfg.Catalog.Watch {
			onError := func(err error) {
				if metrics != nil {
					metrics.CatalogReloadsTotal.WithLabelValues("failure").Inc()
				}
				logger.WithError(err).Error("Catalog overlay reload failed")
			}
			if err := catalog.Watch(ctx, cfg.Catalog.OverlayPath, holder, onError); err != nil {
				return err
			}
			logger.WithField("path", cfg.Catalog.OverlayPath).Info("Watching catalog overlay")
		}
	}

	server := api.NewServer(api.Options{
		Logger:               logger,
		Metrics:              metrics,
		Tenants:              tenantStore,
		Roles:                roleStore,
		Catalog:              holder,
		OverlayPath:          cfg.Catalog.OverlayPath,
		Sessions:             sessions,
		Provider:             providerOrNil(provider),
		Impersonator:         impersonatorOrNil(impersonator),
		Audit:                auditStore,
		AuditSearch:          auditStore,
		ImpersonationLimiter: limiter,
		AllowedOrigins:       cfg.Server.AllowedOrigins,
	})

	apiSrv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Health and metrics on their own port for probes and scrapers.
	healthMux := http.NewServeMux()
	observability.RegisterHealthRoutes(healthMux, observability.NewHealthChecker(db, redisClient))
	if registry != nil {
		observability.RegisterMetricsEndpoint(healthMux, registry)
	}
	healthSrv := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: healthMux,
	}

	shutdown := observability.NewShutdownManager(logger, apiSrv, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return healthSrv.Shutdown(ctx)
	})
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		cancel()
		return nil
	})

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", apiSrv.Addr).Info("API server listening")
		if err := apiSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.WithField("addr", healthSrv.Addr).Info("Health server listening")
		if err := healthSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return shutdown.WaitForShutdown()
	})

	return g.Wait()
}

// providerOrNil keeps a typed nil *keycloak.Provider from masquerading as a
// non-nil api.AuthProvider.
func providerOrNil(p *keycloak.Provider) api.AuthProvider {
	if p == nil {
		return nil
	}
	return p
}

func impersonatorOrNil(i *keycloak.Impersonator) api.UserImpersonator {
	if i == nil {
		return nil
	}
	return i
}
