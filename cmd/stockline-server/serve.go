package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stockline/stockline/internal/api"
	"github.com/stockline/stockline/internal/assistant"
	"github.com/stockline/stockline/internal/auth"
	"github.com/stockline/stockline/internal/config"
	"github.com/stockline/stockline/internal/db"
	"github.com/stockline/stockline/internal/db/migrations"
	"github.com/stockline/stockline/internal/dbpool"
	"github.com/stockline/stockline/internal/llm"
	"github.com/stockline/stockline/internal/service"
	"github.com/stockline/stockline/internal/store"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and metrics listeners",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log, !skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logrus.Logger, migrate bool) error {
	gin.SetMode(gin.ReleaseMode)

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), dbpool.Options{
		MaxConns:         cfg.DBMaxConns,
		StatementTimeout: cfg.DBStatementTimeout,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if migrate {
		if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
			return err
		}
	}

	base := store.Base{Pool: pool, Log: log}
	identity := store.NewIdentityStore(base)
	audit := service.NewAuditService(store.NewAuditStore(base), log)

	catalog, err := store.NewCatalogStore(base).LoadCatalog(ctx)
	if err != nil || len(catalog) == 0 {
		log.WithError(err).Warn("catalog discovery failed, using built-in table list")
		catalog = nil
	}

	model, err := llm.New(ctx, llm.Config{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey.Value(),
		BaseURL:  cfg.LLMBaseURL,
		Model:    cfg.LLMModel,
		Timeout:  cfg.LLMTimeout,
	})
	if err != nil {
		return err
	}
	if c, ok := model.(interface{ Close() error }); ok {
		defer c.Close() //nolint:errcheck
	}

	chat := assistant.New(assistant.Deps{
		Composer:  assistant.NewComposer(assistant.PromptConfig{AppName: cfg.AssistantName, Catalog: catalog}),
		Model:     model,
		Executor:  store.NewQueryStore(base),
		Auditor:   audit,
		Customers: store.NewCustomerStore(base),
		Log:       log,
	})

	var resolver auth.Resolver = auth.NewAPIKeyResolver(identity)
	if cfg.AuthProvider == config.AuthProviderJWT {
		resolver = auth.NewJWTResolver(cfg.JWTSecret.Value())
	}

	handler := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		DB:          pool,
		Chat:        chat,
		Audit:       audit,
		Stats:       store.NewStatsStore(base),
		Resolver:    resolver,
		CORSOrigins: cfg.CORSOrigins,
		Health: api.HealthInfo{
			Version:       config.Version,
			SchemaVersion: db.SchemaVersion(),
			ModelProvider: model.Provider(),
			Model:         cfg.LLMModel,
		},
	})

	apiServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return listen(log, "api", apiServer) })
	g.Go(func() error { return listen(log, "metrics", metricsServer) })
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(apiServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

func listen(log *logrus.Logger, name string, srv *http.Server) error {
	log.WithFields(logrus.Fields{"listener": name, "addr": srv.Addr}).Info("listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).WithField("listener", name).Error("listener failed")
		return err
	}

	return nil
}
