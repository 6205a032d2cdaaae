package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/account-gateway/internal/application/account"
	"github.com/baechuer/account-gateway/internal/config"
	rediscache "github.com/baechuer/account-gateway/internal/infrastructure/caching/redis"
	"github.com/baechuer/account-gateway/internal/infrastructure/db/postgres"
	"github.com/baechuer/account-gateway/internal/infrastructure/memory"
	rabbitpub "github.com/baechuer/account-gateway/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/account-gateway/internal/logger"
	"github.com/baechuer/account-gateway/internal/security"
	"github.com/baechuer/account-gateway/internal/transport/http/handlers"
	"github.com/baechuer/account-gateway/internal/transport/http/router"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Cache     *rediscache.Client
	Publisher *rabbitpub.Publisher
}

// Close releases everything the app opened. Safe on a partially built App.
func (a *App) Close() {
	if a.Publisher != nil {
		_ = a.Publisher.Close()
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type realServer struct{ *http.Server }

func (r realServer) Addr() string { return r.Server.Addr }

type serverBuilder func() (httpServer, func(), error)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("config load failed")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	code := Run(func() (httpServer, func(), error) { return build(cfg) }, sigCh, zlog.Logger)
	os.Exit(code)
}

// Run serves until a signal arrives or the server fails, then drains.
func Run(b serverBuilder, sigCh <-chan os.Signal, lg zerolog.Logger) int {
	srv, cleanup, err := b()
	if err != nil {
		lg.Error().Err(err).Msg("bootstrap failed")
		return 1
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		lg.Error().Err(err).Msg("server crashed")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown failed")
		_ = srv.Close()
	}

	lg.Info().Msg("shutdown complete")
	return 0
}

func build(cfg *config.Config) (httpServer, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, db, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	app, err := NewApp(cfg, store)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, nil, err
	}
	app.DB = db

	return realServer{app.Server}, app.Close, nil
}

// openStore picks the backing store from DB_DRIVER. The returned *sql.DB is
// nil for the memory store.
func openStore(ctx context.Context, cfg *config.Config) (account.Store, *sql.DB, error) {
	if cfg.DBDriver == "memory" {
		zlog.Warn().Msg("DB_DRIVER=memory: accounts are not persisted")
		return memory.NewAccountStore(), nil, nil
	}

	if u, err := url.Parse(cfg.DatabaseURL); err == nil {
		zlog.Info().
			Str("db_driver", cfg.DBDriver).
			Str("db_user", u.User.Username()).
			Str("db_host", u.Host).
			Str("db_db", u.Path).
			Msg("db config loaded")
	}

	db, err := postgres.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	if cfg.DBAutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		zlog.Info().Msg("db migrations applied")
	}
	return postgres.New(db), db, nil
}

func NewApp(cfg *config.Config, store account.Store) (*App, error) {
	app := &App{Config: cfg}

	// 1) Infrastructure
	opts := []account.Option{account.WithStoreTimeout(cfg.StoreTimeout)}

	if cfg.RedisURL != "" {
		c, err := rediscache.New(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis init: %w", err)
		}
		app.Cache = c
		opts = append(opts, account.WithCache(c, cfg.CacheTTL))
		zlog.Info().Dur("ttl", cfg.CacheTTL).Msg("account cache ready")
	} else {
		zlog.Warn().Msg("REDIS_URL empty: account lookups are not cached")
	}

	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("rabbit publisher init: %w", err)
		}
		app.Publisher = p
		opts = append(opts, account.WithPublisher(p))
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: account changes will not be published")
	}

	// 2) Application
	svc := account.New(store, opts...)

	// 3) Transport
	h := handlers.NewAccountsHandler(svc)
	gate := security.NewAPIKeyGate(cfg.APIKeys)

	deps := map[string]handlers.Pinger{}
	if p, ok := store.(handlers.Pinger); ok {
		deps["store"] = p
	}
	if app.Cache != nil {
		deps["cache"] = app.Cache
	}
	z := handlers.NewHealthHandler(deps)

	// 4) Router
	httpHandler := router.New(h, gate, z, cfg)

	// 5) Server
	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
	return app, nil
}
