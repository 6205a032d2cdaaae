package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/account-gateway/internal/config"
	"github.com/baechuer/account-gateway/internal/infrastructure/db/postgres"
	"github.com/baechuer/account-gateway/internal/infrastructure/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		HTTPAddr:           ":8081",
		DBDriver:           "memory",
		StoreTimeout:       time.Second,
		APIKeys:            []string{"key1"},
		CacheTTL:           time.Minute,
		RabbitExchange:     "user.accounts",
		CORSAllowedOrigins: []string{"*"},
		HTTPReadTimeout:    5 * time.Second,
	}
}

func TestNewApp(t *testing.T) {
	t.Run("should_correctly_wire_dependencies", func(t *testing.T) {
		cfg := testConfig()
		app, err := NewApp(cfg, memory.NewAccountStore())
		require.NoError(t, err)
		defer app.Close()

		assert.Equal(t, cfg.HTTPAddr, app.Server.Addr)
		assert.Equal(t, cfg.HTTPReadTimeout, app.Server.ReadTimeout)
		assert.NotNil(t, app.Server.Handler, "HTTP Handler should be initialized")
		assert.Nil(t, app.Cache)
		assert.Nil(t, app.Publisher)

		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/user_accounts?api-key=key1", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("wires_redis_cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig()
		cfg.RedisURL = "redis://" + mr.Addr()

		app, err := NewApp(cfg, memory.NewAccountStore())
		require.NoError(t, err)
		defer app.Close()
		require.NotNil(t, app.Cache)

		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("bad_redis_url_fails", func(t *testing.T) {
		cfg := testConfig()
		cfg.RedisURL = "not-a-url://"

		_, err := NewApp(cfg, memory.NewAccountStore())
		assert.Error(t, err)
	})
}

func TestOpenStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, db, err := openStore(context.Background(), testConfig())
		require.NoError(t, err)
		assert.Nil(t, db)
		assert.IsType(t, &memory.AccountStore{}, store)
	})

	t.Run("sql_driver", func(t *testing.T) {
		mockDB, _, err := sqlmock.NewWithDSN("account_gateway_open_store")
		require.NoError(t, err)
		defer mockDB.Close()

		cfg := testConfig()
		cfg.DBDriver = "sqlmock"
		cfg.DatabaseURL = "account_gateway_open_store"

		store, db, err := openStore(context.Background(), cfg)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()
		assert.IsType(t, &postgres.Repo{}, store)
	})
}

type fakeServer struct {
	mu       sync.Mutex
	listen   chan error
	shutdown bool
	closed   bool
	failStop bool
}

func newFakeServer() *fakeServer { return &fakeServer{listen: make(chan error, 1)} }

func (s *fakeServer) ListenAndServe() error { return <-s.listen }

func (s *fakeServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
	if s.failStop {
		return errors.New("stuck")
	}
	s.listen <- http.ErrServerClosed
	return nil
}

func (s *fakeServer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeServer) Addr() string { return ":0" }

func TestRun(t *testing.T) {
	lg := zerolog.Nop()

	t.Run("bootstrap_error", func(t *testing.T) {
		code := Run(func() (httpServer, func(), error) {
			return nil, nil, errors.New("boom")
		}, make(chan os.Signal), lg)
		assert.Equal(t, 1, code)
	})

	t.Run("signal_triggers_graceful_shutdown", func(t *testing.T) {
		srv := newFakeServer()
		cleaned := false
		sigCh := make(chan os.Signal, 1)
		sigCh <- syscall.SIGTERM

		code := Run(func() (httpServer, func(), error) {
			return srv, func() { cleaned = true }, nil
		}, sigCh, lg)

		assert.Equal(t, 0, code)
		assert.True(t, srv.shutdown)
		assert.False(t, srv.closed)
		assert.True(t, cleaned)
	})

	t.Run("failed_shutdown_forces_close", func(t *testing.T) {
		srv := newFakeServer()
		srv.failStop = true
		sigCh := make(chan os.Signal, 1)
		sigCh <- os.Interrupt

		code := Run(func() (httpServer, func(), error) {
			return srv, func() {}, nil
		}, sigCh, lg)

		assert.Equal(t, 0, code)
		assert.True(t, srv.closed)
	})

	t.Run("server_crash", func(t *testing.T) {
		srv := newFakeServer()
		srv.listen <- errors.New("address in use")

		code := Run(func() (httpServer, func(), error) {
			return srv, func() {}, nil
		}, make(chan os.Signal), lg)

		assert.Equal(t, 1, code)
	})
}
