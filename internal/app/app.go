// Package app wires configuration, storage, the compiler and the HTTP
// transport into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/czechplus-backend/internal/adapter/postgres"
	"github.com/heartmarshall/czechplus-backend/internal/adapter/postgres/note"
	"github.com/heartmarshall/czechplus-backend/internal/config"
	"github.com/heartmarshall/czechplus-backend/internal/processor"
	"github.com/heartmarshall/czechplus-backend/internal/service/compiler"
	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql"
	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql/dataloader"
	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql/resolver"
	"github.com/heartmarshall/czechplus-backend/internal/transport/middleware"
	"github.com/heartmarshall/czechplus-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects to the
// database and serves the GraphQL API and the health endpoints until ctx is
// cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svc, reg, err := NewCompiler(logger, pool, cfg)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := NewRouter(cfg, logger, limiter,
		rest.NewHealthHandler(pool, reg.NoteTypes(), BuildVersion()),
		graphql.NewHandler(logger, resolver.NewResolver(logger, svc, reg.NoteTypes())),
		&dataloader.Repos{Note: note.New(pool)},
	)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, logger, srv, cfg.Server.ShutdownTimeout)
}

// serve runs srv until ctx is done or the listener fails.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// NewCompiler builds the processor registry and the compiler service on top
// of pool.
func NewCompiler(logger *slog.Logger, pool *pgxpool.Pool, cfg *config.Config) (*compiler.Service, *processor.Registry, error) {
	reg, err := processor.NewRegistry(logger, cfg.Cards)
	if err != nil {
		return nil, nil, fmt.Errorf("build processors: %w", err)
	}

	svc := compiler.NewService(logger, note.New(pool), postgres.NewTxManager(pool), reg, cfg.Compiler)
	return svc, reg, nil
}
