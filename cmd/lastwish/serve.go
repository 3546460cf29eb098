package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ArtieFishal/lastwish"
	"github.com/ArtieFishal/lastwish/internal/api"
	"github.com/ArtieFishal/lastwish/internal/config"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// runServe serves document generation over HTTP until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if flags.workers < 0 || flags.workers > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, flags.workers, config.MaxWorkers)
	}

	cfg, err := resolveConfig(flags.common, flags.document, flags.images)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.workers > 0 {
		cfg.Server.Workers = flags.workers
	}

	logger, err := newLogger(cfg, flags.common, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	gen, err := lastwish.NewGenerator(generatorOptions(cfg, env, logger)...)
	if err != nil {
		return err
	}

	pool := lastwish.NewGeneratorPool(gen, lastwish.ResolvePoolSize(cfg.Server.Workers))
	defer pool.Close()

	router := api.NewRouter(pool, api.Options{
		Version:      Version,
		Jurisdiction: defaultJurisdiction(cfg),
		Logger:       logger.Named("http"),
	})

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Server.Addr, err)
	}

	logger.Info("serving",
		zap.String("addr", ln.Addr().String()),
		zap.Int("workers", pool.Size()),
		zap.Bool("images", cfg.Images.Enabled))

	return serve(ctx, ln, router.Handler(), logger)
}

// serve runs srv on ln and shuts it down gracefully when ctx is done.
func serve(ctx context.Context, ln net.Listener, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
