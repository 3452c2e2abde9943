// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/civic-pulse/auth"
	"github.com/danielhkuo/civic-pulse/cliparse"
	"github.com/danielhkuo/civic-pulse/db"
	"github.com/danielhkuo/civic-pulse/logging"
	"github.com/danielhkuo/civic-pulse/router"
	"github.com/danielhkuo/civic-pulse/storage"
	"github.com/danielhkuo/civic-pulse/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "civic-pulse:", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}

	log, err := logging.Init(logging.Config{Dir: cfg.LogDir, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Error("storage setup failed", zap.Error(err))
		return err
	}
	defer closeBackend()

	verifier, err := auth.NewVerifier(cfg.AdminPassphrase, cfg.AdminPassphraseHash)
	if err != nil {
		return err
	}
	gate := auth.NewGate(verifier, cfg.AdminTokenSalt, auth.WithTokenTTL(cfg.AdminTokenTTL))

	st := store.New(backend, store.WithKey(cfg.StorageKey), store.WithLogger(log.Named("store")))
	log.Info("response store ready", zap.Int("responses", st.Count(ctx)), zap.String("key", cfg.StorageKey))

	// Create server
	server := &http.Server{
		Handler:           router.NewRouter(st, gate, cfg, log.Named("http")),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts end on shutdown so event streams return
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Listening", zap.Int("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return server.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server closed", zap.Error(err))
		return err
	}
	log.Info("Server closed")
	return nil
}

// openBackend connects the configured storage and returns its closer
func openBackend(ctx context.Context, cfg cliparse.Config, log *zap.Logger) (storage.Backend, func(), error) {
	if cfg.DatabaseType == db.TypeMemory {
		log.Warn("using in-memory storage; responses are lost on exit")
		return storage.NewMemory(), func() {}, nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	log.Info("Database schema ready", zap.String("type", cfg.DatabaseType))

	return storage.NewSQL(conn), closer(conn, log), nil
}

func closer(conn *sql.DB, log *zap.Logger) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}
}
