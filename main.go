package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/quick-poll/cliparse"
	"github.com/danielhkuo/quick-poll/db"
	"github.com/danielhkuo/quick-poll/metrics"
	"github.com/danielhkuo/quick-poll/poll"
	"github.com/danielhkuo/quick-poll/router"
	"github.com/danielhkuo/quick-poll/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg, os.Stderr))

	// Open storage
	s, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store setup failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Store ready", "store", cfg.StoreType)

	repo := poll.NewRepository(s)

	if cfg.SeedSamplePoll {
		if _, err := repo.SeedIfEmpty(context.Background()); err != nil {
			slog.Error("sample poll creation failed", "error", err)
		}
	}

	// Create router
	handler := router.NewRouter(repo, cfg, metrics.New())

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight votes finish saving
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

func newLogger(cfg cliparse.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openStore returns the configured store and a function releasing it
func openStore(cfg cliparse.Config) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreType {
	case cliparse.StoreFile:
		return store.NewFileStore(cfg.DataDir), noop, nil
	case cliparse.StoreMemory:
		slog.Warn("memory store selected, polls are lost on restart")
		return store.NewMemoryStore(), noop, nil
	case cliparse.StoreSQLite, cliparse.StorePostgres:
		if cfg.StoreType == cliparse.StoreSQLite {
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		conn, err := db.Open(cfg.StoreType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewSQLStore(conn), func() { conn.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}
}
