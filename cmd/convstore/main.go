package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"convstore/pkg/api"
	"convstore/pkg/backup"
	"convstore/pkg/banner"
	"convstore/pkg/config"
	"convstore/pkg/conversation"
	"convstore/pkg/logger"
	"convstore/pkg/models"
	"convstore/pkg/state"
	"convstore/pkg/store"
)

func main() {
	// build metadata - set via ldflags during build/release
	var version = "dev"

	_ = godotenv.Load(".env")
	flags := config.ParseCommandFlags()
	cfgPath := config.ResolveConfigPath(flags.Config, flags.Set["config"])

	cfg, err := config.LoadEffective(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Flags win over config/env when explicitly provided.
	addr := cfg.Addr()
	if flags.Set["addr"] {
		addr = flags.Addr
	}
	dbPath := flags.DB
	if !flags.Set["db"] && cfg.Storage.DBPath != "" {
		dbPath = cfg.Storage.DBPath
	}

	logger.InitWithLevel(cfg.Logging.Level)

	if err := state.EnsureStateDirs(dbPath); err != nil {
		log.Fatalf("failed to prepare state dirs: %v", err)
	}
	if err := store.Open(state.PathsVar.Store); err != nil {
		log.Fatalf("failed to open pebble at %s: %v", state.PathsVar.Store, err)
	}

	adapter := store.NewSnapshotStore(store.PebbleKV{}, cfg.Storage.SnapshotKey)
	if !adapter.Probe() {
		logger.Warn("durable_store_unusable", "path", state.PathsVar.Store)
	}

	opts := conversation.Options{
		SelfLabel:    cfg.Conversation.SelfLabel,
		PreviewWidth: cfg.Conversation.PreviewWidth,
	}
	if cfg.Conversation.NoticeTTL > 0 {
		opts.NoticeTTL = time.Duration(cfg.Conversation.NoticeTTL) * time.Second
	}
	if s := cfg.Conversation.Seed; s.Name != "" {
		opts.Seed = &conversation.Seed{
			Name:     s.Name,
			Avatar:   s.Avatar,
			Kind:     models.CounterpartyKind(s.Kind),
			Greeting: s.Greeting,
		}
	}
	conv := conversation.New(adapter, opts)

	ctx, cancel := context.WithCancel(context.Background())
	stopBackup, err := backup.Start(ctx, conv, state.PathsVar.Backup, cfg.Backup.Cron, cfg.Backup.Enabled)
	if err != nil {
		log.Fatalf("failed to start backup scheduler: %v", err)
	}

	srcs := []string{}
	if len(flags.Set) > 0 {
		srcs = append(srcs, "flags")
	}
	if _, err := config.Load(cfgPath); err == nil {
		srcs = append(srcs, "config")
	}
	banner.Print(addr, dbPath, strings.Join(srcs, ", "), version)

	mux := http.NewServeMux()
	mux.Handle("/", api.NewRouter(conv))
	mux.Handle("/docs/", httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))
	mux.Handle("/openapi.yaml", http.FileServer(http.Dir(filepath.Join(".", "docs"))))
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigc
		logger.Info("signal_received", "signal", s.String())
		cancel()
		stopBackup()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
		if err := store.Close(); err != nil {
			logger.Error("store_close_failed", "error", err)
		}
	}()

	logger.Info("server_listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server exit: %v", err)
	}
	logger.Info("server_stopped")
}
