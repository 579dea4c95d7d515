package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/mobkc/internal/config"
	"github.com/jwebster45206/mobkc/internal/handlers"
	"github.com/jwebster45206/mobkc/internal/logger"
	"github.com/jwebster45206/mobkc/internal/metrics"
	"github.com/jwebster45206/mobkc/internal/services/events"
	"github.com/jwebster45206/mobkc/internal/storage"
	"github.com/jwebster45206/mobkc/pkg/settings"
	"github.com/jwebster45206/mobkc/pkg/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout belongs to the UI
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()
	log := logger.SetupTo(logFile, cfg)

	if err := run(cfg, log); err != nil {
		log.Error("Console exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	registry := prometheus.NewRegistry()
	notifiers := []tracker.Notifier{metrics.NewRecorder(registry)}

	health := make(map[string]handlers.Pinger)
	var store settings.Store = settings.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisStore, err := storage.NewRedisStore(cfg.RedisURL, log)
		if err != nil {
			return err
		}
		defer func() {
			_ = redisStore.Close()
		}()

		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := redisStore.WaitForConnection(waitCtx, 15, 2*time.Second); err != nil {
			return fmt.Errorf("failed to connect to settings store: %w", err)
		}
		store = redisStore
		health["settings_store"] = redisStore

		if cfg.EventsEnabled {
			b := events.NewBroadcaster(redisStore.Client(), cfg.ConfigGroup, log)
			notifiers = append(notifiers, b)
			log.Info("Broadcasting tracker events", "channel", events.Channel(cfg.ConfigGroup), "session_id", b.SessionID())
		}
	} else {
		log.Info("No REDIS_URL set, kill counts will not outlive this process")
	}

	s := settings.New(store, cfg.ConfigGroup, log)
	tr := tracker.New(s, log, tracker.WithNotifiers(notifiers...))
	tr.Initialize(ctx)
	// Flush however the program ends
	defer tr.Shutdown(ctx)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		mux.Handle("/health", handlers.NewHealthHandler(health, log))
		mux.Handle("/kc", handlers.NewKCHandler(tr, log))

		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info("Serving metrics and health", "addr", cfg.MetricsAddr)
	}

	p := tea.NewProgram(NewConsoleUI(cfg, newSession(ctx, tr, s)),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
