package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/reviewui/api"
	"github.com/use-agent/reviewui/client"
	"github.com/use-agent/reviewui/config"
	"github.com/use-agent/reviewui/logging"
	"github.com/use-agent/reviewui/metrics"
	"github.com/use-agent/reviewui/session"
	"github.com/use-agent/reviewui/ui"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	logging.Init(cfg.Log, os.Stdout)
	slog.Info("reviewui starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"backend", cfg.Backend.BaseURL,
		"allowOverlap", cfg.UI.AllowOverlappingSubmits,
	)

	// ── 3. Backend client and metrics ───────────────────────────────
	m := metrics.New()
	cl := client.New(cfg.Backend.BaseURL,
		client.WithTimeout(cfg.Backend.Timeout),
		client.WithMetrics(m),
	)

	// ── 4. Session store: one page + controller per browser ────────
	store := session.New(cfg.Session.MaxEntries, cfg.Session.TTL, func(page *ui.Page) *ui.Controller {
		page.SetValue(ui.WebsiteSelect, cfg.UI.DefaultWebsite)
		page.SetValue(ui.MaxReviews, cfg.UI.DefaultMaxReviews)
		return ui.NewController(cl, page, ui.Options{
			AllowOverlappingSubmits: cfg.UI.AllowOverlappingSubmits,
			Metrics:                 m,
		})
	})

	// ── 5. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(store, cfg, m, time.Now())

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("reviewui stopped")
}
