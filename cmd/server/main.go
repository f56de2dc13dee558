package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/homebills/internal/auth"
	"github.com/mmynk/homebills/internal/config"
	"github.com/mmynk/homebills/internal/middleware"
	"github.com/mmynk/homebills/internal/reminder"
	"github.com/mmynk/homebills/internal/server"
	"github.com/mmynk/homebills/internal/storage/sqlite"
	"github.com/mmynk/homebills/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authn := auth.NewPasswordAuthenticator(store)
	srv := server.New(store, authn, jwtManager)

	mux := http.NewServeMux()
	mux.Handle("/api/", srv.Handler())
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if cfg.ReminderSchedule != "" {
		job := reminder.NewJob(store)
		scheduler := cron.New()
		if _, err := scheduler.AddJob(cfg.ReminderSchedule, job); err != nil {
			slog.Error("Invalid reminder schedule", "schedule", cfg.ReminderSchedule, "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
		slog.Info("Reminder job scheduled", "schedule", cfg.ReminderSchedule)
	}

	handler := middleware.Logging(middleware.Metrics(mux))

	// h2c lets clients speak HTTP/2 without TLS; a reverse proxy
	// terminates TLS in front of this server.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
