package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"palmyst/api/internal/config"
	"palmyst/api/internal/handle"
	"palmyst/api/internal/httpserver"
	"palmyst/api/internal/inference/gemini"
	"palmyst/api/internal/logger"
	"palmyst/api/internal/mailer"
	"palmyst/api/internal/metrics"
	"palmyst/api/internal/notify"
	"palmyst/api/internal/prompt"
	"palmyst/api/internal/reading"
	"palmyst/api/internal/store"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API:

  POST /api/analyze     validate a palm photo and generate a reading
  POST /api/send-email  email a stored reading to the user
  GET  /healthz         database check
  GET  /metrics         Prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "create the schema before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := store.Dialect(cfg.DatabaseType)
	db, err := store.Open(ctx, d, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("database connected", zap.String("type", cfg.DatabaseType), zap.String("db", config.SafeDSNSummary(cfg.DatabaseURL)))

	if serveMigrate {
		if err := store.Migrate(ctx, db, d); err != nil {
			return err
		}
	}

	prompts, err := prompt.Load(cfg.PromptFile)
	if err != nil {
		return err
	}

	llm, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}
	defer llm.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	repo := store.NewReadingRepo(db, d)
	pipeline := reading.New(llm, repo, prompts, log, m)
	dispatcher := notify.New(repo, mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.GmailAddress, cfg.GmailAppPassword), cfg.GmailAddress, log, m)

	h := handle.New(pipeline, dispatcher, log, cfg.RequestTimeout).WithHealthCheck(db.PingContext)

	r := httpserver.NewRouter(log, cfg.MaxBodyBytes)
	h.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// two inference calls and an insert must fit in one response
	srv := httpserver.New(":"+cfg.Port, r, cfg.RequestTimeout+30*time.Second)

	errCh := make(chan error, 1)
	go func() {
		log.Info("palmyst listening", zap.String("addr", srv.Addr), zap.String("model", cfg.GeminiModel))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
