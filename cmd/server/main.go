package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"anamnesis/internal/anamnesis/completion"
	"anamnesis/internal/anamnesis/handler"
	anamnesisMetrics "anamnesis/internal/anamnesis/metrics"
	"anamnesis/internal/anamnesis/remote"
	"anamnesis/internal/anamnesis/repository"
	jwttoken "anamnesis/internal/jwt_token"
	"anamnesis/internal/platform/config"
	"anamnesis/internal/platform/httpserver"
	"anamnesis/internal/platform/logger"
	"anamnesis/internal/platform/metrics"
	id "anamnesis/pkg/domain"
	"anamnesis/pkg/platform/httputil"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Server.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	kv, err := newKVStore(ctx, cfg.Anamnesis.KVBackend, deps)
	if err != nil {
		return err
	}

	auditor, auditDone := startAudit(ctx, cfg.Kafka, deps, log)
	// Runs before infra.Close so buffered audit events reach Kafka.
	defer func() {
		stop()
		<-auditDone
	}()

	appMetrics := anamnesisMetrics.New()
	remoteClient := remote.New(cfg.Remote,
		remote.WithMetrics(appMetrics),
		remote.WithLogger(log),
	)
	repo := repository.New(remoteClient, kv,
		repository.WithCache(newQuestionCache(cfg.Anamnesis.QuestionCacheTTL, deps)),
		repository.WithMetrics(appMetrics),
		repository.WithLogger(log),
	)
	validator := completion.New(repo, completion.NewKVFlagStore(kv),
		completion.WithAuditor(auditor),
		completion.WithMetrics(appMetrics),
		completion.WithLogger(log),
	)

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	anamnesisHandler := handler.New(repo, validator, localeConfig(cfg.Anamnesis, log), log, metrics.New(),
		jwttoken.NewJWTServiceAdapter(jwtService))

	r := chi.NewRouter()
	r.Get("/health", healthHandler(deps, remoteClient))
	r.Handle("/metrics", promhttp.Handler())
	anamnesisHandler.Register(r)

	srv := httpserver.New(cfg.Server.Addr, r)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting anamnesis", "addr", cfg.Server.Addr, "kv_backend", cfg.Anamnesis.KVBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func localeConfig(cfg config.AnamnesisConfig, log *slog.Logger) handler.LocaleConfig {
	def, err := id.ParseLocale(cfg.DefaultLocale)
	if err != nil {
		log.Warn("invalid default locale, using pt-BR", "locale", cfg.DefaultLocale)
		def = "pt-BR"
	}
	supported := make([]id.Locale, 0, len(cfg.SupportedLocales))
	for _, raw := range cfg.SupportedLocales {
		l, err := id.ParseLocale(raw)
		if err != nil {
			log.Warn("ignoring invalid locale", "locale", raw)
			continue
		}
		supported = append(supported, l)
	}
	return handler.LocaleConfig{Default: def, Supported: supported}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Breaker string            `json:"remote_breaker"`
}

func healthHandler(deps *infra, remoteClient *remote.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: map[string]string{}, Breaker: remoteClient.BreakerState().String()}
		for name, err := range deps.Health(ctx) {
			if err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = err.Error()
				continue
			}
			resp.Checks[name] = "ok"
		}
		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, resp)
	}
}
