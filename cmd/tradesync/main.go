package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/recallnet/js-recall-sub004/internal/alert"
	"github.com/recallnet/js-recall-sub004/internal/chain"
	"github.com/recallnet/js-recall-sub004/internal/chain/evm"
	"github.com/recallnet/js-recall-sub004/internal/chain/evm/rpc"
	"github.com/recallnet/js-recall-sub004/internal/chain/ratelimit"
	"github.com/recallnet/js-recall-sub004/internal/config"
	"github.com/recallnet/js-recall-sub004/internal/sink/kafka"
	redispkg "github.com/recallnet/js-recall-sub004/internal/store/redis"
	"github.com/recallnet/js-recall-sub004/internal/swap"
	"github.com/recallnet/js-recall-sub004/internal/syncer"
	"github.com/recallnet/js-recall-sub004/internal/tracing"
)

const serviceName = "tradesync"

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildSources(cfg *config.Config, logger *slog.Logger) ([]chain.Source, error) {
	sources := make([]chain.Source, 0, len(cfg.Chains))
	for _, cc := range cfg.Chains {
		client := rpc.NewClient(cc.RPCURL, logger)
		limiter := ratelimit.NewLimiter(cc.RateLimitRPS, cc.RateLimitBurst, cc.Chain.String())
		src, err := evm.NewSource(cc.Chain, client, logger, evm.WithRateLimiter(limiter))
		if err != nil {
			return nil, fmt.Errorf("build source %s: %w", cc.Chain, err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func buildAlerter(cfg config.AlertConfig, logger *slog.Logger) alert.Alerter {
	var channels []alert.Alerter
	if cfg.SlackWebhookURL != "" {
		channels = append(channels, alert.NewSlackAlerter(cfg.SlackWebhookURL))
	}
	if cfg.WebhookURL != "" {
		channels = append(channels, alert.NewWebhookAlerter(cfg.WebhookURL))
	}
	if len(channels) == 0 {
		return &alert.NoopAlerter{}
	}
	return alert.NewMultiAlerter(cfg.Cooldown, logger, channels...)
}

type providerHealth interface {
	Name() string
	IsHealthy(ctx context.Context) bool
}

type syncHealth interface {
	Healthy() bool
	Health() []syncer.HealthSnapshot
}

type healthResponse struct {
	Status   string                  `json:"status"`
	Provider string                  `json:"provider"`
	Chains   []syncer.HealthSnapshot `json:"chains"`
}

func healthHandler(provider providerHealth, syncState syncHealth, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Provider: provider.Name(), Chains: syncState.Health()}
		code := http.StatusOK
		if !provider.IsHealthy(ctx) || !syncState.Healthy() {
			resp.Status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Warn("failed to write health response", "error", err)
		}
	}
}

func runHealthServer(ctx context.Context, port int, health http.Handler, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/healthz", health)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("health server shutdown error", "error", err)
		}
	}()

	logger.Info("health server started", "port", port)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.Log.Level)}))
	slog.SetDefault(logger)

	logger.Info("starting tradesync",
		"chains", len(cfg.Chains),
		"watched_wallets", len(cfg.Sync.WatchedWallets),
		"sync_interval", cfg.Sync.Interval,
		"protocol_filters_file", cfg.Classifier.ProtocolFiltersFile,
	)

	shutdownTracing, err := tracing.Init(context.Background(), serviceName, cfg.Tracing.Endpoint, cfg.Tracing.Insecure, cfg.Tracing.SampleRatio)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown error", "error", err)
		}
	}()
	if cfg.Tracing.Endpoint != "" {
		logger.Info("tracing enabled", "endpoint", cfg.Tracing.Endpoint, "sample_ratio", cfg.Tracing.SampleRatio)
	}

	sources, err := buildSources(cfg, logger)
	if err != nil {
		logger.Error("failed to build chain sources", "error", err)
		os.Exit(1)
	}
	provider := swap.New(sources, cfg.SwapConfig(), logger)

	cursors, err := redispkg.NewCursorStore(cfg.Redis.URL, cfg.Redis.KeyPrefix)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer cursors.Close()

	publisher := kafka.NewPublisher(cfg.Kafka, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("kafka publisher close error", "error", err)
		}
	}()

	walletSyncer := syncer.New(provider, cursors, publisher, syncer.Config{
		Wallets:            cfg.Sync.WatchedWallets,
		Chains:             cfg.ChainIDs(),
		Interval:           cfg.Sync.Interval,
		InitialLookback:    cfg.Sync.InitialLookback,
		UnhealthyThreshold: cfg.Alert.UnhealthyThreshold,
	}, logger, syncer.WithAlerter(buildAlerter(cfg.Alert, logger)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runHealthServer(gCtx, cfg.Server.HealthPort, healthHandler(provider, walletSyncer, logger), logger)
	})

	g.Go(func() error {
		return walletSyncer.Run(gCtx)
	})

	g.Go(func() error {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("tradesync exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("tradesync shut down gracefully")
}
