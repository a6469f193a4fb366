package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"bookmark-preview/internal/infra/extractor"
	"bookmark-preview/internal/infra/fetcher"
	"bookmark-preview/internal/netsafe"
	"bookmark-preview/internal/observability/logging"
	"bookmark-preview/internal/observability/tracing"
	"bookmark-preview/internal/pkg/config"
	prevUC "bookmark-preview/internal/usecase/preview"
	"bookmark-preview/pkg/urlnorm"

	hhttp "bookmark-preview/internal/handler/http"
	hpreview "bookmark-preview/internal/handler/http/preview"
	"bookmark-preview/internal/handler/http/requestid"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	version := getVersion()

	shutdownTracing := tracing.InitProvider("bookmark-preview", version)

	fetchCfg := fetcher.ConfigFromEnv()
	if err := fetchCfg.Validate(); err != nil {
		logger.Error("invalid fetch configuration", slog.Any("error", err))
		os.Exit(1)
	}

	dataCfg, err := config.LoadDataConfig(os.Getenv("PREVIEW_DATA_CONFIG"))
	if err != nil {
		logger.Error("failed to load data configuration",
			slog.String("path", os.Getenv("PREVIEW_DATA_CONFIG")),
			slog.Any("error", err))
		os.Exit(1)
	}

	classifier, err := netsafe.New(netsafe.Config{
		ExtraBlockedCIDRs: dataCfg.BlockedCIDRs,
		ExtraBlockedHosts: dataCfg.BlockedHosts,
	})
	if err != nil {
		logger.Error("failed to build destination classifier", slog.Any("error", err))
		os.Exit(1)
	}

	svc := prevUC.Service{
		Fetcher:    fetcher.NewHTTPFetcher(fetchCfg, classifier),
		Extractor:  extractor.New(),
		Normalizer: urlnorm.New(dataCfg.TrackingParams...),
		Logger:     logger,
	}

	handler := setupRoutes(svc, fetchCfg, version, logger)
	handler = applyMiddleware(handler, logger)

	runServer(handler, shutdownTracing, version, logger)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupRoutes registers the preview endpoint, health probes, and metrics.
func setupRoutes(svc prevUC.Service, fetchCfg fetcher.Config, version string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	hpreview.Register(mux, svc, logger)

	mux.Handle("/healthz", &hhttp.HealthHandler{
		Version: version,
		Checks: map[string]func() error{
			"fetch_config": fetchCfg.Validate,
		},
	})
	mux.Handle("/readyz", &hhttp.ReadyHandler{})
	mux.Handle("/livez", &hhttp.LiveHandler{})
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): Recover → Request ID → Tracing → Logging →
// Rate Limit → Body Size Limit.
func applyMiddleware(handler http.Handler, logger *slog.Logger) http.Handler {
	rps := config.EnvFloat("RATE_LIMIT_RPS", 5)
	burst := config.EnvInt("RATE_LIMIT_BURST", 10)
	rateLimiter := hhttp.NewRateLimiter(rps, burst)

	chain := handler
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = rateLimiter.Limit(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = hhttp.Recover(logger)(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(handler http.Handler, shutdownTracing func(context.Context) error, version string, logger *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := config.EnvString("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			return err
		}

		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("tracing shutdown failed", slog.Any("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
