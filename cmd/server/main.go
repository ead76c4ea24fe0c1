package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitter/internal/allocation"
	"github.com/mmynk/splitter/internal/config"
	"github.com/mmynk/splitter/internal/lock"
	"github.com/mmynk/splitter/internal/middleware"
	"github.com/mmynk/splitter/internal/ocr"
	"github.com/mmynk/splitter/internal/service"
	"github.com/mmynk/splitter/internal/storage/sqlite"
	"github.com/mmynk/splitter/pkg/api/apiconnect"
	"github.com/mmynk/splitter/pkg/logging"
)

const metricsNamespace = "splitter"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.SlogLevel())

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	engine := allocation.NewEngine(store,
		allocation.WithLocker(locker),
		allocation.WithMetrics(allocation.NewMetrics(metricsNamespace, registry)),
	)

	rpcMetrics := middleware.NewRPCMetrics(metricsNamespace, registry)
	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(), rpcMetrics.Interceptor())

	mux := http.NewServeMux()

	// Register Connect services
	receiptPath, receiptHandler := apiconnect.NewReceiptServiceHandler(service.NewReceiptService(store), interceptors)
	mux.Handle(receiptPath, receiptHandler)

	splitPath, splitHandler := apiconnect.NewSplitServiceHandler(service.NewSplitService(store, engine), interceptors)
	mux.Handle(splitPath, splitHandler)

	ocrClient := ocr.NewClient(ocr.Config{
		APIKey:  cfg.OpenAIAPIKey,
		URL:     cfg.OpenAIAPIURL,
		Model:   cfg.OCRModel,
		Timeout: cfg.OCRTimeout,
	})
	if !ocrClient.Configured() {
		slog.Warn("OPENAI_API_KEY is not set, OCR extraction will fail")
	}
	mux.Handle("/ocr/extract", service.NewOCRHandler(ocrClient))

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Add logging and CORS middleware
	handler := middleware.RequestLogger(middleware.CORS(cfg.CORSAllowedOrigins)(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newLocker picks the receipt lock: Redis when REDIS_URL is set, otherwise an
// in-process mutex.
func newLocker(ctx context.Context, cfg *config.Config) (lock.Locker, func(), error) {
	if cfg.RedisURL == "" {
		slog.Info("Receipt lock is in-process")
		return lock.NewKeyedMutex(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("Receipt lock is Redis backed", "addr", opts.Addr, "ttl", cfg.LockTTL)
	locker := lock.RedisLocker{Client: client, TTL: cfg.LockTTL}
	return locker, func() { client.Close() }, nil
}
