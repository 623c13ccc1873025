package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/promolab-cl/backend-promolab/internal/cart"
	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/checkout"
	"github.com/promolab-cl/backend-promolab/internal/config"
	"github.com/promolab-cl/backend-promolab/internal/events"
	"github.com/promolab-cl/backend-promolab/internal/health"
	"github.com/promolab-cl/backend-promolab/internal/money"
	"github.com/promolab-cl/backend-promolab/internal/obs"
	"github.com/promolab-cl/backend-promolab/internal/quote"
	"github.com/promolab-cl/backend-promolab/internal/ratelimit"
	"github.com/promolab-cl/backend-promolab/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "promolab")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", false)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "promolab-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	// Redis is optional; without it the catalog serves straight from memory.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(redisOpts)
		if tracingEnabled {
			if err := redisotel.InstrumentTracing(redisClient); err != nil {
				logger.Error().Err(err).Msg("instrument redis tracing")
			}
		}
		if metricsEnabled {
			if err := redisotel.InstrumentMetrics(redisClient); err != nil {
				logger.Error().Err(err).Msg("instrument redis metrics")
			}
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, continuing without cache")
			redisClient = nil
		}
		cancel()
	}

	store, err := catalog.NewStoreFromSeed(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load catalog seed")
	}
	logger.Info().Int("products", store.Len()).Msg("catalog loaded")

	catalogService, err := catalog.NewService(catalog.ServiceConfig{
		Store:        store,
		Cache:        catalog.NewCache(redisClient, cfg.CatalogCacheTTL),
		DefaultPage:  cfg.CatalogDefaultPage,
		DefaultLimit: cfg.CatalogDefaultLimit,
		MaxLimit:     cfg.CatalogMaxLimit,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}
	catalogHandler := catalog.NewHandler(catalog.HandlerConfig{Service: catalogService})

	formatter := money.NewFormatter(cfg.CurrencyLocale, cfg.CurrencyCode)
	quoteService := quote.NewService(quote.ServiceConfig{Catalog: catalogService, Formatter: formatter})
	quoteHandler := quote.NewHandler(quote.HandlerConfig{
		Service:  quoteService,
		Renderer: quote.NewPDFRenderer(formatter, nil),
	})

	cartStore := cart.NewStore(cfg.CartTTL, nil)
	cartService := cart.NewService(cart.ServiceConfig{
		Store:    cartStore,
		Catalog:  catalogService,
		Currency: cfg.CurrencyCode,
	})
	cartHandler := cart.NewHandler(cart.HandlerConfig{Service: cartService})

	var bus *events.Bus
	if metricsEnabled {
		bus = events.NewBus(events.NewMetricsNotifier(metricsNamespace, nil, logger))
	}

	checkoutService, err := checkout.NewService(checkout.ServiceConfig{Carts: cartService, Bus: bus, Logger: logger})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise checkout service")
	}
	checkoutHandler := checkout.NewHandler(checkout.HandlerConfig{Service: checkoutService})

	healthHandler := health.NewHandler(health.HandlerConfig{Store: store, Redis: redisClient})

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers)
	r.Use(security.BodyLimit{Max: envInt64("SECURE_BODY_MAX_BYTES", 1<<16)}.Middleware)
	if redisClient != nil {
		r.Use(ratelimit.Handler{
			Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "promolab:rl:"},
			Config: ratelimit.Config{
				Key:    ratelimit.ByClientIP,
				Window: time.Minute,
				Max:    envInt("RATE_LIMIT_PER_MINUTE", 300),
			},
			OnError: func(err error) { logger.Error().Err(err).Msg("rate limiter") },
		}.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Total-Count", "Content-Disposition"},
		MaxAge:         300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/categories", catalogHandler.Categories)
		v.Get("/suppliers", catalogHandler.Suppliers)
		v.Get("/products", catalogHandler.Products)
		v.Get("/products/{id}", catalogHandler.ProductDetail)
		v.Post("/products/{id}/quote", quoteHandler.Quote)
		v.Get("/products/{id}/quote/pdf", quoteHandler.QuotePDF)

		v.Route("/carts", func(c chi.Router) {
			c.Post("/", cartHandler.Create)
			c.Get("/{id}", cartHandler.Get)
			c.Post("/{id}/items", cartHandler.AddItem)
			c.Delete("/{id}/items", cartHandler.Clear)
			c.Delete("/{id}/items/{productId}", cartHandler.RemoveItem)
		})

		v.Post("/checkout", checkoutHandler.Checkout)
	})

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go cartStore.RunSweeper(sweepCtx, time.Hour, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) > 0 {
		return cfg.CORSAllowedOrigins
	}
	return []string{"http://localhost:5173", "http://localhost:3000"}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
