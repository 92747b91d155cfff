package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"farmgenius/gateway/pkg/config"
	"farmgenius/gateway/pkg/limits/ratelimit"
	"farmgenius/gateway/pkg/providers"
	"farmgenius/gateway/pkg/providers/openai"
	"farmgenius/gateway/pkg/providers/translate"
	"farmgenius/gateway/pkg/proxy"
	"farmgenius/gateway/pkg/proxy/handlers"
	"farmgenius/gateway/pkg/server"
	"farmgenius/gateway/pkg/site"
	"farmgenius/gateway/pkg/telemetry/health"
	"farmgenius/gateway/pkg/telemetry/metrics"
	"farmgenius/gateway/pkg/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// app is the assembled gateway. Close releases everything in reverse
// order of construction.
type app struct {
	handler    http.Handler
	limiter    *ratelimit.Limiter
	sweeper    *ratelimit.Sweeper
	tracer     *tracing.Tracer
	chat       providers.ChatBackend
	translator translate.Translator
	banner     bannerFacts

	closers []func(context.Context) error
}

type bannerFacts struct {
	chatModel  string
	translator string
	store      string
}

// buildApp wires every component from cfg. Reloadable settings (CORS
// origins, trust_proxy) are read through live on each request.
func buildApp(ctx context.Context, cfg *config.Config, live func() *config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, registry)

	a.tracer, err = tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.addCloser(a.tracer.Shutdown)

	store, err := newLimitStore(ctx, &cfg.Limits)
	if err != nil {
		return nil, err
	}
	a.banner.store = cfg.Limits.Store
	a.limiter = ratelimit.NewLimiter(store,
		ratelimit.Config{Limit: cfg.Limits.RequestsPerWindow, Window: cfg.Limits.Window},
		ratelimit.WithLogger(logger),
		ratelimit.WithObserver(collector),
	)
	a.addCloser(func(context.Context) error { return a.limiter.Close() })

	a.sweeper = ratelimit.NewSweeper(a.limiter, cfg.Limits.SweepInterval)

	a.chat, err = newChatBackend(&cfg.Providers.Chat, logger)
	if err != nil {
		return nil, err
	}
	if model, ok := a.chat.Model(); ok {
		a.banner.chatModel = cfg.Providers.Chat.Model
		if c, ok := model.(io.Closer); ok {
			a.addCloser(func(context.Context) error { return c.Close() })
		}
	}

	a.translator, err = translate.New(&cfg.Providers.Translate, a.chat)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}
	a.banner.translator = a.translator.Name()
	if c, ok := a.translator.(io.Closer); ok {
		a.addCloser(func(context.Context) error { return c.Close() })
	}

	responder, err := site.New(cfg.Site.Root, cfg.Site.Index,
		site.WithMetrics(collector),
		site.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	a.addCloser(func(context.Context) error { return responder.Close() })

	checker := health.New(0)
	checker.RegisterCheck("site", handlers.SiteCheck(responder.Dir(), cfg.Site.Index))
	checker.RegisterCheck("ratelimit_store", handlers.StoreCheck(store))
	checker.RegisterCheck("chat_backend", handlers.ChatBackendCheck(a.chat))

	gate := &proxy.Gate{
		Limiter:      a.limiter,
		MaxBodyBytes: cfg.Limits.MaxBodyBytes,
		TrustProxy:   func() bool { return live().Server.TrustProxy },
		Metrics:      collector,
		Tracer:       a.tracer,
		Logger:       logger,
	}

	routes := &server.Routes{
		Gate:      gate,
		Chat:      &handlers.ChatHandler{Backend: a.chat, Metrics: collector, Tracer: a.tracer, Logger: logger},
		Translate: &handlers.TranslateHandler{Translator: a.translator, Metrics: collector, Tracer: a.tracer, Logger: logger},
		Site:      responder,
		Health:    checker,
		Version: health.VersionInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildTime: BuildDate,
		},
		AllowedOrigins: func() []string { return live().CORS.AllowedOrigins },
		Logger:         logger,
	}
	if cfg.Telemetry.Metrics.Enabled {
		routes.Metrics = collector
		routes.MetricsPath = cfg.Telemetry.Metrics.Path
	}
	a.handler = routes.Handler()

	return a, nil
}

func newLimitStore(ctx context.Context, cfg *config.LimitsConfig) (ratelimit.Store, error) {
	switch cfg.Store {
	case "redis":
		store, err := ratelimit.NewRedisStore(ctx, ratelimit.RedisOptions{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect rate limit store: %w", err)
		}
		return store, nil
	default:
		return ratelimit.NewMemoryStore(), nil
	}
}

// newChatBackend decides once whether the chat endpoint has a model. A
// missing key is not an error: the endpoint answers with the degraded
// reply instead.
func newChatBackend(cfg *config.ChatProviderConfig, logger *slog.Logger) (providers.ChatBackend, error) {
	if cfg.APIKey == "" {
		logger.Warn("chat backend not configured, serving fallback replies",
			"hint", "set OPENAI_API_KEY or providers.chat.api_key")
		return providers.Unconfigured(), nil
	}
	client, err := openai.New(cfg)
	if err != nil {
		return providers.ChatBackend{}, fmt.Errorf("failed to create chat client: %w", err)
	}
	logger.Info("chat backend configured", "base_url", cfg.BaseURL, "model", cfg.Model)
	return providers.Configured(client), nil
}

func (a *app) addCloser(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse order and joins their errors.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
