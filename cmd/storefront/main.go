// Command storefront serves the catalog, the product pages, the checkout
// and the products REST API.
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

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/pkg/clientip"
	"github.com/dmitrymomot/storefront/pkg/config"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/email"
	"github.com/dmitrymomot/storefront/pkg/environment"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/mongo"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/requestid"
	"github.com/dmitrymomot/storefront/svc/catalog"
	"github.com/dmitrymomot/storefront/svc/checkout"
	"github.com/dmitrymomot/storefront/svc/listing"
	"github.com/dmitrymomot/storefront/svc/storefront"
)

// Config is the application-level configuration.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_SERVICE_NAME" envDefault:"storefront"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg      Config
		logCfg      logger.Config
		serverCfg   httpserver.Config
		catalogCfg  catalog.Config
		listingCfg  listing.Config
		frontCfg    storefront.Config
		checkoutCfg checkout.Config
		cookieCfg   cookie.Config
		emailCfg    email.Config
		limitCfg    ratelimiter.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&logCfg) },
		func() error { return config.Load(&serverCfg) },
		func() error { return config.Load(&catalogCfg) },
		func() error { return config.Load(&listingCfg) },
		func() error { return config.Load(&frontCfg) },
		func() error { return config.Load(&checkoutCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&emailCfg) },
		func() error { return config.Load(&limitCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.ServiceName),
		logger.WithConfig(logCfg),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var checks []httpserver.Check

	storage, check, closeStorage, err := openStorage(ctx, catalogCfg)
	if err != nil {
		return err
	}
	defer closeStorage()
	if check != nil {
		checks = append(checks, *check)
	}

	cache, check, closeCache, err := openCache(ctx, catalogCfg, log)
	if err != nil {
		return err
	}
	defer closeCache()
	if check != nil {
		checks = append(checks, *check)
	}

	catalogSvc := catalog.NewService(storage,
		catalog.WithCache(cache),
		catalog.WithLogger(log),
	)
	if catalogCfg.SeedOnStart {
		n, err := catalogSvc.Seed(ctx, catalog.SeedProducts())
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		log.InfoContext(ctx, "catalog seeded", logger.Component("catalog"), logger.Count(n))
	}

	reporter, err := catalog.NewStockReporter(catalogSvc, catalogCfg.StockReportSchedule, log)
	if err != nil {
		return err
	}
	reporter.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		reporter.Stop(stopCtx)
	}()

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}
	mailer, err := email.NewFromConfig(emailCfg)
	if err != nil {
		return err
	}

	sessions := storefront.NewSessions(cookies, catalogSvc, frontCfg,
		storefront.WithEngineOptions(listing.WithConfig(listingCfg)),
		storefront.WithSessionLogger(log),
	)
	defer sessions.Close()

	checkoutSvc := checkout.NewService(catalogSvc, mailer, checkoutCfg, checkout.WithLogger(log))
	store := checkout.NewStore(cookies, checkoutCfg, log)

	var limiter *ratelimiter.Limiter
	if limitCfg.Enabled {
		if limiter, err = ratelimiter.New(limitCfg); err != nil {
			return err
		}
		go sweep(ctx, limiter, 10*time.Minute)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(environment.Middleware(environment.Normalize(appCfg.Env)))
	r.Use(ratelimiter.Middleware(limiter, ratelimiter.ByClientIP, log))
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, checks...))
	r.Mount("/api/products", catalog.Router(catalogSvc, log))
	r.Mount("/", mergeRouters(
		storefront.Router(catalogSvc, sessions, log),
		checkout.Router(checkoutSvc, store, log),
	))

	server := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))
	return server.Run(ctx, r)
}

func sweep(ctx context.Context, l *ratelimiter.Limiter, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep()
		}
	}
}

// mergeRouters serves requests from the first router that matches them.
func mergeRouters(routers ...chi.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, rt := range routers {
			rctx := chi.NewRouteContext()
			if rt.Match(rctx, r.Method, r.URL.Path) {
				rt.ServeHTTP(w, r)
				return
			}
		}
		http.NotFound(w, r)
	})
}

func openStorage(ctx context.Context, cfg catalog.Config) (catalog.Storage, *httpserver.Check, func(), error) {
	switch cfg.Storage {
	case catalog.BackendMemory:
		return catalog.NewMemoryStorage(), nil, func() {}, nil
	case catalog.BackendMongo:
	default:
		return nil, nil, nil, fmt.Errorf("unknown catalog storage %q", cfg.Storage)
	}

	var mongoCfg mongo.Config
	if err := config.Load(&mongoCfg); err != nil {
		return nil, nil, nil, err
	}
	client, err := mongo.Connect(ctx, mongoCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}

	storage := catalog.NewMongoStorage(client.Database(mongoCfg.Database))
	if err := storage.EnsureIndexes(ctx); err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return storage, &httpserver.Check{Name: "mongo", Fn: mongo.Healthcheck(client)}, closeFn, nil
}

func openCache(ctx context.Context, cfg catalog.Config, log *slog.Logger) (catalog.Cache, *httpserver.Check, func(), error) {
	switch cfg.Cache {
	case catalog.CacheNone, "":
		return catalog.NoOpCache{}, nil, func() {}, nil
	case catalog.CacheLRU:
		return catalog.NewLRUCache(cfg.CacheSize, cfg.CacheTTL), nil, func() {}, nil
	case catalog.CacheRedis:
	default:
		return nil, nil, nil, fmt.Errorf("unknown catalog cache %q", cfg.Cache)
	}

	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, nil, nil, err
	}
	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn("redis close failed", logger.Component("catalog"), logger.Error(err))
		}
	}
	cache := catalog.NewRedisCache(redis.NewStore(client, cfg.CachePrefix), cfg.CacheTTL)
	return cache, &httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)}, closeFn, nil
}
