package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habit-tracker/habits/application"
	"habit-tracker/habits/domain"
	"habit-tracker/habits/httpapi"
	"habit-tracker/habits/infra"
	"habit-tracker/internal/config"
	"habit-tracker/internal/logger"
	"habit-tracker/middleware/ratelimit"

	"github.com/avast/retry-go/v4"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	lggr, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = lggr.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, lggr); err != nil {
		lggr.Errorw("habitd stopped", "err", err)
		_ = lggr.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, lggr logger.Logger) error {
	stats, snap, closeStats, err := newStats(ctx, cfg, lggr)
	if err != nil {
		return err
	}
	defer closeStats()

	svc := &application.Service{
		Store:          infra.NewMemoryStore(),
		Gate:           infra.NewChanPool(1),
		Stats:          stats,
		AcquireTimeout: cfg.MutationTimeout,
		Logger:         lggr.Named("habits"),
	}

	var mws []mux.MiddlewareFunc
	var limiter *ratelimit.ClientStore
	if cfg.RateEnabled {
		limiter = ratelimit.NewClientStore(cfg.RateRPS, cfg.RateBurst,
			ratelimit.WithIdleTTL(cfg.RateIdleTTL),
			ratelimit.WithCleanupEvery(cfg.RateCleanup),
		)
		rlLog := lggr.Named("ratelimit")
		mws = append(mws, ratelimit.WriteLimit(ratelimit.Options{
			Store:               limiter,
			KeyHeader:           cfg.RateKeyHdr,
			TrustXForwardedFor:  cfg.TrustXFF,
			RetryAfter:          cfg.RetryAfter,
			AddRateLimitHeaders: cfg.AddRateHdrs,
			OnReject: func(r *http.Request, key string) {
				rlLog.Infow("write rejected", "key", key, "path", r.URL.Path)
			},
		}))
	}

	router := httpapi.NewRouter(&httpapi.Handler{
		Service: svc,
		Stats:   snap,
		Logger:  lggr.Named("http"),
	}, mws...)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	if limiter != nil {
		limiter.StartJanitor(gctx)
	}

	g.Go(func() error {
		lggr.Infow("habitd listening",
			"addr", cfg.ListenAddr,
			"rateEnabled", cfg.RateEnabled, "rps", cfg.RateRPS, "burst", cfg.RateBurst,
			"stats", cfg.StatsBackend,
			"mutationTimeout", cfg.MutationTimeout,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newStats escolhe o backend de estatísticas. O snapshotter só existe para o
// backend em memória.
func newStats(ctx context.Context, cfg config.Config, lggr logger.Logger) (domain.StatsStore, httpapi.StatsSnapshotter, func(), error) {
	noop := func() {}

	switch cfg.StatsBackend {
	case config.StatsNone:
		return nil, nil, noop, nil
	case config.StatsMemory:
		mem := infra.NewMemoryStatsStore()
		return mem, mem, noop, nil
	case config.StatsRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.StatsRedisAddr,
			Password: cfg.StatsRedisPassword,
			DB:       cfg.StatsRedisDB,
		})
		err := retry.Do(
			func() error {
				pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
				defer cancel()
				return rdb.Ping(pingCtx).Err()
			},
			retry.Context(ctx),
			retry.Attempts(3),
			retry.Delay(200*time.Millisecond),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(n uint, err error) {
				lggr.Warnw("redis stats ping failed, retrying", "attempt", n+1, "err", err)
			}),
		)
		if err != nil {
			_ = rdb.Close()
			return nil, nil, noop, fmt.Errorf("redis stats ping: %w", err)
		}
		store := infra.NewRedisStatsStore(rdb,
			infra.WithStatsPrefix(cfg.StatsPrefix),
			infra.WithStatsTTL(cfg.StatsTTL),
			infra.WithStatsBucket(cfg.StatsBucket),
		)
		return store, nil, func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, noop, fmt.Errorf("unknown stats backend %q", cfg.StatsBackend)
	}
}
