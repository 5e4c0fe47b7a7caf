package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/chanops/skimmer/chatmod/admin"
	"github.com/chanops/skimmer/chatmod/cachestore"
	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/consumer"
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/perms"
	"github.com/chanops/skimmer/chatmod/ratestore"
	"github.com/chanops/skimmer/chatmod/rules"
	"github.com/chanops/skimmer/chatmod/setstore"
	"github.com/chanops/skimmer/chatmod/warnstore"
)

type Server struct {
	logger   *slog.Logger
	engine   *engine.Engine
	consumer *consumer.TwitchConsumer
	admin    *admin.Server
}

type Config struct {
	Logger           *slog.Logger
	DatabaseURL      string
	MaxDBConnections int
	RedisURL         string
	TwitchHost       string
	TwitchNick       string
	TwitchToken      string
	Channels         []string
	Parallelism      int
	AdminBind        string
	AdminToken       string
	SlackWebhookURL  string
	SetsFileJSON     string
	RespondInChat    bool
	ChatSendsPer30s  int64
}

func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	sets := setstore.NewMemSetStore()
	if cfg.SetsFileJSON != "" {
		if err := sets.LoadFromFileJSON(cfg.SetsFileJSON); err != nil {
			return nil, fmt.Errorf("initializing in-process setstore: %v", err)
		}
		logger.Info("loaded allowlist sets from JSON", "path", cfg.SetsFileJSON)
	}

	var warnings warnstore.WarningStore
	var rates ratestore.RateStore
	var cache cachestore.CacheStore
	if cfg.RedisURL != "" {
		wrn, err := warnstore.NewRedisWarningStore(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis warnstore: %v", err)
		}
		warnings = wrn

		rts, err := ratestore.NewRedisRateStore(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis ratestore: %v", err)
		}
		rates = rts

		csh, err := cachestore.NewRedisCacheStore(cfg.RedisURL, 30*time.Minute)
		if err != nil {
			return nil, fmt.Errorf("initializing redis cachestore: %v", err)
		}
		cache = csh
	} else {
		warnings = warnstore.NewMemWarningStore()
		rates = ratestore.NewMemRateStore()
		cache = cachestore.NewMemCacheStore(5_000, 30*time.Minute)
	}

	db, err := config.OpenDatabase(cfg.DatabaseURL, cfg.MaxDBConnections)
	if err != nil {
		return nil, fmt.Errorf("opening config database: %v", err)
	}
	dbStore, err := config.NewGormStore(db)
	if err != nil {
		return nil, fmt.Errorf("initializing config store: %v", err)
	}
	configs := config.NewCached(dbStore, cache, 5_000, 5*time.Minute)

	var notifier engine.Notifier
	if cfg.SlackWebhookURL != "" {
		logger.Info("configuring slack notifications")
		notifier = engine.NewSlackNotifier(cfg.SlackWebhookURL)
	}

	eng := &engine.Engine{
		Logger:      logger,
		Detectors:   rules.DefaultDetectors(),
		Configs:     configs,
		Warnings:    warnings,
		Rates:       rates,
		Sets:        sets,
		Permissions: perms.NewMemStore(),
		Notifier:    notifier,
	}

	tc := &consumer.TwitchConsumer{
		Logger:      logger,
		Engine:      eng,
		Host:        cfg.TwitchHost,
		Nick:        cfg.TwitchNick,
		Token:       cfg.TwitchToken,
		Channels:    cfg.Channels,
		Parallelism: cfg.Parallelism,
	}
	if cfg.RespondInChat {
		tc.Executor = consumer.NewChatExecutor(logger, tc, cfg.ChatSendsPer30s)
	}

	var adminSrv *admin.Server
	if cfg.AdminBind != "" {
		adminSrv, err = admin.NewServer(admin.Config{
			Logger:     logger,
			Bind:       cfg.AdminBind,
			AdminToken: cfg.AdminToken,
			Configs:    configs,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing admin API: %v", err)
		}
	}

	return &Server{
		logger:   logger,
		engine:   eng,
		consumer: tc,
		admin:    adminSrv,
	}, nil
}

func (s *Server) RunMetrics(listen string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, nil)
}

// Run starts the chat consumer and (when configured) the admin API, blocking
// until the context is cancelled or a component fails.
func (s *Server) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return s.consumer.Run(ctx)
	})
	if s.admin != nil {
		eg.Go(func() error {
			return s.admin.RunAPI()
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return s.admin.Shutdown(shutdownCtx)
		})
	}
	return eg.Wait()
}
