package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/curiohq/curio/internal/config"
	"github.com/curiohq/curio/internal/httpserver"
	"github.com/curiohq/curio/internal/httpserver/deps"
	"github.com/curiohq/curio/internal/kv"
	"github.com/curiohq/curio/internal/logger"
	"github.com/curiohq/curio/internal/redis"
	"github.com/curiohq/curio/internal/scheduler"
	"github.com/curiohq/curio/internal/store"
	"github.com/curiohq/curio/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	redisClient  *goredis.Client
	store        *store.Store
	seedReloader *scheduler.SeedReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Pick the backing store. No Redis address means curio runs fully
	// functional but nothing survives a restart; a Redis that cannot be
	// reached degrades the same way instead of killing the process.
	var kvStore kv.Store
	persistent := false
	var redisClient *goredis.Client

	if cfg.RedisAddr == "" {
		loggerClient.Info("no redis configured, running without durable storage")
		kvStore = kv.NewMemory()
	} else {
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Error("redis unavailable, running without durable storage",
				logger.Error(err))
			kvStore = kv.NewMemory()
		} else {
			redisClient = client
			kvStore = kv.NewRedis(client, loggerClient)
			persistent = true
		}
	}

	st := store.New(kvStore, loggerClient)

	// Seed reloader (if a seed file is configured)
	var seedReloader *scheduler.SeedReloader
	var seedReloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed reloader",
			logger.String("file", cfg.SeedFile))
		seedReloadTrigger = make(chan struct{}, 1)
		seedReloader = scheduler.NewSeedReloader(
			cfg.SeedFile,
			st,
			loggerClient,
			cfg.SeedReloadInterval,
			seedReloadTrigger,
		)
	}

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		Store:             st,
		Persistent:        persistent,
		SeedReloadTrigger: seedReloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		redisClient:  redisClient,
		store:        st,
		seedReloader: seedReloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting curio %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("curio %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.seedReloader != nil {
		if err := a.seedReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed reloader: %w", err)
		}
		a.logger.Info("seed reloader started",
			logger.Duration("interval", a.cfg.SeedReloadInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.seedReloader != nil {
		a.seedReloader.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("redis closed cleanly")
		}
	}

	a.logger.Info("curio stopped cleanly")
	return nil
}
