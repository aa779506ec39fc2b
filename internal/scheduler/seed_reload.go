// Package scheduler runs background maintenance loops.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/curiohq/curio/internal/logger"
	"github.com/curiohq/curio/internal/sources/seed"
	"github.com/curiohq/curio/internal/store"
)

// SeedReloader periodically re-imports the seed file into the store.
// Import semantics apply: seeded entries overwrite same-key entries,
// everything else is left alone.
type SeedReloader struct {
	loader        *seed.Loader
	mapper        *seed.Mapper
	store         *store.Store
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewSeedReloader(
	seedFile string,
	st *store.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	return &SeedReloader{
		loader:        seed.NewLoader(seedFile),
		mapper:        seed.NewMapper(),
		store:         st,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start imports the seed once, then begins the periodic reload loop.
func (sr *SeedReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed import failed: %w", err)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file", logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file", logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (sr *SeedReloader) Stop() {
	close(sr.stopCh)
}

// Reload reads the seed file and imports it into the store.
func (sr *SeedReloader) Reload(ctx context.Context) error {
	cfg, err := sr.loader.Load()
	if err != nil {
		return err
	}

	backup, err := sr.mapper.MapBackup(cfg)
	if err != nil {
		return err
	}

	sr.store.Import(ctx, backup)
	sr.logger.Info("seed imported",
		logger.Int("favorites", len(backup.Favorites)),
		logger.Int("galleries", len(backup.Galleries)))
	return nil
}
