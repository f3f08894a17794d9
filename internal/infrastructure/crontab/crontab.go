package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"gift-server/internal/config"
	"gift-server/internal/domain/housekeeping"
	"gift-server/internal/domain/recommend"
	"gift-server/internal/infrastructure/logger"
	"gift-server/internal/utils/platformerrors"
)

const (
	DefaultCleanInterval = 15               // in minutes
	CronJobTimeout       = 10 * time.Minute // Timeout for each cron job execution
)

type Crontab struct {
	ctab         *crontab.Crontab
	cleaner      *housekeeping.Cleaner
	registry     *recommend.StatusRegistry
	orchestrator *recommend.Orchestrator
}

func NewCrontab(
	cleaner *housekeeping.Cleaner,
	registry *recommend.StatusRegistry,
	orchestrator *recommend.Orchestrator,
) *Crontab {
	return &Crontab{
		ctab:         crontab.New(),
		cleaner:      cleaner,
		registry:     registry,
		orchestrator: orchestrator,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()
	cfg := config.GetGlobal()

	// Schedule duplicate cleanup if enabled
	if cfg != nil && cfg.DuplicateCleanEnabled {
		// execute once on server start
		c.cleanDuplicates(ctx)

		interval := cfg.DuplicateCleanIntervalMinutes
		if interval <= 0 {
			interval = DefaultCleanInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", interval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.cleanDuplicates(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to add duplicate cleanup job")
		}
		log.Warn().Msgf("Duplicate cleanup scheduled: every %d minute(s)", interval)
	}

	// Schedule status registry sweep
	if err := c.ctab.AddJob("* * * * *", func() {
		c.registry.Sweep()
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to add status sweep job")
	}

	// Schedule nightly image backfill
	if err := c.ctab.AddJob("30 3 * * *", func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		if _, err := c.orchestrator.RefreshImages(jobCtx); err != nil {
			log.Error().Err(err).Msg("Nightly image backfill failed")
		}
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to add image backfill job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) cleanDuplicates(ctx context.Context) {
	log := logger.GetLogger()
	removed, err := c.cleaner.CleanDuplicates(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Duplicate cleanup failed")
		return
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("Duplicate cleanup removed gifts")
	}
}
