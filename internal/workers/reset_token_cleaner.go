package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/service"
)

// ResetTokenCleaner periodically deletes expired password-reset tokens.
// Expired tokens are already rejected on use; the cleaner only keeps the
// table from growing.
type ResetTokenCleaner struct {
	resets   service.ResetService
	interval time.Duration
	logger   *logger.Logger
}

func NewResetTokenCleaner(resets service.ResetService, interval time.Duration, logger *logger.Logger) *ResetTokenCleaner {
	return &ResetTokenCleaner{
		resets:   resets,
		interval: interval,
		logger:   logger,
	}
}

func (c *ResetTokenCleaner) Run(ctx context.Context) {
	c.logger.Info().Dur("interval", c.interval).Msg("reset token cleaner started")

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("reset token cleaner stopped")
			return
		case <-ticker.C:
			c.purge(ctx)
		}
	}
}

func (c *ResetTokenCleaner) purge(ctx context.Context) {
	removed, err := c.resets.PurgeExpiredTokens(ctx)
	if err != nil {
		c.logger.Err(err).Msg("error purging expired reset tokens")
		return
	}
	if removed > 0 {
		c.logger.Info().Int64("removed", removed).Msg("expired reset tokens purged")
	}
}
