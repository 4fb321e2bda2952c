package worker

// retention_cron.go
// Background goroutine that keeps the notificaciones table bounded: every
// tick it deletes read+resolved rows beyond the configured cap, oldest
// first. Unread or unresolved alerts are never touched.

import (
	"context"
	"time"

	"github.com/4ndreams/GPS-sub001/internal/repository"

	"github.com/rs/zerolog/log"
)

const retentionTickInterval = 10 * time.Minute

// StartRetentionCron launches the purge goroutine. It respects the context
// for graceful shutdown.
func StartRetentionCron(ctx context.Context, repo repository.NotificacionRepository, keep int) {
	if keep <= 0 {
		log.Warn().Msg("retention_cron: disabled (cap <= 0)")
		return
	}
	go func() {
		ticker := time.NewTicker(retentionTickInterval)
		defer ticker.Stop()

		log.Info().Int("cap", keep).Msg("retention_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retention_cron: shutting down")
				return
			case <-ticker.C:
				purged, err := repo.PurgeResolved(ctx, keep)
				if err != nil {
					log.Error().Err(err).Msg("retention_cron: purge failed")
					continue
				}
				if purged > 0 {
					log.Info().Int64("purged", purged).Msg("retention_cron: notificaciones purged")
				}
			}
		}
	}()
}
