package service

import (
	"context"
	"time"

	"worklog/internal/modkit/repokit"
)

// Run hosts the credential reaper loop (spec.md §4.7): on each tick it deletes
// pending credentials that are expired or already consumed
func (s *Svc) Run(ctx context.Context) error {
	t := time.NewTicker(s.cfg.ReapInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			var n int
			err := s.db.Tx(ctx, func(q repokit.Queryer) error {
				var err error
				n, err = s.binder.Bind(q).DeleteExpiredOrConsumed(ctx, s.nowFunc().UTC())
				return err
			})
			if err != nil {
				s.log.Error().Err(err).Msg("credential reap tick failed")
				continue
			}
			if n > 0 {
				s.log.Info().Int("reaped", n).Msg("reaped pending credentials")
			}
		}
	}
}
