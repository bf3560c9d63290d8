// Package service implements the auto-shutdown supervisor (spec.md §4.4): on
// each tick it enumerates every active session and ends any whose duration
// exceeds its owning user's per-state cap, observed at the cap ceiling rather
// than at "now" (spec.md §9's adopted interpretation)
package service

import (
	"context"
	"time"

	"worklog/internal/modkit/repokit"
	"worklog/internal/platform/logger"

	notifydom "worklog/internal/services/notify/domain"
	trackinglock "worklog/internal/services/tracking/lock"
	trackingrepo "worklog/internal/services/tracking/repo"
	usersrepo "worklog/internal/services/users/repo"
)

// Config carries the supervisor's tunables (spec.md §6.5)
type Config struct {
	// CheckInterval is the tick period; 0 uses DefaultCheckInterval
	CheckInterval time.Duration
}

// DefaultCheckInterval is used when Config.CheckInterval is zero
const DefaultCheckInterval = 3 * time.Minute

// Svc hosts the auto-shutdown worker loop
type Svc struct {
	db             repokit.TxRunner
	sessionsBinder repokit.Binder[trackingrepo.Repo]
	usersBinder    repokit.Binder[usersrepo.Repo]
	sink           notifydom.Sink
	locks          *trackinglock.Table
	cfg            Config
	log            logger.Logger
	nowFunc        func() time.Time
}

// New constructs the auto-shutdown supervisor bound to the shared session and
// user repositories and a notification sink
func New(
	db repokit.TxRunner,
	sessionsBinder repokit.Binder[trackingrepo.Repo],
	usersBinder repokit.Binder[usersrepo.Repo],
	sink notifydom.Sink,
	cfg Config,
) *Svc {
	if db == nil {
		panic("autoshutdown.Service requires a non nil TxRunner")
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = DefaultCheckInterval
	}
	return &Svc{
		db:             db,
		sessionsBinder: sessionsBinder,
		usersBinder:    usersBinder,
		sink:           sink,
		locks:          trackinglock.Default,
		cfg:            cfg,
		log:            *logger.Named("autoshutdown"),
		nowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// Run hosts the ticker loop (spec.md §5: a cancellation-aware periodic worker)
func (s *Svc) Run(ctx context.Context) error {
	t := time.NewTicker(s.cfg.CheckInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := s.Tick(ctx); err != nil {
				s.log.Error().Err(err).Msg("auto-shutdown tick failed")
			}
		}
	}
}

// Tick runs one sweep of every active session
func (s *Svc) Tick(ctx context.Context) error {
	var active []trackingrepo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		active, err = s.sessionsBinder.Bind(q).AllActiveSessions(ctx)
		return err
	})
	if err != nil {
		return err
	}
	for _, session := range active {
		if err := s.checkOne(ctx, session); err != nil {
			s.log.Error().Err(err).Str("session_id", session.ID).Msg("auto-shutdown check failed for session")
		}
	}
	return nil
}

func (s *Svc) checkOne(ctx context.Context, session trackingrepo.Row) error {
	var user *usersrepo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		user, err = s.usersBinder.Bind(q).Get(ctx, session.UserID)
		return err
	})
	if err != nil || user == nil {
		return err
	}
	capHours, ok := capFor(*user, session.State)
	if !ok {
		return nil
	}
	capDur := time.Duration(capHours * float64(time.Hour))
	if s.nowFunc().Sub(session.StartedAt) <= capDur {
		return nil
	}

	return s.locks.With(session.UserID, func() error {
		ended := session.StartedAt.Add(capDur)
		err := s.db.Tx(ctx, func(q repokit.Queryer) error {
			return s.sessionsBinder.Bind(q).Update(ctx, trackingrepo.Row{ID: session.ID, EndedAt: &ended})
		})
		if err != nil {
			return err
		}
		s.sink.SendNotification(ctx, session.UserID, notifydom.KindAutoShutdown,
			"your "+session.State+" session was automatically ended after exceeding its cap")
		return nil
	})
}

func capFor(u usersrepo.Row, state string) (float64, bool) {
	var p *float64
	switch state {
	case "Working":
		p = u.MaxWorkHours
	case "Commuting":
		p = u.MaxCommuteHours
	case "Lunch":
		p = u.MaxLunchHours
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}
