// Package service implements the forgot-shutdown supervisor (spec.md §4.5): on
// each tick it compares every active session's running duration against the
// owning user's historical average for that state over their last 30
// completed sessions, and emits at-most-one reminder per session
package service

import (
	"context"
	"sync"
	"time"

	"worklog/internal/modkit/repokit"
	"worklog/internal/platform/logger"

	notifydom "worklog/internal/services/notify/domain"
	trackingrepo "worklog/internal/services/tracking/repo"
	usersrepo "worklog/internal/services/users/repo"
)

// Config carries the supervisor's tunables (spec.md §6.5)
type Config struct {
	// CheckInterval is the tick period; 0 uses DefaultCheckInterval
	CheckInterval time.Duration
	// ThresholdPercentDefault backs a user who left their threshold unset
	ThresholdPercentDefault float64
	// HistoryWindow is how many past completed sessions feed the average; 0 uses DefaultHistoryWindow
	HistoryWindow int
}

// DefaultCheckInterval is used when Config.CheckInterval is zero
const DefaultCheckInterval = 3 * time.Minute

// DefaultThresholdPercent is used when a user has not configured one (spec.md §6.5)
const DefaultThresholdPercent = 150

// DefaultHistoryWindow is the number of past completed sessions the rolling average considers
const DefaultHistoryWindow = 30

// Svc hosts the forgot-shutdown worker loop
type Svc struct {
	db             repokit.TxRunner
	sessionsBinder repokit.Binder[trackingrepo.Repo]
	usersBinder    repokit.Binder[usersrepo.Repo]
	sink           notifydom.Sink
	cfg            Config
	log            logger.Logger
	nowFunc        func() time.Time

	mu     sync.Mutex
	warned map[string]bool // sessionID -> already warned; best-effort, process-local (spec.md §5)
}

// New constructs the forgot-shutdown supervisor
func New(
	db repokit.TxRunner,
	sessionsBinder repokit.Binder[trackingrepo.Repo],
	usersBinder repokit.Binder[usersrepo.Repo],
	sink notifydom.Sink,
	cfg Config,
) *Svc {
	if db == nil {
		panic("forgotshutdown.Service requires a non nil TxRunner")
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = DefaultCheckInterval
	}
	if cfg.ThresholdPercentDefault <= 0 {
		cfg.ThresholdPercentDefault = DefaultThresholdPercent
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = DefaultHistoryWindow
	}
	return &Svc{
		db:             db,
		sessionsBinder: sessionsBinder,
		usersBinder:    usersBinder,
		sink:           sink,
		cfg:            cfg,
		log:            *logger.Named("forgotshutdown"),
		nowFunc:        func() time.Time { return time.Now().UTC() },
		warned:         make(map[string]bool),
	}
}

// Run hosts the ticker loop
func (s *Svc) Run(ctx context.Context) error {
	t := time.NewTicker(s.cfg.CheckInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := s.Tick(ctx); err != nil {
				s.log.Error().Err(err).Msg("forgot-shutdown tick failed")
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
	stillActive := make(map[string]bool, len(active))
	for _, session := range active {
		stillActive[session.ID] = true
		if err := s.checkOne(ctx, session); err != nil {
			s.log.Error().Err(err).Str("session_id", session.ID).Msg("forgot-shutdown check failed for session")
		}
	}
	s.gcWarned(stillActive)
	return nil
}

func (s *Svc) checkOne(ctx context.Context, session trackingrepo.Row) error {
	if s.hasWarned(session.ID) {
		return nil
	}

	var user *usersrepo.Row
	var durations []time.Duration
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		user, err = s.usersBinder.Bind(q).Get(ctx, session.UserID)
		if err != nil || user == nil {
			return err
		}
		durations, err = s.sessionsBinder.Bind(q).LastNCompletedDurations(ctx, session.UserID, session.State, s.cfg.HistoryWindow)
		return err
	})
	if err != nil || user == nil {
		return err
	}
	thresholdPercent := s.cfg.ThresholdPercentDefault
	if user.ForgotShutdownThreshold != nil {
		thresholdPercent = *user.ForgotShutdownThreshold
	}
	if len(durations) == 0 {
		return nil
	}
	avg := average(durations)
	running := s.nowFunc().Sub(session.StartedAt)
	if float64(running) <= thresholdPercent/100*float64(avg) {
		return nil
	}

	s.markWarned(session.ID)
	s.sink.SendNotification(ctx, session.UserID, notifydom.KindForgotShutdown,
		"your "+session.State+" session is running much longer than usual — did you forget to end it?")
	return nil
}

func average(durations []time.Duration) time.Duration {
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return total / time.Duration(len(durations))
}

func (s *Svc) hasWarned(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warned[sessionID]
}

func (s *Svc) markWarned(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warned[sessionID] = true
}

// gcWarned drops warned entries for sessions that are no longer active, keeping
// the in-memory map bounded by the current active-session count
func (s *Svc) gcWarned(stillActive map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.warned {
		if !stillActive[id] {
			delete(s.warned, id)
		}
	}
}
