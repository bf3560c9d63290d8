// Package service implements the tracking orchestrator (spec.md §4.3): it loads
// context from the repository, invokes the pure statemachine, persists the
// decision, and enforces chronological integrity — all under the per-user lock
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"worklog/internal/core/statemachine"
	"worklog/internal/core/timeparse"
	"worklog/internal/modkit/repokit"
	perr "worklog/internal/platform/errors"
	"worklog/internal/platform/logger"
	"worklog/internal/services/tracking/domain"
	"worklog/internal/services/tracking/lock"
	"worklog/internal/services/tracking/repo"
)

// UserOffsetLookup resolves a user's UTC offset in minutes; the tracking service
// needs it to parse the command-text timestamp (§4.1) but does not own the users
// table, so it is injected as a narrow port rather than importing services/users
type UserOffsetLookup interface {
	UTCOffsetMinutes(ctx context.Context, userID string) (int, error)
}

// Service is the tracking service contract
type Service interface{ domain.ServicePort }

// Config carries the tracking service's tunables (spec.md §6.5)
type Config struct {
	// MaxMinuteOffset caps the parser's minute-offset grammar; 0 uses timeparse.DefaultMaxMinuteOffset
	MaxMinuteOffset int
}

// Svc implements Service
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Repo]
	users   UserOffsetLookup
	parser  *timeparse.Parser
	locks   *lock.Table
	log     logger.Logger
	nowFunc func() time.Time
}

// New constructs the tracking service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], users UserOffsetLookup, cfg Config) *Svc {
	if db == nil {
		panic("tracking.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("tracking.Service requires a non nil Repo binder")
	}
	return &Svc{
		db:      db,
		binder:  binder,
		users:   users,
		parser:  &timeparse.Parser{MaxMinuteOffset: cfg.MaxMinuteOffset},
		locks:   lock.Default,
		log:     *logger.Named("tracking"),
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// RecordStateChange implements §4.3's five orchestration steps under the
// per-user lock named in §5, committing the read, decide, and persist steps
// as one unit of work (§6.1)
func (s *Svc) RecordStateChange(ctx context.Context, in domain.RecordStateChangeInput) (domain.RecordStateChangeResult, error) {
	requested := domain.StateFromString(in.State)
	if requested == statemachine.StateIdle {
		return domain.RecordStateChangeResult{}, perr.InvalidArgf("unrecognized state %q", in.State)
	}

	var result domain.RecordStateChangeResult
	err := s.locks.With(in.UserID, func() error {
		offset, err := s.users.UTCOffsetMinutes(ctx, in.UserID)
		if err != nil {
			return err
		}

		ts, err := s.parser.ParseTimestamp(in.CommandText, s.nowFunc(), offset)
		if err != nil {
			return err
		}

		return s.db.Tx(ctx, func(q repokit.Queryer) error {
			r := s.binder.Bind(q)

			activeRow, err := r.FindActiveSession(ctx, in.UserID)
			if err != nil {
				return err
			}
			if activeRow != nil && ts.Before(activeRow.StartedAt) {
				return perr.Newf(perr.ErrorCodeValidation, "timestamp %s precedes active session start %s", ts, activeRow.StartedAt)
			}

			lastCommute, err := r.FindLastCommuteOfDay(ctx, in.UserID, ts)
			if err != nil {
				return err
			}
			hasWorked, err := r.HasWorkedOn(ctx, in.UserID, ts)
			if err != nil {
				return err
			}

			active := rowToSMSession(activeRow)
			lastDir := statemachine.CommuteDirectionNone
			if lastCommute != nil {
				lastDir = parseDir(lastCommute.CommuteDir)
			}

			decision, err := statemachine.Process(requested, ts, active, lastDir, hasWorked)
			if err != nil {
				return err
			}

			result, err = s.apply(ctx, r, in.UserID, decision)
			return err
		})
	})
	return result, err
}

// apply persists a statemachine.Decision through r and returns the service-level
// result; callers run it inside a single db.Tx so the end-old/insert-new pair
// that backs DecisionStartNewSession commits atomically
func (s *Svc) apply(ctx context.Context, r repo.Repo, userID string, d statemachine.Decision) (domain.RecordStateChangeResult, error) {
	switch d.Kind {
	case statemachine.DecisionEndSession:
		if err := r.Update(ctx, repo.Row{ID: d.EndSessionID, EndedAt: &d.Timestamp}); err != nil {
			return domain.RecordStateChangeResult{}, err
		}
		return domain.RecordStateChangeResult{Kind: "EndSession", EndedID: d.EndSessionID}, nil

	case statemachine.DecisionStartNewSession:
		newID := uuid.NewString()
		row := repo.Row{
			ID:         newID,
			UserID:     userID,
			State:      domain.StateToString(d.NewSession.State),
			StartedAt:  d.NewSession.StartedAt,
			CommuteDir: domain.CommuteDirToString(d.NewSession.CommuteDir),
			Note:       d.NewSession.Note,
		}
		if d.EndActiveID != "" {
			if err := r.Update(ctx, repo.Row{ID: d.EndActiveID, EndedAt: &d.Timestamp}); err != nil {
				return domain.RecordStateChangeResult{}, err
			}
		}
		if err := r.Insert(ctx, row); err != nil {
			return domain.RecordStateChangeResult{}, err
		}
		out := rowToDomainSession(row)
		return domain.RecordStateChangeResult{Kind: "StartNewSession", EndedID: d.EndActiveID, NewSession: &out}, nil

	default:
		return domain.RecordStateChangeResult{}, perr.Internalf("unknown decision kind %d", d.Kind)
	}
}

// ActiveSession returns the user's active session, if any
func (s *Svc) ActiveSession(ctx context.Context, userID string) (*domain.Session, error) {
	var row *repo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		row, err = s.binder.Bind(q).FindActiveSession(ctx, userID)
		return err
	})
	if err != nil || row == nil {
		return nil, err
	}
	out := rowToDomainSession(*row)
	return &out, nil
}

// SessionsInRange returns a user's sessions with startedAt in [from, to)
func (s *Svc) SessionsInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Session, error) {
	var rows []repo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		rows, err = s.binder.Bind(q).SessionsInRange(ctx, userID, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToDomainSession(r))
	}
	return out, nil
}

func parseDir(s string) statemachine.CommuteDirection {
	switch s {
	case "ToWork":
		return statemachine.CommuteDirectionToWork
	case "ToHome":
		return statemachine.CommuteDirectionToHome
	default:
		return statemachine.CommuteDirectionNone
	}
}

func rowToSMSession(r *repo.Row) *statemachine.Session {
	if r == nil {
		return nil
	}
	return &statemachine.Session{
		ID:         r.ID,
		State:      domain.StateFromString(r.State),
		StartedAt:  r.StartedAt,
		EndedAt:    r.EndedAt,
		CommuteDir: parseDir(r.CommuteDir),
		Note:       r.Note,
	}
}

func rowToDomainSession(r repo.Row) domain.Session {
	return domain.Session{
		ID:         r.ID,
		UserID:     r.UserID,
		State:      r.State,
		StartedAt:  r.StartedAt,
		EndedAt:    r.EndedAt,
		CommuteDir: r.CommuteDir,
		Note:       r.Note,
	}
}
