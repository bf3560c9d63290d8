// Package service wraps the pure core/compliance evaluator with repository
// access to a user's enabled rules and sessions (spec.md §4.8)
package service

import (
	"context"

	"worklog/internal/core/compliance"
	"worklog/internal/core/statemachine"
	"worklog/internal/modkit/repokit"

	"worklog/internal/services/compliance/domain"
	"worklog/internal/services/compliance/repo"
)

// Service is the compliance service contract
type Service interface{ domain.ServicePort }

// Svc implements Service
type Svc struct {
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	sessions domain.SessionsLookup
}

// New constructs the compliance service bound to a Postgres pool and the
// tracking service's SessionsLookup port
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], sessions domain.SessionsLookup) *Svc {
	if db == nil {
		panic("compliance.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("compliance.Service requires a non nil Repo binder")
	}
	return &Svc{binder: binder, db: db, sessions: sessions}
}

// Evaluate implements §4.8: loads enabled rules and sessions in range, runs the
// pure evaluator, and renders the result as the wire Violation shape
func (s *Svc) Evaluate(ctx context.Context, in domain.EvaluateInput) ([]domain.Violation, error) {
	var ruleRows []repo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		ruleRows, err = s.binder.Bind(q).RulesForUser(ctx, in.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	rules := make([]compliance.Rule, 0, len(ruleRows))
	for _, rr := range ruleRows {
		rules = append(rules, compliance.Rule{
			Type:           compliance.RuleType(rr.Type),
			ClockIn:        clockInFromString(rr.ClockIn),
			ClockOut:       clockOutFromString(rr.ClockOut),
			ThresholdHours: rr.Threshold,
		})
	}

	sessionViews, err := s.sessions.SessionsInRange(ctx, in.UserID, in.DateFrom, in.DateTo)
	if err != nil {
		return nil, err
	}
	sessions := make([]statemachine.Session, 0, len(sessionViews))
	for _, sv := range sessionViews {
		sessions = append(sessions, statemachine.Session{
			State:      stateFromString(sv.State),
			StartedAt:  sv.StartedAt,
			EndedAt:    sv.EndedAt,
			CommuteDir: dirFromString(sv.CommuteDir),
		})
	}

	violations := compliance.Evaluate(rules, sessions)
	out := make([]domain.Violation, 0, len(violations))
	for _, v := range violations {
		out = append(out, domain.Violation{
			Date:        v.Date,
			RuleType:    string(v.RuleType),
			ActualHours: v.ActualHours,
			Threshold:   v.Threshold,
			Description: v.Description,
		})
	}
	return out, nil
}

func clockInFromString(s string) compliance.ClockInDef {
	if s == "WorkStart" {
		return compliance.ClockInWorkStart
	}
	return compliance.ClockInCommuteEnd
}

func clockOutFromString(s string) compliance.ClockOutDef {
	if s == "WorkEnd" {
		return compliance.ClockOutWorkEnd
	}
	return compliance.ClockOutCommuteStart
}

func stateFromString(s string) statemachine.State {
	switch s {
	case "Working":
		return statemachine.StateWorking
	case "Commuting":
		return statemachine.StateCommuting
	case "Lunch":
		return statemachine.StateLunch
	default:
		return statemachine.StateIdle
	}
}

func dirFromString(s string) statemachine.CommuteDirection {
	switch s {
	case "ToWork":
		return statemachine.CommuteDirectionToWork
	case "ToHome":
		return statemachine.CommuteDirectionToHome
	default:
		return statemachine.CommuteDirectionNone
	}
}
