package domain

import (
	"context"
	"time"
)

// ServicePort is the compliance service's external contract
type ServicePort interface {
	// Evaluate implements §4.8: evaluate(userId, dateFrom, dateTo) -> violations,
	// ordered by date ascending
	Evaluate(ctx context.Context, in EvaluateInput) ([]Violation, error)
}

// SessionView is the minimal session shape the compliance evaluator needs;
// it mirrors statemachine.Session so this service doesn't import the tracking
// service's repo package directly
type SessionView struct {
	State      string
	StartedAt  time.Time
	EndedAt    *time.Time
	CommuteDir string
}

// SessionsLookup is the narrow port into the tracking repository this service
// consumes; the compliance service does not own the TrackingSessions table
type SessionsLookup interface {
	SessionsInRange(ctx context.Context, userID string, fromUTC, toUTC time.Time) ([]SessionView, error)
}
