package domain

import (
	"context"
	"time"
)

// ServicePort is the tracking service's external contract (§4.3, §6.2)
type ServicePort interface {
	// RecordStateChange parses ts from in.CommandText using the user's UTC offset,
	// then runs the §4.3 orchestration steps against the statemachine
	RecordStateChange(ctx context.Context, in RecordStateChangeInput) (RecordStateChangeResult, error)

	// ActiveSession returns the user's active session, if any
	ActiveSession(ctx context.Context, userID string) (*Session, error)

	// SessionsInRange returns a user's sessions with startedAt in [from, to)
	SessionsInRange(ctx context.Context, userID string, from, to time.Time) ([]Session, error)
}
