// Package statemachine implements the per-user, toggle-driven tracking state machine
// It is a pure function: given the requested state, the caller's notion of "now", the
// user's current active session (if any), the direction of today's last commute, and
// whether the user has worked today, it decides whether to end the active session, start a
// new one, or reject the request. It never touches storage and never holds a session beyond
// one call
package statemachine

import (
	"time"

	perr "worklog/internal/platform/errors"
)

// State is a tracking session's state
type State int

const (
	// StateIdle is never a valid requested state; it exists only to represent "no active session"
	StateIdle State = iota
	// StateWorking is the Working state
	StateWorking
	// StateCommuting is the Commuting state
	StateCommuting
	// StateLunch is the Lunch state
	StateLunch
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateWorking:
		return "Working"
	case StateCommuting:
		return "Commuting"
	case StateLunch:
		return "Lunch"
	default:
		return "Idle"
	}
}

// CommuteDirection is the direction of a Commuting session
type CommuteDirection int

const (
	// CommuteDirectionNone means the session is not a commute, or no commute has happened yet
	CommuteDirectionNone CommuteDirection = iota
	// CommuteDirectionToWork is the morning commute
	CommuteDirectionToWork
	// CommuteDirectionToHome is the evening commute
	CommuteDirectionToHome
)

// String implements fmt.Stringer
func (d CommuteDirection) String() string {
	switch d {
	case CommuteDirectionToWork:
		return "ToWork"
	case CommuteDirectionToHome:
		return "ToHome"
	default:
		return ""
	}
}

// Session is the minimal view of a tracking session the machine needs
type Session struct {
	ID         string
	State      State
	StartedAt  time.Time
	EndedAt    *time.Time
	CommuteDir CommuteDirection
	Note       string
}

// DecisionKind tags which variant a Decision carries
type DecisionKind int

const (
	// DecisionEndSession ends the active session; it was a toggle of the same state
	DecisionEndSession DecisionKind = iota
	// DecisionStartNewSession starts a new session, optionally ending the prior active one
	DecisionStartNewSession
)

// Decision is the outcome of processStateChange
// For DecisionEndSession, EndSessionID names the session to end at Timestamp
// For DecisionStartNewSession, NewSession is the session to create; if EndActiveID is
// non-empty the caller must also end that session at Timestamp, in the same atomic step
type Decision struct {
	Kind         DecisionKind
	Timestamp    time.Time
	EndSessionID string
	NewSession   Session
	EndActiveID  string
}

// Process implements processStateChange(requested, ts, active, lastCommuteDir,
// hasWorkedToday) -> decision. It takes no user id: stamping the owning user on NewSession
// is left to the caller (it is not part of Session here since the machine is storage-agnostic)
func Process(requested State, ts time.Time, active *Session, lastCommuteDir CommuteDirection, hasWorkedToday bool) (Decision, error) {
	if requested == StateIdle {
		return Decision{}, perr.InvalidArgf("cannot request idle state")
	}

	if active != nil && active.State == requested {
		return Decision{
			Kind:         DecisionEndSession,
			Timestamp:    ts,
			EndSessionID: active.ID,
		}, nil
	}

	newSession := Session{
		State:     requested,
		StartedAt: ts,
	}
	if requested == StateCommuting {
		newSession.CommuteDir = inferCommuteDirection(lastCommuteDir, hasWorkedToday)
	}

	d := Decision{
		Kind:       DecisionStartNewSession,
		Timestamp:  ts,
		NewSession: newSession,
	}
	if active != nil {
		d.EndActiveID = active.ID
	}
	return d, nil
}

// inferCommuteDirection implements the §4.2 commute-direction inference rules:
// absent last commute -> ToWork; else if the user has worked today -> ToHome; else alternate
func inferCommuteDirection(lastCommuteDir CommuteDirection, hasWorkedToday bool) CommuteDirection {
	if lastCommuteDir == CommuteDirectionNone {
		return CommuteDirectionToWork
	}
	if hasWorkedToday {
		return CommuteDirectionToHome
	}
	if lastCommuteDir == CommuteDirectionToWork {
		return CommuteDirectionToHome
	}
	return CommuteDirectionToWork
}
