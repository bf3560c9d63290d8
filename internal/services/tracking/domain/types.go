// Package domain holds the tracking service's DTOs and ports
package domain

import (
	"time"

	"worklog/internal/core/statemachine"
)

// Session is the wire/service view of a tracking session
type Session struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	State      string     `json:"state"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	CommuteDir string     `json:"commute_direction,omitempty"`
	Note       string     `json:"note,omitempty"`
}

// RecordStateChangeInput is the command-surface input for §6.2 recordStateChange
type RecordStateChangeInput struct {
	UserID      string `json:"user_id" validate:"required"`
	CommandText string `json:"command_text" validate:"required"`
	State       string `json:"state" validate:"required,oneof=Working Commuting Lunch"`
}

// RecordStateChangeResult reports what the service did
type RecordStateChangeResult struct {
	Kind       string   `json:"kind"` // "EndSession" | "StartNewSession"
	EndedID    string   `json:"ended_session_id,omitempty"`
	NewSession *Session `json:"new_session,omitempty"`
}

// stateFromString maps the wire state name to the core enum
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

// StateFromString exposes stateFromString to sibling packages (repo/service)
func StateFromString(s string) statemachine.State { return stateFromString(s) }

// StateToString renders a core State back to its wire name
func StateToString(s statemachine.State) string { return s.String() }

// CommuteDirToString renders a core CommuteDirection back to its wire name
func CommuteDirToString(d statemachine.CommuteDirection) string { return d.String() }
