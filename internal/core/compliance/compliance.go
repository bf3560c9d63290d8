// Package compliance evaluates employer "minimum-span" rules against a user's sessions
// It is a pure function over already-loaded rules and sessions: no repository access, no
// clock reads. Sessions are grouped by the UTC date of their started-at, and for each
// (day, rule) pair a clock-in and clock-out time are resolved according to the rule's
// definitions; a violation is emitted when the resulting span falls short of the rule's
// threshold
package compliance

import (
	"fmt"
	"sort"
	"time"

	"worklog/internal/core/statemachine"
)

// ClockInDef names how a rule resolves the start of a compliant span
type ClockInDef int

const (
	// ClockInCommuteEnd resolves to the ended-at of the day's first completed Commuting,ToWork session
	ClockInCommuteEnd ClockInDef = iota
	// ClockInWorkStart resolves to the started-at of the day's first Working session
	ClockInWorkStart
)

// ClockOutDef names how a rule resolves the end of a compliant span
type ClockOutDef int

const (
	// ClockOutCommuteStart resolves to the started-at of the day's last Commuting,ToHome session
	ClockOutCommuteStart ClockOutDef = iota
	// ClockOutWorkEnd resolves to the ended-at of the day's last completed Working session
	ClockOutWorkEnd
)

// RuleType names the kind of compliance rule; only MinimumSpan exists today
type RuleType string

// RuleTypeMinimumSpan is the only currently supported rule type
const RuleTypeMinimumSpan RuleType = "MinimumSpan"

// Rule is an enabled compliance rule for a user
type Rule struct {
	Type           RuleType
	ClockIn        ClockInDef
	ClockOut       ClockOutDef
	ThresholdHours float64
}

// Violation describes one day's shortfall against one rule
type Violation struct {
	Date        time.Time
	RuleType    RuleType
	ActualHours float64
	Threshold   float64
	Description string
}

// Evaluate groups sessions by the UTC date of their started-at and, for each day and each
// enabled rule, resolves a clock-in/clock-out span and compares it against the rule's
// threshold. Violations are returned ordered by date ascending
func Evaluate(rules []Rule, sessions []statemachine.Session) []Violation {
	byDay := groupByDay(sessions)

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var violations []Violation
	for _, day := range days {
		daySessions := byDay[day]
		for _, rule := range rules {
			v, ok := evaluateDay(day, rule, daySessions)
			if ok {
				violations = append(violations, v)
			}
		}
	}
	return violations
}

func groupByDay(sessions []statemachine.Session) map[time.Time][]statemachine.Session {
	byDay := make(map[time.Time][]statemachine.Session)
	for _, s := range sessions {
		day := time.Date(s.StartedAt.Year(), s.StartedAt.Month(), s.StartedAt.Day(), 0, 0, 0, 0, time.UTC)
		byDay[day] = append(byDay[day], s)
	}
	return byDay
}

func evaluateDay(day time.Time, rule Rule, sessions []statemachine.Session) (Violation, bool) {
	clockIn, ok := resolveClockIn(rule.ClockIn, sessions)
	if !ok {
		return Violation{}, false
	}
	clockOut, ok := resolveClockOut(rule.ClockOut, sessions)
	if !ok {
		return Violation{}, false
	}
	if !clockOut.After(clockIn) {
		return Violation{}, false
	}

	actualHours := clockOut.Sub(clockIn).Hours()
	if actualHours >= rule.ThresholdHours {
		return Violation{}, false
	}

	return Violation{
		Date:        day,
		RuleType:    rule.Type,
		ActualHours: actualHours,
		Threshold:   rule.ThresholdHours,
		Description: fmt.Sprintf("span %.2fh short of %.2fh threshold", actualHours, rule.ThresholdHours),
	}, true
}

func resolveClockIn(def ClockInDef, sessions []statemachine.Session) (time.Time, bool) {
	switch def {
	case ClockInCommuteEnd:
		return firstCompleted(sessions, statemachine.StateCommuting, statemachine.CommuteDirectionToWork, true)
	case ClockInWorkStart:
		return firstStarted(sessions, statemachine.StateWorking)
	default:
		return time.Time{}, false
	}
}

func resolveClockOut(def ClockOutDef, sessions []statemachine.Session) (time.Time, bool) {
	switch def {
	case ClockOutCommuteStart:
		return lastStarted(sessions, statemachine.StateCommuting, statemachine.CommuteDirectionToHome)
	case ClockOutWorkEnd:
		return lastCompleted(sessions, statemachine.StateWorking)
	default:
		return time.Time{}, false
	}
}

// firstCompleted finds the earliest-started completed session matching state (and commute
// direction, when useDir is true) and returns its ended-at
func firstCompleted(sessions []statemachine.Session, state statemachine.State, dir statemachine.CommuteDirection, useDir bool) (time.Time, bool) {
	var best *statemachine.Session
	for i := range sessions {
		s := &sessions[i]
		if s.State != state || s.EndedAt == nil {
			continue
		}
		if useDir && s.CommuteDir != dir {
			continue
		}
		if best == nil || s.StartedAt.Before(best.StartedAt) {
			best = s
		}
	}
	if best == nil {
		return time.Time{}, false
	}
	return *best.EndedAt, true
}

// firstStarted finds the earliest-started session matching state and returns its started-at
func firstStarted(sessions []statemachine.Session, state statemachine.State) (time.Time, bool) {
	var best *statemachine.Session
	for i := range sessions {
		s := &sessions[i]
		if s.State != state {
			continue
		}
		if best == nil || s.StartedAt.Before(best.StartedAt) {
			best = s
		}
	}
	if best == nil {
		return time.Time{}, false
	}
	return best.StartedAt, true
}

// lastStarted finds the latest-started session matching state and direction and returns its
// started-at
func lastStarted(sessions []statemachine.Session, state statemachine.State, dir statemachine.CommuteDirection) (time.Time, bool) {
	var best *statemachine.Session
	for i := range sessions {
		s := &sessions[i]
		if s.State != state || s.CommuteDir != dir {
			continue
		}
		if best == nil || s.StartedAt.After(best.StartedAt) {
			best = s
		}
	}
	if best == nil {
		return time.Time{}, false
	}
	return best.StartedAt, true
}

// lastCompleted finds the latest-started completed session matching state and returns its
// ended-at
func lastCompleted(sessions []statemachine.Session, state statemachine.State) (time.Time, bool) {
	var best *statemachine.Session
	for i := range sessions {
		s := &sessions[i]
		if s.State != state || s.EndedAt == nil {
			continue
		}
		if best == nil || s.StartedAt.After(best.StartedAt) {
			best = s
		}
	}
	if best == nil {
		return time.Time{}, false
	}
	return *best.EndedAt, true
}
