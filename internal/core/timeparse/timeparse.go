// Package timeparse turns the free-text suffix of a tracking command into a UTC timestamp
// Grammars are checked in order: minute offset, explicit wall-clock time, then empty
// Anything else is an InvalidParameter failure. There is no timezone database involved;
// a user's zone is modelled as a literal UTC offset in minutes, so parsing stays pure and
// deterministic
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	perr "worklog/internal/platform/errors"
)

// DefaultMaxMinuteOffset is the default cap on the minute-offset grammar's magnitude
const DefaultMaxMinuteOffset = 720

var (
	minuteOffsetRe = regexp.MustCompile(`(?i)^\s*([-+])\s*m?\s*(\d+)\s*$`)
	clockTimeRe    = regexp.MustCompile(`^\s*\[?(\d{1,2}):(\d{2})\]?\s*$`)
)

// Parser parses command parameters into UTC timestamps relative to a fixed now and a
// per-user UTC offset. MaxMinuteOffset defaults to DefaultMaxMinuteOffset when zero
type Parser struct {
	MaxMinuteOffset int
}

// New returns a Parser with the default minute-offset cap
func New() *Parser { return &Parser{MaxMinuteOffset: DefaultMaxMinuteOffset} }

// maxOffset returns the configured cap, defaulting when unset
func (p *Parser) maxOffset() int {
	if p == nil || p.MaxMinuteOffset <= 0 {
		return DefaultMaxMinuteOffset
	}
	return p.MaxMinuteOffset
}

// ParseTimestamp parses commandText's parameter (everything after the first whitespace-
// delimited token) into a UTC timestamp. now must already be UTC. userUTCOffsetMinutes is
// added to now to produce the user's local civil date for the wall-clock grammar
func (p *Parser) ParseTimestamp(commandText string, now time.Time, userUTCOffsetMinutes int) (time.Time, error) {
	param := parameterOf(commandText)

	if param == "" {
		return now, nil
	}

	if m := minuteOffsetRe.FindStringSubmatch(param); m != nil {
		return parseMinuteOffset(m, now, p.maxOffset())
	}

	if m := clockTimeRe.FindStringSubmatch(param); m != nil {
		return parseClockTime(m, now, userUTCOffsetMinutes)
	}

	return time.Time{}, perr.InvalidArgf("invalid time parameter %q", param)
}

// parameterOf strips the leading command token and surrounding whitespace
func parameterOf(commandText string) string {
	fields := strings.SplitN(strings.TrimSpace(commandText), " ", 2)
	if len(fields) < 2 {
		return ""
	}
	return strings.TrimSpace(fields[1])
}

func parseMinuteOffset(m []string, now time.Time, maxOffset int) (time.Time, error) {
	sign := 1
	if m[1] == "-" {
		sign = -1
	}
	magnitude, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, perr.InvalidArgf("invalid minute offset %q", m[0])
	}
	if magnitude > maxOffset {
		return time.Time{}, perr.InvalidArgf("minute offset %d exceeds cap %d", magnitude, maxOffset)
	}
	return now.Add(time.Duration(sign*magnitude) * time.Minute), nil
}

func parseClockTime(m []string, now time.Time, userUTCOffsetMinutes int) (time.Time, error) {
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, perr.InvalidArgf("invalid hour in %q", m[0])
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, perr.InvalidArgf("invalid minute in %q", m[0])
	}

	localNow := now.Add(time.Duration(userUTCOffsetMinutes) * time.Minute)
	localNaive := time.Date(
		localNow.Year(), localNow.Month(), localNow.Day(),
		hour, minute, 0, 0, time.UTC,
	)
	return localNaive.Add(-time.Duration(userUTCOffsetMinutes) * time.Minute), nil
}
