package timeparse

import (
	"testing"
	"time"

	perr "worklog/internal/platform/errors"
)

func mustUTC(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestParseTimestamp_Empty(t *testing.T) {
	now := mustUTC("2026-07-31T10:00:00Z")
	p := New()
	got, err := p.ParseTimestamp("/work", now, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("got %v, want %v", got, now)
	}
}

func TestParseTimestamp_MinuteOffset(t *testing.T) {
	now := mustUTC("2026-07-31T10:00:00Z")
	p := New()

	tests := []struct {
		name  string
		param string
		want  time.Time
	}{
		{"plus", "/work +15", now.Add(15 * time.Minute)},
		{"minus", "/work -15", now.Add(-15 * time.Minute)},
		{"plus with m", "/work +m15", now.Add(15 * time.Minute)},
		{"cap boundary", "/work -720", now.Add(-720 * time.Minute)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.ParseTimestamp(tc.param, now, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

// S6 — Minute-offset cap: "/work -721", offset=0 -> InvalidParameter
func TestParseTimestamp_MinuteOffsetCap(t *testing.T) {
	now := mustUTC("2026-07-31T10:00:00Z")
	p := New()
	_, err := p.ParseTimestamp("/work -721", now, 0)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

// S5 — Parser explicit time, UTC+120: "/work [14:30]", offset=+120, invoked at 10:00Z (12:00
// local). Expected result: 12:30Z (14:30 local minus 2h)
func TestParseTimestamp_ExplicitClockTime(t *testing.T) {
	now := mustUTC("2026-07-31T10:00:00Z")
	p := New()
	got, err := p.ParseTimestamp("/work [14:30]", now, 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustUTC("2026-07-31T12:30:00Z")
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseTimestamp_ExplicitClockTime_NoBrackets(t *testing.T) {
	now := mustUTC("2026-07-31T10:00:00Z")
	p := New()
	got, err := p.ParseTimestamp("/work 14:30", now, 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustUTC("2026-07-31T12:30:00Z")
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseTimestamp_ExplicitClockTime_Invalid(t *testing.T) {
	now := mustUTC("2026-07-31T10:00:00Z")
	p := New()

	tests := []string{"/work [24:00]", "/work [10:60]", "/work [99:99]"}
	for _, cmd := range tests {
		_, err := p.ParseTimestamp(cmd, now, 0)
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("%q: expected InvalidArgument, got %v", cmd, err)
		}
	}
}

func TestParseTimestamp_Garbage(t *testing.T) {
	now := mustUTC("2026-07-31T10:00:00Z")
	p := New()
	_, err := p.ParseTimestamp("/work whenever", now, 0)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

// Round-trip law: parsing a clock time at a given offset and converting back to local with
// the same offset reproduces the original wall-clock hour and minute
func TestParseTimestamp_RoundTrip(t *testing.T) {
	now := mustUTC("2026-07-31T10:00:00Z")
	p := New()
	offset := -330 // UTC-05:30

	got, err := p.ParseTimestamp("/work [09:15]", now, offset)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	local := got.Add(time.Duration(offset) * time.Minute)
	if local.Hour() != 9 || local.Minute() != 15 {
		t.Fatalf("round trip failed: local = %v", local)
	}
}

func TestParseTimestamp_DefaultCapUsedWhenUnset(t *testing.T) {
	now := mustUTC("2026-07-31T10:00:00Z")
	p := &Parser{}
	_, err := p.ParseTimestamp("/work -721", now, 0)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	got, err := p.ParseTimestamp("/work -720", now, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(now.Add(-720 * time.Minute)) {
		t.Fatalf("got %v", got)
	}
}
