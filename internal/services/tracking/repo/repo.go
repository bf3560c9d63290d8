// Package repo provides the Postgres-backed session repository described in
// spec.md §6.1. It is the only package that knows the TrackingSessions table
// shape; the tracking service and the supervisors all talk to it through Repo
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"worklog/internal/modkit/repokit"
	perr "worklog/internal/platform/errors"
)

// Row is the raw row shape returned by the session queries
type Row struct {
	ID         string
	UserID     string
	State      string
	StartedAt  time.Time
	EndedAt    *time.Time
	CommuteDir string
	Note       string
}

// Repo is the session repository contract from spec.md §6.1
type Repo interface {
	FindActiveSession(ctx context.Context, userID string) (*Row, error)
	FindLastCommuteOfDay(ctx context.Context, userID string, day time.Time) (*Row, error)
	HasWorkedOn(ctx context.Context, userID string, day time.Time) (bool, error)
	SessionsInRange(ctx context.Context, userID string, fromUTC, toUTC time.Time) ([]Row, error)
	AllActiveSessions(ctx context.Context) ([]Row, error)
	Insert(ctx context.Context, s Row) error
	Update(ctx context.Context, s Row) error

	// LastNCompletedDurations returns the durations (ended_at - started_at) of a
	// user's most recent n completed sessions in the given state, newest first.
	// It backs the forgot-shutdown supervisor's historical-average check (§4.5)
	LastNCompletedDurations(ctx context.Context, userID, state string, n int) ([]time.Duration, error)
}

type (
	// PG is a Postgres binder for Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const selectCols = `id, user_id, state, started_at, ended_at, coalesce(commute_direction, ''), coalesce(note, '')`

func scanRow(row interface{ Scan(dest ...any) error }) (Row, error) {
	var r Row
	if err := row.Scan(&r.ID, &r.UserID, &r.State, &r.StartedAt, &r.EndedAt, &r.CommuteDir, &r.Note); err != nil {
		return Row{}, err
	}
	return r, nil
}

// FindActiveSession returns the user's unique session with ended_at = null, if any
func (r *queries) FindActiveSession(ctx context.Context, userID string) (*Row, error) {
	const sql = `select ` + selectCols + ` from tracking_sessions
		where user_id = $1 and ended_at is null limit 1`
	row, err := scanRow(r.q.QueryRow(ctx, sql, userID))
	if errors.Is(err, stdsql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "find active session for %s", userID)
	}
	return &row, nil
}

// FindLastCommuteOfDay returns the most recently started Commuting session whose
// started_at falls on day's UTC date, or nil if none
func (r *queries) FindLastCommuteOfDay(ctx context.Context, userID string, day time.Time) (*Row, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	const sql = `select ` + selectCols + ` from tracking_sessions
		where user_id = $1 and state = 'Commuting' and started_at >= $2 and started_at < $3
		order by started_at desc limit 1`
	row, err := scanRow(r.q.QueryRow(ctx, sql, userID, start, end))
	if errors.Is(err, stdsql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "find last commute of day for %s", userID)
	}
	return &row, nil
}

// HasWorkedOn reports whether the user has at least one completed Working session
// started on day's UTC date
func (r *queries) HasWorkedOn(ctx context.Context, userID string, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	const sql = `select exists(
		select 1 from tracking_sessions
		where user_id = $1 and state = 'Working' and ended_at is not null
		  and started_at >= $2 and started_at < $3
	)`
	var ok bool
	if err := r.q.QueryRow(ctx, sql, userID, start, end).Scan(&ok); err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeDB, "has worked on for %s", userID)
	}
	return ok, nil
}

// SessionsInRange returns every session whose started_at lies in [fromUTC, toUTC), ordered
// ascending by started_at
func (r *queries) SessionsInRange(ctx context.Context, userID string, fromUTC, toUTC time.Time) ([]Row, error) {
	const sql = `select ` + selectCols + ` from tracking_sessions
		where user_id = $1 and started_at >= $2 and started_at < $3
		order by started_at asc`
	rows, err := r.q.Query(ctx, sql, userID, fromUTC, toUTC)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "sessions in range for %s", userID)
	}
	defer rows.Close()
	return collectRows(rows)
}

// AllActiveSessions returns every session across every user with ended_at = null; consumed by
// the auto-shutdown and forgot-shutdown supervisors
func (r *queries) AllActiveSessions(ctx context.Context) ([]Row, error) {
	const sql = `select ` + selectCols + ` from tracking_sessions where ended_at is null`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "all active sessions")
	}
	defer rows.Close()
	return collectRows(rows)
}

func collectRows(rows repokit.Rows) ([]Row, error) {
	var out []Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDB, "scan session row")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Insert creates a new session row
func (r *queries) Insert(ctx context.Context, s Row) error {
	const sql = `insert into tracking_sessions
		(id, user_id, state, started_at, ended_at, commute_direction, note)
		values ($1, $2, $3, $4, $5, nullif($6, ''), nullif($7, ''))`
	_, err := r.q.Exec(ctx, sql, s.ID, s.UserID, s.State, s.StartedAt, s.EndedAt, s.CommuteDir, s.Note)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "insert session %s", s.ID)
	}
	return nil
}

// LastNCompletedDurations returns the durations of a user's most recent n
// completed sessions in state, newest-started first
func (r *queries) LastNCompletedDurations(ctx context.Context, userID, state string, n int) ([]time.Duration, error) {
	const sql = `select started_at, ended_at from tracking_sessions
		where user_id = $1 and state = $2 and ended_at is not null
		order by started_at desc limit $3`
	rows, err := r.q.Query(ctx, sql, userID, state, n)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "last %d %s durations for %s", n, state, userID)
	}
	defer rows.Close()
	var out []time.Duration
	for rows.Next() {
		var started, ended time.Time
		if err := rows.Scan(&started, &ended); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDB, "scan duration row")
		}
		out = append(out, ended.Sub(started))
	}
	return out, rows.Err()
}

// Update persists a session's mutable fields (ended_at only changes once per session)
func (r *queries) Update(ctx context.Context, s Row) error {
	const sql = `update tracking_sessions set ended_at = $2 where id = $1`
	tag, err := r.q.Exec(ctx, sql, s.ID, s.EndedAt)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "update session %s", s.ID)
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("session %s not found", s.ID)
	}
	return nil
}
