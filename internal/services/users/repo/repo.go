// Package repo provides the Postgres-backed user and identity repository
// (spec.md §6.4: Users, UserIdentities)
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"worklog/internal/modkit/repokit"
	perr "worklog/internal/platform/errors"
)

// Row is the raw Users row shape
type Row struct {
	ID                      string
	DisplayName             string
	UTCOffsetMinutes        int
	MaxWorkHours            *float64
	MaxCommuteHours         *float64
	MaxLunchHours           *float64
	LunchReminderHour       *int
	LunchReminderMinute     *int
	EndOfDayReminderHour    *int
	EndOfDayReminderMinute  *int
	DailyTargetWorkHours    *float64
	ForgotShutdownThreshold *float64
	RegisteredAt            time.Time
	IsAdmin                 bool
}

// Repo is the user repository contract from spec.md §6.1
type Repo interface {
	FindByExternalIdentity(ctx context.Context, provider, externalID string) (*Row, error)
	Get(ctx context.Context, userID string) (*Row, error)
	ListAll(ctx context.Context) ([]Row, error)
	InsertWithIdentity(ctx context.Context, u Row, provider, externalID string) error

	UpdateUTCOffset(ctx context.Context, userID string, minutes int) error
	UpdateCaps(ctx context.Context, userID string, work, commute, lunch *float64) error
	UpdateLunchReminder(ctx context.Context, userID string, hour, minute int) error
	UpdateEndOfDayReminder(ctx context.Context, userID string, hour, minute int) error
	UpdateTargets(ctx context.Context, userID string, dailyTarget, forgotThreshold *float64) error
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

const selectCols = `
	u.id, u.display_name, u.utc_offset_minutes,
	u.max_work_hours, u.max_commute_hours, u.max_lunch_hours,
	u.lunch_reminder_hour, u.lunch_reminder_minute,
	u.end_of_day_reminder_hour, u.end_of_day_reminder_minute,
	u.daily_target_work_hours, u.forgot_shutdown_threshold_percent,
	u.registered_at, u.is_admin`

func scanRow(row interface{ Scan(dest ...any) error }) (Row, error) {
	var r Row
	err := row.Scan(
		&r.ID, &r.DisplayName, &r.UTCOffsetMinutes,
		&r.MaxWorkHours, &r.MaxCommuteHours, &r.MaxLunchHours,
		&r.LunchReminderHour, &r.LunchReminderMinute,
		&r.EndOfDayReminderHour, &r.EndOfDayReminderMinute,
		&r.DailyTargetWorkHours, &r.ForgotShutdownThreshold,
		&r.RegisteredAt, &r.IsAdmin,
	)
	return r, err
}

// FindByExternalIdentity resolves a user from a (provider, external id) pair
func (r *queries) FindByExternalIdentity(ctx context.Context, provider, externalID string) (*Row, error) {
	const sql = `select ` + selectCols + ` from users u
		join user_identities i on i.user_id = u.id
		where i.provider = $1 and i.external_id = $2 limit 1`
	row, err := scanRow(r.q.QueryRow(ctx, sql, provider, externalID))
	if errors.Is(err, stdsql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "find user by identity %s/%s", provider, externalID)
	}
	return &row, nil
}

// Get fetches a single user by id
func (r *queries) Get(ctx context.Context, userID string) (*Row, error) {
	const sql = `select ` + selectCols + ` from users u where u.id = $1`
	row, err := scanRow(r.q.QueryRow(ctx, sql, userID))
	if errors.Is(err, stdsql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "get user %s", userID)
	}
	return &row, nil
}

// ListAll returns every registered user; consumed by the reminder supervisor
func (r *queries) ListAll(ctx context.Context) ([]Row, error) {
	const sql = `select ` + selectCols + ` from users u`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "list all users")
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDB, "scan user row")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// InsertWithIdentity creates a user and its first external identity row in one
// statement pair; the caller must wrap this in a transaction when identity
// uniqueness needs to be enforced atomically with user creation
func (r *queries) InsertWithIdentity(ctx context.Context, u Row, provider, externalID string) error {
	const insertUser = `insert into users
		(id, display_name, utc_offset_minutes, registered_at, is_admin)
		values ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, insertUser, u.ID, u.DisplayName, u.UTCOffsetMinutes, u.RegisteredAt, u.IsAdmin); err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.Conflictf("user %s already exists", u.ID)
		}
		return perr.Wrapf(err, perr.ErrorCodeDB, "insert user %s", u.ID)
	}
	const insertIdentity = `insert into user_identities (provider, external_id, user_id) values ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, insertIdentity, provider, externalID, u.ID); err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.Conflictf("identity %s/%s already claimed", provider, externalID)
		}
		return perr.Wrapf(err, perr.ErrorCodeDB, "insert identity %s/%s", provider, externalID)
	}
	return nil
}

// UpdateUTCOffset mutates a user's UTC offset in place
func (r *queries) UpdateUTCOffset(ctx context.Context, userID string, minutes int) error {
	return r.mustUpdate(ctx, `update users set utc_offset_minutes = $2 where id = $1`, userID, minutes)
}

// UpdateCaps mutates a user's per-state auto-shutdown caps
func (r *queries) UpdateCaps(ctx context.Context, userID string, work, commute, lunch *float64) error {
	const sql = `update users set max_work_hours = $2, max_commute_hours = $3, max_lunch_hours = $4 where id = $1`
	return r.mustUpdate(ctx, sql, userID, work, commute, lunch)
}

// UpdateLunchReminder mutates a user's lunch-reminder local time
func (r *queries) UpdateLunchReminder(ctx context.Context, userID string, hour, minute int) error {
	const sql = `update users set lunch_reminder_hour = $2, lunch_reminder_minute = $3 where id = $1`
	return r.mustUpdate(ctx, sql, userID, hour, minute)
}

// UpdateEndOfDayReminder mutates a user's end-of-day-reminder local time
func (r *queries) UpdateEndOfDayReminder(ctx context.Context, userID string, hour, minute int) error {
	const sql = `update users set end_of_day_reminder_hour = $2, end_of_day_reminder_minute = $3 where id = $1`
	return r.mustUpdate(ctx, sql, userID, hour, minute)
}

// UpdateTargets mutates a user's daily target hours and forgot-shutdown threshold
func (r *queries) UpdateTargets(ctx context.Context, userID string, dailyTarget, forgotThreshold *float64) error {
	const sql = `update users set daily_target_work_hours = $2, forgot_shutdown_threshold_percent = $3 where id = $1`
	return r.mustUpdate(ctx, sql, userID, dailyTarget, forgotThreshold)
}

func (r *queries) mustUpdate(ctx context.Context, sql string, args ...any) error {
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "update user")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("user not found")
	}
	return nil
}
