// Package repo provides the Postgres-backed holiday repository (spec.md §6.4: Holidays)
package repo

import (
	"context"
	"time"

	"worklog/internal/modkit/repokit"
	perr "worklog/internal/platform/errors"
)

// Row is the raw Holidays row shape
type Row struct {
	ID          string
	UserID      string
	StartDate   time.Time
	EndDate     time.Time
	Type        string
	Description string
}

// Repo is the holiday repository contract from spec.md §6.1/§6.4
type Repo interface {
	Insert(ctx context.Context, row Row) error
	ListForUser(ctx context.Context, userID string) ([]Row, error)
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

const selectCols = `id, user_id, start_date, end_date, type, coalesce(description, '')`

func scanRow(row interface{ Scan(dest ...any) error }) (Row, error) {
	var r Row
	err := row.Scan(&r.ID, &r.UserID, &r.StartDate, &r.EndDate, &r.Type, &r.Description)
	return r, err
}

// Insert creates a holiday row
func (r *queries) Insert(ctx context.Context, row Row) error {
	const sql = `insert into holidays (id, user_id, start_date, end_date, type, description)
		values ($1, $2, $3, $4, $5, nullif($6, ''))`
	if _, err := r.q.Exec(ctx, sql, row.ID, row.UserID, row.StartDate, row.EndDate, row.Type, row.Description); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "insert holiday %s", row.ID)
	}
	return nil
}

// ListForUser returns every holiday row owned by userID, ordered by start date
func (r *queries) ListForUser(ctx context.Context, userID string) ([]Row, error) {
	const sql = `select ` + selectCols + ` from holidays where user_id = $1 order by start_date asc`
	rows, err := r.q.Query(ctx, sql, userID)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "list holidays for %s", userID)
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDB, "scan holiday row")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
