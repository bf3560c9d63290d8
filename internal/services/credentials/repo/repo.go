// Package repo provides the Postgres-backed pending-mnemonic repository
// (spec.md §6.4: PendingMnemonics)
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"worklog/internal/modkit/repokit"
	perr "worklog/internal/platform/errors"
)

// Row is the raw PendingMnemonics row shape
type Row struct {
	Phrase     string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Consumed   bool
	Provider   *string
	ExternalID *string
	GrantAdmin bool
}

// Repo is the pending-mnemonic repository contract from spec.md §6.1
type Repo interface {
	Insert(ctx context.Context, row Row) error
	FindByPhrase(ctx context.Context, phrase string) (*Row, error)
	MarkConsumed(ctx context.Context, phrase string) error
	DeleteExpiredOrConsumed(ctx context.Context, now time.Time) (int, error)
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

const selectCols = `phrase, created_at, expires_at, consumed, provider, external_id, grant_admin`

func scanRow(row interface{ Scan(dest ...any) error }) (Row, error) {
	var r Row
	err := row.Scan(&r.Phrase, &r.CreatedAt, &r.ExpiresAt, &r.Consumed, &r.Provider, &r.ExternalID, &r.GrantAdmin)
	return r, err
}

// Insert creates a pending mnemonic row
func (r *queries) Insert(ctx context.Context, row Row) error {
	const sql = `insert into pending_mnemonics
		(phrase, created_at, expires_at, consumed, provider, external_id, grant_admin)
		values ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, sql, row.Phrase, row.CreatedAt, row.ExpiresAt, row.Consumed, row.Provider, row.ExternalID, row.GrantAdmin); err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.Conflictf("credential already issued")
		}
		return perr.Wrapf(err, perr.ErrorCodeDB, "insert pending mnemonic")
	}
	return nil
}

// FindByPhrase looks up a pending mnemonic by its credential string
func (r *queries) FindByPhrase(ctx context.Context, phrase string) (*Row, error) {
	const sql = `select ` + selectCols + ` from pending_mnemonics where phrase = $1`
	row, err := scanRow(r.q.QueryRow(ctx, sql, phrase))
	if errors.Is(err, stdsql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "find pending mnemonic")
	}
	return &row, nil
}

// MarkConsumed flips the consumed flag for a phrase
func (r *queries) MarkConsumed(ctx context.Context, phrase string) error {
	const sql = `update pending_mnemonics set consumed = true where phrase = $1`
	tag, err := r.q.Exec(ctx, sql, phrase)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "mark mnemonic consumed")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("pending mnemonic not found")
	}
	return nil
}

// DeleteExpiredOrConsumed removes rows that are expired or already consumed,
// returning the number of rows removed; this backs the credential reaper (§4.7)
func (r *queries) DeleteExpiredOrConsumed(ctx context.Context, now time.Time) (int, error) {
	const sql = `delete from pending_mnemonics where expires_at <= $1 or consumed = true`
	tag, err := r.q.Exec(ctx, sql, now)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeDB, "reap pending mnemonics")
	}
	return int(tag.RowsAffected()), nil
}
