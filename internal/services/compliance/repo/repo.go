// Package repo provides the Postgres-backed compliance rule repository
// (spec.md §6.4: UserComplianceRules)
package repo

import (
	"context"

	"worklog/internal/modkit/repokit"
	perr "worklog/internal/platform/errors"
)

// Row is the raw UserComplianceRules row shape
type Row struct {
	UserID    string
	Type      string
	ClockIn   string
	ClockOut  string
	Threshold float64
	Enabled   bool
}

// Repo is the compliance rule repository contract from spec.md §6.1
type Repo interface {
	RulesForUser(ctx context.Context, userID string) ([]Row, error)
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

// RulesForUser returns every enabled compliance rule for userID
func (r *queries) RulesForUser(ctx context.Context, userID string) ([]Row, error) {
	const sql = `select user_id, rule_type, clock_in, clock_out, threshold_hours, enabled
		from user_compliance_rules where user_id = $1 and enabled = true`
	rows, err := r.q.Query(ctx, sql, userID)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "rules for user %s", userID)
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.UserID, &row.Type, &row.ClockIn, &row.ClockOut, &row.Threshold, &row.Enabled); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDB, "scan compliance rule row")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
