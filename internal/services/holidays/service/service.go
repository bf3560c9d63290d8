// Package service implements the holidays service: per-user date-range rows the
// reminder supervisor consults before sending lunch/EOD/work-hours-complete
// notifications (SPEC_FULL.md SUPPLEMENTED FEATURES: holiday-aware reminders)
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"worklog/internal/modkit/repokit"
	perr "worklog/internal/platform/errors"

	"worklog/internal/services/holidays/domain"
	"worklog/internal/services/holidays/repo"
)

// Service is the holidays service contract
type Service interface {
	domain.ServicePort
	domain.OnHolidayLookup
}

// Svc implements Service
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs the holidays service bound to a Postgres pool
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("holidays.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("holidays.Service requires a non nil Repo binder")
	}
	return &Svc{binder: binder, db: db}
}

// Create adds a Holiday row for a user (spec.md §3: end-date >= start-date)
func (s *Svc) Create(ctx context.Context, in domain.CreateHolidayInput) (domain.Holiday, error) {
	if in.EndDate.Before(in.StartDate) {
		return domain.Holiday{}, perr.InvalidArgf("end date %s precedes start date %s", in.EndDate, in.StartDate)
	}
	row := repo.Row{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Type:        in.Type,
		Description: in.Description,
	}
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Insert(ctx, row)
	})
	if err != nil {
		return domain.Holiday{}, err
	}
	return rowToDomain(row), nil
}

// ListForUser returns every holiday row owned by userID
func (s *Svc) ListForUser(ctx context.Context, userID string) ([]domain.Holiday, error) {
	rows, err := s.listRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Holiday, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToDomain(r))
	}
	return out, nil
}

// IsOnHoliday reports whether localDate (a civil date; time-of-day is ignored)
// falls within one of userID's inclusive Holiday ranges
func (s *Svc) IsOnHoliday(ctx context.Context, userID string, localDate time.Time) (bool, error) {
	rows, err := s.listRows(ctx, userID)
	if err != nil {
		return false, err
	}
	day := time.Date(localDate.Year(), localDate.Month(), localDate.Day(), 0, 0, 0, 0, time.UTC)
	for _, r := range rows {
		start := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
		end := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)
		if !day.Before(start) && !day.After(end) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Svc) listRows(ctx context.Context, userID string) ([]repo.Row, error) {
	var rows []repo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		rows, err = s.binder.Bind(q).ListForUser(ctx, userID)
		return err
	})
	return rows, err
}

func rowToDomain(r repo.Row) domain.Holiday {
	return domain.Holiday{
		ID:          r.ID,
		UserID:      r.UserID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Type:        r.Type,
		Description: r.Description,
	}
}
