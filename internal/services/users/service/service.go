// Package service implements the users service (spec.md §6.2)
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"worklog/internal/modkit/repokit"
	perr "worklog/internal/platform/errors"
	"worklog/internal/platform/logger"

	"worklog/internal/services/users/domain"
	"worklog/internal/services/users/repo"
)

// MnemonicConsumption is what a successful credential consumption yields;
// the credentials module's consumer adapter converts its own Consumption
// type into this one
type MnemonicConsumption struct {
	GrantAdmin bool
}

// CredentialConsumer is the narrow port into the credentials service that
// registerUser uses to validate and consume a pending mnemonic. Validate and
// Consume are separate calls so registerUser can check the mnemonic, create
// the user, and only then burn the credential — a failed registration never
// leaves a consumed mnemonic with no user behind it
type CredentialConsumer interface {
	ValidateMnemonic(ctx context.Context, phrase string) (MnemonicConsumption, error)
	ConsumeMnemonic(ctx context.Context, phrase string) (MnemonicConsumption, error)
}

// Service is the users service's external contract
type Service interface {
	domain.ServicePort
	domain.OffsetLookup
}

// Svc is the concrete users service
type Svc struct {
	binder      repokit.Binder[repo.Repo]
	db          repokit.TxRunner
	credentials CredentialConsumer
	log         logger.Logger
	nowFunc     func() time.Time
}

// New constructs the users service bound to a Postgres pool
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], credentials CredentialConsumer) *Svc {
	if db == nil {
		panic("users.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("users.Service requires a non nil Repo binder")
	}
	return &Svc{
		binder:      binder,
		db:          db,
		credentials: credentials,
		log:         *logger.Named("users"),
		nowFunc:     time.Now,
	}
}

// RegisterUser validates a pending mnemonic, creates the User, and only then
// consumes the mnemonic (spec.md §6.2; a PendingMnemonic must be mutated
// exactly once, so the burn happens last and only on a committed insert)
func (s *Svc) RegisterUser(ctx context.Context, in domain.RegisterUserInput) (domain.User, error) {
	consumption, err := s.credentials.ValidateMnemonic(ctx, in.Mnemonic)
	if err != nil {
		return domain.User{}, err
	}

	row := repo.Row{
		ID:               uuid.NewString(),
		DisplayName:      in.DisplayName,
		UTCOffsetMinutes: in.UTCOffsetMinutes,
		RegisteredAt:     s.nowFunc().UTC(),
		IsAdmin:          consumption.GrantAdmin,
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		existing, err := r.FindByExternalIdentity(ctx, in.Identity.Provider, in.Identity.ExternalID)
		if err != nil {
			return err
		}
		if existing != nil {
			return perr.Conflictf("identity %s/%s is already registered", in.Identity.Provider, in.Identity.ExternalID)
		}
		return r.InsertWithIdentity(ctx, row, in.Identity.Provider, in.Identity.ExternalID)
	})
	if err != nil {
		return domain.User{}, err
	}

	if _, err := s.credentials.ConsumeMnemonic(ctx, in.Mnemonic); err != nil {
		return domain.User{}, err
	}
	return rowToDomain(row), nil
}

// FindByExternalIdentity resolves a user from a (provider, external id) pair
func (s *Svc) FindByExternalIdentity(ctx context.Context, provider, externalID string) (*domain.User, error) {
	row, err := s.get(ctx, func(r repo.Repo) (*repo.Row, error) {
		return r.FindByExternalIdentity(ctx, provider, externalID)
	})
	if err != nil || row == nil {
		return nil, err
	}
	u := rowToDomain(*row)
	return &u, nil
}

// Get fetches a single user by id
func (s *Svc) Get(ctx context.Context, userID string) (*domain.User, error) {
	row, err := s.get(ctx, func(r repo.Repo) (*repo.Row, error) {
		return r.Get(ctx, userID)
	})
	if err != nil || row == nil {
		return nil, err
	}
	u := rowToDomain(*row)
	return &u, nil
}

// ListAll returns every registered user
func (s *Svc) ListAll(ctx context.Context) ([]domain.User, error) {
	var rows []repo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		rows, err = s.binder.Bind(q).ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToDomain(r))
	}
	return out, nil
}

// UTCOffsetMinutes implements domain.OffsetLookup for the tracking service
func (s *Svc) UTCOffsetMinutes(ctx context.Context, userID string) (int, error) {
	row, err := s.get(ctx, func(r repo.Repo) (*repo.Row, error) {
		return r.Get(ctx, userID)
	})
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, perr.NotFoundf("user %s not found", userID)
	}
	return row.UTCOffsetMinutes, nil
}

// SetUTCOffset mutates a user's UTC offset
func (s *Svc) SetUTCOffset(ctx context.Context, in domain.SetUTCOffsetInput) error {
	return s.mutate(ctx, func(r repo.Repo) error {
		return r.UpdateUTCOffset(ctx, in.UserID, in.UTCOffsetMinutes)
	})
}

// SetCaps mutates a user's per-state auto-shutdown caps
func (s *Svc) SetCaps(ctx context.Context, in domain.SetCapsInput) error {
	return s.mutate(ctx, func(r repo.Repo) error {
		return r.UpdateCaps(ctx, in.UserID, in.MaxWorkHours, in.MaxCommuteHours, in.MaxLunchHours)
	})
}

// SetLunchReminder mutates a user's lunch-reminder local time
func (s *Svc) SetLunchReminder(ctx context.Context, in domain.SetLunchReminderInput) error {
	return s.mutate(ctx, func(r repo.Repo) error {
		return r.UpdateLunchReminder(ctx, in.UserID, in.Hour, in.Minute)
	})
}

// SetEndOfDayReminder mutates a user's end-of-day-reminder local time
func (s *Svc) SetEndOfDayReminder(ctx context.Context, in domain.SetEndOfDayReminderInput) error {
	return s.mutate(ctx, func(r repo.Repo) error {
		return r.UpdateEndOfDayReminder(ctx, in.UserID, in.Hour, in.Minute)
	})
}

// SetTargets mutates a user's daily target hours and forgot-shutdown threshold
func (s *Svc) SetTargets(ctx context.Context, in domain.SetTargetsInput) error {
	return s.mutate(ctx, func(r repo.Repo) error {
		return r.UpdateTargets(ctx, in.UserID, in.DailyTargetWorkHours, in.ForgotShutdownThreshold)
	})
}

// get runs a single-repo read inside its own unit of work
func (s *Svc) get(ctx context.Context, fn func(repo.Repo) (*repo.Row, error)) (*repo.Row, error) {
	var row *repo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		row, err = fn(s.binder.Bind(q))
		return err
	})
	return row, err
}

// mutate runs a single-repo write inside its own unit of work
func (s *Svc) mutate(ctx context.Context, fn func(repo.Repo) error) error {
	return s.db.Tx(ctx, func(q repokit.Queryer) error {
		return fn(s.binder.Bind(q))
	})
}

func rowToDomain(r repo.Row) domain.User {
	return domain.User{
		ID:                      r.ID,
		DisplayName:             r.DisplayName,
		UTCOffsetMinutes:        r.UTCOffsetMinutes,
		MaxWorkHours:            r.MaxWorkHours,
		MaxCommuteHours:         r.MaxCommuteHours,
		MaxLunchHours:           r.MaxLunchHours,
		LunchReminderHour:       r.LunchReminderHour,
		LunchReminderMinute:     r.LunchReminderMinute,
		EndOfDayReminderHour:    r.EndOfDayReminderHour,
		EndOfDayReminderMinute:  r.EndOfDayReminderMinute,
		DailyTargetWorkHours:    r.DailyTargetWorkHours,
		ForgotShutdownThreshold: r.ForgotShutdownThreshold,
		RegisteredAt:            r.RegisteredAt,
		IsAdmin:                 r.IsAdmin,
	}
}
