// Package service implements the credentials service: pending-mnemonic
// issuance, consumption, and the reaper supervisor (spec.md §4.7, §6.2, §7)
package service

import (
	"context"
	"time"

	"worklog/internal/modkit/repokit"
	perr "worklog/internal/platform/errors"
	"worklog/internal/platform/logger"

	"worklog/internal/services/credentials/domain"
	"worklog/internal/services/credentials/repo"
)

// Service is the credentials service contract
type Service interface{ domain.ServicePort }

// Config carries the credentials service's tunables (spec.md §6.5)
type Config struct {
	// MnemonicTTL is the default credential lifetime; 0 uses DefaultMnemonicTTL
	MnemonicTTL time.Duration
	// ReapInterval is the tick period for the credential reaper
	ReapInterval time.Duration
}

// DefaultMnemonicTTL is used when Config.MnemonicTTL is zero
const DefaultMnemonicTTL = 5 * time.Minute

// DefaultReapInterval is used when Config.ReapInterval is zero
const DefaultReapInterval = time.Minute

// Svc implements Service and hosts the reaper worker loop
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Repo]
	cfg     Config
	log     logger.Logger
	nowFunc func() time.Time
}

// New constructs the credentials service bound to a Postgres pool
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("credentials.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("credentials.Service requires a non nil Repo binder")
	}
	if cfg.MnemonicTTL <= 0 {
		cfg.MnemonicTTL = DefaultMnemonicTTL
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = DefaultReapInterval
	}
	return &Svc{
		db:      db,
		binder:  binder,
		cfg:     cfg,
		log:     *logger.Named("credentials"),
		nowFunc: time.Now,
	}
}

// IssueMnemonic creates a pending credential, optionally bound to an external
// identity and an admin grant, with the configured TTL
func (s *Svc) IssueMnemonic(ctx context.Context, in domain.IssueMnemonicInput) (domain.PendingMnemonic, error) {
	now := s.nowFunc().UTC()
	row := repo.Row{
		Phrase:     domain.GeneratePhrase(),
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.MnemonicTTL),
		GrantAdmin: in.GrantAdmin,
	}
	if in.Provider != "" {
		row.Provider = &in.Provider
	}
	if in.ExternalID != "" {
		row.ExternalID = &in.ExternalID
	}
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Insert(ctx, row)
	})
	if err != nil {
		return domain.PendingMnemonic{}, err
	}
	return rowToDomain(row), nil
}

// ValidateMnemonic checks that phrase names an unconsumed, unexpired pending
// credential without mutating it; callers that must perform their own work
// before the credential is burned (users.RegisterUser) validate first and
// consume last, so a failure after validation never orphans the credential
func (s *Svc) ValidateMnemonic(ctx context.Context, phrase string) (domain.Consumption, error) {
	var row *repo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		row, err = s.binder.Bind(q).FindByPhrase(ctx, phrase)
		return err
	})
	if err != nil {
		return domain.Consumption{}, err
	}
	return s.checkConsumable(row)
}

// ConsumeMnemonic validates and consumes a pending mnemonic in a single unit
// of work (spec.md §6.2, §7's CredentialExpired/CredentialConsumed taxonomy)
func (s *Svc) ConsumeMnemonic(ctx context.Context, phrase string) (domain.Consumption, error) {
	var row *repo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		var err error
		row, err = r.FindByPhrase(ctx, phrase)
		if err != nil {
			return err
		}
		if _, err := s.checkConsumable(row); err != nil {
			return err
		}
		return r.MarkConsumed(ctx, phrase)
	})
	if err != nil {
		return domain.Consumption{}, err
	}
	return consumptionOf(*row), nil
}

func (s *Svc) checkConsumable(row *repo.Row) (domain.Consumption, error) {
	if row == nil {
		return domain.Consumption{}, perr.NotFoundf("credential not found")
	}
	if row.Consumed {
		return domain.Consumption{}, perr.CredentialConsumedf("credential already consumed")
	}
	if !s.nowFunc().UTC().Before(row.ExpiresAt) {
		return domain.Consumption{}, perr.CredentialExpiredf("credential expired at %s", row.ExpiresAt)
	}
	return consumptionOf(*row), nil
}

func consumptionOf(row repo.Row) domain.Consumption {
	c := domain.Consumption{GrantAdmin: row.GrantAdmin}
	if row.Provider != nil {
		c.Provider = *row.Provider
	}
	if row.ExternalID != nil {
		c.ExternalID = *row.ExternalID
	}
	return c
}

func rowToDomain(r repo.Row) domain.PendingMnemonic {
	pm := domain.PendingMnemonic{
		Phrase:     r.Phrase,
		CreatedAt:  r.CreatedAt,
		ExpiresAt:  r.ExpiresAt,
		Consumed:   r.Consumed,
		GrantAdmin: r.GrantAdmin,
	}
	if r.Provider != nil {
		pm.Provider = *r.Provider
	}
	if r.ExternalID != nil {
		pm.ExternalID = *r.ExternalID
	}
	return pm
}
