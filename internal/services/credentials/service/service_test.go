package service

import (
	"context"
	"testing"
	"time"

	"worklog/internal/modkit/repokit"
	perr "worklog/internal/platform/errors"
	"worklog/internal/platform/logger"

	"worklog/internal/services/credentials/domain"
	"worklog/internal/services/credentials/repo"
)

// fakeTxRunner runs fn directly with a nil Queryer; the fake repo ignores it
type fakeTxRunner struct{}

func (fakeTxRunner) Tx(_ context.Context, fn func(repokit.Queryer) error) error { return fn(nil) }
func (fakeTxRunner) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	var z repokit.CommandTag
	return z, nil
}
func (fakeTxRunner) Query(context.Context, string, ...any) (repokit.Rows, error) {
	var z repokit.Rows
	return z, nil
}
func (fakeTxRunner) QueryRow(context.Context, string, ...any) repokit.Row {
	var z repokit.Row
	return z
}

func mustUTC(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

type fakeRepo struct {
	byPhrase map[string]repo.Row
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byPhrase: make(map[string]repo.Row)} }

func (f *fakeRepo) Insert(ctx context.Context, row repo.Row) error {
	f.byPhrase[row.Phrase] = row
	return nil
}
func (f *fakeRepo) FindByPhrase(ctx context.Context, phrase string) (*repo.Row, error) {
	r, ok := f.byPhrase[phrase]
	if !ok {
		return nil, nil
	}
	return &r, nil
}
func (f *fakeRepo) MarkConsumed(ctx context.Context, phrase string) error {
	r := f.byPhrase[phrase]
	r.Consumed = true
	f.byPhrase[phrase] = r
	return nil
}
func (f *fakeRepo) DeleteExpiredOrConsumed(ctx context.Context, now time.Time) (int, error) {
	n := 0
	for phrase, r := range f.byPhrase {
		if r.Consumed || !now.Before(r.ExpiresAt) {
			delete(f.byPhrase, phrase)
			n++
		}
	}
	return n, nil
}

func newSvc(fr *fakeRepo, now time.Time, cfg Config) *Svc {
	if cfg.MnemonicTTL <= 0 {
		cfg.MnemonicTTL = DefaultMnemonicTTL
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = DefaultReapInterval
	}
	return &Svc{
		db:      fakeTxRunner{},
		binder:  repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return fr }),
		cfg:     cfg,
		log:     *logger.Named("credentials-test"),
		nowFunc: func() time.Time { return now },
	}
}

func TestIssueThenConsumeMnemonic_Succeeds(t *testing.T) {
	fr := newFakeRepo()
	issuedAt := mustUTC("2026-07-31T10:00:00Z")
	svc := newSvc(fr, issuedAt, Config{MnemonicTTL: 5 * time.Minute})

	pm, err := svc.IssueMnemonic(context.Background(), domain.IssueMnemonicInput{
		Provider: "github", ExternalID: "12345", GrantAdmin: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := svc.ConsumeMnemonic(context.Background(), pm.Phrase)
	if err != nil {
		t.Fatalf("unexpected error consuming: %v", err)
	}
	if !c.GrantAdmin || c.Provider != "github" || c.ExternalID != "12345" {
		t.Fatalf("unexpected consumption: %+v", c)
	}
}

func TestConsumeMnemonic_AlreadyConsumed(t *testing.T) {
	fr := newFakeRepo()
	issuedAt := mustUTC("2026-07-31T10:00:00Z")
	svc := newSvc(fr, issuedAt, Config{})

	pm, err := svc.IssueMnemonic(context.Background(), domain.IssueMnemonicInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ConsumeMnemonic(context.Background(), pm.Phrase); err != nil {
		t.Fatalf("unexpected error on first consume: %v", err)
	}

	_, err = svc.ConsumeMnemonic(context.Background(), pm.Phrase)
	if err == nil {
		t.Fatalf("expected an error consuming an already-consumed credential")
	}
	if perr.CodeOf(err) != perr.ErrorCodeCredentialConsumed {
		t.Fatalf("expected ErrorCodeCredentialConsumed, got %v", perr.CodeOf(err))
	}
}

func TestConsumeMnemonic_Expired(t *testing.T) {
	fr := newFakeRepo()
	issuedAt := mustUTC("2026-07-31T10:00:00Z")
	svc := newSvc(fr, issuedAt, Config{MnemonicTTL: time.Minute})

	pm, err := svc.IssueMnemonic(context.Background(), domain.IssueMnemonicInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.nowFunc = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = svc.ConsumeMnemonic(context.Background(), pm.Phrase)
	if err == nil {
		t.Fatalf("expected an error consuming an expired credential")
	}
	if perr.CodeOf(err) != perr.ErrorCodeCredentialExpired {
		t.Fatalf("expected ErrorCodeCredentialExpired, got %v", perr.CodeOf(err))
	}
}

func TestConsumeMnemonic_NotFound(t *testing.T) {
	fr := newFakeRepo()
	svc := newSvc(fr, mustUTC("2026-07-31T10:00:00Z"), Config{})

	_, err := svc.ConsumeMnemonic(context.Background(), "nonexistent phrase")
	if err == nil {
		t.Fatalf("expected an error for an unknown phrase")
	}
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("expected ErrorCodeNotFound, got %v", perr.CodeOf(err))
	}
}
