package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"herdpulse/internal/core/alerts"
	"herdpulse/internal/modkit/repokit"
	perr "herdpulse/internal/platform/errors"
	"herdpulse/internal/platform/testkit"
	ptime "herdpulse/internal/platform/time"
	"herdpulse/internal/services/api/alerts/repo"
)

type fakeTx struct{ repokit.Queryer }

func (f fakeTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error { return fn(f) }

// fakeRepo returns a canned candidate list per rule and records the
// arguments each rule query received
type fakeRepo struct {
	openDays   []alerts.Candidate
	within60   []alerts.Candidate
	overdue    []alerts.Candidate
	estrus     []alerts.Candidate
	overdueErr error

	gotOwner string
	gotNow   time.Time
}

func (f *fakeRepo) OpenDaysNoAI(_ context.Context, ownerID string, now time.Time) ([]alerts.Candidate, error) {
	f.gotOwner, f.gotNow = ownerID, now
	return f.openDays, nil
}

func (f *fakeRepo) CalvingWithin60(_ context.Context, _ string, _ time.Time) ([]alerts.Candidate, error) {
	return f.within60, nil
}

func (f *fakeRepo) CalvingOverdue(_ context.Context, _ string, _ time.Time) ([]alerts.Candidate, error) {
	if f.overdueErr != nil {
		return nil, f.overdueErr
	}
	return f.overdue, nil
}

func (f *fakeRepo) EstrusNotPregnant(_ context.Context, _ string, _ time.Time) ([]alerts.Candidate, error) {
	return f.estrus, nil
}

func newSvc(r repo.Repo, now time.Time) *Svc {
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return r })
	return New(fakeTx{}, binder, ptime.FixedClock{At: now})
}

func TestNew_GuardsWiring(t *testing.T) {
	t.Parallel()

	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return &fakeRepo{} })

	testkit.MustPanic(t, func() { New(nil, binder, ptime.SystemClock{}) })
	testkit.MustPanic(t, func() { New(fakeTx{}, nil, ptime.SystemClock{}) })

	// a nil clock falls back to the system clock
	testkit.MustNotPanic(t, func() {
		if s := New(fakeTx{}, binder, nil); s.clock == nil {
			t.Fatalf("clock not defaulted")
		}
	})
}

func TestAlerts_FanInAndOrdering(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 27, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 30)

	f := &fakeRepo{
		openDays: []alerts.Candidate{{CattleID: "b"}},
		within60: []alerts.Candidate{{CattleID: "c", DueAt: &due}},
		overdue:  []alerts.Candidate{{CattleID: "a"}},
		estrus:   []alerts.Candidate{{CattleID: "d"}},
	}
	s := newSvc(f, now)

	got, err := s.Alerts(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if f.gotOwner != "owner-1" {
		t.Fatalf("owner passed to repo = %q", f.gotOwner)
	}
	if !f.gotNow.Equal(now) {
		t.Fatalf("now passed to repo = %v, want clock time %v", f.gotNow, now)
	}

	if len(got.Results) != 4 {
		t.Fatalf("results = %d, want 4", len(got.Results))
	}
	wantOrder := []alerts.AlertType{
		alerts.TypeCalvingOverdue,      // high first
		alerts.TypeCalvingWithin60,     // medium with a due date
		alerts.TypeOpenDaysNoAI,        // medium without one
		alerts.TypeEstrusNotPregnant,   // low last
	}
	for i, want := range wantOrder {
		if got.Results[i].Type != want {
			t.Fatalf("results[%d].Type = %s, want %s", i, got.Results[i].Type, want)
		}
	}
	if got.Results[0].Severity != alerts.SeverityHigh {
		t.Fatalf("top severity = %s", got.Results[0].Severity)
	}
}

func TestAlerts_QuietHerdIsEmptyNotNil(t *testing.T) {
	t.Parallel()

	s := newSvc(&fakeRepo{}, time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC))
	got, err := s.Alerts(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if got.Results == nil {
		t.Fatalf("results must be an empty list, not nil")
	}
	if len(got.Results) != 0 {
		t.Fatalf("results = %d, want 0", len(got.Results))
	}
}

func TestAlerts_RuleErrorFailsWhole(t *testing.T) {
	t.Parallel()

	boom := perr.Infraf(errors.New("dial refused"), "cattle store unavailable")
	f := &fakeRepo{
		openDays:   []alerts.Candidate{{CattleID: "b"}},
		overdueErr: boom,
	}
	s := newSvc(f, time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC))

	got, err := s.Alerts(context.Background(), "owner-1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected the rule error, got %v", err)
	}
	if len(got.Results) != 0 {
		t.Fatalf("no partial results on failure, got %d", len(got.Results))
	}
}

func TestAlerts_CapAppliesAcrossRules(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{}
	for i := 0; i < 40; i++ {
		f.openDays = append(f.openDays, alerts.Candidate{CattleID: cattleID(i)})
		f.estrus = append(f.estrus, alerts.Candidate{CattleID: cattleID(i)})
	}
	s := newSvc(f, time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC))

	got, err := s.Alerts(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(got.Results) != alerts.MaxAlerts {
		t.Fatalf("results = %d, want the %d cap", len(got.Results), alerts.MaxAlerts)
	}
	// all medium alerts survive the cut before any low one does
	for i := 0; i < 40; i++ {
		if got.Results[i].Severity != alerts.SeverityMedium {
			t.Fatalf("results[%d].Severity = %s, want medium", i, got.Results[i].Severity)
		}
	}
}

func cattleID(i int) string {
	return string(rune('a'+i/26)) + string(rune('a'+i%26))
}
