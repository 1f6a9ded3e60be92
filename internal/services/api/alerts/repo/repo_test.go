package repo

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"herdpulse/internal/core/alerts"
	"herdpulse/internal/modkit/repokit"
	str "herdpulse/internal/platform/strings"
	ptime "herdpulse/internal/platform/time"

	"github.com/google/uuid"
)

type fakeRows struct {
	data [][]any
	i    int
}

func (f *fakeRows) Next() bool { f.i++; return f.i <= len(f.data) }

func (f *fakeRows) Scan(dest ...any) error {
	row := f.data[f.i-1]
	for j, d := range dest {
		if row[j] == nil {
			continue
		}
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[j]))
	}
	return nil
}

func (f *fakeRows) Err() error        { return nil }
func (f *fakeRows) Close()            {}
func (f *fakeRows) Columns() []string { return nil }

type fakeQueryer struct {
	rows *fakeRows

	gotSQL  string
	gotArgs []any
}

func (f *fakeQueryer) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, nil
}

func (f *fakeQueryer) Query(_ context.Context, sql string, args ...any) (repokit.Rows, error) {
	f.gotSQL, f.gotArgs = sql, args
	return f.rows, nil
}

func (f *fakeQueryer) QueryRow(context.Context, string, ...any) repokit.Row { return nil }

func TestOpenDaysNoAI_QueryShapeAndScan(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	lastCalving := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	q := &fakeQueryer{rows: &fakeRows{data: [][]any{
		{id, str.Ptr("Bella"), str.Ptr("DE-0042"), ptime.Ptr(lastCalving)},
	}}}

	now := time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)
	got, err := NewPG().Bind(q).OpenDaysNoAI(context.Background(), "owner-1", now)
	if err != nil {
		t.Fatalf("OpenDaysNoAI: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	c := got[0]
	if c.CattleID != id.String() {
		t.Fatalf("CattleID = %q, want uuid rendered as string", c.CattleID)
	}
	if c.CattleName == nil || *c.CattleName != "Bella" || c.EarTag == nil || *c.EarTag != "DE-0042" {
		t.Fatalf("optional columns mapped wrong: %+v", c)
	}
	if c.DueAt == nil || !c.DueAt.Equal(lastCalving) {
		t.Fatalf("DueAt = %v, want last calving", c.DueAt)
	}

	// the threshold constant must drive the SQL predicate
	if !strings.Contains(q.gotSQL, "interval '60 days'") {
		t.Fatalf("threshold missing from sql:\n%s", q.gotSQL)
	}
	want := []any{"owner-1", now, alerts.StatusPregnant}
	if !reflect.DeepEqual(q.gotArgs, want) {
		t.Fatalf("args = %v, want %v", q.gotArgs, want)
	}
}

func TestCalvingOverdue_NullOptionalColumns(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	q := &fakeQueryer{rows: &fakeRows{data: [][]any{
		{id, nil, nil, nil},
	}}}

	now := time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)
	got, err := NewPG().Bind(q).CalvingOverdue(context.Background(), "owner-1", now)
	if err != nil {
		t.Fatalf("CalvingOverdue: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	c := got[0]
	if c.CattleName != nil || c.EarTag != nil || c.DueAt != nil {
		t.Fatalf("null columns must stay nil: %+v", c)
	}
	if q.gotArgs[2] != alerts.StatusResting {
		t.Fatalf("status arg = %v, want resting exclusion", q.gotArgs[2])
	}
}
