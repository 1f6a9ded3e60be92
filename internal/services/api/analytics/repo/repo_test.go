package repo

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"herdpulse/internal/modkit/repokit"

	"github.com/google/uuid"
)

type fakeRows struct {
	data [][]any
	i    int
	err  error
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

func (f *fakeRows) Err() error        { return f.err }
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

func TestEventsForKPI_MapsRows(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	q := &fakeQueryer{rows: &fakeRows{data: [][]any{
		{id, "CALVING", at, map[string]any{"note": "twin"}},
	}}}

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got, err := NewPG().Bind(q).EventsForKPI(context.Background(), "owner-1", from, to)
	if err != nil {
		t.Fatalf("EventsForKPI: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	if got[0].CattleID != id.String() {
		t.Fatalf("CattleID = %q, want uuid rendered as string", got[0].CattleID)
	}
	if got[0].EventType != "CALVING" || !got[0].At.Equal(at) {
		t.Fatalf("row mapped wrong: %+v", got[0])
	}
	if got[0].Metadata["note"] != "twin" {
		t.Fatalf("metadata lost: %+v", got[0].Metadata)
	}

	if !strings.Contains(q.gotSQL, "breeding_events") || !strings.Contains(q.gotSQL, "owner_id = $1") {
		t.Fatalf("unexpected sql:\n%s", q.gotSQL)
	}
	want := []any{"owner-1", from, to}
	if !reflect.DeepEqual(q.gotArgs, want) {
		t.Fatalf("args = %v, want %v", q.gotArgs, want)
	}
}

func TestEventsForKPI_RowsErrPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	q := &fakeQueryer{rows: &fakeRows{err: boom}}

	_, err := NewPG().Bind(q).EventsForKPI(context.Background(), "owner-1", time.Time{}, time.Time{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected rows error, got %v", err)
	}
}
