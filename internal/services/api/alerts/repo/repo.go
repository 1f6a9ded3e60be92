// Package repo provides postgres access for the alert rule queries
// SQL owns the temporal predicates; the evaluator in core/alerts owns
// severity, messages, ordering, and the cap
package repo

import (
	"context"
	"fmt"
	"time"

	"herdpulse/internal/core/alerts"
	"herdpulse/internal/modkit/repokit"
	"herdpulse/internal/platform/store"

	"github.com/google/uuid"
)

// Repo is the four rule query surface
type Repo interface {
	OpenDaysNoAI(ctx context.Context, ownerID string, now time.Time) ([]alerts.Candidate, error)
	CalvingWithin60(ctx context.Context, ownerID string, now time.Time) ([]alerts.Candidate, error)
	CalvingOverdue(ctx context.Context, ownerID string, now time.Time) ([]alerts.Candidate, error)
	EstrusNotPregnant(ctx context.Context, ownerID string, now time.Time) ([]alerts.Candidate, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) OpenDaysNoAI(ctx context.Context, ownerID string, now time.Time) ([]alerts.Candidate, error) {
	sql := fmt.Sprintf(`
select c.id, c.name, c.ear_tag_number, lc.last_calving
from cattle c
join lateral (
	select max(e.event_datetime) as last_calving
	from breeding_events e
	where e.cattle_id = c.id and e.event_type = 'CALVING'
) lc on true
where c.owner_id = $1
and lc.last_calving is not null
and lc.last_calving <= $2::timestamptz - interval '%d days'
and coalesce(c.reproductive_status, '') <> $3
and not exists (
	select 1 from breeding_events ai
	where ai.cattle_id = c.id
	and ai.event_type = 'INSEMINATION'
	and ai.event_datetime > lc.last_calving
)
and (c.expected_calving_date is null or c.expected_calving_date <= lc.last_calving)
`, alerts.OpenDaysThreshold)
	return r.candidates(ctx, sql, ownerID, now, alerts.StatusPregnant)
}

func (r *queries) CalvingWithin60(ctx context.Context, ownerID string, now time.Time) ([]alerts.Candidate, error) {
	sql := fmt.Sprintf(`
select c.id, c.name, c.ear_tag_number, c.expected_calving_date
from cattle c
where c.owner_id = $1
and c.expected_calving_date >= $2::timestamptz
and c.expected_calving_date <= $2::timestamptz + interval '%d days'
`, alerts.CalvingHorizonDays)
	return r.candidates(ctx, sql, ownerID, now)
}

func (r *queries) CalvingOverdue(ctx context.Context, ownerID string, now time.Time) ([]alerts.Candidate, error) {
	const sql = `
select c.id, c.name, c.ear_tag_number, c.expected_calving_date
from cattle c
where c.owner_id = $1
and c.expected_calving_date < $2::timestamptz
and coalesce(c.reproductive_status, '') <> $3
`
	return r.candidates(ctx, sql, ownerID, now, alerts.StatusResting)
}

func (r *queries) EstrusNotPregnant(ctx context.Context, ownerID string, now time.Time) ([]alerts.Candidate, error) {
	sql := fmt.Sprintf(`
select c.id, c.name, c.ear_tag_number, le.last_estrus
from cattle c
join lateral (
	select max(e.event_datetime) as last_estrus
	from breeding_events e
	where e.cattle_id = c.id and e.event_type = 'ESTRUS'
) le on true
where c.owner_id = $1
and le.last_estrus is not null
and le.last_estrus <= $2::timestamptz - interval '%d days'
and coalesce(c.reproductive_status, '') <> $3
`, alerts.EstrusStaleDays)
	return r.candidates(ctx, sql, ownerID, now, alerts.StatusPregnant)
}

// candidates runs a rule query and scans the shared candidate row shape
func (r *queries) candidates(ctx context.Context, sql string, args ...any) ([]alerts.Candidate, error) {
	return store.Many(ctx, r.q, scanCandidate, sql, args...)
}

func scanCandidate(row store.Row) (alerts.Candidate, error) {
	var (
		id uuid.UUID
		c  alerts.Candidate
	)
	if err := row.Scan(&id, &c.CattleName, &c.EarTag, &c.DueAt); err != nil {
		return alerts.Candidate{}, err
	}
	c.CattleID = id.String()
	return c, nil
}
