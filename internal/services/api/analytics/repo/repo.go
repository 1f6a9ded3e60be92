// Package repo provides postgres access for breeding analytics
package repo

import (
	"context"
	"time"

	"herdpulse/internal/core/breeding"
	"herdpulse/internal/modkit/repokit"
	"herdpulse/internal/platform/store"

	"github.com/google/uuid"
)

// Repo is the minimal persistence surface for analytics
type Repo interface {
	EventsForKPI(ctx context.Context, ownerID string, from, to time.Time) ([]breeding.RawEvent, error)
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

func (r *queries) EventsForKPI(ctx context.Context, ownerID string, from, to time.Time) ([]breeding.RawEvent, error) {
	const sql = `
select e.cattle_id, e.event_type, e.event_datetime, e.metadata
from breeding_events e
join cattle c on c.id = e.cattle_id
where c.owner_id = $1
and e.event_datetime >= $2
and e.event_datetime < $3
order by e.cattle_id asc, e.event_datetime asc
`
	return store.Many(ctx, r.q, scanEvent, sql, ownerID, from, to)
}

// scanEvent maps one event row, rendering the uuid at the core boundary
func scanEvent(row store.Row) (breeding.RawEvent, error) {
	var (
		cattleID uuid.UUID
		ev       breeding.RawEvent
	)
	if err := row.Scan(&cattleID, &ev.EventType, &ev.At, &ev.Metadata); err != nil {
		return breeding.RawEvent{}, err
	}
	ev.CattleID = cattleID.String()
	return ev, nil
}
