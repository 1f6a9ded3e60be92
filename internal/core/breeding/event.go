// Package breeding is the pure breeding analytics engine: event
// normalization, per animal correlation, metric calculation, and trend
// analysis. It owns no durable state; every invocation works on a freshly
// fetched snapshot of events
package breeding

import (
	"time"

	perr "herdpulse/internal/platform/errors"
)

// EventKind is the closed set of breeding event types
type EventKind string

// Breeding event kinds as stored in the event log
const (
	KindInsemination   EventKind = "INSEMINATION"
	KindCalving        EventKind = "CALVING"
	KindPregnancyCheck EventKind = "PREGNANCY_CHECK"
	KindEstrus         EventKind = "ESTRUS"
)

// RequiredData names the event categories the analytics need, surfaced on
// data insufficiency errors
var RequiredData = []string{"INSEMINATION", "CALVING", "PREGNANCY_CHECK"}

// maxEventAge rejects timestamps implausibly far in the past
const maxEventAge = 30 * 365 * 24 * time.Hour

// ParseEventKind validates a raw event type string
func ParseEventKind(s string) (EventKind, error) {
	switch EventKind(s) {
	case KindInsemination, KindCalving, KindPregnancyCheck, KindEstrus:
		return EventKind(s), nil
	default:
		return "", perr.Validationf("event_type", "unrecognized breeding event type %q", s)
	}
}

// RawEvent is an event record as handed back by the event store
type RawEvent struct {
	CattleID  string
	EventType string
	At        time.Time
	Metadata  map[string]any
}

// BreedingEvent is the canonical event value used by the engine
// Metadata is opaque and passed through untouched
type BreedingEvent struct {
	CattleID string
	Kind     EventKind
	At       time.Time
	Metadata map[string]any
}

// Normalize converts a raw record into a canonical BreedingEvent,
// rejecting unknown kinds and implausible timestamps at the boundary
func Normalize(raw RawEvent, now time.Time) (BreedingEvent, error) {
	kind, err := ParseEventKind(raw.EventType)
	if err != nil {
		return BreedingEvent{}, err
	}
	if raw.CattleID == "" {
		return BreedingEvent{}, perr.Validationf("cattle_id", "event missing cattle id")
	}
	if raw.At.IsZero() {
		return BreedingEvent{}, perr.Validationf("event_datetime", "event missing timestamp")
	}
	if raw.At.After(now) {
		return BreedingEvent{}, perr.Validationf("event_datetime", "event timestamp %s is in the future", raw.At.Format(time.RFC3339))
	}
	if raw.At.Before(now.Add(-maxEventAge)) {
		return BreedingEvent{}, perr.Validationf("event_datetime", "event timestamp %s is older than 30 years", raw.At.Format(time.RFC3339))
	}
	return BreedingEvent{
		CattleID: raw.CattleID,
		Kind:     kind,
		At:       raw.At,
		Metadata: raw.Metadata,
	}, nil
}

// NormalizeAll converts a batch, failing on the first malformed record
func NormalizeAll(raws []RawEvent, now time.Time) ([]BreedingEvent, error) {
	out := make([]BreedingEvent, 0, len(raws))
	for _, raw := range raws {
		ev, err := Normalize(raw, now)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}
