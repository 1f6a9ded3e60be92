// Package alerts derives actionable breeding alerts from per animal
// snapshots. The temporal predicates live in the rule queries at the store
// boundary; this package owns severity, messages, ids, ordering, and the
// result cap
package alerts

import (
	"sort"
	"time"
)

// MaxAlerts caps the evaluated result after sorting
const MaxAlerts = 50

// Rule thresholds shared with the rule queries
const (
	// OpenDaysThreshold is the minimum days since last calving without a
	// follow up insemination before the herd manager is nudged
	OpenDaysThreshold = 60

	// CalvingHorizonDays is the lookahead window for expected calvings
	CalvingHorizonDays = 60

	// EstrusStaleDays is the minimum age of the last estrus observation
	// for a non pregnant animal before it is flagged
	EstrusStaleDays = 20
)

// Reproductive statuses the rules discriminate on
const (
	StatusPregnant = "PREGNANT"
	StatusResting  = "RESTING"
)

// AlertType is the closed set of rule identities
type AlertType string

// Rule identities, also the id prefix of every derived alert
const (
	TypeOpenDaysNoAI      AlertType = "OPEN_DAYS_OVER_60_NO_AI"
	TypeCalvingWithin60   AlertType = "CALVING_EXPECTED_WITHIN_60"
	TypeCalvingOverdue    AlertType = "CALVING_OVERDUE"
	TypeEstrusNotPregnant AlertType = "ESTRUS_OVER_20_NOT_PREGNANT"
)

// Severity ranks alerts for ordering
type Severity string

// Severities
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

func severityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Candidate is one animal matched by a rule query
type Candidate struct {
	CattleID   string
	CattleName *string
	EarTag     *string

	// DueAt is the triggering date: last calving, expected calving date,
	// or last estrus, depending on the rule
	DueAt *time.Time
}

// DerivedAlert is one actionable alert for one animal
type DerivedAlert struct {
	ID         string     `json:"id"`
	Type       AlertType  `json:"type"`
	Severity   Severity   `json:"severity"`
	CattleID   string     `json:"cattle_id"`
	CattleName *string    `json:"cattle_name"`
	EarTag     *string    `json:"ear_tag"`
	DueAt      *time.Time `json:"due_at"`
	Message    string     `json:"message"`
}

// RuleResults carries the four rule query outputs into evaluation
type RuleResults struct {
	OpenDaysNoAI      []Candidate
	CalvingWithin60   []Candidate
	CalvingOverdue    []Candidate
	EstrusNotPregnant []Candidate
}

type ruleSpec struct {
	typ      AlertType
	severity Severity
	message  string
}

var ruleSpecs = map[AlertType]ruleSpec{
	TypeOpenDaysNoAI: {
		typ:      TypeOpenDaysNoAI,
		severity: SeverityMedium,
		message:  "No insemination recorded 60 or more days after the last calving",
	},
	TypeCalvingWithin60: {
		typ:      TypeCalvingWithin60,
		severity: SeverityMedium,
		message:  "Calving expected within the next 60 days",
	},
	TypeCalvingOverdue: {
		typ:      TypeCalvingOverdue,
		severity: SeverityHigh,
		message:  "Expected calving date has passed",
	},
	TypeEstrusNotPregnant: {
		typ:      TypeEstrusNotPregnant,
		severity: SeverityLow,
		message:  "Estrus observed 20 or more days ago without a confirmed pregnancy",
	},
}

// Evaluate turns rule query results into the final ranked alert list:
// severity descending, dueAt ascending with missing dates last, capped at
// MaxAlerts. Evaluation is deterministic for identical inputs
func Evaluate(res RuleResults) []DerivedAlert {
	out := make([]DerivedAlert, 0,
		len(res.OpenDaysNoAI)+len(res.CalvingWithin60)+len(res.CalvingOverdue)+len(res.EstrusNotPregnant))

	emit := func(typ AlertType, cands []Candidate) {
		spec := ruleSpecs[typ]
		for _, c := range cands {
			out = append(out, DerivedAlert{
				ID:         string(typ) + ":" + c.CattleID,
				Type:       typ,
				Severity:   spec.severity,
				CattleID:   c.CattleID,
				CattleName: c.CattleName,
				EarTag:     c.EarTag,
				DueAt:      c.DueAt,
				Message:    spec.message,
			})
		}
	}

	emit(TypeOpenDaysNoAI, res.OpenDaysNoAI)
	emit(TypeCalvingWithin60, res.CalvingWithin60)
	emit(TypeCalvingOverdue, res.CalvingOverdue)
	emit(TypeEstrusNotPregnant, res.EstrusNotPregnant)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := severityRank(a.Severity), severityRank(b.Severity); ra != rb {
			return ra > rb
		}
		switch {
		case a.DueAt == nil && b.DueAt == nil:
			return a.ID < b.ID
		case a.DueAt == nil:
			return false
		case b.DueAt == nil:
			return true
		case !a.DueAt.Equal(*b.DueAt):
			return a.DueAt.Before(*b.DueAt)
		default:
			return a.ID < b.ID
		}
	})

	if len(out) > MaxAlerts {
		out = out[:MaxAlerts]
	}
	return out
}
