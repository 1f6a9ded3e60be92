package breeding

import (
	"context"
	"fmt"
	"time"

	perr "herdpulse/internal/platform/errors"

	"golang.org/x/sync/errgroup"
)

// stabilityThresholdPct is the relative change below which a metric
// movement is classified stable
const stabilityThresholdPct = 5.0

// periodFanout bounds concurrent per month metric computations
const periodFanout = 4

// MonthPeriod is a calendar year and month, the unit of trend aggregation
type MonthPeriod struct {
	Year  int
	Month time.Month
}

// ParseMonth parses "YYYY-MM"
func ParseMonth(s string) (MonthPeriod, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthPeriod{}, perr.Validationf("month", "malformed month %q, want YYYY-MM", s)
	}
	return MonthPeriod{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the period containing t
func MonthOf(t time.Time) MonthPeriod {
	return MonthPeriod{Year: t.Year(), Month: t.Month()}
}

// String renders "YYYY-MM"
func (p MonthPeriod) String() string { return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month)) }

// Start returns the first instant of the period in UTC
func (p MonthPeriod) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following period in UTC
// windows are half open [Start, End)
func (p MonthPeriod) End() time.Time { return p.Start().AddDate(0, 1, 0) }

// Next returns the following calendar month
func (p MonthPeriod) Next() MonthPeriod {
	return MonthOf(p.Start().AddDate(0, 1, 0))
}

// AddMonths returns the period n months after p (n may be negative)
func (p MonthPeriod) AddMonths(n int) MonthPeriod {
	return MonthOf(p.Start().AddDate(0, n, 0))
}

// After reports whether p is chronologically after o
func (p MonthPeriod) After(o MonthPeriod) bool {
	return p.Year > o.Year || (p.Year == o.Year && p.Month > o.Month)
}

// monthsBetween returns the inclusive ascending run from from to to
func monthsBetween(from, to MonthPeriod) []MonthPeriod {
	var out []MonthPeriod
	for p := from; !p.After(to); p = p.Next() {
		out = append(out, p)
	}
	return out
}

// TrendDirection classifies a metric or overall movement
type TrendDirection string

// Trend directions
const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
	TrendMixed     TrendDirection = "mixed"
)

// Confidence grades how much data backs the overall trend call
type Confidence string

// Confidence grades
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// TrendPoint is one month of verbatim metrics and counts
type TrendPoint struct {
	Period  string              `json:"period"`
	Metrics BreedingMetrics     `json:"metrics"`
	Counts  BreedingEventCounts `json:"counts"`
}

// MetricChanges holds the qualitative per metric change for one delta
type MetricChanges struct {
	ConceptionRate         TrendDirection `json:"conception_rate"`
	AverageDaysOpen        TrendDirection `json:"average_days_open"`
	AverageCalvingInterval TrendDirection `json:"average_calving_interval"`
	AIPerConception        TrendDirection `json:"ai_per_conception"`
}

// TrendDelta compares one month against the immediately preceding month
type TrendDelta struct {
	Period  string          `json:"period"`
	Metrics BreedingMetrics `json:"metrics"`
	Changes MetricChanges   `json:"changes"`
}

// OverallTrend summarizes the whole window
type OverallTrend struct {
	Direction       TrendDirection `json:"direction"`
	Confidence      Confidence     `json:"confidence"`
	Insights        []string       `json:"insights"`
	Recommendations []string       `json:"recommendations"`
}

// TrendAnalysis is the full month over month result
type TrendAnalysis struct {
	Points  []TrendPoint `json:"points"`
	Deltas  []TrendDelta `json:"deltas"`
	Overall OverallTrend `json:"overall"`
	From    string       `json:"from"`
	To      string       `json:"to"`
	Summary string       `json:"summary"`
}

// PeriodSource computes metrics and counts for a single month
// implementations sit at the event store boundary
type PeriodSource interface {
	MetricsFor(ctx context.Context, p MonthPeriod) (BreedingMetrics, BreedingEventCounts, error)
}

// PeriodSourceFunc adapts a function to a PeriodSource
type PeriodSourceFunc func(ctx context.Context, p MonthPeriod) (BreedingMetrics, BreedingEventCounts, error)

// MetricsFor calls the underlying function
func (f PeriodSourceFunc) MetricsFor(ctx context.Context, p MonthPeriod) (BreedingMetrics, BreedingEventCounts, error) {
	return f(ctx, p)
}

// AnalyzeTrends computes one TrendPoint per month in [from, to], fanning
// the per month computations out concurrently, then diffs consecutive
// points sequentially in period order
func AnalyzeTrends(ctx context.Context, src PeriodSource, from, to MonthPeriod) (TrendAnalysis, error) {
	if from.After(to) {
		label := from.String() + ".." + to.String()
		return TrendAnalysis{}, perr.Periodf(label, "start period %s after end period %s", from, to)
	}
	months := monthsBetween(from, to)
	if len(months) == 0 {
		return TrendAnalysis{}, perr.DataInsufficientf(RequiredData, "no periods in the requested range")
	}

	points := make([]TrendPoint, len(months))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(periodFanout)
	for i, p := range months {
		i, p := i, p
		g.Go(func() error {
			m, counts, err := src.MetricsFor(gctx, p)
			if err != nil {
				return err
			}
			points[i] = TrendPoint{Period: p.String(), Metrics: m, Counts: counts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return TrendAnalysis{}, err
	}

	deltas := diffPoints(points)
	overall := summarize(points, deltas)

	return TrendAnalysis{
		Points:  points,
		Deltas:  deltas,
		Overall: overall,
		From:    from.String(),
		To:      to.String(),
		Summary: fmt.Sprintf("Breeding performance %s over %d months (%s to %s)", overall.Direction, len(points), from, to),
	}, nil
}

// diffPoints builds one delta per month after the first
func diffPoints(points []TrendPoint) []TrendDelta {
	var deltas []TrendDelta
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		deltas = append(deltas, TrendDelta{
			Period:  cur.Period,
			Metrics: cur.Metrics,
			Changes: MetricChanges{
				ConceptionRate:         classify(prev.Metrics.ConceptionRate, cur.Metrics.ConceptionRate, true),
				AverageDaysOpen:        classify(prev.Metrics.AverageDaysOpen, cur.Metrics.AverageDaysOpen, false),
				AverageCalvingInterval: classify(prev.Metrics.AverageCalvingInterval, cur.Metrics.AverageCalvingInterval, false),
				AIPerConception:        classify(prev.Metrics.AIPerConception, cur.Metrics.AIPerConception, false),
			},
		})
	}
	return deltas
}

// classify applies the 5% relative stability threshold and the metric's
// better direction; a missing value on either side is stable
func classify(prev, cur *MetricValue, higherBetter bool) TrendDirection {
	if prev == nil || cur == nil {
		return TrendStable
	}
	if prev.Value == 0 {
		if cur.Value == prev.Value {
			return TrendStable
		}
		return directionOf(cur.Value > prev.Value, higherBetter)
	}
	relPct := (cur.Value - prev.Value) / prev.Value * 100
	if relPct < 0 {
		relPct = -relPct
	}
	if relPct < stabilityThresholdPct {
		return TrendStable
	}
	return directionOf(cur.Value > prev.Value, higherBetter)
}

func directionOf(increased, higherBetter bool) TrendDirection {
	if increased == higherBetter {
		return TrendImproving
	}
	return TrendDeclining
}

// summarize tallies all delta slots into direction, confidence, insights,
// and recommendations
func summarize(points []TrendPoint, deltas []TrendDelta) OverallTrend {
	var improving, declining, stable int
	for _, d := range deltas {
		for _, c := range d.Changes.slots() {
			switch c {
			case TrendImproving:
				improving++
			case TrendDeclining:
				declining++
			default:
				stable++
			}
		}
	}

	var direction TrendDirection
	switch {
	case improving > declining:
		direction = TrendImproving
	case declining > improving:
		direction = TrendDeclining
	case stable > 0, improving == 0:
		direction = TrendStable
	default:
		direction = TrendMixed
	}

	n := len(points) + len(deltas)
	confidence := ConfidenceLow
	switch {
	case n >= 12:
		confidence = ConfidenceHigh
	case n >= 6:
		confidence = ConfidenceMedium
	}

	return OverallTrend{
		Direction:       direction,
		Confidence:      confidence,
		Insights:        trendInsights(deltas),
		Recommendations: recommendationsFor(direction),
	}
}

func (c MetricChanges) slots() [4]TrendDirection {
	return [4]TrendDirection{c.ConceptionRate, c.AverageDaysOpen, c.AverageCalvingInterval, c.AIPerConception}
}
