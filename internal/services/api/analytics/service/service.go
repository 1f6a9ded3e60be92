// Package service contains the breeding analytics workflows
package service

import (
	"context"
	"fmt"
	"time"

	"herdpulse/internal/core/breeding"
	"herdpulse/internal/modkit/repokit"
	perr "herdpulse/internal/platform/errors"
	ptime "herdpulse/internal/platform/time"
	"herdpulse/internal/services/api/analytics/domain"
	"herdpulse/internal/services/api/analytics/repo"
)

const dateLayout = "2006-01-02"

// Reliability tiers for calculation details
const (
	reliabilityHighMin   = 30
	reliabilityMediumMin = 10
)

// defaultTrendMonths is the trailing window when no month range is given
const defaultTrendMonths = 12

// Service defines the analytics service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the analytics service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	clock  ptime.Clock
}

// New constructs an analytics service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], clock ptime.Clock) *Svc {
	if db == nil {
		panic("analytics.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("analytics.Service requires a non nil Repo binder")
	}
	if clock == nil {
		clock = ptime.SystemClock{}
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, clock: clock}
}

// Metrics computes the point in time KPI set for one owner window
func (s *Svc) Metrics(ctx context.Context, ownerID string, in domain.MetricsInput) (out domain.MetricsOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = perr.Infraf(fmt.Errorf("%v", r), "breeding metrics calculation failed unexpectedly")
		}
	}()

	now := s.clock.Now()
	from, toExclusive, err := resolveWindow(in, now)
	if err != nil {
		return domain.MetricsOutput{}, err
	}

	raws, err := s.Repo.EventsForKPI(ctx, ownerID, from, toExclusive)
	if err != nil {
		return domain.MetricsOutput{}, err
	}
	events, err := breeding.NormalizeAll(raws, now)
	if err != nil {
		return domain.MetricsOutput{}, err
	}

	corr := breeding.Correlate(events)
	metrics, err := breeding.Calculate(corr)
	if err != nil {
		return domain.MetricsOutput{}, err
	}

	return domain.MetricsOutput{
		Metrics: metrics,
		Counts:  corr.Counts,
		Period: domain.Period{
			From: from.Format(dateLayout),
			To:   toExclusive.AddDate(0, 0, -1).Format(dateLayout),
		},
		Insights: breeding.MetricsInsights(metrics, corr.Counts),
		Details: domain.CalculationDetails{
			TotalCattle: corr.Animals,
			DataPoints:  corr.Counts.TotalEvents,
			Reliability: reliability(corr.Counts.TotalEvents),
		},
	}, nil
}

// Trends computes the month over month analysis for one owner
func (s *Svc) Trends(ctx context.Context, ownerID string, in domain.TrendsInput) (out breeding.TrendAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = perr.Infraf(fmt.Errorf("%v", r), "breeding trend analysis failed unexpectedly")
		}
	}()

	from, to, err := resolveMonths(in, s.clock.Now())
	if err != nil {
		return breeding.TrendAnalysis{}, err
	}

	src := breeding.PeriodSourceFunc(func(ctx context.Context, p breeding.MonthPeriod) (breeding.BreedingMetrics, breeding.BreedingEventCounts, error) {
		raws, err := s.Repo.EventsForKPI(ctx, ownerID, p.Start(), p.End())
		if err != nil {
			return breeding.BreedingMetrics{}, breeding.BreedingEventCounts{}, err
		}
		events, err := breeding.NormalizeAll(raws, s.clock.Now())
		if err != nil {
			return breeding.BreedingMetrics{}, breeding.BreedingEventCounts{}, err
		}
		corr := breeding.Correlate(events)
		metrics, err := breeding.Calculate(corr)
		if err != nil {
			// an empty month is a null point in the series, not a failure
			if perr.IsCode(err, perr.ErrorCodeDataInsufficient) {
				return breeding.BreedingMetrics{}, breeding.BreedingEventCounts{}, nil
			}
			return breeding.BreedingMetrics{}, breeding.BreedingEventCounts{}, err
		}
		return metrics, corr.Counts, nil
	})

	return breeding.AnalyzeTrends(ctx, src, from, to)
}

// resolveWindow applies the trailing 12 month default and validates order
// the returned upper bound is exclusive
func resolveWindow(in domain.MetricsInput, now time.Time) (time.Time, time.Time, error) {
	toExclusive := now
	if in.To != "" {
		t, err := time.Parse(dateLayout, in.To)
		if err != nil {
			return time.Time{}, time.Time{}, perr.Validationf("to", "malformed date %q", in.To)
		}
		toExclusive = t.AddDate(0, 0, 1)
	}

	from := toExclusive.AddDate(-1, 0, 0)
	if in.From != "" {
		t, err := time.Parse(dateLayout, in.From)
		if err != nil {
			return time.Time{}, time.Time{}, perr.Validationf("from", "malformed date %q", in.From)
		}
		from = t
	}

	if from.After(toExclusive) {
		label := from.Format(dateLayout) + ".." + toExclusive.AddDate(0, 0, -1).Format(dateLayout)
		return time.Time{}, time.Time{}, perr.Periodf(label, "from date after to date")
	}
	return from, toExclusive, nil
}

// resolveMonths applies the trailing month window default
// Months is only consulted when FromMonth is absent
func resolveMonths(in domain.TrendsInput, now time.Time) (breeding.MonthPeriod, breeding.MonthPeriod, error) {
	to := breeding.MonthOf(now)
	if in.ToMonth != "" {
		p, err := breeding.ParseMonth(in.ToMonth)
		if err != nil {
			return breeding.MonthPeriod{}, breeding.MonthPeriod{}, err
		}
		to = p
	}

	months := in.Months
	if months <= 0 {
		months = defaultTrendMonths
	}
	from := to.AddMonths(-(months - 1))
	if in.FromMonth != "" {
		p, err := breeding.ParseMonth(in.FromMonth)
		if err != nil {
			return breeding.MonthPeriod{}, breeding.MonthPeriod{}, err
		}
		from = p
	}
	return from, to, nil
}

func reliability(dataPoints int) string {
	switch {
	case dataPoints >= reliabilityHighMin:
		return "high"
	case dataPoints >= reliabilityMediumMin:
		return "medium"
	default:
		return "low"
	}
}
