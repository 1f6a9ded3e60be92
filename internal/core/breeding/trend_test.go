package breeding

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "herdpulse/internal/platform/errors"
)

func mv(v float64) *MetricValue { return &MetricValue{Value: v} }

func TestClassify_StabilityThreshold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		prev, cur    *MetricValue
		higherBetter bool
		want         TrendDirection
	}{
		{name: "4 percent change is stable", prev: mv(100), cur: mv(104), higherBetter: false, want: TrendStable},
		{name: "6 percent rise declines when lower is better", prev: mv(100), cur: mv(106), higherBetter: false, want: TrendDeclining},
		{name: "6 percent rise improves when higher is better", prev: mv(100), cur: mv(106), higherBetter: true, want: TrendImproving},
		{name: "6 percent drop improves when lower is better", prev: mv(100), cur: mv(94), higherBetter: false, want: TrendImproving},
		{name: "missing previous is stable", prev: nil, cur: mv(50), higherBetter: true, want: TrendStable},
		{name: "missing current is stable", prev: mv(50), cur: nil, higherBetter: true, want: TrendStable},
		{name: "zero previous with movement classifies", prev: mv(0), cur: mv(10), higherBetter: true, want: TrendImproving},
		{name: "zero previous without movement is stable", prev: mv(0), cur: mv(0), higherBetter: true, want: TrendStable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classify(tc.prev, tc.cur, tc.higherBetter); got != tc.want {
				t.Fatalf("classify = %s, want %s", got, tc.want)
			}
		})
	}
}

// steadySource returns the same metrics for every month
func steadySource(m BreedingMetrics, c BreedingEventCounts) PeriodSource {
	return PeriodSourceFunc(func(context.Context, MonthPeriod) (BreedingMetrics, BreedingEventCounts, error) {
		return m, c, nil
	})
}

func TestAnalyzeTrends_ConfidenceTiers(t *testing.T) {
	t.Parallel()

	src := steadySource(BreedingMetrics{ConceptionRate: mv(55)}, BreedingEventCounts{TotalEvents: 5})

	// 3 points + 2 deltas = 5 -> low
	from := MonthPeriod{Year: 2025, Month: time.March}
	got, err := AnalyzeTrends(context.Background(), src, from, from.AddMonths(2))
	if err != nil {
		t.Fatalf("AnalyzeTrends: %v", err)
	}
	if len(got.Points) != 3 || len(got.Deltas) != 2 {
		t.Fatalf("series = %d points %d deltas, want 3/2", len(got.Points), len(got.Deltas))
	}
	if got.Overall.Confidence != ConfidenceLow {
		t.Fatalf("confidence = %s, want low", got.Overall.Confidence)
	}

	// 12 points + 11 deltas = 23 -> high
	got, err = AnalyzeTrends(context.Background(), src, from, from.AddMonths(11))
	if err != nil {
		t.Fatalf("AnalyzeTrends: %v", err)
	}
	if len(got.Points) != 12 {
		t.Fatalf("points = %d, want 12", len(got.Points))
	}
	if got.Overall.Confidence != ConfidenceHigh {
		t.Fatalf("confidence = %s, want high", got.Overall.Confidence)
	}

	// 4 points + 3 deltas = 7 -> medium
	got, err = AnalyzeTrends(context.Background(), src, from, from.AddMonths(3))
	if err != nil {
		t.Fatalf("AnalyzeTrends: %v", err)
	}
	if got.Overall.Confidence != ConfidenceMedium {
		t.Fatalf("confidence = %s, want medium", got.Overall.Confidence)
	}
}

func TestAnalyzeTrends_PeriodOrderAndDirection(t *testing.T) {
	t.Parallel()

	// conception rate climbs well past the 5% threshold each month
	rates := map[string]float64{
		"2025-01": 40,
		"2025-02": 46,
		"2025-03": 53,
	}
	src := PeriodSourceFunc(func(_ context.Context, p MonthPeriod) (BreedingMetrics, BreedingEventCounts, error) {
		return BreedingMetrics{ConceptionRate: mv(rates[p.String()])}, BreedingEventCounts{TotalEvents: 9}, nil
	})

	got, err := AnalyzeTrends(context.Background(), src,
		MonthPeriod{Year: 2025, Month: time.January},
		MonthPeriod{Year: 2025, Month: time.March})
	if err != nil {
		t.Fatalf("AnalyzeTrends: %v", err)
	}

	wantPeriods := []string{"2025-01", "2025-02", "2025-03"}
	for i, p := range got.Points {
		if p.Period != wantPeriods[i] {
			t.Fatalf("point %d period = %s, want %s", i, p.Period, wantPeriods[i])
		}
	}
	for _, d := range got.Deltas {
		if d.Changes.ConceptionRate != TrendImproving {
			t.Fatalf("delta %s conception rate = %s, want improving", d.Period, d.Changes.ConceptionRate)
		}
		// the other three metrics are absent, so stable
		if d.Changes.AverageDaysOpen != TrendStable {
			t.Fatalf("delta %s days open = %s, want stable", d.Period, d.Changes.AverageDaysOpen)
		}
	}
	if got.Overall.Direction != TrendImproving {
		t.Fatalf("direction = %s, want improving", got.Overall.Direction)
	}
	if len(got.Overall.Insights) == 0 || len(got.Overall.Recommendations) == 0 {
		t.Fatalf("overall narrative missing: %+v", got.Overall)
	}
}

func TestAnalyzeTrends_PeriodError(t *testing.T) {
	t.Parallel()

	src := steadySource(BreedingMetrics{}, BreedingEventCounts{})
	_, err := AnalyzeTrends(context.Background(), src,
		MonthPeriod{Year: 2025, Month: time.June},
		MonthPeriod{Year: 2025, Month: time.January})
	if !perr.IsCode(err, perr.ErrorCodePeriod) {
		t.Fatalf("expected period error, got %v", err)
	}
	e, ok := perr.As(err)
	if !ok || e.Label() != "2025-06..2025-01" {
		t.Fatalf("period label = %q", e.Label())
	}
}

func TestAnalyzeTrends_SourceErrorPropagatesUnwrapped(t *testing.T) {
	t.Parallel()

	boom := perr.Infraf(errors.New("dial refused"), "event store unavailable")
	src := PeriodSourceFunc(func(_ context.Context, p MonthPeriod) (BreedingMetrics, BreedingEventCounts, error) {
		if p.Month == time.February {
			return BreedingMetrics{}, BreedingEventCounts{}, boom
		}
		return BreedingMetrics{ConceptionRate: mv(50)}, BreedingEventCounts{}, nil
	})

	_, err := AnalyzeTrends(context.Background(), src,
		MonthPeriod{Year: 2025, Month: time.January},
		MonthPeriod{Year: 2025, Month: time.April})
	if !errors.Is(err, boom) {
		t.Fatalf("source error was wrapped or replaced: %v", err)
	}
}

func TestParseMonth(t *testing.T) {
	t.Parallel()

	p, err := ParseMonth("2025-07")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	if p.Year != 2025 || p.Month != time.July {
		t.Fatalf("parsed = %+v", p)
	}
	if p.String() != "2025-07" {
		t.Fatalf("String = %q", p.String())
	}

	for _, bad := range []string{"2025-13", "2025/07", "202507", "2025-00"} {
		if _, err := ParseMonth(bad); err == nil {
			t.Fatalf("ParseMonth(%q) accepted malformed input", bad)
		}
	}
}

func TestTrendInsights_Buckets(t *testing.T) {
	t.Parallel()

	deltas := []TrendDelta{
		{Changes: MetricChanges{
			ConceptionRate:         TrendImproving,
			AverageDaysOpen:        TrendDeclining,
			AverageCalvingInterval: TrendStable,
			AIPerConception:        TrendStable,
		}},
	}
	got := trendInsights(deltas)
	if len(got) != 3 {
		t.Fatalf("insights = %v, want one sentence per bucket", got)
	}

	if got := trendInsights(nil); len(got) != 1 {
		t.Fatalf("empty deltas insights = %v, want single no-change sentence", got)
	}
}
