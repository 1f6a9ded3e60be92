package breeding

import (
	"fmt"
	"math"

	perr "herdpulse/internal/platform/errors"
)

// MetricValue is a validated metric with its unit and display form
type MetricValue struct {
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	Display string  `json:"display"`
}

// BreedingMetrics holds the four core KPIs
// Each field is nil when its precondition count is zero, never a spurious 0
type BreedingMetrics struct {
	ConceptionRate         *MetricValue `json:"conception_rate,omitempty"`
	AverageDaysOpen        *MetricValue `json:"average_days_open,omitempty"`
	AverageCalvingInterval *MetricValue `json:"average_calving_interval,omitempty"`
	AIPerConception        *MetricValue `json:"ai_per_conception,omitempty"`
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func roundInt(v float64) float64 { return math.Round(v) }

func mean(vals []int) float64 {
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}

// Calculate converts correlated events into validated BreedingMetrics
// Construction short circuits: the first metric that fails its own
// validation fails the whole calculation with that metric's error
func Calculate(c Correlation) (BreedingMetrics, error) {
	if c.Counts.TotalEvents == 0 {
		return BreedingMetrics{}, perr.DataInsufficientf(RequiredData, "no breeding events in the requested window")
	}

	var m BreedingMetrics

	if c.Counts.Inseminations > 0 {
		rate := round1(float64(c.Counts.Conceptions) / float64(c.Counts.Inseminations) * 100)
		if rate > 100 || rate < 0 {
			return BreedingMetrics{}, perr.Validationf("conception_rate", "conception rate %.1f%% outside [0,100]", rate)
		}
		m.ConceptionRate = &MetricValue{
			Value:   rate,
			Unit:    "%",
			Display: fmt.Sprintf("%.1f%%", rate),
		}
	}

	if c.Counts.PairsForDaysOpen > 0 {
		avg := roundInt(mean(c.DaysOpen))
		if avg < 0 {
			return BreedingMetrics{}, perr.Calculationf("average_days_open", avg, "negative days open average")
		}
		m.AverageDaysOpen = &MetricValue{
			Value:   avg,
			Unit:    "days",
			Display: fmt.Sprintf("%.0f days", avg),
		}
	}

	if c.Counts.Calvings > 1 && len(c.CalvingIntervals) > 0 {
		avg := roundInt(mean(c.CalvingIntervals))
		if avg < 0 {
			return BreedingMetrics{}, perr.Calculationf("average_calving_interval", avg, "negative calving interval average")
		}
		m.AverageCalvingInterval = &MetricValue{
			Value:   avg,
			Unit:    "days",
			Display: fmt.Sprintf("%.0f days", avg),
		}
	}

	if c.Counts.Conceptions > 0 {
		per := round1(float64(c.Counts.Inseminations) / float64(c.Counts.Conceptions))
		// a conception requires at least one insemination
		if per < 1 {
			return BreedingMetrics{}, perr.Validationf("ai_per_conception", "AI per conception %.1f below 1", per)
		}
		m.AIPerConception = &MetricValue{
			Value:   per,
			Unit:    "count",
			Display: fmt.Sprintf("%.1f", per),
		}
	}

	return m, nil
}
