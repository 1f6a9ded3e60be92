package breeding

import (
	"fmt"
	"strings"
)

// metric display names in stable slot order
var metricNames = [4]string{
	"conception rate",
	"average days open",
	"average calving interval",
	"AI per conception",
}

// trendInsights buckets the four metrics by their dominant classification
// across all deltas and renders one sentence per non empty bucket
func trendInsights(deltas []TrendDelta) []string {
	if len(deltas) == 0 {
		return []string{"No change detected across the analyzed period"}
	}

	var buckets [4]TrendDirection
	for slot := 0; slot < 4; slot++ {
		var improving, declining int
		for _, d := range deltas {
			switch d.Changes.slots()[slot] {
			case TrendImproving:
				improving++
			case TrendDeclining:
				declining++
			}
		}
		switch {
		case improving > declining:
			buckets[slot] = TrendImproving
		case declining > improving:
			buckets[slot] = TrendDeclining
		default:
			buckets[slot] = TrendStable
		}
	}

	group := func(dir TrendDirection) []string {
		var names []string
		for slot, d := range buckets {
			if d == dir {
				names = append(names, metricNames[slot])
			}
		}
		return names
	}

	var out []string
	if names := group(TrendImproving); len(names) > 0 {
		out = append(out, fmt.Sprintf("Improving: %s", strings.Join(names, ", ")))
	}
	if names := group(TrendDeclining); len(names) > 0 {
		out = append(out, fmt.Sprintf("Declining: %s", strings.Join(names, ", ")))
	}
	if names := group(TrendStable); len(names) > 0 {
		out = append(out, fmt.Sprintf("Stable: %s", strings.Join(names, ", ")))
	}
	if len(out) == 0 {
		out = append(out, "No change detected across the analyzed period")
	}
	return out
}

// recommendationsFor maps the overall direction to canned guidance
func recommendationsFor(dir TrendDirection) []string {
	switch dir {
	case TrendImproving:
		return []string{"Breeding performance is trending up, continue current breeding practices"}
	case TrendDeclining:
		return []string{"Review breeding practices, semen handling, and heat detection timing"}
	case TrendMixed:
		return []string{"Indicators are diverging, investigate each metric individually before changing practices"}
	default:
		return []string{"Maintain current practices and look for targeted improvement opportunities"}
	}
}

// Reference targets for point in time guidance
// common dairy management targets, not hard validation bounds
const (
	targetConceptionRatePct = 50.0
	targetDaysOpen          = 120.0
	targetCalvingInterval   = 400.0
	targetAIPerConception   = 2.5
)

// MetricsInsights renders point in time guidance for a single KPI result
func MetricsInsights(m BreedingMetrics, counts BreedingEventCounts) []string {
	var out []string

	if m.ConceptionRate != nil {
		if m.ConceptionRate.Value < targetConceptionRatePct {
			out = append(out, fmt.Sprintf("Conception rate %s is below the %.0f%% target, review insemination timing", m.ConceptionRate.Display, targetConceptionRatePct))
		} else {
			out = append(out, fmt.Sprintf("Conception rate %s meets the %.0f%% target", m.ConceptionRate.Display, targetConceptionRatePct))
		}
	}
	if m.AverageDaysOpen != nil && m.AverageDaysOpen.Value > targetDaysOpen {
		out = append(out, fmt.Sprintf("Average days open %s exceeds the %.0f day target, consider earlier rebreeding", m.AverageDaysOpen.Display, targetDaysOpen))
	}
	if m.AverageCalvingInterval != nil && m.AverageCalvingInterval.Value > targetCalvingInterval {
		out = append(out, fmt.Sprintf("Average calving interval %s exceeds the %.0f day target", m.AverageCalvingInterval.Display, targetCalvingInterval))
	}
	if m.AIPerConception != nil && m.AIPerConception.Value > targetAIPerConception {
		out = append(out, fmt.Sprintf("AI per conception %s is above the %.1f target, review semen quality and technique", m.AIPerConception.Display, targetAIPerConception))
	}

	if len(out) == 0 {
		out = append(out, fmt.Sprintf("Breeding indicators are within target ranges across %d events", counts.TotalEvents))
	}
	return out
}
