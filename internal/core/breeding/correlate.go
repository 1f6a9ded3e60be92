package breeding

import (
	"sort"

	ptime "herdpulse/internal/platform/time"
)

// BreedingEventCounts summarizes one owner's event window
// Conceptions equals Calvings: every calving is treated as evidence of
// exactly one conception (documented business simplification)
type BreedingEventCounts struct {
	Inseminations    int `json:"inseminations"`
	Conceptions      int `json:"conceptions"`
	Calvings         int `json:"calvings"`
	PairsForDaysOpen int `json:"pairs_for_days_open"`
	TotalEvents      int `json:"total_events"`
}

// Correlation is the per animal pairing output the metrics calculator consumes
type Correlation struct {
	Counts BreedingEventCounts

	// DaysOpen holds whole days between each calving and the next
	// insemination for the same animal, one entry per pair
	DaysOpen []int

	// CalvingIntervals holds whole days between consecutive calvings per
	// animal, present only for animals with two or more calvings
	CalvingIntervals []int

	// Animals is the number of distinct animals seen in the window
	Animals int
}

// Correlate partitions events by animal, sorts each partition ascending by
// timestamp, and derives the days open pairs and calving intervals
// Empty input yields all zero counts, never an error
func Correlate(events []BreedingEvent) Correlation {
	byAnimal := make(map[string][]BreedingEvent)
	var c Correlation
	for _, ev := range events {
		byAnimal[ev.CattleID] = append(byAnimal[ev.CattleID], ev)
		c.Counts.TotalEvents++
		switch ev.Kind {
		case KindInsemination:
			c.Counts.Inseminations++
		case KindCalving:
			c.Counts.Calvings++
		}
	}
	c.Counts.Conceptions = c.Counts.Calvings
	c.Animals = len(byAnimal)

	for _, seq := range byAnimal {
		sort.Slice(seq, func(i, j int) bool { return seq[i].At.Before(seq[j].At) })

		var calvings []BreedingEvent
		for i, ev := range seq {
			if ev.Kind != KindCalving {
				continue
			}
			calvings = append(calvings, ev)

			// days open pairs with the chronologically next insemination,
			// inseminations before the calving never pair
			for _, next := range seq[i+1:] {
				if next.Kind == KindInsemination {
					c.DaysOpen = append(c.DaysOpen, ptime.DaysBetween(ev.At, next.At))
					break
				}
			}
		}

		for i := 1; i < len(calvings); i++ {
			c.CalvingIntervals = append(c.CalvingIntervals, ptime.DaysBetween(calvings[i-1].At, calvings[i].At))
		}
	}

	c.Counts.PairsForDaysOpen = len(c.DaysOpen)
	return c
}
