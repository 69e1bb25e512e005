package segments

import (
	"fmt"
	"sort"
)

// Interval is a time range in seconds. Wherever intervals are applied to
// audio they are keep-list semantics: the interval marks material to retain.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Validate checks a single interval
func (iv Interval) Validate() error {
	if iv.Start < 0 {
		return fmt.Errorf("interval start must be non-negative, got %.3f", iv.Start)
	}
	if iv.Start >= iv.End {
		return fmt.Errorf("interval start must be before end, got [%.3f, %.3f]", iv.Start, iv.End)
	}
	return nil
}

// ValidateAll rejects an empty list or any invalid member
func ValidateAll(intervals []Interval) error {
	if len(intervals) == 0 {
		return fmt.Errorf("at least one interval is required")
	}
	for i, iv := range intervals {
		if err := iv.Validate(); err != nil {
			return fmt.Errorf("interval %d: %w", i, err)
		}
	}
	return nil
}

// Merge sorts intervals by start time and folds any interval that begins at
// or before the running interval's end into it. The result is the minimal
// set of non-overlapping intervals covering the same time, in time order.
// The input is not modified.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// TotalDuration returns the summed length of the intervals
func TotalDuration(intervals []Interval) float64 {
	var total float64
	for _, iv := range intervals {
		total += iv.End - iv.Start
	}
	return total
}
