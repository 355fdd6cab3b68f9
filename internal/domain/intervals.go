package domain

import (
	"sort"
	"time"
)

// Interval is a closed wall-clock span.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Minutes is the interval length in whole minutes, zero for inverted spans.
func (iv Interval) Minutes() int {
	if !iv.End.After(iv.Start) {
		return 0
	}
	return int(iv.End.Sub(iv.Start) / time.Minute)
}

// MergeIntervals collapses overlapping or touching intervals into a
// disjoint, start-ordered set. The input is not modified.
func MergeIntervals(intervals []Interval) []Interval {
	spans := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.End.After(iv.Start) {
			spans = append(spans, iv)
		}
	}
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start.Before(spans[j].Start) })

	merged := []Interval{spans[0]}
	for _, iv := range spans[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// UnionMinutes is the total length of the union of the given intervals,
// counting overlapping wall-clock time once.
func UnionMinutes(intervals []Interval) int {
	total := 0
	for _, iv := range MergeIntervals(intervals) {
		total += iv.Minutes()
	}
	return total
}
