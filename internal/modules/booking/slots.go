package booking

import (
	"sort"

	"studyrooms/internal/domain"
)

// FreeSlots returns the free, bookable windows left inside window after
// subtracting occupied, in ascending order. Gaps shorter than
// granularityMin are dropped, not rounded. Occupied intervals outside
// the window are clamped to it.
func FreeSlots(window domain.Interval, occupied []domain.Interval, granularityMin int) []domain.Interval {
	free := make([]domain.Interval, 0)
	if !window.Valid() {
		return free
	}

	busy := make([]domain.Interval, 0, len(occupied))
	for _, b := range occupied {
		if b.End <= window.Start || b.Start >= window.End {
			continue
		}
		if b.Start < window.Start {
			b.Start = window.Start
		}
		if b.End > window.End {
			b.End = window.End
		}
		if b.Valid() {
			busy = append(busy, b)
		}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start < busy[j].Start })

	// merge so the sweep below only sees disjoint intervals
	merged := busy[:0]
	for _, b := range busy {
		if len(merged) > 0 && b.Start <= merged[len(merged)-1].End {
			if b.End > merged[len(merged)-1].End {
				merged[len(merged)-1].End = b.End
			}
			continue
		}
		merged = append(merged, b)
	}

	cur := window.Start
	for _, b := range merged {
		emitGap(&free, domain.Interval{Start: cur, End: b.Start}, granularityMin)
		cur = b.End
	}
	emitGap(&free, domain.Interval{Start: cur, End: window.End}, granularityMin)
	return free
}

func emitGap(out *[]domain.Interval, gap domain.Interval, granularityMin int) {
	if gap.Valid() && gap.DurationMinutes() >= granularityMin {
		*out = append(*out, gap)
	}
}
