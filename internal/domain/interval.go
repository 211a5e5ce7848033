package domain

// Interval is a half-open time range [Start, End) within one calendar date.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (iv Interval) Valid() bool { return iv.Start < iv.End }

// DurationMinutes is the length of the interval.
func (iv Interval) DurationMinutes() int { return int(iv.End - iv.Start) }

// Overlaps reports whether two half-open intervals share any instant.
// Touching intervals (a.End == b.Start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Within reports whether iv lies entirely inside outer.
func (iv Interval) Within(outer Interval) bool {
	return iv.Start >= outer.Start && iv.End <= outer.End
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}
