package models

import "time"

// TimeInterval is a half-open [Start, End) range of UTC instants.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start.
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports a strict overlap; intervals that only touch do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Valid reports whether Start < End.
func (i TimeInterval) Valid() bool {
	return i.Start.Before(i.End)
}

// UTC returns the interval with both bounds normalised to UTC.
func (i TimeInterval) UTC() TimeInterval {
	return TimeInterval{Start: i.Start.UTC(), End: i.End.UTC()}
}
