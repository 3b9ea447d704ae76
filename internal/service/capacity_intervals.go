package service

import (
	"math"
	"sort"
	"time"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
)

// ClipInterval restricts iv to window. ok is false when nothing remains.
func ClipInterval(iv, window models.TimeInterval) (models.TimeInterval, bool) {
	start, end := iv.Start, iv.End
	if start.Before(window.Start) {
		start = window.Start
	}
	if end.After(window.End) {
		end = window.End
	}
	if !start.Before(end) {
		return models.TimeInterval{}, false
	}
	return models.TimeInterval{Start: start, End: end}, true
}

// MergeBusyIntervals sorts intervals by start and folds overlapping or touching
// ones together. The input slice is not modified.
func MergeBusyIntervals(intervals []models.TimeInterval) []models.TimeInterval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]models.TimeInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Valid() {
			sorted = append(sorted, iv)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var merged []models.TimeInterval
	for _, cur := range sorted {
		if n := len(merged); n > 0 && !cur.Start.After(merged[n-1].End) {
			if cur.End.After(merged[n-1].End) {
				merged[n-1].End = cur.End
			}
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// FreeGaps returns the complement of busy within window, in chronological order.
// busy must be sorted by start.
func FreeGaps(window models.TimeInterval, busy []models.TimeInterval) []models.TimeInterval {
	var gaps []models.TimeInterval
	cursor := window.Start
	for _, b := range busy {
		if b.Start.After(cursor) {
			end := b.Start
			if end.After(window.End) {
				end = window.End
			}
			if cursor.Before(end) {
				gaps = append(gaps, models.TimeInterval{Start: cursor, End: end})
			}
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(window.End) {
		gaps = append(gaps, models.TimeInterval{Start: cursor, End: window.End})
	}
	return gaps
}

// FreeBlock is the result of searching a window for a contiguous free block.
type FreeBlock struct {
	Found      bool
	Gap        models.TimeInterval
	LargestGap time.Duration
}

// LargestGapMinutes floors the largest observed gap to whole minutes.
func (f FreeBlock) LargestGapMinutes() int {
	return int(f.LargestGap / time.Minute)
}

// maxRequiredSeconds is the largest whole-second count a time.Duration can hold.
const maxRequiredSeconds = float64(math.MaxInt64 / int64(time.Second))

// RequiredDuration converts requested minutes into the whole-second threshold a gap must reach.
// Requests beyond the representable range saturate so no gap can satisfy them.
func RequiredDuration(neededMinutes float64) time.Duration {
	secs := math.Trunc(neededMinutes * 60)
	if math.IsNaN(secs) || secs >= maxRequiredSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(int64(secs)) * time.Second
}

// FindFreeBlock locates the first gap in window at least neededMinutes long.
// Exactly-equal gaps qualify. Callers reject neededMinutes <= 0 beforehand.
func FindFreeBlock(window models.TimeInterval, busy []models.TimeInterval, neededMinutes float64) FreeBlock {
	required := RequiredDuration(neededMinutes)
	if len(busy) == 0 {
		span := window.Duration()
		return FreeBlock{Found: span >= required, Gap: window, LargestGap: span}
	}

	var result FreeBlock
	for _, gap := range FreeGaps(window, busy) {
		d := gap.Duration()
		if d > result.LargestGap {
			result.LargestGap = d
		}
		if !result.Found && d >= required {
			result.Found = true
			result.Gap = gap
		}
	}
	return result
}
