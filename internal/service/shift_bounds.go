package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

// ResolveShiftBounds converts a calendar date and shift into absolute UTC bounds.
// The local start is combined with date in loc; the local end is combined with the
// next day when the shift crosses midnight.
func ResolveShiftBounds(date models.Date, shiftID models.ShiftID, loc *time.Location) (models.TimeInterval, error) {
	def, ok := models.LookupShift(shiftID)
	if !ok {
		return models.TimeInterval{}, appErrors.Clone(appErrors.ErrUnknownShift, fmt.Sprintf("unknown shift type %q", shiftID))
	}
	if loc == nil {
		loc = time.UTC
	}

	endDay := date
	if def.EndsNextDay() {
		endDay = date.AddDays(1)
	}

	return models.TimeInterval{
		Start: date.At(def.LocalStart, loc).UTC(),
		End:   endDay.At(def.LocalEnd, loc).UTC(),
	}, nil
}
