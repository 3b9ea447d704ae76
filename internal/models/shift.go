package models

import "fmt"

// ShiftID identifies one of the fixed daily shifts a work center is scheduled against.
type ShiftID string

const (
	Shift1 ShiftID = "1"
	Shift2 ShiftID = "2"
	Shift3 ShiftID = "3"
)

// ClockTime is a local time of day with minute precision.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Minutes returns the offset from local midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ShiftDefinition is an immutable row of the shift window table.
type ShiftDefinition struct {
	ID         ShiftID   `json:"id"`
	Label      string    `json:"label"`
	LocalStart ClockTime `json:"local_start"`
	LocalEnd   ClockTime `json:"local_end"`
}

// EndsNextDay reports whether the window crosses local midnight.
func (s ShiftDefinition) EndsNextDay() bool {
	return s.LocalEnd.Minutes() <= s.LocalStart.Minutes()
}

// DurationMinutes is the nominal length of the shift.
func (s ShiftDefinition) DurationMinutes() int {
	d := s.LocalEnd.Minutes() - s.LocalStart.Minutes()
	if s.EndsNextDay() {
		d += 24 * 60
	}
	return d
}

var shiftTable = [...]ShiftDefinition{
	{ID: Shift1, Label: "Shift 1", LocalStart: ClockTime{Hour: 8}, LocalEnd: ClockTime{Hour: 16}},
	{ID: Shift2, Label: "Shift 2", LocalStart: ClockTime{Hour: 16}, LocalEnd: ClockTime{Hour: 0}},
	{ID: Shift3, Label: "Shift 3", LocalStart: ClockTime{Hour: 0}, LocalEnd: ClockTime{Hour: 8}},
}

// ShiftDefinitions returns a copy of the shift table ordered by id.
func ShiftDefinitions() []ShiftDefinition {
	out := make([]ShiftDefinition, len(shiftTable))
	copy(out, shiftTable[:])
	return out
}

// LookupShift finds the window for a shift id.
func LookupShift(id ShiftID) (ShiftDefinition, bool) {
	for _, def := range shiftTable {
		if def.ID == id {
			return def, true
		}
	}
	return ShiftDefinition{}, false
}
