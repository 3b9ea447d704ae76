package dto

import "github.com/noah-isme/mrp-capacity-api/internal/models"

// CapacityCheckRequest is the payload of POST /capacity/evaluate. Missing fields are
// reported as an "incomplete" verdict rather than a validation error. Durations are
// capped at one leap year of minutes.
type CapacityCheckRequest struct {
	WorkCenterID    string       `json:"workcenter_id"`
	ShiftType       string       `json:"shift_type"`
	Date            *models.Date `json:"date"`
	DurationMinutes float64      `json:"duration_minutes" validate:"max=527040"`
	Timezone        string       `json:"timezone,omitempty" validate:"omitempty,timezone"`
}

// CapacitySearchRequest is the payload of POST /capacity/search.
type CapacitySearchRequest struct {
	CapacityCheckRequest
	HorizonDays int `json:"horizon_days,omitempty" validate:"omitempty,min=1,max=366"`
}

// CapacityVerdictResponse decorates a verdict with a localized date.
type CapacityVerdictResponse struct {
	models.CapacityVerdict
	DateDisplay string `json:"date_display,omitempty"`
}

// CapacitySearchResponse decorates a search result with localized dates.
type CapacitySearchResponse struct {
	models.SearchResult
	ResolvedDateDisplay string `json:"resolved_date_display"`
}

// ShiftResponse lists one row of the shift table.
type ShiftResponse struct {
	ID              models.ShiftID `json:"id"`
	Label           string         `json:"label"`
	Start           string         `json:"start"`
	End             string         `json:"end"`
	EndsNextDay     bool           `json:"ends_next_day"`
	DurationMinutes int            `json:"duration_minutes"`
}
