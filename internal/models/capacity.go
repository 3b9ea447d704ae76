package models

import "time"

// ReasonCode classifies a capacity verdict independent of its localized text.
type ReasonCode string

const (
	ReasonFits             ReasonCode = "fits"
	ReasonIncomplete       ReasonCode = "incomplete"
	ReasonInvalidDuration  ReasonCode = "invalid_duration"
	ReasonHoliday          ReasonCode = "holiday"
	ReasonNoFreeBlock      ReasonCode = "no_free_block"
	ReasonEvaluationFailed ReasonCode = "evaluation_failed"
)

// CapacityRequest asks whether RequestedMinutes fit in one shift of a work center.
// Location is the evaluating user's zone; Locale only affects reason texts.
type CapacityRequest struct {
	WorkCenterID     string
	ShiftID          ShiftID
	Date             *Date
	RequestedMinutes float64
	Location         *time.Location
	Locale           string
}

// CapacityVerdict is the outcome of evaluating one calendar date.
type CapacityVerdict struct {
	Date              Date          `json:"date"`
	Available         bool          `json:"available"`
	ReasonCode        ReasonCode    `json:"reason_code"`
	Reason            string        `json:"reason"`
	Window            *TimeInterval `json:"window,omitempty"`
	MatchedInterval   *TimeInterval `json:"matched_interval,omitempty"`
	LargestGapMinutes int           `json:"largest_gap_minutes"`
}

// SearchOutcome separates "the requested date fits" from "a later date was substituted".
type SearchOutcome string

const (
	OutcomeAvailableToday SearchOutcome = "available_today"
	OutcomeAvailableLater SearchOutcome = "available_later"
)

// SearchResult is the successful outcome of a forward search.
type SearchResult struct {
	Outcome       SearchOutcome   `json:"outcome"`
	RequestedDate Date            `json:"requested_date"`
	ResolvedDate  Date            `json:"resolved_date"`
	Verdict       CapacityVerdict `json:"verdict"`
	DaysSearched  int             `json:"days_searched"`
	Message       string          `json:"message"`
}
