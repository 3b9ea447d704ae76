package models

// WorkCenter is a schedulable production resource.
type WorkCenter struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	CalendarID   *string `db:"resource_calendar_id" json:"resource_calendar_id,omitempty"`
	DepartmentID *string `db:"department_id" json:"department_id,omitempty"`
	Active       bool    `db:"active" json:"active"`
}

// HasCalendar reports whether holiday checks apply to the work center.
func (w *WorkCenter) HasCalendar() bool {
	return w != nil && w.CalendarID != nil && *w.CalendarID != ""
}
