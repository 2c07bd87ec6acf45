package models

import "time"

// BusySource tags which commitment source produced a busy interval.
type BusySource string

const (
	BusySourceCalendar    BusySource = "external_calendar"
	BusySourceAppointment BusySource = "appointment"
	BusySourceWeeklyPlan  BusySource = "weekly_plan"
)

// BusyInterval is one computed busy block for a staff member. Intervals are
// rebuilt on every availability read and never persisted. Overlap between
// intervals from different sources is expected and meaningful (a plan slot
// coinciding with a confirmed appointment is the plan being fulfilled), so
// no cross-source deduplication happens anywhere.
type BusyInterval struct {
	StaffID       int        `json:"staffId"`
	StaffAuthID   string     `json:"staffAuthId"`
	Start         time.Time  `json:"start"`
	End           time.Time  `json:"end"`
	Source        BusySource `json:"source"`
	Provider      *string    `json:"provider,omitempty"`
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	AppointmentID *string    `json:"appointmentId,omitempty"`
	ProspectID    *int64     `json:"prospectId,omitempty"`
	PlanID        *string    `json:"planId,omitempty"`
}

// Overlaps reports whether the interval intersects [start, end).
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

// AvailabilityResult is the aggregator's answer for one requested window.
type AvailabilityResult struct {
	Range       AvailabilityRange   `json:"range"`
	Busy        []BusyInterval      `json:"busy"`
	MissingAuth []int               `json:"missingAuth"`
	WeeklyPlans []WeeklyPlanSummary `json:"weeklyPlans,omitempty"`
}

// AvailabilityRange echoes the requested window back to the caller.
type AvailabilityRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}
