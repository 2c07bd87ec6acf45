package models

import "time"

// Plan block activities. Only APPOINTMENTS blocks occupy the calendar;
// PROSPECTING and TRAINING exist for planning summaries.
const (
	ActivityProspecting  = "PROSPECTING"
	ActivityAppointments = "APPOINTMENTS"
	ActivityTraining     = "TRAINING"
)

// Plan block origins. Manual blocks come from the planning UI; auto blocks
// are written by the booking path to mirror confirmed appointments and are
// the only ones the agenda is allowed to remove again.
const (
	OriginManual = "manual"
	OriginAuto   = "auto"
)

// PlanBlock is one cell of the weekly intent grid. At most one block exists
// per (day, hour) pair within a plan; day is the offset from the ISO week's
// Monday (0-6) and hour is the hour-of-day as stored by the planning UI.
type PlanBlock struct {
	Day           int     `json:"day" bson:"day"`
	Hour          string  `json:"hour" bson:"hour"`
	Activity      string  `json:"activity" bson:"activity"`
	Origin        string  `json:"origin" bson:"origin"`
	ProspectID    *int64  `json:"prospectId,omitempty" bson:"prospect_id,omitempty"`
	AppointmentID *string `json:"appointmentId,omitempty" bson:"appointment_id,omitempty"`
	Notes         *string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// WeeklyPlan is one staff member's soft intent grid for a single ISO week.
// Plans are edited by the planning UI and read-only to the scheduling core,
// except for auto blocks synced from bookings.
type WeeklyPlan struct {
	ID        string      `json:"id" bson:"id"`
	StaffID   int         `json:"staffId" bson:"staff_id"`
	ISOYear   int         `json:"isoYear" bson:"iso_year"`
	ISOWeek   int         `json:"isoWeek" bson:"iso_week"`
	Blocks    []PlanBlock `json:"blocks" bson:"blocks"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updated_at"`
}

// WeeklyPlanSummary is the per-plan digest attached to availability reads so
// the agenda UI can show intent alongside hard busy intervals.
type WeeklyPlanSummary struct {
	PlanID            string `json:"planId"`
	StaffID           int    `json:"staffId"`
	ISOYear           int    `json:"isoYear"`
	ISOWeek           int    `json:"isoWeek"`
	AppointmentBlocks int    `json:"appointmentBlocks"`
	ProspectingBlocks int    `json:"prospectingBlocks"`
	TrainingBlocks    int    `json:"trainingBlocks"`
}

// Summarize counts the plan's blocks per activity.
func (p WeeklyPlan) Summarize() WeeklyPlanSummary {
	s := WeeklyPlanSummary{
		PlanID:  p.ID,
		StaffID: p.StaffID,
		ISOYear: p.ISOYear,
		ISOWeek: p.ISOWeek,
	}
	for _, b := range p.Blocks {
		switch b.Activity {
		case ActivityAppointments:
			s.AppointmentBlocks++
		case ActivityProspecting:
			s.ProspectingBlocks++
		case ActivityTraining:
			s.TrainingBlocks++
		}
	}
	return s
}
