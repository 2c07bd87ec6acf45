// File: database/repository/weeklyplan/interface.go
package planRepo

import (
	"context"

	"citaflow/models"
	"citaflow/utils"
)

// WeeklyPlanRepository reads weekly intent plans and maintains the auto
// blocks the booking path mirrors into them. Manual blocks belong to the
// planning UI and are never modified here.
type WeeklyPlanRepository interface {
	// Get fetches one plan, nil when the staff member has none for the week.
	Get(ctx context.Context, staffID int, week utils.ISOWeek) (*models.WeeklyPlan, error)
	// GetForWeeks fetches every plan for any of the staff ids in any of the
	// given ISO weeks.
	GetForWeeks(ctx context.Context, staffIDs []int, weeks []utils.ISOWeek) ([]models.WeeklyPlan, error)
	// UpsertAutoBlock writes an origin=auto block into the plan for the
	// week, creating the plan when absent. An existing block at the same
	// (day, hour) is replaced, preserving the one-block-per-cell invariant.
	UpsertAutoBlock(ctx context.Context, staffID int, week utils.ISOWeek, block models.PlanBlock) error
	// RemoveAutoBlock removes auto blocks referencing the appointment from
	// the staff member's plans. Removing a block that is already gone is a
	// no-op.
	RemoveAutoBlock(ctx context.Context, staffID int, appointmentID string) error
}
