package availability

import (
	"context"
	"sort"
	"time"

	"citaflow/models"
	"citaflow/utils"
)

const planBlockDuration = time.Hour

// planBusyIntervals expands APPOINTMENTS blocks of the weekly intent plans
// that touch the query window into busy intervals. Blocks carry only a day
// offset and an hour string, so wall-clock times are derived in the reporting
// timezone. A window-less query falls back to the current ISO week; a single
// bound anchors the week to that bound, never to the clock.
func (s *DefaultAvailabilityService) planBusyIntervals(ctx context.Context, tokenByID map[int]string, from, to *time.Time) ([]models.BusyInterval, []models.WeeklyPlanSummary, error) {
	loc := s.location()

	var weeks []utils.ISOWeek
	switch {
	case from != nil && to != nil:
		weeks = utils.WeeksInRange(*from, *to, loc)
	case from != nil:
		weeks = []utils.ISOWeek{utils.WeekOf(*from, loc)}
	case to != nil:
		weeks = []utils.ISOWeek{utils.WeekOf(*to, loc)}
	default:
		weeks = []utils.ISOWeek{utils.WeekOf(s.now(), loc)}
	}
	if len(weeks) == 0 {
		return nil, nil, nil
	}

	staffIDs := make([]int, 0, len(tokenByID))
	for id := range tokenByID {
		staffIDs = append(staffIDs, id)
	}
	sort.Ints(staffIDs)

	plans, err := s.Plans.GetForWeeks(ctx, staffIDs, weeks)
	if err != nil {
		return nil, nil, err
	}

	var (
		intervals []models.BusyInterval
		summaries []models.WeeklyPlanSummary
	)
	for _, plan := range plans {
		plan := plan
		summaries = append(summaries, plan.Summarize())

		monday := utils.MondayOf(utils.ISOWeek{Year: plan.ISOYear, Week: plan.ISOWeek}, loc)
		for _, block := range plan.Blocks {
			if block.Activity != models.ActivityAppointments {
				continue
			}
			hour, err := utils.ParseHour(block.Hour)
			if err != nil {
				continue
			}
			start := monday.AddDate(0, 0, block.Day).Add(time.Duration(hour) * time.Hour)
			intervals = append(intervals, models.BusyInterval{
				StaffID:     plan.StaffID,
				StaffAuthID: tokenByID[plan.StaffID],
				Start:       start,
				End:         start.Add(planBlockDuration),
				Source:      models.BusySourceWeeklyPlan,
				PlanID:      &plan.ID,
				ProspectID:  blockProspectID(block),
				Title:       block.Notes,
			})
		}
	}
	return intervals, summaries, nil
}

func blockProspectID(block models.PlanBlock) *int64 {
	if block.ProspectID == nil {
		return nil
	}
	id := *block.ProspectID
	return &id
}
