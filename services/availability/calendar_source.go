package availability

import (
	"context"
	"time"

	"citaflow/models"
)

// calendarBusyIntervals maps synced external calendar rows onto busy
// intervals. The sync layer stores rows per auth token, so the mapping back
// to internal staff ids happens here.
func (s *DefaultAvailabilityService) calendarBusyIntervals(ctx context.Context, tokens []string, idByToken map[string]int, from, to *time.Time) ([]models.BusyInterval, error) {
	rows, err := s.CalendarRepo.FindBusy(ctx, tokens, from, to)
	if err != nil {
		return nil, err
	}

	intervals := make([]models.BusyInterval, 0, len(rows))
	for _, row := range rows {
		staffID, ok := idByToken[row.AuthID]
		if !ok {
			continue
		}
		interval := models.BusyInterval{
			StaffID:     staffID,
			StaffAuthID: row.AuthID,
			Start:       row.Start,
			End:         row.End,
			Source:      models.BusySourceCalendar,
			Title:       row.Summary,
		}
		if row.Provider != "" {
			provider := row.Provider
			interval.Provider = &provider
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}
