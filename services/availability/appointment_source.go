package availability

import (
	"context"
	"time"

	"citaflow/models"
)

// appointmentBusyIntervals fans confirmed appointments out into one busy
// interval per involved participant that was actually requested. A single
// appointment touching both an agent and a supervisor in the query set
// therefore yields two intervals sharing the same appointment id.
func (s *DefaultAvailabilityService) appointmentBusyIntervals(ctx context.Context, tokens []string, idByToken map[string]int, from, to *time.Time) ([]models.BusyInterval, error) {
	appts, err := s.Appointments.FindConfirmedInvolving(ctx, tokens, from, to)
	if err != nil {
		return nil, err
	}

	var intervals []models.BusyInterval
	for _, appt := range appts {
		appt := appt
		title := appt.ProspectName
		for _, token := range appt.InvolvedAuthIDs {
			staffID, ok := idByToken[token]
			if !ok {
				continue
			}
			interval := models.BusyInterval{
				StaffID:       staffID,
				StaffAuthID:   token,
				Start:         appt.Start,
				End:           appt.End,
				Source:        models.BusySourceAppointment,
				Title:         title,
				AppointmentID: &appt.ID,
				ProspectID:    appt.ProspectID,
			}
			if appt.MeetingProvider != "" {
				provider := appt.MeetingProvider
				interval.Provider = &provider
			}
			intervals = append(intervals, interval)
		}
	}
	return intervals, nil
}
