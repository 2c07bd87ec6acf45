package availability

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentRepo "citaflow/database/repository/appointment"
	calendarRepo "citaflow/database/repository/calendarsync"
	staffRepo "citaflow/database/repository/staff"
	planRepo "citaflow/database/repository/weeklyplan"
	"citaflow/models"
	"citaflow/utils"

	"go.uber.org/zap"
)

// DefaultAvailabilityService is the production implementation of the
// availability aggregator.
type DefaultAvailabilityService struct {
	Staff        staffRepo.StaffRepository
	CalendarRepo calendarRepo.CalendarBusyRepository
	Appointments appointmentRepo.AppointmentRepository
	Plans        planRepo.WeeklyPlanRepository
	// Location is the reporting timezone used for ISO week derivation.
	Location *time.Location
	// Now is injected so "current week" defaults stay deterministic in tests.
	Now func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAvailabilityService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

// resolveDirectory maps internal staff ids to external auth tokens. Staff
// without a token land in missing; that is a reportable condition for the
// caller, never an error.
func (s *DefaultAvailabilityService) resolveDirectory(ctx context.Context, staffIDs []int) (tokenByID map[int]string, idByToken map[string]int, missing []int, err error) {
	tokenByID = make(map[int]string)
	idByToken = make(map[string]int)
	if len(staffIDs) == 0 {
		return tokenByID, idByToken, nil, nil
	}

	members, err := s.Staff.GetByIDs(ctx, staffIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	byID := make(map[int]models.StaffMember, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	for _, id := range staffIDs {
		member, ok := byID[id]
		if !ok || !member.HasAuth() {
			missing = append(missing, id)
			continue
		}
		tokenByID[id] = *member.AuthID
		idByToken[*member.AuthID] = id
	}
	return tokenByID, idByToken, missing, nil
}

// GetBusyIntervals runs the directory resolution, reads the three sources
// concurrently, concatenates and sorts. Intervals overlapping across sources
// are kept: a plan slot coinciding with a confirmed appointment is signal,
// not duplication.
func (s *DefaultAvailabilityService) GetBusyIntervals(ctx context.Context, staffIDs []int, from, to *time.Time) (*models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	result := &models.AvailabilityResult{
		Range:       models.AvailabilityRange{From: from, To: to},
		Busy:        []models.BusyInterval{},
		MissingAuth: []int{},
	}

	tokenByID, idByToken, missing, err := s.resolveDirectory(ctx, staffIDs)
	if err != nil {
		return nil, newSourceUnavailable("directory", err)
	}
	result.MissingAuth = append(result.MissingAuth, missing...)
	if len(tokenByID) == 0 {
		return result, nil
	}

	tokens := make([]string, 0, len(idByToken))
	for token := range idByToken {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		firstErr     error
		calendarBusy []models.BusyInterval
		apptBusy     []models.BusyInterval
		planBusy     []models.BusyInterval
		planSummary  []models.WeeklyPlanSummary
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		intervals, err := s.calendarBusyIntervals(ctx, tokens, idByToken, from, to)
		if err != nil {
			fail(newSourceUnavailable(string(models.BusySourceCalendar), err))
			return
		}
		calendarBusy = intervals
	}()
	go func() {
		defer wg.Done()
		intervals, err := s.appointmentBusyIntervals(ctx, tokens, idByToken, from, to)
		if err != nil {
			fail(newSourceUnavailable(string(models.BusySourceAppointment), err))
			return
		}
		apptBusy = intervals
	}()
	go func() {
		defer wg.Done()
		intervals, summaries, err := s.planBusyIntervals(ctx, tokenByID, from, to)
		if err != nil {
			fail(newSourceUnavailable(string(models.BusySourceWeeklyPlan), err))
			return
		}
		planBusy = intervals
		planSummary = summaries
	}()
	wg.Wait()

	if firstErr != nil {
		logger.Error("availability aggregation failed", zap.Error(firstErr))
		return nil, firstErr
	}

	result.Busy = append(result.Busy, calendarBusy...)
	result.Busy = append(result.Busy, apptBusy...)
	result.Busy = append(result.Busy, planBusy...)
	result.WeeklyPlans = planSummary

	sort.SliceStable(result.Busy, func(i, j int) bool {
		a, b := result.Busy[i], result.Busy[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.StaffID != b.StaffID {
			return a.StaffID < b.StaffID
		}
		return a.Source < b.Source
	})

	return result, nil
}
