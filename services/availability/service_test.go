package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	appointmentRepo "citaflow/database/repository/appointment"
	"citaflow/models"
	"citaflow/utils"
)

func strPtr(s string) *string { return &s }

type fakeStaffRepo struct {
	members []models.StaffMember
	err     error
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int) (*models.StaffMember, error) {
	for _, m := range f.members {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeStaffRepo) GetByIDs(_ context.Context, ids []int) ([]models.StaffMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.StaffMember
	for _, id := range ids {
		for _, m := range f.members {
			if m.ID == id {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (f *fakeStaffRepo) List(_ context.Context, _, _ bool) ([]models.StaffMember, error) {
	return f.members, nil
}

type fakeCalendarRepo struct {
	rows []models.CalendarBusy
	err  error
}

func (f *fakeCalendarRepo) FindBusy(_ context.Context, authIDs []string, _, _ *time.Time) ([]models.CalendarBusy, error) {
	if f.err != nil {
		return nil, f.err
	}
	allowed := make(map[string]bool)
	for _, id := range authIDs {
		allowed[id] = true
	}
	var out []models.CalendarBusy
	for _, row := range f.rows {
		if allowed[row.AuthID] {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	involved []appointmentRepo.InvolvedAppointment
	err      error
}

func (f *fakeAppointmentRepo) Create(context.Context, *models.Appointment) error { return nil }
func (f *fakeAppointmentRepo) GetByID(context.Context, string) (*models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) SetCancelled(context.Context, string, *string) (bool, error) {
	return false, nil
}
func (f *fakeAppointmentRepo) List(context.Context, appointmentRepo.ListFilter) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) FindConfirmedInvolving(_ context.Context, _ []string, _, _ *time.Time) ([]appointmentRepo.InvolvedAppointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.involved, nil
}
func (f *fakeAppointmentRepo) CountConfirmedStarting(context.Context, string, time.Time, time.Time) (int64, error) {
	return 0, nil
}

type fakePlanRepo struct {
	plans []models.WeeklyPlan
	err   error
}

func (f *fakePlanRepo) Get(context.Context, int, utils.ISOWeek) (*models.WeeklyPlan, error) {
	return nil, nil
}
func (f *fakePlanRepo) GetForWeeks(_ context.Context, staffIDs []int, weeks []utils.ISOWeek) ([]models.WeeklyPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	inWeek := make(map[utils.ISOWeek]bool)
	for _, w := range weeks {
		inWeek[w] = true
	}
	inStaff := make(map[int]bool)
	for _, id := range staffIDs {
		inStaff[id] = true
	}
	var out []models.WeeklyPlan
	for _, p := range f.plans {
		if inStaff[p.StaffID] && inWeek[utils.ISOWeek{Year: p.ISOYear, Week: p.ISOWeek}] {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakePlanRepo) UpsertAutoBlock(context.Context, int, utils.ISOWeek, models.PlanBlock) error {
	return nil
}
func (f *fakePlanRepo) RemoveAutoBlock(context.Context, int, string) error { return nil }

func testStaff() []models.StaffMember {
	return []models.StaffMember{
		{ID: 1, Email: "ana@example.com", Active: true, Developer: true, AuthID: strPtr("tok-1")},
		{ID: 2, Email: "ben@example.com", Active: true, Developer: true, AuthID: strPtr("tok-2")},
		{ID: 3, Email: "carla@example.com", Active: true, Developer: true},
	}
}

func newTestService(staff *fakeStaffRepo, cal *fakeCalendarRepo, appts *fakeAppointmentRepo, plans *fakePlanRepo) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Staff:        staff,
		CalendarRepo: cal,
		Appointments: appts,
		Plans:        plans,
		Location:     time.UTC,
		Now:          func() time.Time { return time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC) },
	}
}

func window(from, to time.Time) (*time.Time, *time.Time) { return &from, &to }

func TestGetBusyIntervalsReportsMissingAuth(t *testing.T) {
	svc := newTestService(
		&fakeStaffRepo{members: testStaff()},
		&fakeCalendarRepo{}, &fakeAppointmentRepo{}, &fakePlanRepo{},
	)

	from, to := window(
		time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	)
	result, err := svc.GetBusyIntervals(context.Background(), []int{1, 3, 99}, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.MissingAuth) != 2 {
		t.Fatalf("missingAuth = %v", result.MissingAuth)
	}
	got := map[int]bool{result.MissingAuth[0]: true, result.MissingAuth[1]: true}
	if !got[3] || !got[99] {
		t.Fatalf("missingAuth = %v, want staff 3 and 99", result.MissingAuth)
	}
	if len(result.Busy) != 0 {
		t.Fatalf("expected empty busy list, got %d", len(result.Busy))
	}
}

func TestGetBusyIntervalsNoResolvableStaffShortCircuits(t *testing.T) {
	cal := &fakeCalendarRepo{err: errors.New("should not be called")}
	svc := newTestService(&fakeStaffRepo{members: testStaff()}, cal, &fakeAppointmentRepo{err: errors.New("nope")}, &fakePlanRepo{err: errors.New("nope")})

	result, err := svc.GetBusyIntervals(context.Background(), []int{3}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.MissingAuth) != 1 || result.MissingAuth[0] != 3 {
		t.Fatalf("missingAuth = %v", result.MissingAuth)
	}
}

func TestGetBusyIntervalsMergesAndSortsSources(t *testing.T) {
	base := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	staff := &fakeStaffRepo{members: testStaff()}
	cal := &fakeCalendarRepo{rows: []models.CalendarBusy{
		{AuthID: "tok-1", Start: base.Add(15 * time.Hour), End: base.Add(16 * time.Hour), Provider: "google"},
	}}
	appts := &fakeAppointmentRepo{involved: []appointmentRepo.InvolvedAppointment{
		{
			Appointment: models.Appointment{
				ID:          "appt-1",
				AgentAuthID: "tok-1",
				Start:       base.Add(9 * time.Hour),
				End:         base.Add(10 * time.Hour),
				State:       models.AppointmentConfirmed,
			},
			InvolvedAuthIDs: []string{"tok-1"},
		},
	}}
	plans := &fakePlanRepo{plans: []models.WeeklyPlan{
		{
			ID: "plan-1", StaffID: 2, ISOYear: 2025, ISOWeek: 10,
			Blocks: []models.PlanBlock{
				{Day: 1, Hour: "12", Activity: models.ActivityAppointments, Origin: models.OriginManual},
				{Day: 1, Hour: "8", Activity: models.ActivityProspecting, Origin: models.OriginManual},
			},
		},
	}}

	svc := newTestService(staff, cal, appts, plans)
	from, to := window(base, base.AddDate(0, 0, 1))
	result, err := svc.GetBusyIntervals(context.Background(), []int{1, 2}, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One per source: PROSPECTING blocks never become busy intervals.
	if len(result.Busy) != 3 {
		t.Fatalf("busy = %d intervals, want 3", len(result.Busy))
	}
	for i := 1; i < len(result.Busy); i++ {
		if result.Busy[i].Start.Before(result.Busy[i-1].Start) {
			t.Fatalf("busy intervals not sorted by start: %+v", result.Busy)
		}
	}

	bySource := make(map[models.BusySource]models.BusyInterval)
	for _, b := range result.Busy {
		bySource[b.Source] = b
	}
	appt := bySource[models.BusySourceAppointment]
	if appt.StaffID != 1 || appt.AppointmentID == nil || *appt.AppointmentID != "appt-1" {
		t.Fatalf("appointment interval = %+v", appt)
	}
	plan := bySource[models.BusySourceWeeklyPlan]
	// 2025-W10 Monday is Mar 3; day 1 hour 12 is Tuesday Mar 4, 12:00.
	wantStart := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)
	if plan.StaffID != 2 || !plan.Start.Equal(wantStart) || !plan.End.Equal(wantStart.Add(time.Hour)) {
		t.Fatalf("plan interval = %+v", plan)
	}
	if len(result.WeeklyPlans) != 1 || result.WeeklyPlans[0].AppointmentBlocks != 1 || result.WeeklyPlans[0].ProspectingBlocks != 1 {
		t.Fatalf("weeklyPlans = %+v", result.WeeklyPlans)
	}
}

func TestGetBusyIntervalsFansOutSharedAppointment(t *testing.T) {
	base := time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)
	appts := &fakeAppointmentRepo{involved: []appointmentRepo.InvolvedAppointment{
		{
			Appointment: models.Appointment{
				ID:          "appt-2",
				AgentAuthID: "tok-1",
				Start:       base,
				End:         base.Add(time.Hour),
			},
			InvolvedAuthIDs: []string{"tok-1", "tok-2"},
		},
	}}
	svc := newTestService(&fakeStaffRepo{members: testStaff()}, &fakeCalendarRepo{}, appts, &fakePlanRepo{})

	from, to := window(base, base.Add(2*time.Hour))
	result, err := svc.GetBusyIntervals(context.Background(), []int{1, 2}, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Busy) != 2 {
		t.Fatalf("busy = %d intervals, want one per involved staff", len(result.Busy))
	}
	if result.Busy[0].StaffID == result.Busy[1].StaffID {
		t.Fatalf("both intervals belong to staff %d", result.Busy[0].StaffID)
	}
	for _, b := range result.Busy {
		if b.AppointmentID == nil || *b.AppointmentID != "appt-2" {
			t.Fatalf("interval lost appointment id: %+v", b)
		}
	}
}

func TestGetBusyIntervalsFailsWholeReadOnSourceError(t *testing.T) {
	plans := &fakePlanRepo{err: errors.New("store down")}
	svc := newTestService(&fakeStaffRepo{members: testStaff()}, &fakeCalendarRepo{}, &fakeAppointmentRepo{}, plans)

	from, to := window(
		time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC),
	)
	_, err := svc.GetBusyIntervals(context.Background(), []int{1}, from, to)
	var sourceErr *SourceUnavailableError
	if !errors.As(err, &sourceErr) {
		t.Fatalf("want SourceUnavailableError, got %v", err)
	}
	if sourceErr.Source != string(models.BusySourceWeeklyPlan) {
		t.Fatalf("source = %q", sourceErr.Source)
	}
}

func TestGetBusyIntervalsDefaultsToCurrentWeekWithoutWindow(t *testing.T) {
	plans := &fakePlanRepo{plans: []models.WeeklyPlan{
		{
			ID: "plan-now", StaffID: 1, ISOYear: 2025, ISOWeek: 10,
			Blocks: []models.PlanBlock{
				{Day: 4, Hour: "14", Activity: models.ActivityAppointments, Origin: models.OriginManual},
			},
		},
		{
			ID: "plan-other", StaffID: 1, ISOYear: 2025, ISOWeek: 20,
			Blocks: []models.PlanBlock{
				{Day: 0, Hour: "9", Activity: models.ActivityAppointments, Origin: models.OriginManual},
			},
		},
	}}
	svc := newTestService(&fakeStaffRepo{members: testStaff()}, &fakeCalendarRepo{}, &fakeAppointmentRepo{}, plans)

	result, err := svc.GetBusyIntervals(context.Background(), []int{1}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Injected now is Wed 2025-03-05 (W10): only the W10 plan expands.
	if len(result.Busy) != 1 {
		t.Fatalf("busy = %+v", result.Busy)
	}
	wantStart := time.Date(2025, time.March, 7, 14, 0, 0, 0, time.UTC)
	if !result.Busy[0].Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", result.Busy[0].Start, wantStart)
	}
}

func TestGetBusyIntervalsAnchorsPlanWeekToSingleBound(t *testing.T) {
	plans := &fakePlanRepo{plans: []models.WeeklyPlan{
		{
			ID: "plan-queried", StaffID: 1, ISOYear: 2025, ISOWeek: 22,
			Blocks: []models.PlanBlock{
				{Day: 2, Hour: "9", Activity: models.ActivityAppointments, Origin: models.OriginManual},
			},
		},
		{
			ID: "plan-now", StaffID: 1, ISOYear: 2025, ISOWeek: 10,
			Blocks: []models.PlanBlock{
				{Day: 4, Hour: "14", Activity: models.ActivityAppointments, Origin: models.OriginManual},
			},
		},
	}}
	svc := newTestService(&fakeStaffRepo{members: testStaff()}, &fakeCalendarRepo{}, &fakeAppointmentRepo{}, plans)

	// Injected now is W10; a from-only window in June must expand June's
	// week, not the clock's.
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	result, err := svc.GetBusyIntervals(context.Background(), []int{1}, &from, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Busy) != 1 {
		t.Fatalf("busy = %+v", result.Busy)
	}
	// 2025-06-01 is Sunday of W22; day 2 of that week is Wed 2025-05-28.
	wantStart := time.Date(2025, time.May, 28, 9, 0, 0, 0, time.UTC)
	if !result.Busy[0].Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", result.Busy[0].Start, wantStart)
	}
}

func TestGetBusyIntervalsMissingAuthNeverNil(t *testing.T) {
	svc := newTestService(&fakeStaffRepo{members: testStaff()}, &fakeCalendarRepo{}, &fakeAppointmentRepo{}, &fakePlanRepo{})

	result, err := svc.GetBusyIntervals(context.Background(), []int{1, 2}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MissingAuth == nil || len(result.MissingAuth) != 0 {
		t.Fatalf("missingAuth = %#v, want empty non-nil slice", result.MissingAuth)
	}
}
