package models

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestInvolvedAuthIDs(t *testing.T) {
	appt := Appointment{AgentAuthID: "tok-1"}
	if got := appt.InvolvedAuthIDs(); len(got) != 1 || got[0] != "tok-1" {
		t.Fatalf("got %v", got)
	}

	appt.SupervisorAuthID = strPtr("tok-2")
	if got := appt.InvolvedAuthIDs(); len(got) != 2 {
		t.Fatalf("got %v", got)
	}

	// A supervisor who is the agent does not double the row.
	appt.SupervisorAuthID = strPtr("tok-1")
	if got := appt.InvolvedAuthIDs(); len(got) != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestNormalizeProvider(t *testing.T) {
	cases := map[string]string{
		"zoom":       ProviderZoom,
		"teams":      ProviderTeams,
		"google_meet": ProviderGoogleMeet,
		"":           ProviderGoogleMeet,
		"webex":      ProviderGoogleMeet,
	}
	for in, want := range cases {
		if got := NormalizeProvider(in); got != want {
			t.Errorf("NormalizeProvider(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBusyIntervalOverlaps(t *testing.T) {
	base := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	interval := BusyInterval{Start: base, End: base.Add(time.Hour)}

	if !interval.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)) {
		t.Fatal("partial overlap missed")
	}
	if !interval.Overlaps(base.Add(-time.Hour), base.Add(2*time.Hour)) {
		t.Fatal("containing window missed")
	}
	// Touching endpoints do not overlap.
	if interval.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)) {
		t.Fatal("adjacent window flagged")
	}
	if interval.Overlaps(base.Add(-time.Hour), base) {
		t.Fatal("adjacent window flagged")
	}
}

func TestAutoMeetDisabled(t *testing.T) {
	token := IntegrationToken{Scopes: []string{"calendar.events"}}
	if token.AutoMeetDisabled() {
		t.Fatal("opt-out reported without marker scope")
	}
	token.Scopes = append(token.Scopes, ScopeAutoMeetDisabled)
	if !token.AutoMeetDisabled() {
		t.Fatal("opt-out marker ignored")
	}
}

func TestWeeklyPlanSummarize(t *testing.T) {
	plan := WeeklyPlan{
		ID: "p1", StaffID: 3, ISOYear: 2025, ISOWeek: 10,
		Blocks: []PlanBlock{
			{Activity: ActivityAppointments},
			{Activity: ActivityAppointments},
			{Activity: ActivityProspecting},
			{Activity: ActivityTraining},
		},
	}
	s := plan.Summarize()
	if s.AppointmentBlocks != 2 || s.ProspectingBlocks != 1 || s.TrainingBlocks != 1 {
		t.Fatalf("summary = %+v", s)
	}
	if s.PlanID != "p1" || s.StaffID != 3 {
		t.Fatalf("summary lost identity: %+v", s)
	}
}
