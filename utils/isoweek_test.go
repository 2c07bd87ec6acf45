package utils

import (
	"testing"
	"time"
)

func TestMondayOfJanFourthRule(t *testing.T) {
	cases := []struct {
		week   ISOWeek
		monday string
	}{
		// 2025-01-04 is a Saturday, so week 1 starts Monday 2024-12-30.
		{ISOWeek{Year: 2025, Week: 1}, "2024-12-30"},
		{ISOWeek{Year: 2025, Week: 10}, "2025-03-03"},
		// 2026-01-04 is a Sunday, so week 1 starts Monday 2025-12-29.
		{ISOWeek{Year: 2026, Week: 1}, "2025-12-29"},
		{ISOWeek{Year: 2024, Week: 1}, "2024-01-01"},
	}
	for _, tc := range cases {
		got := MondayOf(tc.week, time.UTC)
		if got.Format("2006-01-02") != tc.monday {
			t.Errorf("MondayOf(%s) = %s, want %s", tc.week, got.Format("2006-01-02"), tc.monday)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("MondayOf(%s) fell on %s", tc.week, got.Weekday())
		}
	}
}

func TestWeekOfRoundTripsThroughMonday(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, time.March, 6, 14, 0, 0, 0, loc)
	week := WeekOf(day, loc)
	if week != (ISOWeek{Year: 2025, Week: 10}) {
		t.Fatalf("WeekOf = %v", week)
	}
	monday := MondayOf(week, loc)
	if WeekOf(monday, loc) != week {
		t.Fatalf("MondayOf(%s) landed in %v", week, WeekOf(monday, loc))
	}
}

func TestWeekOfUsesReportingTimezone(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	// Sunday 23:30 local is already Monday in UTC; the local week must win.
	sundayLate := time.Date(2025, time.March, 10, 5, 30, 0, 0, time.UTC)
	if got := WeekOf(sundayLate, loc); got != (ISOWeek{Year: 2025, Week: 10}) {
		t.Fatalf("WeekOf in local zone = %v, want 2025-W10", got)
	}
	if got := WeekOf(sundayLate, time.UTC); got != (ISOWeek{Year: 2025, Week: 11}) {
		t.Fatalf("WeekOf in UTC = %v, want 2025-W11", got)
	}
}

func TestWeeksInRange(t *testing.T) {
	loc := time.UTC
	from := time.Date(2025, time.March, 3, 9, 0, 0, 0, loc)
	to := time.Date(2025, time.March, 17, 9, 0, 0, 0, loc)
	weeks := WeeksInRange(from, to, loc)
	want := []ISOWeek{{2025, 10}, {2025, 11}, {2025, 12}}
	if len(weeks) != len(want) {
		t.Fatalf("got %v, want %v", weeks, want)
	}
	for i := range want {
		if weeks[i] != want[i] {
			t.Fatalf("got %v, want %v", weeks, want)
		}
	}

	// Swapped endpoints cover the same weeks.
	swapped := WeeksInRange(to, from, loc)
	if len(swapped) != len(want) {
		t.Fatalf("swapped endpoints got %v", swapped)
	}
}

func TestWeeksInRangeSingleDay(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, time.March, 5, 10, 0, 0, 0, loc)
	weeks := WeeksInRange(day, day.Add(time.Hour), loc)
	if len(weeks) != 1 || weeks[0] != (ISOWeek{2025, 10}) {
		t.Fatalf("got %v", weeks)
	}
}

func TestParseHour(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"9", 9, true},
		{"09", 9, true},
		{"14", 14, true},
		{"14:00", 14, true},
		{" 7 ", 7, true},
		{"24", 0, false},
		{"-1", 0, false},
		{"noon", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseHour(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseHour(%q) = %d, %v", tc.in, got, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseHour(%q) accepted", tc.in)
		}
	}
}

func TestISOWeekString(t *testing.T) {
	if got := (ISOWeek{Year: 2025, Week: 3}).String(); got != "2025-W03" {
		t.Fatalf("got %q", got)
	}
}
