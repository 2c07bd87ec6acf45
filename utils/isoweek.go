// File: utils/isoweek.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISOWeek identifies one ISO-8601 week (Monday-anchored).
type ISOWeek struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

func (w ISOWeek) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}

// WeekOf returns the ISO week containing t, evaluated in the given timezone.
func WeekOf(t time.Time, loc *time.Location) ISOWeek {
	year, week := t.In(loc).ISOWeek()
	return ISOWeek{Year: year, Week: week}
}

// MondayOf returns the Monday that anchors the given ISO week, at midnight in
// the given timezone. ISO week 1 is the week containing January 4th.
func MondayOf(w ISOWeek, loc *time.Location) time.Time {
	fourthJan := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, loc)
	day := int(fourthJan.Weekday())
	if day == 0 {
		day = 7
	}
	week1Monday := fourthJan.AddDate(0, 0, -(day - 1))
	return week1Monday.AddDate(0, 0, (w.Week-1)*7)
}

// WeeksInRange collects the distinct ISO weeks touched by any calendar day in
// [from, to]. Every day is visited because a window can span more than two
// weeks, so looking at the endpoints alone is not enough.
func WeeksInRange(from, to time.Time, loc *time.Location) []ISOWeek {
	if to.Before(from) {
		from, to = to, from
	}
	var weeks []ISOWeek
	seen := make(map[ISOWeek]struct{})
	for day := from.In(loc); !day.After(to.In(loc)); day = day.AddDate(0, 0, 1) {
		w := WeekOf(day, loc)
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		weeks = append(weeks, w)
	}
	// The end of the window may fall later in the same day that the loop
	// already visited, but never in an unvisited week, except when the loop
	// stepped over a short final fragment.
	last := WeekOf(to, loc)
	if _, ok := seen[last]; !ok {
		weeks = append(weeks, last)
	}
	return weeks
}

// ParseHour accepts hour-of-day strings as stored on plan blocks ("9", "09",
// "14", or "14:00") and returns the hour as an int.
func ParseHour(hour string) (int, error) {
	value := strings.TrimSpace(hour)
	if idx := strings.Index(value, ":"); idx >= 0 {
		value = value[:idx]
	}
	h, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid hour %q: %w", hour, err)
	}
	if h < 0 || h > 23 {
		return 0, fmt.Errorf("hour %q out of range", hour)
	}
	return h, nil
}
