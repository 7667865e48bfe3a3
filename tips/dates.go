package tips

import "time"

const dayKeyLayout = "2006-01-02"

// DayKey formats t as the calendar day it falls on in its own location.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// dayAnchorHour is the wall clock hour a selected day is held at. Some zones skip
// midnight when the clocks change; noon always exists.
const dayAnchorHour = 12

// ParseDayKey parses "YYYY-MM-DD" as that day in loc, anchored like DayOf.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dayKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, err
	}
	return DayOf(t), nil
}

// DayOf returns t's calendar day in t's location, held at noon.
func DayOf(t time.Time) time.Time {
	return AddDays(t, 0)
}

// AddDays moves by calendar days on the civil date, so a step across a daylight saving
// change is still exactly one day.
func AddDays(t time.Time, days int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+days, dayAnchorHour, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a's day to b's day, each read in its own location.
func DaysBetween(a, b time.Time) int {
	return int(civil(b).Sub(civil(a)).Hours() / 24)
}

// civil maps t's calendar day onto UTC midnight so day arithmetic ignores DST offsets.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Label returns the heading for the tips of date as seen at now.
func Label(date, now time.Time) string {
	switch DaysBetween(now, date) {
	case 0:
		return "Today's Tips"
	case -1:
		return "Yesterday's Tips"
	case 1:
		return "Tomorrow's Tips"
	}
	return "Tips for " + date.Format("January 2, 2006")
}
