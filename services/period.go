package services

import "time"

// Period keys for time-windowed rewards. Every claim window derives from
// these two functions so the same wall-clock instant always maps to the same
// equality/range key. Both normalize to midnight in the timestamp's location;
// sub-second drift would otherwise break exact-match queries on
// week_start_date.

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00:00 of the week containing t. Weeks run
// Monday through Sunday, so a Sunday maps to the previous Monday.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return day.AddDate(0, 0, -offset)
}

// WeekdayName returns t's weekday as the capitalized English name used in
// settings and claim records ("Monday" ... "Sunday").
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// DayWindow returns the [start, end) range covering t's calendar day, the
// window usage-event quotas are summed over.
func DayWindow(t time.Time) (start, end time.Time) {
	start = StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}
