package dateutil

import "time"

// BeginningOfWeek returns midnight of the Monday of the ISO week containing t.
func BeginningOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the previous Monday.
	}

	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

func DaysAgo(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, -days)
}
