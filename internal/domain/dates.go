package domain

import "time"

// RoundSecondsToZero returns t with seconds and sub-second precision cleared.
// Year through minute are unchanged.
func RoundSecondsToZero(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// ToMidnight returns t at local calendar midnight of the same day.
func ToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ToPreviousMonday returns the most recent Monday at or before t, with seconds
// cleared. At most six whole-day steps back are ever needed.
func ToPreviousMonday(t time.Time) time.Time {
	d := t
	for i := 0; d.Weekday() != time.Monday && i < 7; i++ {
		d = d.Add(-24 * time.Hour)
	}
	return RoundSecondsToZero(d)
}
