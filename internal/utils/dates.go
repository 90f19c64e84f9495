package utils

import "time"

const dateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC so calendar dates compare with
// plain time equality.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// WeekBounds returns the Monday and Sunday of the week containing today.
func WeekBounds(today time.Time) (time.Time, time.Time) {
	offset := (int(today.Weekday()) + 6) % 7 // Monday = 0
	start := DateOnly(today).AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}
