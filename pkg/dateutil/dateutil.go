package dateutil

import (
	"fmt"
	"time"
)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfMonth returns the first day of the month (00:00:00) for the given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Midday returns 12:00 UTC on the calendar date of the given time.
// Day arithmetic on midday values never crosses a date boundary because of DST.
func Midday(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
}

// AddDays moves the date by n calendar days keeping the wall clock time
func AddDays(date time.Time, n int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day()+n,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// DaysBetween returns the number of calendar days from a to b (negative if b is before a)
func DaysBetween(a, b time.Time) int {
	return int(Midday(b).Sub(Midday(a)).Hours() / 24)
}

// MonthsBetween returns the number of calendar months from a's month to b's month
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// StartOfWeek returns the first day of the week containing date (start of day),
// where weeks begin on the given weekday
func StartOfWeek(date time.Time, first time.Weekday) time.Time {
	back := (int(date.Weekday()) - int(first) + 7) % 7
	return StartOfDay(AddDays(date, -back))
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// DayKey identifies a calendar day with the time of day discarded
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// KeyOf normalizes a time to its calendar day
func KeyOf(t time.Time) DayKey {
	return DayKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns midnight of the day in loc
func (k DayKey) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1 depending on whether k is before, equal to or after other
func (k DayKey) Compare(other DayKey) int {
	switch {
	case k.Year != other.Year:
		return sign(k.Year - other.Year)
	case k.Month != other.Month:
		return sign(int(k.Month) - int(other.Month))
	default:
		return sign(k.Day - other.Day)
	}
}

func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// CompareDays compares two times at day granularity
func CompareDays(a, b time.Time) int {
	return KeyOf(a).Compare(KeyOf(b))
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// FormatISODate formats date as YYYY-MM-DD
func FormatISODate(date time.Time) string {
	return date.Format("2006-01-02")
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
