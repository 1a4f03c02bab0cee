package pager

import (
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
)

// CellKind tells which month a grid cell belongs to
type CellKind int

const (
	PrevMonth CellKind = iota
	ThisMonth
	NextMonth
)

func (k CellKind) String() string {
	switch k {
	case PrevMonth:
		return "prev"
	case ThisMonth:
		return "this"
	case NextMonth:
		return "next"
	}
	return "unknown"
}

// Cell is one slot of a month grid
type Cell struct {
	Index int
	Date  time.Time
	Kind  CellKind
}

// DaysInWeek returns the seven days of the week containing date.
// Days are stepped on a UTC midday value so a DST change inside the week
// cannot shift a day, then mapped back to midnight in date's location.
func DaysInWeek(date time.Time, firstDayOfWeek time.Weekday) [7]time.Time {
	var days [7]time.Time

	midday := dateutil.Midday(date)
	back := (int(midday.Weekday()) - int(firstDayOfWeek) + 7) % 7
	start := midday.AddDate(0, 0, -back)

	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, date.Location())
	}
	return days
}

// LeadingOffset is the number of previous-month days filling the first row
func LeadingOffset(date time.Time, firstDayOfWeek time.Weekday) int {
	first := dateutil.StartOfMonth(date)
	return (int(first.Weekday()) - int(firstDayOfWeek) + 7) % 7
}

// TrailingOffset is the number of next-month days filling the last row.
// It is 7 when the next month starts on firstDayOfWeek.
func TrailingOffset(date time.Time, firstDayOfWeek time.Weekday) int {
	nextFirst := dateutil.StartOfMonth(date).AddDate(0, 1, 0)
	return 7 - (int(nextFirst.Weekday())-int(firstDayOfWeek)+7)%7
}

// MonthGridLength returns the number of cells in the month page of date
func MonthGridLength(date time.Time, firstDayOfWeek time.Weekday, staticSixWeeks bool) int {
	if staticSixWeeks {
		return 42
	}
	days := dateutil.DaysInMonth(date.Year(), date.Month())
	return days + LeadingOffset(date, firstDayOfWeek) + TrailingOffset(date, firstDayOfWeek)
}

// ClassifyCell places grid index relative to the month of monthAnchor
func ClassifyCell(index int, monthAnchor time.Time, leadingOffset, daysInMonth int) Cell {
	first := dateutil.StartOfMonth(monthAnchor)
	cell := Cell{
		Index: index,
		Date:  dateutil.AddDays(first, index-leadingOffset),
	}
	switch {
	case index < leadingOffset:
		cell.Kind = PrevMonth
	case index < leadingOffset+daysInMonth:
		cell.Kind = ThisMonth
	default:
		cell.Kind = NextMonth
	}
	return cell
}

// MonthGrid classifies every cell of the month page of date
func MonthGrid(date time.Time, firstDayOfWeek time.Weekday, staticSixWeeks bool) []Cell {
	length := MonthGridLength(date, firstDayOfWeek, staticSixWeeks)
	leading := LeadingOffset(date, firstDayOfWeek)
	days := dateutil.DaysInMonth(date.Year(), date.Month())

	cells := make([]Cell, length)
	for i := range cells {
		cells[i] = ClassifyCell(i, date, leading, days)
	}
	return cells
}
