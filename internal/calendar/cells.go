package calendar

import (
	"time"

	"github.com/username/calendar-pager/internal/pager"
	"github.com/username/calendar-pager/pkg/dateutil"
)

// Cells returns the day cells of the current page, row by row
func (c *Calendar[T]) Cells() []DayCell {
	anchor := c.pager.Anchor()
	if c.pager.Mode() == pager.ModeWeek {
		days := pager.DaysInWeek(anchor, c.opts.firstDayOfWeek)
		month := c.focusMonth()

		cells := make([]DayCell, 0, len(days))
		for _, d := range days {
			kind := pager.ThisMonth
			switch dateutil.CompareDays(dateutil.StartOfMonth(d), month) {
			case -1:
				kind = pager.PrevMonth
			case 1:
				kind = pager.NextMonth
			}
			cells = append(cells, c.cell(d, kind))
		}
		return cells
	}

	grid := pager.MonthGrid(anchor, c.opts.firstDayOfWeek, c.opts.StaticSixWeekFormat)
	cells := make([]DayCell, 0, len(grid))
	for _, g := range grid {
		cells = append(cells, c.cell(g.Date, g.Kind))
	}
	return cells
}

func (c *Calendar[T]) cell(date time.Time, kind pager.CellKind) DayCell {
	cell := DayCell{
		Date:         date,
		IsPrevMonth:  kind == pager.PrevMonth,
		IsThisMonth:  kind == pager.ThisMonth,
		IsNextMonth:  kind == pager.NextMonth,
		IsToday:      dateutil.IsSameDay(date, c.opts.now()),
		IsSelectable: pager.IsSelectable(date, c.pager.Bounds()),
		IsWeekend:    c.opts.weekend[date.Weekday()],
		EventCount:   len(c.events.Events(date)),
	}
	if c.selected != nil {
		cell.IsSelected = dateutil.IsSameDay(date, *c.selected)
	}
	cell.Hidden = c.opts.ShowOnlyCurrentMonthDate && kind != pager.ThisMonth
	return cell
}
