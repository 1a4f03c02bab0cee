package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/username/calendar-pager/internal/locale"
)

const eventMarker = "•"

// Render draws the current page: title, weekday header and one line per week.
// Days with events carry a marker after the day number.
func Render[T any](c *Calendar[T], rules StyleRules) string {
	if rules == nil {
		rules = DefaultStyleRules()
	}

	header := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	title := lipgloss.NewStyle().Italic(true)

	weekdays := locale.WeekdayHeader(c.FirstDayOfWeek())
	width := len(weekdays)*3 + len(weekdays) - 1

	lines := []string{
		title.Render(center(c.Title(), width)),
		header.Render(" " + strings.Join(weekdays, "  ")),
	}

	cells := c.Cells()
	for row := 0; row*7 < len(cells); row++ {
		end := row*7 + 7
		if end > len(cells) {
			end = len(cells)
		}
		parts := make([]string, 0, 7)
		for _, cell := range cells[row*7 : end] {
			parts = append(parts, renderCell(cell, rules))
		}
		lines = append(lines, strings.TrimRight(strings.Join(parts, " "), " "))
	}

	return strings.Join(lines, "\n")
}

func renderCell(cell DayCell, rules StyleRules) string {
	if cell.Hidden {
		return "   "
	}
	marker := " "
	if cell.EventCount > 0 {
		marker = eventMarker
	}
	style, _ := rules.Resolve(cell)
	return style.Render(fmt.Sprintf("%2d", cell.Date.Day())) + marker
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
