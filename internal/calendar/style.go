package calendar

import (
	"github.com/charmbracelet/lipgloss"
)

// StyleRule applies Style to cells matching Match
type StyleRule struct {
	Name  string
	Match func(DayCell) bool
	Style lipgloss.Style
}

// StyleRules is evaluated top to bottom; the first match wins
type StyleRules []StyleRule

// Resolve returns the style of the first matching rule and its name.
// Cells matching nothing get an empty style and "".
func (rs StyleRules) Resolve(cell DayCell) (lipgloss.Style, string) {
	for _, r := range rs {
		if r.Match(cell) {
			return r.Style, r.Name
		}
	}
	return lipgloss.NewStyle(), ""
}

// Prepend returns a copy of rs with rules evaluated before the existing ones
func (rs StyleRules) Prepend(rules ...StyleRule) StyleRules {
	out := make(StyleRules, 0, len(rules)+len(rs))
	out = append(out, rules...)
	return append(out, rs...)
}

// DefaultStyleRules orders cell styles as selected, today, unselectable,
// previous month, next month, weekend, has events, then plain days.
func DefaultStyleRules() StyleRules {
	return StyleRules{
		{
			Name:  "selected",
			Match: func(c DayCell) bool { return c.IsSelected },
			Style: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		},
		{
			Name:  "today",
			Match: func(c DayCell) bool { return c.IsToday },
			Style: lipgloss.NewStyle().Underline(true).Bold(true),
		},
		{
			Name:  "inactive",
			Match: func(c DayCell) bool { return !c.IsSelectable },
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		{
			Name:  "prev-month",
			Match: func(c DayCell) bool { return c.IsPrevMonth },
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		{
			Name:  "next-month",
			Match: func(c DayCell) bool { return c.IsNextMonth },
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		{
			Name:  "weekend",
			Match: func(c DayCell) bool { return c.IsWeekend },
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		{
			Name:  "events",
			Match: func(c DayCell) bool { return c.EventCount > 0 },
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		},
		{
			Name:  "default",
			Match: func(DayCell) bool { return true },
			Style: lipgloss.NewStyle(),
		},
	}
}
