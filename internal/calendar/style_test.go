package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestStyleRulePrecedence(t *testing.T) {
	rules := DefaultStyleRules()

	tests := []struct {
		name string
		cell DayCell
		want string
	}{
		{"selected beats today", DayCell{IsSelected: true, IsToday: true, IsSelectable: true}, "selected"},
		{"today beats inactive", DayCell{IsToday: true}, "today"},
		{"inactive beats prev month", DayCell{IsPrevMonth: true}, "inactive"},
		{"prev month beats weekend", DayCell{IsPrevMonth: true, IsWeekend: true, IsSelectable: true}, "prev-month"},
		{"next month beats events", DayCell{IsNextMonth: true, EventCount: 1, IsSelectable: true}, "next-month"},
		{"weekend beats events", DayCell{IsThisMonth: true, IsWeekend: true, EventCount: 2, IsSelectable: true}, "weekend"},
		{"events", DayCell{IsThisMonth: true, EventCount: 2, IsSelectable: true}, "events"},
		{"plain day", DayCell{IsThisMonth: true, IsSelectable: true}, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, name := rules.Resolve(tt.cell)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestStyleRulesPrepend(t *testing.T) {
	holiday := StyleRule{
		Name: "holiday",
		Match: func(c DayCell) bool {
			return c.Date.Month() == time.December && c.Date.Day() == 25
		},
		Style: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}

	base := DefaultStyleRules()
	rules := base.Prepend(holiday)

	_, name := rules.Resolve(DayCell{Date: day(2024, 12, 25), IsSelected: true})
	assert.Equal(t, "holiday", name)
	assert.Len(t, base, 8, "prepend leaves the receiver untouched")

	_, name = StyleRules{}.Resolve(DayCell{})
	assert.Empty(t, name)
}

func TestRender(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	opts := baseOptions()
	opts.ShowOnlyCurrentMonthDate = true
	c := newCalendar(t, opts)
	c.Events().Add(day(2024, 5, 3), Event{Title: "dinner"})

	out := Render(c, nil)
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "May 2024")
	assert.Contains(t, lines[1], "Mo  Tu  We  Th  Fr  Sa  Su")
	assert.Len(t, lines, 2+5)
	assert.Contains(t, lines[2], " 1")
	assert.Contains(t, lines[2], " 3"+eventMarker)
	assert.NotContains(t, lines[2], "29", "hidden April days")
	assert.Contains(t, lines[6], "31")
}
