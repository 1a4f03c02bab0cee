// Package pager maps calendar dates to page indexes and back for month and
// week paging, and computes the day grid of a page.
package pager

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
)

// ErrInvalidBounds is returned when the minimum date is after the maximum date
var ErrInvalidBounds = errors.New("invalid calendar bounds: min date is after max date")

// Mode selects the unit of a page
type Mode int

const (
	ModeMonth Mode = iota
	ModeWeek
)

func (m Mode) String() string {
	switch m {
	case ModeMonth:
		return "month"
	case ModeWeek:
		return "week"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "month" or "week"
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "month":
		return ModeMonth, nil
	case "week":
		return ModeWeek, nil
	}
	return ModeMonth, fmt.Errorf("unknown paging mode %q", s)
}

// Bounds is the inclusive range of selectable dates
type Bounds struct {
	Min time.Time
	Max time.Time
}

// NewBounds validates min <= max at day granularity
func NewBounds(minDate, maxDate time.Time) (Bounds, error) {
	b := Bounds{Min: dateutil.StartOfDay(minDate), Max: dateutil.StartOfDay(maxDate)}
	if err := b.Validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

// DefaultBounds returns the start of 2018 through one year from now
func DefaultBounds(now time.Time) Bounds {
	return Bounds{
		Min: time.Date(2018, time.January, 1, 0, 0, 0, 0, now.Location()),
		Max: dateutil.StartOfDay(now.AddDate(1, 0, 0)),
	}
}

// Validate reports ErrInvalidBounds when Min is after Max
func (b Bounds) Validate() error {
	if dateutil.CompareDays(b.Min, b.Max) > 0 {
		return fmt.Errorf("%w (min %s, max %s)", ErrInvalidBounds,
			dateutil.FormatISODate(b.Min), dateutil.FormatISODate(b.Max))
	}
	return nil
}

// Clamp moves date to the nearer bound when it falls outside
func (b Bounds) Clamp(date time.Time) time.Time {
	if dateutil.CompareDays(date, b.Min) < 0 {
		return b.Min
	}
	if dateutil.CompareDays(date, b.Max) > 0 {
		return b.Max
	}
	return date
}

// IsSelectable reports whether date lies within bounds, both ends inclusive
func IsSelectable(date time.Time, bounds Bounds) bool {
	return dateutil.CompareDays(bounds.Min, date) <= 0 && dateutil.CompareDays(date, bounds.Max) <= 0
}

// State is the pager position
type State struct {
	Page   int
	Total  int
	Target time.Time
}

// Pager converts between page indexes and calendar dates
type Pager struct {
	bounds         Bounds
	mode           Mode
	firstDayOfWeek time.Weekday
	state          State
}

// Initialize builds a pager positioned on target. A zero target means none was
// given and selected is used instead. The effective target is clamped to bounds.
func Initialize(bounds Bounds, target, selected time.Time, mode Mode, firstDayOfWeek time.Weekday) (*Pager, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	effective := target
	if effective.IsZero() {
		effective = selected
	}
	effective = bounds.Clamp(effective)

	p := &Pager{
		bounds:         bounds,
		mode:           mode,
		firstDayOfWeek: firstDayOfWeek,
	}
	p.state = State{
		Page:   p.PageOf(effective),
		Total:  TotalPages(bounds, mode),
		Target: effective,
	}
	return p, nil
}

// Bounds returns the pager bounds
func (p *Pager) Bounds() Bounds { return p.bounds }

// Mode returns the paging mode
func (p *Pager) Mode() Mode { return p.mode }

// FirstDayOfWeek returns the weekday rows start on
func (p *Pager) FirstDayOfWeek() time.Weekday { return p.firstDayOfWeek }

// State returns the current position
func (p *Pager) State() State { return p.state }

// Page returns the current page index
func (p *Pager) Page() int { return p.state.Page }

// TotalPages returns the number of pages
func (p *Pager) TotalPages() int { return p.state.Total }

// PageOf returns the page index containing date, clamped to bounds
func (p *Pager) PageOf(date time.Time) int {
	date = p.bounds.Clamp(date)
	if p.mode == ModeWeek {
		start := dateutil.StartOfWeek(p.bounds.Min, p.firstDayOfWeek)
		return floorDiv(dateutil.DaysBetween(start, date), 7)
	}
	return dateutil.MonthsBetween(p.bounds.Min, date)
}

// PageToAnchorDate returns the first day of the page's month or week
func (p *Pager) PageToAnchorDate(page int) time.Time {
	lo := p.bounds.Min
	if p.mode == ModeWeek {
		start := dateutil.StartOfWeek(lo, p.firstDayOfWeek)
		return dateutil.AddDays(start, 7*page)
	}
	return time.Date(lo.Year(), lo.Month()+time.Month(page), 1, 0, 0, 0, 0, lo.Location())
}

// Anchor returns the anchor date of the current page
func (p *Pager) Anchor() time.Time {
	return p.PageToAnchorDate(p.state.Page)
}

// Advance moves the current page by delta. It reports false and leaves the
// pager unchanged when the move would leave [0, total).
func (p *Pager) Advance(delta int) bool {
	next, ok := Advance(p.state.Page, delta, p.state.Total)
	if !ok {
		return false
	}
	p.state.Page = next
	p.state.Target = p.Anchor()
	return true
}

// SetPage jumps to page; out of range pages are ignored
func (p *Pager) SetPage(page int) bool {
	if page < 0 || page >= p.state.Total {
		return false
	}
	p.state.Page = page
	p.state.Target = p.Anchor()
	return true
}

// JumpTo moves to the page containing date and returns the new page index
func (p *Pager) JumpTo(date time.Time) int {
	date = p.bounds.Clamp(date)
	p.state.Page = p.PageOf(date)
	p.state.Target = date
	return p.state.Page
}

// TotalPages counts pages spanning bounds. Month mode counts calendar months
// inclusively. Week mode counts the 7-day steps from Min that stay within
// Max plus one week.
func TotalPages(bounds Bounds, mode Mode) int {
	if mode == ModeWeek {
		return floorDiv(dateutil.DaysBetween(bounds.Min, bounds.Max), 7) + 2
	}
	return dateutil.MonthsBetween(bounds.Min, bounds.Max) + 1
}

// Advance returns current+delta when it stays within [0, total)
func Advance(current, delta, total int) (int, bool) {
	next := current + delta
	if next < 0 || next >= total {
		return current, false
	}
	return next, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
