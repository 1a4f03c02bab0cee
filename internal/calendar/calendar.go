// Package calendar is the host side of the pager: it owns the selection,
// turns a page into day cells, dispatches interaction callbacks and renders
// pages for a terminal.
package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/username/calendar-pager/internal/events"
	"github.com/username/calendar-pager/internal/pager"
	"github.com/username/calendar-pager/pkg/dateutil"
)

// DayCell is one rendered day of a page
type DayCell struct {
	Date         time.Time
	IsPrevMonth  bool
	IsNextMonth  bool
	IsThisMonth  bool
	IsToday      bool
	IsSelectable bool
	IsSelected   bool
	IsWeekend    bool
	// Hidden cells are adjacent-month days suppressed by ShowOnlyCurrentMonthDate
	Hidden     bool
	EventCount int
}

// Callbacks are invoked on user interaction. Nil callbacks are skipped.
type Callbacks[T any] struct {
	OnDayPressed         func(date time.Time, events []T)
	OnDayLongPressed     func(date time.Time)
	OnCalendarChanged    func(anchor time.Time)
	OnLeftArrowPressed   func()
	OnRightArrowPressed  func()
	OnHeaderTitlePressed func()
}

// DatePicker lets the user pick a date to jump to
type DatePicker interface {
	PickDate(ctx context.Context, initial time.Time, bounds pager.Bounds) (time.Time, bool, error)
}

// Option configures a Calendar
type Option[T any] func(*Calendar[T])

// WithCallbacks sets the interaction callbacks
func WithCallbacks[T any](cb Callbacks[T]) Option[T] {
	return func(c *Calendar[T]) {
		c.callbacks = cb
	}
}

// WithDatePicker sets the picker used when the header title is pressed and
// no OnHeaderTitlePressed callback is set
func WithDatePicker[T any](p DatePicker) Option[T] {
	return func(c *Calendar[T]) {
		c.picker = p
	}
}

// Calendar is a paged calendar with a selection and event markers
type Calendar[T any] struct {
	opts      *resolved
	pager     *pager.Pager
	events    *events.Index[T]
	selected  *time.Time
	callbacks Callbacks[T]
	picker    DatePicker
	logger    *zap.Logger
}

// New validates opts and positions the calendar on the target date.
// A nil index gets an empty one.
func New[T any](opts Options, idx *events.Index[T], logger *zap.Logger, options ...Option[T]) (*Calendar[T], error) {
	r, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	if idx == nil {
		idx = events.New[T]()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	selected := opts.SelectedDateTime
	fallback := selected
	if fallback.IsZero() {
		fallback = r.now()
	}

	p, err := pager.Initialize(r.bounds, opts.TargetDateTime, fallback, r.mode, r.firstDayOfWeek)
	if err != nil {
		return nil, err
	}

	c := &Calendar[T]{
		opts:   r,
		pager:  p,
		events: idx,
		logger: logger,
	}
	if !selected.IsZero() {
		c.selected = &selected
	}
	for _, o := range options {
		o(c)
	}

	logger.Debug("Calendar initialized",
		zap.String("mode", r.mode.String()),
		zap.Int("page", p.Page()),
		zap.Int("total_pages", p.TotalPages()),
		zap.String("first_day_of_week", r.firstDayOfWeek.String()))

	return c, nil
}

// Pager exposes the underlying pager
func (c *Calendar[T]) Pager() *pager.Pager { return c.pager }

// Events exposes the event index
func (c *Calendar[T]) Events() *events.Index[T] { return c.events }

// FirstDayOfWeek returns the resolved first weekday
func (c *Calendar[T]) FirstDayOfWeek() time.Weekday { return c.opts.firstDayOfWeek }

// Selected returns the selected date, if any
func (c *Calendar[T]) Selected() (time.Time, bool) {
	if c.selected == nil {
		return time.Time{}, false
	}
	return *c.selected, true
}

// Select replaces the selection without firing callbacks
func (c *Calendar[T]) Select(date time.Time) {
	c.selected = &date
}

// ClearSelection drops the selection
func (c *Calendar[T]) ClearSelection() {
	c.selected = nil
}

// Anchor returns the anchor date of the current page
func (c *Calendar[T]) Anchor() time.Time {
	return c.pager.Anchor()
}

// Title returns the "January 2006" label of the current page
func (c *Calendar[T]) Title() string {
	return c.focusMonth().Format("January 2006")
}

// focusMonth is the month the current page belongs to. In week mode it is the
// month of the week's fourth day, so a week belongs to the month holding most
// of its days.
func (c *Calendar[T]) focusMonth() time.Time {
	anchor := c.pager.Anchor()
	if c.pager.Mode() == pager.ModeWeek {
		anchor = dateutil.AddDays(anchor, 3)
	}
	return dateutil.StartOfMonth(anchor)
}

// PressDay selects date and fires OnDayPressed. Days outside the bounds are ignored.
func (c *Calendar[T]) PressDay(date time.Time) bool {
	if !pager.IsSelectable(date, c.pager.Bounds()) {
		c.logger.Debug("Ignoring press on unselectable day", zap.Time("date", date))
		return false
	}
	c.Select(date)
	if c.callbacks.OnDayPressed != nil {
		c.callbacks.OnDayPressed(date, c.events.Events(date))
	}
	return true
}

// LongPressDay fires OnDayLongPressed for selectable days
func (c *Calendar[T]) LongPressDay(date time.Time) bool {
	if !pager.IsSelectable(date, c.pager.Bounds()) {
		return false
	}
	if c.callbacks.OnDayLongPressed != nil {
		c.callbacks.OnDayLongPressed(date)
	}
	return true
}

// PressLeft fires OnLeftArrowPressed and moves one page back when possible
func (c *Calendar[T]) PressLeft() bool {
	if c.callbacks.OnLeftArrowPressed != nil {
		c.callbacks.OnLeftArrowPressed()
	}
	return c.advance(-1)
}

// PressRight fires OnRightArrowPressed and moves one page forward when possible
func (c *Calendar[T]) PressRight() bool {
	if c.callbacks.OnRightArrowPressed != nil {
		c.callbacks.OnRightArrowPressed()
	}
	return c.advance(1)
}

// PressHeaderTitle fires OnHeaderTitlePressed, or opens the date picker and
// jumps to the picked date
func (c *Calendar[T]) PressHeaderTitle(ctx context.Context) error {
	if c.callbacks.OnHeaderTitlePressed != nil {
		c.callbacks.OnHeaderTitlePressed()
		return nil
	}
	if c.picker == nil {
		return nil
	}

	initial := c.pager.State().Target
	if sel, ok := c.Selected(); ok {
		initial = sel
	}
	picked, ok, err := c.picker.PickDate(ctx, initial, c.pager.Bounds())
	if err != nil {
		return err
	}
	if ok {
		c.JumpTo(picked)
	}
	return nil
}

// JumpTo moves to the page holding date (clamped to bounds)
func (c *Calendar[T]) JumpTo(date time.Time) {
	before := c.pager.Page()
	c.pager.JumpTo(date)
	if c.pager.Page() != before {
		c.changed()
	}
}

// SetPage moves to page when it is in range
func (c *Calendar[T]) SetPage(page int) bool {
	before := c.pager.Page()
	if !c.pager.SetPage(page) {
		return false
	}
	if page != before {
		c.changed()
	}
	return true
}

func (c *Calendar[T]) advance(delta int) bool {
	if !c.pager.Advance(delta) {
		c.logger.Debug("Page change ignored at edge",
			zap.Int("page", c.pager.Page()),
			zap.Int("delta", delta))
		return false
	}
	c.changed()
	return true
}

func (c *Calendar[T]) changed() {
	anchor := c.pager.Anchor()
	c.logger.Debug("Calendar page changed",
		zap.Int("page", c.pager.Page()),
		zap.Time("anchor", anchor))
	if c.callbacks.OnCalendarChanged != nil {
		c.callbacks.OnCalendarChanged(anchor)
	}
}
