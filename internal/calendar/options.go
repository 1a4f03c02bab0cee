package calendar

import (
	"fmt"
	"time"

	"github.com/username/calendar-pager/internal/locale"
	"github.com/username/calendar-pager/internal/pager"
	"github.com/username/calendar-pager/pkg/dateutil"
)

// Options is the construction record of a Calendar. Zero fields take the
// defaults documented on each field; the record is validated once by New.
type Options struct {
	// MinSelectedDate defaults to 2018-01-01
	MinSelectedDate time.Time
	// MaxSelectedDate defaults to one year from Now
	MaxSelectedDate time.Time
	// TargetDateTime is the date the first page is opened on; zero falls back
	// to SelectedDateTime, then to Now
	TargetDateTime time.Time
	// SelectedDateTime is the initial selection; zero means nothing selected
	SelectedDateTime time.Time
	// FirstDayOfWeek overrides the locale convention when set
	FirstDayOfWeek *time.Weekday
	// Locale is a BCP 47 tag, defaults to locale.DefaultTag
	Locale string

	WeekFormat               bool
	StaticSixWeekFormat      bool
	ShowOnlyCurrentMonthDate bool

	// Now defaults to time.Now
	Now func() time.Time
}

// resolved is Options with every default applied
type resolved struct {
	Options
	bounds         pager.Bounds
	mode           pager.Mode
	firstDayOfWeek time.Weekday
	weekend        map[time.Weekday]bool
}

// Weekday returns a pointer for Options.FirstDayOfWeek
func Weekday(d time.Weekday) *time.Weekday {
	return &d
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Bounds returns the selectable range with defaults applied
func (o Options) Bounds() pager.Bounds {
	now := o.now()
	bounds := pager.DefaultBounds(now)
	if !o.MinSelectedDate.IsZero() {
		bounds.Min = dateutil.StartOfDay(o.MinSelectedDate)
	}
	if !o.MaxSelectedDate.IsZero() {
		bounds.Max = dateutil.StartOfDay(o.MaxSelectedDate)
	}
	return bounds
}

// Validate checks the bounds and locale
func (o Options) Validate() error {
	_, err := o.resolve()
	return err
}

func (o Options) resolve() (*resolved, error) {
	r := &resolved{Options: o, mode: pager.ModeMonth}
	if r.Locale == "" {
		r.Locale = locale.DefaultTag
	}
	if r.WeekFormat {
		r.mode = pager.ModeWeek
	}

	r.bounds = o.Bounds()
	if err := r.bounds.Validate(); err != nil {
		return nil, err
	}

	if o.FirstDayOfWeek != nil {
		if *o.FirstDayOfWeek < time.Sunday || *o.FirstDayOfWeek > time.Saturday {
			return nil, fmt.Errorf("first day of week out of range: %d", *o.FirstDayOfWeek)
		}
		r.firstDayOfWeek = *o.FirstDayOfWeek
	} else {
		first, err := locale.FirstDayOfWeek(r.Locale)
		if err != nil {
			return nil, err
		}
		r.firstDayOfWeek = first
	}

	weekend, err := locale.Weekend(r.Locale)
	if err != nil {
		return nil, err
	}
	r.weekend = make(map[time.Weekday]bool, len(weekend))
	for _, d := range weekend {
		r.weekend[d] = true
	}

	return r, nil
}
