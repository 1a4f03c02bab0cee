package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/username/calendar-pager/internal/events"
)

// Event is a calendar entry loaded from an event source
type Event struct {
	UID    string
	Title  string
	Start  time.Time
	AllDay bool
	Note   string
}

// Source loads events from a file, a feed or any other backend
type Source interface {
	Load(ctx context.Context) ([]Event, error)
}

// LoadInto loads src and adds every event to idx under its start day.
// It returns the number of events added.
func LoadInto(ctx context.Context, src Source, idx *events.Index[Event]) (int, error) {
	loaded, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load events: %w", err)
	}
	for _, ev := range loaded {
		idx.Add(ev.Start, ev)
	}
	return len(loaded), nil
}
