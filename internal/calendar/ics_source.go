package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = time.Hour
)

// ICSSource loads VEVENTs from an iCalendar file or URL.
// Feeds fetched over HTTP are cached for the configured TTL.
type ICSSource struct {
	location   string
	httpClient *http.Client
	cacheTTL   time.Duration
	loc        *time.Location
	logger     *zap.Logger

	cacheMu   sync.RWMutex
	cached    []Event
	fetchedAt time.Time
}

// NewICSSource creates an ICSSource. location is a file path or an http(s) URL.
func NewICSSource(location string, cacheTTL time.Duration, logger *zap.Logger) *ICSSource {
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &ICSSource{
		location: location,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		cacheTTL: cacheTTL,
		loc:      time.Local,
		logger:   logger,
	}
}

// InLocation sets the zone timed events are converted to before they are
// filed under a day. Defaults to time.Local.
func (s *ICSSource) InLocation(loc *time.Location) *ICSSource {
	if loc != nil {
		s.loc = loc
	}
	return s
}

func (s *ICSSource) isRemote() bool {
	return strings.HasPrefix(s.location, "http://") || strings.HasPrefix(s.location, "https://")
}

// Load reads and parses the calendar
func (s *ICSSource) Load(ctx context.Context) ([]Event, error) {
	if !s.isRemote() {
		f, err := os.Open(s.location)
		if err != nil {
			return nil, fmt.Errorf("failed to open ics file: %w", err)
		}
		defer f.Close()
		return s.Parse(f)
	}

	s.cacheMu.RLock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.cacheTTL {
		evs := s.cached
		s.cacheMu.RUnlock()
		s.logger.Debug("Using cached ics feed", zap.String("url", s.location))
		return evs, nil
	}
	s.cacheMu.RUnlock()

	evs, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	s.cached = evs
	s.fetchedAt = time.Now()
	s.cacheMu.Unlock()

	s.logger.Info("ICS feed fetched and cached",
		zap.String("url", s.location),
		zap.Int("events", len(evs)))

	return evs, nil
}

func (s *ICSSource) fetch(ctx context.Context) ([]Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build ics request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ics feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics feed returned status %d", resp.StatusCode)
	}

	return s.Parse(resp.Body)
}

// Parse converts an iCalendar stream into events. Events without a usable
// DTSTART are logged and skipped.
func (s *ICSSource) Parse(r io.Reader) ([]Event, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ics: %w", err)
	}

	vevents := cal.Events()
	evs := make([]Event, 0, len(vevents))
	for _, ve := range vevents {
		ev := Event{UID: ve.Id()}

		dtStart := ve.GetProperty(ics.ComponentPropertyDtStart)
		if dtStart == nil {
			s.logger.Warn("Skipping event without start", zap.String("uid", ev.UID))
			continue
		}

		// DATE values carry no time part
		ev.AllDay = !strings.Contains(dtStart.Value, "T")

		var start time.Time
		if ev.AllDay {
			start, err = ve.GetAllDayStartAt()
		} else {
			start, err = ve.GetStartAt()
		}
		if err != nil {
			s.logger.Warn("Skipping event with invalid start",
				zap.String("uid", ev.UID),
				zap.String("dtstart", dtStart.Value),
				zap.Error(err))
			continue
		}
		// DATE values parse as UTC midnight of the right day; DATE-TIME values
		// belong to the local day
		if !ev.AllDay {
			start = start.In(s.loc)
		}
		ev.Start = start

		if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
			ev.Title = p.Value
		}
		if p := ve.GetProperty(ics.ComponentPropertyDescription); p != nil {
			ev.Note = p.Value
		}

		evs = append(evs, ev)
	}

	return evs, nil
}
