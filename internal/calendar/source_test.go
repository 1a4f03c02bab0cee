package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/username/calendar-pager/internal/events"
)

const eventsFile = `# team calendar
2024-05-03 09:30 Standup
2024-05-03 Release day

not-a-date Broken
2024-05-04 10:00
2024-05-10 Review  notes
`

var icsFeed = strings.Join([]string{
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//test//EN",
	"BEGIN:VEVENT",
	"UID:evt-1",
	"DTSTAMP:20240501T000000Z",
	"DTSTART:20240503T093000Z",
	"SUMMARY:Standup",
	"DESCRIPTION:Daily sync",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:evt-2",
	"DTSTAMP:20240501T000000Z",
	"DTSTART;VALUE=DATE:20240510",
	"SUMMARY:Offsite",
	"END:VEVENT",
	"END:VCALENDAR",
	"",
}, "\r\n")

type staticSource struct {
	evs []Event
	err error
}

func (s staticSource) Load(context.Context) ([]Event, error) { return s.evs, s.err }

func TestFileSourceParse(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	src := NewFileSource("team.txt", zap.New(core))

	evs, err := src.Parse(context.Background(), strings.NewReader(eventsFile))
	require.NoError(t, err)
	require.Len(t, evs, 3)

	assert.Equal(t, "Standup", evs[0].Title)
	assert.False(t, evs[0].AllDay)
	assert.Equal(t, 9, evs[0].Start.Hour())
	assert.Equal(t, 30, evs[0].Start.Minute())

	assert.Equal(t, "Release day", evs[1].Title)
	assert.True(t, evs[1].AllDay)

	assert.Equal(t, "Review  notes", evs[2].Title)
	assert.Equal(t, "team.txt#7", evs[2].UID)

	assert.Equal(t, 2, logs.Len(), "bad date and missing title are logged")
}

func TestFileSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.txt")
	require.NoError(t, os.WriteFile(path, []byte(eventsFile), 0o644))

	idx := events.New[Event]()
	n, err := LoadInto(context.Background(), NewFileSource(path, zap.NewNop()), idx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, idx.Events(time.Date(2024, 5, 3, 0, 0, 0, 0, time.Local)), 2)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.txt"), zap.NewNop()).Load(context.Background())
	assert.Error(t, err)
}

func TestICSSourceParse(t *testing.T) {
	src := NewICSSource("feed.ics", 0, zap.NewNop()).InLocation(time.UTC)

	evs, err := src.Parse(strings.NewReader(icsFeed))
	require.NoError(t, err)
	require.Len(t, evs, 2)

	assert.Equal(t, "evt-1", evs[0].UID)
	assert.Equal(t, "Standup", evs[0].Title)
	assert.Equal(t, "Daily sync", evs[0].Note)
	assert.False(t, evs[0].AllDay)
	assert.True(t, evs[0].Start.Equal(time.Date(2024, 5, 3, 9, 30, 0, 0, time.UTC)))

	assert.Equal(t, "Offsite", evs[1].Title)
	assert.True(t, evs[1].AllDay)
	assert.Equal(t, 10, evs[1].Start.Day())
}

func TestICSSourceTimedEventUsesLocalDay(t *testing.T) {
	feed := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:late-1",
		"DTSTAMP:20240401T000000Z",
		"DTSTART:20240501T230000Z",
		"SUMMARY:Late call",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:allday-1",
		"DTSTAMP:20240401T000000Z",
		"DTSTART;VALUE=DATE:20240501",
		"SUMMARY:Holiday",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	zone := time.FixedZone("UTC+2", 2*60*60)
	src := NewICSSource("feed.ics", 0, zap.NewNop()).InLocation(zone)

	evs, err := src.Parse(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, "01:00", evs[0].Start.Format("15:04"))

	idx := events.New[Event]()
	for _, ev := range evs {
		idx.Add(ev.Start, ev)
	}

	may1 := time.Date(2024, 5, 1, 0, 0, 0, 0, zone)
	may2 := time.Date(2024, 5, 2, 0, 0, 0, 0, zone)
	require.Len(t, idx.Events(may2), 1)
	assert.Equal(t, "Late call", idx.Events(may2)[0].Title)
	require.Len(t, idx.Events(may1), 1)
	assert.Equal(t, "Holiday", idx.Events(may1)[0].Title)
}

func TestICSSourceRemoteIsCached(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(icsFeed))
	}))
	defer srv.Close()

	src := NewICSSource(srv.URL+"/feed.ics", time.Hour, zap.NewNop())

	for i := 0; i < 2; i++ {
		evs, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, evs, 2)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestICSSourceRemoteStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewICSSource(srv.URL, 0, zap.NewNop()).Load(context.Background())
	assert.ErrorContains(t, err, "status 404")
}

func TestCompositeSourceFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	fallback := staticSource{evs: []Event{{Title: "from file"}}}

	cs := NewCompositeSource(staticSource{err: errors.New("feed down")}, fallback, zap.New(core))
	evs, err := cs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from file", evs[0].Title)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Primary event source failed, falling back", logs.All()[0].Message)

	cs = NewCompositeSource(staticSource{evs: []Event{{Title: "from feed"}}}, fallback, zap.New(core))
	evs, err = cs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from feed", evs[0].Title)
	assert.Equal(t, 1, logs.Len())
}

func TestLoadIntoWrapsError(t *testing.T) {
	_, err := LoadInto(context.Background(), staticSource{err: os.ErrNotExist}, events.New[Event]())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
