package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/username/calendar-pager/internal/pager"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
calendar:
  min_date: "2018-01-01"
  max_date: "2025-01-01"
  target_date: "2024-05-15"
  first_day_of_week: monday
  locale: de-DE
  week_format: true
events:
  file: events.txt
  cache_ttl: 30m
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	bounds, err := cfg.Calendar.GetBounds(time.Now())
	if err != nil {
		t.Fatalf("GetBounds() error = %v", err)
	}
	if bounds.Min.Year() != 2018 || bounds.Max.Year() != 2025 {
		t.Errorf("GetBounds() = %v", bounds)
	}

	first, err := cfg.Calendar.GetFirstDayOfWeek()
	if err != nil || first == nil || *first != time.Monday {
		t.Errorf("GetFirstDayOfWeek() = %v, %v, want Monday", first, err)
	}
	if cfg.Calendar.GetMode() != pager.ModeWeek {
		t.Errorf("GetMode() = %v, want week", cfg.Calendar.GetMode())
	}
	if got := cfg.Calendar.GetTargetDate(); got.Day() != 15 || got.Month() != time.May {
		t.Errorf("GetTargetDate() = %v", got)
	}
	if !cfg.Calendar.GetSelectedDate().IsZero() {
		t.Errorf("GetSelectedDate() should be zero")
	}
	if cfg.Events.GetCacheTTL() != 30*time.Minute {
		t.Errorf("GetCacheTTL() = %v, want 30m", cfg.Events.GetCacheTTL())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "calendar: {}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Calendar.Locale != "en-US" {
		t.Errorf("Locale = %q, want en-US", cfg.Calendar.Locale)
	}
	if first, _ := cfg.Calendar.GetFirstDayOfWeek(); first != nil {
		t.Errorf("GetFirstDayOfWeek() = %v, want nil", *first)
	}
	if cfg.Calendar.GetMode() != pager.ModeMonth {
		t.Errorf("GetMode() = %v, want month", cfg.Calendar.GetMode())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CALPAGER_CALENDAR_LOCALE", "ja-JP")

	cfg, err := Load(writeConfig(t, "calendar:\n  locale: en-GB\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Calendar.Locale != "ja-JP" {
		t.Errorf("Locale = %q, want ja-JP", cfg.Calendar.Locale)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad date", "calendar:\n  min_date: yesterday\n"},
		{"bad weekday", "calendar:\n  first_day_of_week: funday\n"},
		{"bad ttl", "events:\n  cache_ttl: soon\n"},
		{"bad locale", "calendar:\n  locale: \"!!\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Errorf("Load() expected error")
			}
		})
	}
}

func TestLoadInvalidBounds(t *testing.T) {
	_, err := Load(writeConfig(t, "calendar:\n  min_date: \"2025-01-01\"\n  max_date: \"2018-01-01\"\n"))
	if !errors.Is(err, pager.ErrInvalidBounds) {
		t.Errorf("Load() error = %v, want ErrInvalidBounds", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("Load() expected error for missing explicit file")
	}
}

func TestValidateReportsFirstInvalidDate(t *testing.T) {
	cfg := &Config{
		Calendar: CalendarConfig{
			MinDate:      "not-a-date",
			MaxDate:      "also-bad",
			TargetDate:   "nope",
			SelectedDate: "never",
			Locale:       "en-US",
		},
	}

	for i := 0; i < 20; i++ {
		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error")
		}
		if !strings.HasPrefix(err.Error(), "calendar.min_date:") {
			t.Fatalf("Validate() error = %v, want calendar.min_date first", err)
		}
	}
}
