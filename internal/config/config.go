package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/username/calendar-pager/internal/locale"
	"github.com/username/calendar-pager/internal/pager"
	"github.com/username/calendar-pager/pkg/dateutil"
)

// EnvPrefix prefixes environment overrides, e.g. CALPAGER_CALENDAR_LOCALE
const EnvPrefix = "CALPAGER"

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Events   EventsConfig   `mapstructure:"events"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CalendarConfig represents the calendar construction parameters
type CalendarConfig struct {
	MinDate                  string `mapstructure:"min_date"`          // default 2018-01-01
	MaxDate                  string `mapstructure:"max_date"`          // default one year from today
	TargetDate               string `mapstructure:"target_date"`       // page opened first
	SelectedDate             string `mapstructure:"selected_date"`     // initial selection
	FirstDayOfWeek           string `mapstructure:"first_day_of_week"` // empty: derived from locale
	Locale                   string `mapstructure:"locale"`
	WeekFormat               bool   `mapstructure:"week_format"`
	StaticSixWeekFormat      bool   `mapstructure:"static_six_week_format"`
	ShowOnlyCurrentMonthDate bool   `mapstructure:"show_only_current_month_date"`
}

// EventsConfig represents event source configuration
type EventsConfig struct {
	File     string `mapstructure:"file"` // local events file, fallback when ICS is set
	ICS      string `mapstructure:"ics"`  // ics file path or http(s) URL
	CacheTTL string `mapstructure:"cache_ttl"`
}

// LoggingConfig represents logger configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"` // empty: console
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. With an empty path the usual locations
// are searched and a missing file leaves every setting at its default.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("calendar.min_date", "")
	v.SetDefault("calendar.max_date", "")
	v.SetDefault("calendar.target_date", "")
	v.SetDefault("calendar.selected_date", "")
	v.SetDefault("calendar.first_day_of_week", "")
	v.SetDefault("calendar.locale", locale.DefaultTag)
	v.SetDefault("calendar.week_format", false)
	v.SetDefault("calendar.static_six_week_format", false)
	v.SetDefault("calendar.show_only_current_month_date", false)
	v.SetDefault("events.file", "")
	v.SetDefault("events.ics", "")
	v.SetDefault("events.cache_ttl", "1h")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.level", "info")

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.calendar-pager")
		v.AddConfigPath("/etc/calendar-pager")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"calendar.min_date", c.Calendar.MinDate},
		{"calendar.max_date", c.Calendar.MaxDate},
		{"calendar.target_date", c.Calendar.TargetDate},
		{"calendar.selected_date", c.Calendar.SelectedDate},
	}
	for _, f := range fields {
		if _, err := parseOptionalDate(f.value); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}

	if _, err := c.Calendar.GetBounds(time.Now()); err != nil {
		return err
	}

	if _, err := c.Calendar.GetFirstDayOfWeek(); err != nil {
		return fmt.Errorf("calendar.first_day_of_week: %w", err)
	}

	if _, err := locale.Region(c.Calendar.Locale); err != nil {
		return fmt.Errorf("calendar.locale: %w", err)
	}

	if c.Events.CacheTTL != "" {
		if _, err := time.ParseDuration(c.Events.CacheTTL); err != nil {
			return fmt.Errorf("events.cache_ttl: %w", err)
		}
	}

	return nil
}

// GetBounds returns the selectable range, defaults applied relative to now
func (c *CalendarConfig) GetBounds(now time.Time) (pager.Bounds, error) {
	bounds := pager.DefaultBounds(now)

	minDate, err := parseOptionalDate(c.MinDate)
	if err != nil {
		return pager.Bounds{}, fmt.Errorf("calendar.min_date: %w", err)
	}
	if !minDate.IsZero() {
		bounds.Min = minDate
	}

	maxDate, err := parseOptionalDate(c.MaxDate)
	if err != nil {
		return pager.Bounds{}, fmt.Errorf("calendar.max_date: %w", err)
	}
	if !maxDate.IsZero() {
		bounds.Max = maxDate
	}

	if err := bounds.Validate(); err != nil {
		return pager.Bounds{}, err
	}
	return bounds, nil
}

// GetTargetDate returns the configured target date or the zero time
func (c *CalendarConfig) GetTargetDate() time.Time {
	t, _ := parseOptionalDate(c.TargetDate)
	return t
}

// GetSelectedDate returns the configured selection or the zero time
func (c *CalendarConfig) GetSelectedDate() time.Time {
	t, _ := parseOptionalDate(c.SelectedDate)
	return t
}

// GetFirstDayOfWeek returns the explicit first weekday, or nil to use the locale
func (c *CalendarConfig) GetFirstDayOfWeek() (*time.Weekday, error) {
	if c.FirstDayOfWeek == "" || c.FirstDayOfWeek == "auto" {
		return nil, nil
	}
	d, err := locale.ParseWeekday(c.FirstDayOfWeek)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetMode returns the paging mode
func (c *CalendarConfig) GetMode() pager.Mode {
	if c.WeekFormat {
		return pager.ModeWeek
	}
	return pager.ModeMonth
}

// GetCacheTTL returns ics feed cache TTL duration
func (c *EventsConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return time.Hour
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Events.File = os.ExpandEnv(c.Events.File)
	c.Events.ICS = os.ExpandEnv(c.Events.ICS)
	c.Logging.File = os.ExpandEnv(c.Logging.File)
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dateutil.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return dateutil.StartOfDay(t), nil
}
