package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/calendar-pager/internal/calendar"
	"github.com/username/calendar-pager/internal/config"
	"github.com/username/calendar-pager/internal/events"
	"github.com/username/calendar-pager/pkg/dateutil"
)

var (
	configPath string
	logger     *zap.Logger
	out        io.Writer = os.Stdout
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar-pager",
		Short: "Paged month and week calendar",
		Long:  "Browse a bounded calendar one month or week at a time, with event markers from local files or iCalendar feeds",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			level := "info"
			if err == nil {
				level = cfg.Logging.Level
			}
			if err == nil && cfg.Logging.File != "" {
				logger, err = initFileLogger(cfg.Logging.File, level)
				if err != nil {
					initLogger(level) // Fallback to console
				}
			} else {
				initLogger(level) // Default console logger
			}
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml if present)")

	cmd.AddCommand(showCmd())
	cmd.AddCommand(pageCmd())
	cmd.AddCommand(eventsCmd())

	return cmd
}

type viewFlags struct {
	week   bool
	month  bool
	offset int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.week, "week", false, "Page by week (overrides calendar.week_format)")
	cmd.Flags().BoolVar(&f.month, "month", false, "Page by month (overrides calendar.week_format)")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Pages to move from the target date (negative moves back)")
}

func showCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Render the calendar page containing a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := openCalendar(cmd.Context(), args, flags)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, calendar.Render(cal, nil))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func pageCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "page [date]",
		Short: "Print the page index of a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := openCalendar(cmd.Context(), args, flags)
			if err != nil {
				return err
			}

			p := cal.Pager()
			fmt.Fprintf(out, "mode:   %s\n", p.Mode())
			fmt.Fprintf(out, "page:   %d of %d\n", p.Page(), p.TotalPages())
			fmt.Fprintf(out, "anchor: %s\n", dateutil.FormatISODate(p.Anchor()))
			fmt.Fprintf(out, "bounds: %s .. %s\n",
				dateutil.FormatISODate(p.Bounds().Min),
				dateutil.FormatISODate(p.Bounds().Max))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events [date]",
		Short: "List the events of a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := openCalendar(cmd.Context(), args, viewFlags{})
			if err != nil {
				return err
			}

			date := cal.Pager().State().Target
			if len(args) == 1 {
				requested, err := dateutil.ParseDate(args[0])
				if err != nil {
					return err
				}
				if !dateutil.IsSameDay(requested, date) {
					b := cal.Pager().Bounds()
					return fmt.Errorf("date %s is outside the calendar range %s .. %s",
						dateutil.FormatISODate(requested),
						dateutil.FormatISODate(b.Min),
						dateutil.FormatISODate(b.Max))
				}
			}
			evs := cal.Events().Events(date)
			if len(evs) == 0 {
				fmt.Fprintf(out, "No events on %s\n", dateutil.FormatISODate(date))
				return nil
			}

			fmt.Fprintf(out, "Events on %s:\n", dateutil.FormatISODate(date))
			for _, ev := range evs {
				when := "all day"
				if !ev.AllDay {
					when = ev.Start.Format("15:04")
				}
				fmt.Fprintf(out, "  %-7s  %s\n", when, ev.Title)
			}
			return nil
		},
	}

	return cmd
}

// openCalendar loads config and events and positions the calendar on the
// date argument (if any) shifted by flags.offset pages
func openCalendar(ctx context.Context, args []string, flags viewFlags) (*calendar.Calendar[calendar.Event], error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	opts, err := calendarOptions(cfg)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		target, err := dateutil.ParseDate(args[0])
		if err != nil {
			return nil, err
		}
		opts.TargetDateTime = target
	}
	switch {
	case flags.week:
		opts.WeekFormat = true
	case flags.month:
		opts.WeekFormat = false
	}

	idx := events.New[calendar.Event]()
	if src := eventSource(cfg); src != nil {
		n, err := calendar.LoadInto(ctx, src, idx)
		if err != nil {
			logger.Warn("Continuing without events", zap.Error(err))
		} else {
			logger.Debug("Events loaded", zap.Int("count", n))
		}
	}

	cal, err := calendar.New(opts, idx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize calendar: %w", err)
	}

	step := cal.PressRight
	if flags.offset < 0 {
		step = cal.PressLeft
	}
	for i := 0; i < abs(flags.offset); i++ {
		if !step() {
			logger.Warn("Reached the edge of the calendar",
				zap.Int("requested_offset", flags.offset),
				zap.Int("moved", i))
			break
		}
	}

	return cal, nil
}

func calendarOptions(cfg *config.Config) (calendar.Options, error) {
	c := cfg.Calendar

	bounds, err := c.GetBounds(time.Now())
	if err != nil {
		return calendar.Options{}, err
	}
	first, err := c.GetFirstDayOfWeek()
	if err != nil {
		return calendar.Options{}, err
	}

	return calendar.Options{
		MinSelectedDate:          bounds.Min,
		MaxSelectedDate:          bounds.Max,
		TargetDateTime:           c.GetTargetDate(),
		SelectedDateTime:         c.GetSelectedDate(),
		FirstDayOfWeek:           first,
		Locale:                   c.Locale,
		WeekFormat:               c.WeekFormat,
		StaticSixWeekFormat:      c.StaticSixWeekFormat,
		ShowOnlyCurrentMonthDate: c.ShowOnlyCurrentMonthDate,
	}, nil
}

// eventSource picks the configured source: the ICS feed with the events file
// as fallback, either one alone, or nil
func eventSource(cfg *config.Config) calendar.Source {
	var file, feed calendar.Source
	if cfg.Events.File != "" {
		file = calendar.NewFileSource(cfg.Events.File, logger)
	}
	if cfg.Events.ICS != "" {
		feed = calendar.NewICSSource(cfg.Events.ICS, cfg.Events.GetCacheTTL(), logger)
	}

	switch {
	case feed != nil && file != nil:
		logger.Info("Using ics feed with events file fallback")
		return calendar.NewCompositeSource(feed, file, logger)
	case feed != nil:
		return feed
	case file != nil:
		return file
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,   // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core), nil
}

// parseLevel falls back to info for empty or unknown levels
func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return zapLevel
}
