package calendar

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileSource reads events from a local text file.
//
// Format, one event per line:
//
//	YYYY-MM-DD [HH:MM] title
//
// Blank lines and lines starting with # are skipped.
type FileSource struct {
	filePath string
	logger   *zap.Logger
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
	}
}

// Load reads the events file
func (fs *FileSource) Load(ctx context.Context) ([]Event, error) {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open events file: %w", err)
	}
	defer file.Close()

	evs, err := fs.Parse(ctx, file)
	if err != nil {
		return nil, err
	}

	fs.logger.Info("Events file loaded",
		zap.String("file", fs.filePath),
		zap.Int("events", len(evs)))

	return evs, nil
}

// Parse reads events from r. Malformed lines are logged and skipped.
func (fs *FileSource) Parse(ctx context.Context, r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	var evs []Event
	lineNo := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Example: 2025-01-01 09:30 Team sync
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 2 {
			fs.logger.Warn("Invalid line format", zap.Int("line", lineNo), zap.String("text", line))
			continue
		}

		date, err := time.ParseInLocation("2006-01-02", parts[0], time.Local)
		if err != nil {
			fs.logger.Warn("Failed to parse date", zap.String("date", parts[0]), zap.Error(err))
			continue
		}

		ev := Event{
			UID:    fmt.Sprintf("%s#%d", fs.filePath, lineNo),
			Start:  date,
			AllDay: true,
			Title:  strings.TrimSpace(strings.Join(parts[1:], " ")),
		}

		if clock, err := time.Parse("15:04", parts[1]); err == nil {
			ev.Start = time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
			ev.AllDay = false
			ev.Title = ""
			if len(parts) == 3 {
				ev.Title = strings.TrimSpace(parts[2])
			}
		}

		if ev.Title == "" {
			fs.logger.Warn("Event without title", zap.Int("line", lineNo))
			continue
		}

		evs = append(evs, ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading events file: %w", err)
	}

	return evs, nil
}
