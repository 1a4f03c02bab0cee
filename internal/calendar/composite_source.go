package calendar

import (
	"context"

	"go.uber.org/zap"
)

// CompositeSource implements Source with fallback strategy
// Primary: usually an ICS feed
// Fallback: usually a local events file
type CompositeSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback Source, logger *zap.Logger) *CompositeSource {
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Load tries the primary source and falls back on error
func (cs *CompositeSource) Load(ctx context.Context) ([]Event, error) {
	evs, err := cs.primary.Load(ctx)
	if err == nil {
		return evs, nil
	}

	cs.logger.Warn("Primary event source failed, falling back",
		zap.Error(err))

	return cs.fallback.Load(ctx)
}
