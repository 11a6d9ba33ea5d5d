// Package slog provides logging decorators for locate services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locate"
)

// Ensure LoggingMountService implements locate.MountService.
var _ locate.MountService = (*LoggingMountService)(nil)

// LoggingMountService wraps a MountService with logging.
type LoggingMountService struct {
	next   locate.MountService
	logger *slog.Logger
}

// NewLoggingMountService creates a new LoggingMountService.
func NewLoggingMountService(next locate.MountService, logger *slog.Logger) *LoggingMountService {
	return &LoggingMountService{next: next, logger: logger}
}

// DiscoverMounts delegates to the wrapped service and logs every entry.
func (s *LoggingMountService) DiscoverMounts(ctx context.Context) (entries []*locate.MountEntry, err error) {
	defer func(begin time.Time) {
		for _, e := range entries {
			s.logger.Debug("mount",
				"path", e.Path,
				"type", e.FSType,
				"virtual", e.Virtual,
			)
		}
		s.logger.Info("mount discovery",
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverMounts(ctx)
}
