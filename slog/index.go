package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locate"
)

// Ensure LoggingIndexService implements locate.IndexService.
var _ locate.IndexService = (*LoggingIndexService)(nil)

// LoggingIndexService wraps an IndexService with logging.
type LoggingIndexService struct {
	next   locate.IndexService
	logger *slog.Logger
}

// NewLoggingIndexService creates a new LoggingIndexService.
func NewLoggingIndexService(next locate.IndexService, logger *slog.Logger) *LoggingIndexService {
	return &LoggingIndexService{next: next, logger: logger}
}

// ReplaceAll delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) ReplaceAll(ctx context.Context, paths []string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("index replace",
			"count", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceAll(ctx, paths)
}

// Scan delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Scan(ctx context.Context, pattern *locate.Pattern) (matches []string, err error) {
	defer func(begin time.Time) {
		expr := ""
		if pattern != nil && pattern.Expr != nil {
			expr = pattern.Source()
		}
		s.logger.Info("index scan",
			"expression", expr,
			"count", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scan(ctx, pattern)
}

// Count delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Count(ctx context.Context) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("index count",
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Count(ctx)
}
