package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locate"
)

// Ensure LoggingWalker implements locate.Walker.
var _ locate.Walker = (*LoggingWalker)(nil)

// LoggingWalker wraps a Walker and logs one record per walked mount.
type LoggingWalker struct {
	next   locate.Walker
	logger *slog.Logger
}

// NewLoggingWalker creates a new LoggingWalker.
func NewLoggingWalker(next locate.Walker, logger *slog.Logger) *LoggingWalker {
	return &LoggingWalker{next: next, logger: logger}
}

// Walk delegates to the wrapped walker and logs the number of entries seen.
func (w *LoggingWalker) Walk(ctx context.Context, root string, fn func(path string) error) (err error) {
	var count int
	defer func(begin time.Time) {
		w.logger.Info("walk",
			"root", root,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Walk(ctx, root, func(path string) error {
		count++
		return fn(path)
	})
}
