package mock

import (
	"context"

	"github.com/fwojciec/locate"
)

var _ locate.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of locate.IndexService.
type IndexService struct {
	ReplaceAllFn func(ctx context.Context, paths []string) error
	ScanFn       func(ctx context.Context, pattern *locate.Pattern) ([]string, error)
	CountFn      func(ctx context.Context) (int, error)
}

func (s *IndexService) ReplaceAll(ctx context.Context, paths []string) error {
	return s.ReplaceAllFn(ctx, paths)
}

func (s *IndexService) Scan(ctx context.Context, pattern *locate.Pattern) ([]string, error) {
	return s.ScanFn(ctx, pattern)
}

func (s *IndexService) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}

var _ locate.Walker = (*Walker)(nil)

// Walker is a mock implementation of locate.Walker.
type Walker struct {
	WalkFn func(ctx context.Context, root string, fn func(path string) error) error
}

func (w *Walker) Walk(ctx context.Context, root string, fn func(path string) error) error {
	return w.WalkFn(ctx, root, fn)
}

var _ locate.Locker = (*Locker)(nil)

// Locker is a mock implementation of locate.Locker.
type Locker struct {
	TryLockFn func() (bool, error)
	UnlockFn  func() error
}

func (l *Locker) TryLock() (bool, error) {
	return l.TryLockFn()
}

func (l *Locker) Unlock() error {
	return l.UnlockFn()
}
