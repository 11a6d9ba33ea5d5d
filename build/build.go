// Package build rebuilds the file index: it discovers mounts, walks each
// retained mount and replaces the stored index in one transaction.
package build

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/locate"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of mounts walked in parallel.
const DefaultConcurrency = 4

// Builder orchestrates a full index rebuild.
type Builder struct {
	Mounts locate.MountService
	Walker locate.Walker
	Index  locate.IndexService
	// Lock, if set, is held for the whole rebuild.
	Lock        locate.Locker
	Concurrency int
}

// ProgressEvent reports progress during a rebuild.
type ProgressEvent struct {
	Type  ProgressType
	Mount string
	Paths int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressMount ProgressType = iota
	ProgressPersist
	ProgressFinished
)

// ProgressFunc is a callback for reporting rebuild progress. Calls are
// serialized even when mounts are walked in parallel.
type ProgressFunc func(event ProgressEvent)

// RunUpdate rebuilds the index from scratch. The previous index is left
// untouched unless every step succeeds. The summary's path count is read
// back from the committed index.
func (b *Builder) RunUpdate(ctx context.Context, progress ProgressFunc) (_ *locate.UpdateSummary, err error) {
	begin := time.Now()
	progress = serialize(progress)

	if b.Lock != nil {
		acquired, lerr := b.Lock.TryLock()
		if lerr != nil {
			return nil, fmt.Errorf("update lock: %w", lerr)
		}
		if !acquired {
			return nil, locate.Errorf(locate.ECONFLICT, "another update is already in progress")
		}
		defer func() {
			if uerr := b.Lock.Unlock(); uerr != nil {
				err = errors.Join(err, fmt.Errorf("update unlock: %w", uerr))
			}
		}()
	}

	mounts, err := locate.DiscoverMounts(ctx, b.Mounts)
	if err != nil {
		return nil, err
	}

	paths, err := b.BuildFileSet(ctx, mounts, progress)
	if err != nil {
		return nil, err
	}

	progress(ProgressEvent{Type: ProgressPersist, Paths: len(paths)})
	if err := b.Index.ReplaceAll(ctx, paths); err != nil {
		return nil, err
	}

	committed, err := b.Index.Count(ctx)
	if err != nil {
		return nil, err
	}

	summary := &locate.UpdateSummary{
		Mounts:      make([]string, 0, len(mounts)),
		Paths:       committed,
		Fingerprint: Fingerprint(paths),
		Duration:    time.Since(begin),
	}
	for _, m := range mounts {
		summary.Mounts = append(summary.Mounts, m.Path)
	}

	progress(ProgressEvent{Type: ProgressFinished, Paths: committed})
	return summary, nil
}

// BuildFileSet walks every mount and returns all visited paths, grouped by
// mount in the order given. Mounts are walked in parallel.
func (b *Builder) BuildFileSet(ctx context.Context, mounts []*locate.MountEntry, progress ProgressFunc) ([]string, error) {
	progress = serialize(progress)

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([][]string, len(mounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, m := range mounts {
		g.Go(func() error {
			progress(ProgressEvent{Type: ProgressMount, Mount: m.Path})
			var paths []string
			err := b.Walker.Walk(gctx, m.Path, func(path string) error {
				paths = append(paths, path)
				return nil
			})
			if err != nil {
				return fmt.Errorf("walk %s: %w", m.Path, err)
			}
			results[i] = paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]string, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// Fingerprint returns an order-independent digest of a path set. Two
// rebuilds of an unchanged tree produce the same fingerprint.
func Fingerprint(paths []string) string {
	var sum uint64
	for _, p := range paths {
		sum += xxhash.Sum64String(p)
	}
	return fmt.Sprintf("%016x", sum)
}

// serialize returns a ProgressFunc safe for concurrent use. A nil callback
// becomes a no-op.
func serialize(fn ProgressFunc) ProgressFunc {
	if fn == nil {
		return func(ProgressEvent) {}
	}
	var mu sync.Mutex
	return func(event ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		fn(event)
	}
}
