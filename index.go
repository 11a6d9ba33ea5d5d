package locate

import (
	"context"
	"path/filepath"
	"time"
)

// IndexService represents the persisted file index. There is exactly one
// index per storage location.
type IndexService interface {
	// ReplaceAll discards the current index and stores paths in its place.
	// The replacement is atomic: on any error the prior index is intact.
	ReplaceAll(ctx context.Context, paths []string) error

	// Scan returns every indexed path matched by pattern, in insertion order.
	Scan(ctx context.Context, pattern *Pattern) ([]string, error)

	// Count returns the number of indexed paths.
	Count(ctx context.Context) (int, error)
}

// ValidatePath returns an error if path cannot be stored in the index.
func ValidatePath(path string) error {
	if path == "" {
		return Errorf(EINVALID, "indexed path required")
	}
	if !filepath.IsAbs(path) {
		return Errorf(EINVALID, "indexed path %q must be absolute", path)
	}
	return nil
}

// Walker walks the directory tree below a mount root.
type Walker interface {
	// Walk calls fn for every entry below root, root included, that is on
	// the same device as root and not excluded by ShouldSkip. Unreadable
	// entries are skipped. An error from fn aborts the walk.
	Walk(ctx context.Context, root string, fn func(path string) error) error
}

// Locker guards an index against concurrent updates.
type Locker interface {
	// TryLock acquires the lock without blocking. It returns false when
	// another updater holds it.
	TryLock() (bool, error)

	// Unlock releases the lock. Unlocking an unheld lock is a no-op.
	Unlock() error
}

// UpdateSummary describes a completed index rebuild. Paths is the number
// of rows in the committed index.
type UpdateSummary struct {
	Mounts      []string      `json:"mounts"`
	Paths       int           `json:"paths"`
	Fingerprint string        `json:"fingerprint"`
	Duration    time.Duration `json:"duration"`
}
