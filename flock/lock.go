// Package flock guards an index against concurrent updates using
// cross-process file locks.
package flock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/locate"
	"github.com/gofrs/flock"
)

// Ensure UpdateLock implements locate.Locker.
var _ locate.Locker = (*UpdateLock)(nil)

// UpdateLock is an exclusive lock held for the duration of an index
// rebuild. The lock file lives next to the database as <db>.lock.
type UpdateLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewUpdateLock creates a lock for the index stored at dbPath.
func NewUpdateLock(dbPath string) *UpdateLock {
	lockPath := dbPath + ".lock"
	return &UpdateLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns false if another updater holds it.
func (l *UpdateLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if acquired {
		l.locked = true
	}
	return acquired, nil
}

// Unlock releases the lock. It is safe to call on an unheld lock.
func (l *UpdateLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}
