// Package fs provides directory traversal of local filesystems.
package fs

import (
	"context"
	iofs "io/fs"
	"path/filepath"

	"github.com/fwojciec/locate"
	"github.com/fwojciec/locate/unix"
)

// Ensure Walker implements locate.Walker at compile time.
var _ locate.Walker = (*Walker)(nil)

// Walker walks a directory tree without leaving the root's device.
// Symlinks are reported but never followed.
type Walker struct {
	device func(path string) (uint64, error)
	skip   func(path string) bool
}

// Option configures a Walker.
type Option func(*Walker)

// WithDevice sets the function used to identify a path's device.
// Defaults to unix.Device.
func WithDevice(fn func(path string) (uint64, error)) Option {
	return func(w *Walker) {
		w.device = fn
	}
}

// WithSkip sets the exclusion predicate. Defaults to locate.ShouldSkip.
func WithSkip(fn func(path string) bool) Option {
	return func(w *Walker) {
		w.skip = fn
	}
}

// NewWalker creates a new Walker.
func NewWalker(opts ...Option) *Walker {
	w := &Walker{
		device: unix.Device,
		skip:   locate.ShouldSkip,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk calls fn for root and every entry below it. Entries that cannot be
// read are skipped; a directory that cannot be listed is still reported.
// Directories on another device are neither reported nor entered.
func (w *Walker) Walk(ctx context.Context, root string, fn func(path string) error) error {
	root = filepath.Clean(root)
	rootDev, err := w.device(root)
	if err != nil {
		return nil
	}

	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Either the root vanished (d == nil) or a directory listing
			// failed after the directory itself was reported.
			return nil
		}

		if w.skip(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() && path != root {
			dev, err := w.device(path)
			if err != nil || dev != rootDev {
				return filepath.SkipDir
			}
		}

		return fn(path)
	})
}
