package mock

import (
	"context"

	"github.com/fwojciec/locate"
)

var _ locate.MountService = (*MountService)(nil)

// MountService is a mock implementation of locate.MountService.
type MountService struct {
	DiscoverMountsFn func(ctx context.Context) ([]*locate.MountEntry, error)
}

func (s *MountService) DiscoverMounts(ctx context.Context) ([]*locate.MountEntry, error) {
	return s.DiscoverMountsFn(ctx)
}
