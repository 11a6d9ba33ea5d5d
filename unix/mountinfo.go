// Package unix provides host integration for unix-like systems: mount table
// enumeration and device identification for same-filesystem walks.
package unix

import (
	"context"
	"io"
	"os"

	"github.com/fwojciec/locate"
	"github.com/moby/sys/mountinfo"
)

// pseudoFilesystems have no persistent backing store.
var pseudoFilesystems = map[string]bool{
	"autofs":      true,
	"binfmt_misc": true,
	"bpf":         true,
	"cgroup":      true,
	"cgroup2":     true,
	"configfs":    true,
	"debugfs":     true,
	"devfs":       true,
	"devpts":      true,
	"devtmpfs":    true,
	"efivarfs":    true,
	"fusectl":     true,
	"hugetlbfs":   true,
	"kernfs":      true,
	"mqueue":      true,
	"nsfs":        true,
	"overlay":     true,
	"proc":        true,
	"pstore":      true,
	"ramfs":       true,
	"rpc_pipefs":  true,
	"securityfs":  true,
	"squashfs":    true,
	"sysfs":       true,
	"tmpfs":       true,
	"tracefs":     true,
}

// Ensure MountService implements locate.MountService.
var _ locate.MountService = (*MountService)(nil)

// MountService implements locate.MountService on top of the kernel mount
// table.
type MountService struct {
	path string
}

// NewMountService creates a MountService. An empty path asks the kernel
// for the current process's mounts; any other path is read as a file in
// mountinfo format.
func NewMountService(path string) *MountService {
	return &MountService{path: path}
}

// DiscoverMounts returns every entry of the mount table.
func (s *MountService) DiscoverMounts(ctx context.Context) ([]*locate.MountEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		infos, err := mountinfo.GetMounts(nil)
		if err != nil {
			return nil, locate.Errorf(locate.EMOUNT, "cannot read mount table: %v", err)
		}
		return toEntries(infos), nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, locate.Errorf(locate.EMOUNT, "cannot read mount table: %v", err)
	}
	defer f.Close()

	entries, err := ParseMountInfo(f)
	if err != nil {
		return nil, locate.Errorf(locate.EMOUNT, "cannot parse mount table %s: %v", s.path, err)
	}
	return entries, nil
}

// ParseMountInfo parses the mountinfo format described in proc(5). Escaped
// whitespace in mount points is decoded.
func ParseMountInfo(r io.Reader) ([]*locate.MountEntry, error) {
	infos, err := mountinfo.GetMountsFromReader(r, nil)
	if err != nil {
		return nil, err
	}
	return toEntries(infos), nil
}

func toEntries(infos []*mountinfo.Info) []*locate.MountEntry {
	entries := make([]*locate.MountEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, &locate.MountEntry{
			Path:    info.Mountpoint,
			FSType:  info.FSType,
			Virtual: pseudoFilesystems[info.FSType] || info.Source == "none",
		})
	}
	return entries
}
