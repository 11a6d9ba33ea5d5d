package locate

import (
	"context"
	"path/filepath"
	"strings"
)

// MountEntry represents one row of the OS mount table.
type MountEntry struct {
	Path    string `json:"path"`
	FSType  string `json:"fsType"`
	Virtual bool   `json:"virtual"`
}

// MountService enumerates the mount points of the host.
type MountService interface {
	// DiscoverMounts returns every mount in the OS mount table, unfiltered.
	// Returns EMOUNT if the table cannot be read.
	DiscoverMounts(ctx context.Context) ([]*MountEntry, error)
}

// allowedFilesystems lists the filesystem types that are indexed.
var allowedFilesystems = map[string]bool{
	"FAT12":   true,
	"FAT16":   true,
	"FAT32":   true,
	"vfat":    true,
	"msdos":   true,
	"exFAT":   true,
	"exfat":   true,
	"NTFS":    true,
	"ntfs":    true,
	"ntfs3":   true,
	"fuseblk": true,
	"ReFS":    true,
	"HFS":     true,
	"HFS+":    true,
	"hfs":     true,
	"hfsplus": true,
	"HPFS":    true,
	"APFS":    true,
	"apfs":    true,
	"UFS":     true,
	"ufs":     true,
	"ext2":    true,
	"ext3":    true,
	"ext4":    true,
	"xfs":     true,
	"btrfs":   true,
	"f2fs":    true,
	"zfs":     true,
}

// IsAllowedFilesystem reports whether mounts of fsType are indexed. Names
// are matched exactly as reported by the mount table.
func IsAllowedFilesystem(fsType string) bool {
	return allowedFilesystems[fsType]
}

// DiscoverMounts enumerates mounts with svc and returns the retained set.
func DiscoverMounts(ctx context.Context, svc MountService) ([]*MountEntry, error) {
	entries, err := svc.DiscoverMounts(ctx)
	if err != nil {
		if ErrorCode(err) == EMOUNT {
			return nil, err
		}
		return nil, Errorf(EMOUNT, "cannot enumerate mounts: %v", err)
	}
	return RetainMounts(entries), nil
}

// RetainMounts filters entries down to real, allow-listed filesystems and
// removes every mount nested below another candidate. The result contains
// no pair where one path is a strict descendant of the other. Input order
// is preserved and exact-path duplicates are kept once.
func RetainMounts(entries []*MountEntry) []*MountEntry {
	var candidates []*MountEntry
	for _, e := range entries {
		if e == nil || e.Virtual || !IsAllowedFilesystem(e.FSType) {
			continue
		}
		candidates = append(candidates, e)
	}

	seen := make(map[string]bool, len(candidates))
	var retained []*MountEntry
	for _, m := range candidates {
		path := filepath.Clean(m.Path)
		if seen[path] || HasAncestor(m, candidates) {
			continue
		}
		seen[path] = true
		retained = append(retained, m)
	}
	return retained
}

// HasAncestor reports whether any of candidates is mounted at a proper
// ancestor of m's path. Every candidate is checked.
func HasAncestor(m *MountEntry, candidates []*MountEntry) bool {
	for _, other := range candidates {
		if IsStrictDescendant(m.Path, other.Path) {
			return true
		}
	}
	return false
}

// IsStrictDescendant reports whether path lies strictly below ancestor,
// i.e. path starts with ancestor followed by a separator. Equal paths are
// not descendants of each other.
func IsStrictDescendant(path, ancestor string) bool {
	path = filepath.Clean(path)
	ancestor = filepath.Clean(ancestor)
	if path == ancestor {
		return false
	}
	if ancestor == string(filepath.Separator) {
		return strings.HasPrefix(path, ancestor)
	}
	return strings.HasPrefix(path, ancestor+string(filepath.Separator))
}
