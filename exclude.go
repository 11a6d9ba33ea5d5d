package locate

import (
	"slices"
	"strings"
)

// excludedRoots are the top-level directories holding kernel, device or
// scratch trees. They are never indexed, whichever mount reaches them.
var excludedRoots = []string{"boot", "dev", "proc", "sys", "tmp"}

// ShouldSkip reports whether path falls under /boot, /dev, /proc, /sys or
// /tmp. Only
// the first component is considered, so /home/user/proc is not skipped.
func ShouldSkip(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	first, _, _ := strings.Cut(path[1:], "/")
	return slices.Contains(excludedRoots, first)
}
