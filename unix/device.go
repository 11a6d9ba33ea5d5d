package unix

import (
	"golang.org/x/sys/unix"
)

// Device returns the ID of the device holding path. Symlinks are not
// followed.
func Device(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Dev), nil
}
