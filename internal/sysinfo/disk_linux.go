//go:build linux

package sysinfo

import (
	"fmt"
	"syscall"
)

// diskUsage reports used and total bytes for the filesystem containing path.
func diskUsage(path string) (used, total uint64, err error) {
	var fs syscall.Statfs_t
	if err := syscall.Statfs(path, &fs); err != nil {
		return 0, 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	bsize := uint64(fs.Bsize)
	total = fs.Blocks * bsize
	used = (fs.Blocks - fs.Bfree) * bsize
	return used, total, nil
}
