//go:build linux

package fileops

import (
	"os"
	"syscall"
)

// statTimes extracts access and inode-change (closest thing to creation)
// times in nanoseconds. Zero when the platform stat is unavailable.
func statTimes(meta os.FileInfo) (accessedNs, createdNs uint64) {
	stat, ok := meta.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0
	}
	accessedNs = uint64(stat.Atim.Sec)*1_000_000_000 + uint64(stat.Atim.Nsec)
	createdNs = uint64(stat.Ctim.Sec)*1_000_000_000 + uint64(stat.Ctim.Nsec)
	return accessedNs, createdNs
}
