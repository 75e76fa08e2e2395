//go:build !linux

package fileops

import "os"

func statTimes(meta os.FileInfo) (accessedNs, createdNs uint64) {
	// Only the modification time is portable; the private header simply
	// omits the other timestamps on these platforms.
	return 0, 0
}
