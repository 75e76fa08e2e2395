package fileops

import (
	"fmt"
	"os"
	"time"

	"file_endec/internal/log"
)

// nsToTime converts optional nanosecond timestamps; a zero time tells
// Chtimes to leave that value alone.
func nsToTime(ns *uint64) time.Time {
	if ns == nil {
		return time.Time{}
	}
	return time.Unix(0, int64(*ns))
}

// WriteOutput creates the output file and writes the given sections in
// order. A pre-existing file at the path is shredded first when overwriting
// is allowed, and refused otherwise (it may have appeared after the
// pre-flight check).
func WriteOutput(file *FileInfo, sections [][]byte, overwrite bool, onStart func()) error {
	if onStart != nil {
		onStart()
	}
	if _, err := os.Stat(file.OutPath); err == nil {
		if !overwrite {
			return fmt.Errorf("%w: a file appeared in previously empty output location '%s'", ErrIo, file.OutPath)
		}
		if err := ShredFile(file.OutPath); err != nil {
			return fmt.Errorf("failed to remove previously-existing file in output location: %w", err)
		}
	}
	out, err := os.Create(file.OutPath)
	if err != nil {
		return fmt.Errorf("%w: could not create output file '%s'", ErrIo, file.OutPath)
	}
	defer out.Close()
	var total int
	for _, section := range sections {
		if _, err := out.Write(section); err != nil {
			return fmt.Errorf("%w: failed to write output data for '%s'", ErrIo, file.OutPath)
		}
		total += len(section)
	}
	log.Debug("wrote output file", log.String("path", file.OutPath), log.Int("bytes", total))
	return nil
}

// RestoreMetadata applies recovered permissions and timestamps to a
// decrypted output. Failures only warn; the data is already safe on disk.
func RestoreMetadata(path string, permissions *uint32, modifiedNs, accessedNs *uint64) {
	if permissions != nil {
		if err := os.Chmod(path, os.FileMode(*permissions)); err != nil {
			log.Warn("could not restore permissions", log.String("path", path), log.Err(err))
		}
	}
	if modifiedNs != nil || accessedNs != nil {
		mtime := nsToTime(modifiedNs)
		atime := nsToTime(accessedNs)
		if err := os.Chtimes(path, atime, mtime); err != nil {
			log.Warn("could not restore timestamps", log.String("path", path), log.Err(err))
		}
	}
}
