package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"file_endec/internal/key"
	"file_endec/internal/log"
)

// shredPasses are the overwrite patterns applied before deletion: zeros,
// ones, then random bytes. The goal is keeping casual recovery tools away
// from plaintext, not defeating forensic flash analysis.
var shredPasses = []byte{0x00, 0xFF}

// ShredFile overwrites a file's contents, renames it to a meaningless name
// and removes it.
func ShredFile(path string) error {
	meta, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: could not shred '%s': %v", ErrIo, path, err)
	}
	size := meta.Size()

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: could not open '%s' for shredding", ErrIo, path)
	}
	buf := make([]byte, min(size, 1<<20))
	for _, pattern := range shredPasses {
		for i := range buf {
			buf[i] = pattern
		}
		if err := overwriteWith(f, buf, size); err != nil {
			f.Close()
			return err
		}
	}
	if err := key.SecureRandom(buf); err == nil {
		if err := overwriteWith(f, buf, size); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Sync(); err != nil {
		log.Warn("could not sync shredded file", log.String("path", path), log.Err(err))
	}
	f.Close()

	// Rename before removal so the original name is not left in directory
	// entries of journaling filesystems.
	scrambled := filepath.Join(filepath.Dir(path), fmt.Sprintf(".shred-%d", size))
	if err := os.Rename(path, scrambled); err != nil {
		scrambled = path
	}
	if err := os.Remove(scrambled); err != nil {
		return fmt.Errorf("%w: could not remove '%s' after shredding", ErrIo, path)
	}
	return nil
}

func overwriteWith(f *os.File, buf []byte, size int64) error {
	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("%w: seek failed while shredding", ErrIo)
	}
	remaining := size
	for remaining > 0 {
		chunk := buf[:min(remaining, int64(len(buf)))]
		n, err := f.Write(chunk)
		if err != nil {
			return fmt.Errorf("%w: overwrite failed while shredding", ErrIo)
		}
		remaining -= int64(n)
	}
	return nil
}

// DeleteInput shreds a consumed input file, reporting through onStart.
func DeleteInput(file *FileInfo, onStart func(), debug bool) error {
	if onStart != nil {
		onStart()
	}
	if err := ShredFile(file.InPath); err != nil {
		return err
	}
	if debug {
		fmt.Printf("deleted %s\n", file.Name())
	}
	return nil
}
