package fileops

import (
	"bytes"
	"fmt"
	"os"

	"file_endec/internal/config"
	"file_endec/internal/util"
)

// ReadFile loads a whole input into memory, warning at normal verbosity
// when the file is large or looks already encrypted.
func ReadFile(file *FileInfo, verbosity config.Verbosity, headerMarker string, onStart func()) ([]byte, error) {
	if onStart != nil {
		onStart()
	}
	if !verbosity.Quiet() && file.SizeBytes > largeFileWarnSize {
		fmt.Fprintf(os.Stderr, "warning: reading %s file '%s' into RAM\n",
			util.Sizeify(file.SizeBytes), file.InPath)
	}
	data, err := os.ReadFile(file.InPath)
	if err != nil {
		if verbosity.Debug() {
			return nil, fmt.Errorf("%w: could not read input file '%s': %v", ErrIo, file.InPath, err)
		}
		return nil, fmt.Errorf("%w: could not read input file '%s'", ErrIo, file.InPath)
	}
	if !verbosity.Quiet() && headerMarker != "" && bytes.HasPrefix(data, []byte(headerMarker)) {
		fmt.Fprintf(os.Stderr, "warning: file '%s' seems to already be encrypted\n", file.InPath)
	}
	return data, nil
}

// OpenHeader opens an input just far enough to read its public header.
// The caller closes the handle.
func OpenHeader(file *FileInfo) (*os.File, error) {
	f, err := os.Open(file.InPath)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open input file '%s'", ErrIo, file.InPath)
	}
	return f, nil
}
