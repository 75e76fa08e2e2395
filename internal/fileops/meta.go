// Package fileops handles the filesystem half of the pipelines: pre-flight
// inspection, output path planning, overwrite policy, writing, shredding,
// and reading inputs into memory.
package fileops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"file_endec/internal/config"
	"file_endec/internal/log"
	"file_endec/internal/util"
)

// InputNotFoundError aggregates the inputs that failed the pre-flight stat,
// either missing or not regular files.
type InputNotFoundError struct {
	Count int
}

func (e *InputNotFoundError) Error() string {
	plural := " was"
	if e.Count > 1 {
		plural = "s were"
	}
	return fmt.Sprintf("aborting because %d input file%s not found", e.Count, plural)
}

// OutputExistsError aggregates planned outputs that already exist while
// overwriting is disallowed.
type OutputExistsError struct {
	Count int
}

func (e *OutputExistsError) Error() string {
	plural := ""
	if e.Count > 1 {
		plural = "s"
	}
	return fmt.Sprintf("aborting because %d output file%s already exist "+
		"(use --overwrite to overwrite, or --output-dir to control output location)", e.Count, plural)
}

// FileInfo is the immutable result of the pre-flight scan for one input.
// Identity is the input path.
type FileInfo struct {
	InPath     string
	SizeBytes  int64
	Permission os.FileMode
	ModifiedNs uint64
	AccessedNs uint64
	CreatedNs  uint64
	OutPath    string
}

// Name is the input filename without its directory.
func (f *FileInfo) Name() string {
	return filepath.Base(f.InPath)
}

// DeterminePath derives the output path for one input: Add appends the
// extension, otherwise the trailing extension is stripped (appending
// ".dec" when the input does not carry it). With an output directory the
// derived name is placed there; otherwise it stays alongside the input.
func DeterminePath(inPath string, policy config.ExtensionPolicy, outputDir string) string {
	dir, name := filepath.Split(inPath)
	if policy.Add {
		name += policy.Ext
	} else if strings.HasSuffix(name, policy.Ext) && len(name) > len(policy.Ext) {
		name = strings.TrimSuffix(name, policy.Ext)
	} else {
		name += ".dec"
	}
	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(dir, name)
}

// InspectFiles stats every input and plans every output before anything is
// mutated. All missing inputs are reported together; the same goes for
// already-existing outputs when overwriting is off.
func InspectFiles(files []string, verbosity config.Verbosity, overwrite bool,
	policy config.ExtensionPolicy, outputDir string) ([]FileInfo, error) {
	notFound := 0
	outputExists := 0
	infos := make([]FileInfo, 0, len(files))
	for _, file := range files {
		meta, err := os.Stat(file)
		if err != nil {
			if verbosity.Debug() {
				fmt.Fprintf(os.Stderr, "could not read file '%s'; reason: %v\n", file, err)
			} else {
				fmt.Fprintf(os.Stderr, "could not read file '%s'\n", file)
			}
			notFound++
			continue
		}
		if !meta.Mode().IsRegular() {
			fmt.Fprintf(os.Stderr, "path '%s' is not a file\n", file)
			notFound++
			continue
		}

		outPath := DeterminePath(file, policy, outputDir)
		if !overwrite {
			if _, err := os.Stat(outPath); err == nil {
				fmt.Fprintf(os.Stderr, "output path '%s' already exists\n", outPath)
				outputExists++
			}
		}

		info := FileInfo{
			InPath:     file,
			SizeBytes:  meta.Size(),
			Permission: meta.Mode().Perm(),
			OutPath:    outPath,
		}
		info.ModifiedNs = uint64(meta.ModTime().UnixNano())
		info.AccessedNs, info.CreatedNs = statTimes(meta)
		infos = append(infos, info)
	}
	if notFound > 0 {
		return nil, &InputNotFoundError{Count: notFound}
	}
	if outputExists > 0 {
		return nil, &OutputExistsError{Count: outputExists}
	}
	log.Debug("inspected input files", log.Int("count", len(infos)))
	return infos, nil
}

// largeFileWarnSize is where reading a whole input into memory gets a
// warning.
const largeFileWarnSize = util.GiB

// ErrIo wraps read/write/shred failures for errors.Is matching.
var ErrIo = errors.New("file operation failed")
