// Package orchestrate wires the stages together: the encryption pipeline
// (checksum, compress, cascade, headers, write) and the decryption pipeline
// (parse headers, stretch with caching, decrypt, decompress, verify).
//
// Files in a batch are processed sequentially; stages within a file run in
// a fixed order. The only cross-file state is the stretched-key cache.
package orchestrate

import (
	"fmt"

	"file_endec/internal/fileops"
	"file_endec/internal/header"
)

// ChecksumMismatchError is the batch-level aggregate of data checksum
// failures. Individual mismatches only warn, so one corrupt file does not
// stop the rest of the batch from being recovered.
type ChecksumMismatchError struct {
	Count int
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("there were %d files whose checksums did not match; they likely do not contain real data", e.Count)
}

// FileStrategy pairs an inspected input with its parsed public header and
// the algorithm strategy its version and options demand.
type FileStrategy struct {
	File        *fileops.FileInfo
	Header      *header.PublicHeader
	HeaderBytes int
	Strategy    *header.Strategy
}

// readFileStrategies is the decryption pre-flight: every header is parsed
// and every strategy resolved before any file is touched, so version or
// syntax problems abort the batch without partial writes.
func readFileStrategies(infos []fileops.FileInfo) ([]FileStrategy, error) {
	strategies := make([]FileStrategy, 0, len(infos))
	for i := range infos {
		info := &infos[i]
		f, err := fileops.OpenHeader(info)
		if err != nil {
			return nil, err
		}
		result, err := header.ParsePublicHeader(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("in '%s': %w", info.InPath, err)
		}
		strat, err := header.StrategyFor(result.Header.Version(), result.Header.Options())
		if err != nil {
			return nil, fmt.Errorf("in '%s': %w", info.InPath, err)
		}
		strategies = append(strategies, FileStrategy{
			File:        info,
			Header:      result.Header,
			HeaderBytes: result.HeaderBytes,
			Strategy:    strat,
		})
	}
	return strategies, nil
}
