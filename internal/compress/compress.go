// Package compress shrinks the payload before encryption. Brotli is the
// only algorithm; the level is fixed so output stays deterministic across
// runs of the same build.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// CompressionAlg identifies the payload compression algorithm.
type CompressionAlg int

const (
	AlgBrotli CompressionAlg = iota
)

func (a CompressionAlg) String() string {
	switch a {
	case AlgBrotli:
		return "brotli"
	default:
		return "unknown"
	}
}

// brotliQuality balances ratio against speed; encryption dominates runtime
// anyway. Decompression does not depend on this value.
const brotliQuality = 5

// ErrCompressionFailed indicates malformed compressed input (or an I/O
// failure inside the codec, which cannot happen with memory buffers).
var ErrCompressionFailed = errors.New("could not decompress data; the file is corrupt or not complete")

// Compress shrinks data with the given algorithm.
func Compress(data []byte, alg CompressionAlg, onStart func(CompressionAlg)) ([]byte, error) {
	if onStart != nil {
		onStart(alg)
	}
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotliQuality)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte, alg CompressionAlg, onStart func(CompressionAlg)) ([]byte, error) {
	if onStart != nil {
		onStart(alg)
	}
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompressionFailed, err)
	}
	return out, nil
}
