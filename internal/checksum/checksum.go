// Package checksum computes the tagged data digest stored in file headers.
//
// The digest is SHA-256 seeded with XXH64: the 64-bit xxHash of the data is
// fed into the SHA-256 state (little-endian) before the data itself. The
// textual form is "xx_sha256 <base64>".
package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"file_endec/internal/encoding"
)

// TagXxSha256 is the only algorithm tag currently produced. Unknown tags are
// preserved on parse so newer artifacts can at least be reported clearly.
const TagXxSha256 = "xx_sha256"

// ErrChecksumSyntax indicates a checksum field was not "<tag> <base64>".
var ErrChecksumSyntax = errors.New("malformed checksum")

// Checksum is an algorithm tag plus digest bytes.
type Checksum struct {
	Tag    string
	Digest []byte
}

// Calculate computes the xx_sha256 checksum of data, reporting the start of
// the (potentially large) hash through onStart.
func Calculate(data []byte, onStart func()) Checksum {
	if onStart != nil {
		onStart()
	}
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], xxhash.Sum64(data))
	h := sha256.New()
	h.Write(seed[:])
	h.Write(data)
	return Checksum{Tag: TagXxSha256, Digest: h.Sum(nil)}
}

// Fixed creates a checksum with the given digest bytes, for tests and
// fixtures.
func Fixed(digest []byte) Checksum {
	return Checksum{Tag: TagXxSha256, Digest: digest}
}

// String renders the textual header form, e.g. "xx_sha256 Ag".
func (c Checksum) String() string {
	return fmt.Sprintf("%s %s", c.Tag, encoding.EncodeBytes(c.Digest))
}

// Parse reads the textual header form back.
func Parse(text string) (Checksum, error) {
	tag, digest64, found := strings.Cut(text, " ")
	if !found || tag == "" || digest64 == "" {
		return Checksum{}, ErrChecksumSyntax
	}
	digest, err := encoding.DecodeBytes(digest64)
	if err != nil {
		return Checksum{}, fmt.Errorf("%w: %s", ErrChecksumSyntax, text)
	}
	return Checksum{Tag: tag, Digest: digest}, nil
}

// Equal compares tag and digest bytes.
func (c Checksum) Equal(other Checksum) bool {
	return c.Tag == other.Tag && bytes.Equal(c.Digest, other.Digest)
}
