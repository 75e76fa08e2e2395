package key

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"file_endec/internal/encoding"
)

// SaltSize is the number of random bytes in a salt.
// CRITICAL: frozen by the on-disk format.
const SaltSize = 32

// ErrSaltSyntax indicates a salt field did not decode to exactly SaltSize
// bytes.
var ErrSaltSyntax = errors.New("malformed salt")

// Salt is a 256-bit random value. Two are used per encrypted file: the
// public salt (in the public header, feeds key stretching and the cipher
// IV) and the pepper (inside the encrypted private header).
type Salt struct {
	Data [SaltSize]byte
}

// NewSalt generates a fresh random salt from the OS generator.
func NewSalt() (Salt, error) {
	var s Salt
	if err := SecureRandom(s.Data[:]); err != nil {
		return Salt{}, err
	}
	return s, nil
}

// FixedSalt creates a deterministic salt for tests and fixtures: the
// little-endian encoding of n repeated to fill the salt.
func FixedSalt(n uint64) Salt {
	var s Salt
	for i := 0; i < SaltSize; i += 8 {
		binary.LittleEndian.PutUint64(s.Data[i:], n)
	}
	return s
}

// Base64 renders the salt for the public header.
func (s Salt) Base64() string {
	return encoding.EncodeBytes(s.Data[:])
}

// ParseSalt reads a header salt field back.
func ParseSalt(text string) (Salt, error) {
	raw, err := encoding.DecodeBytes(text)
	if err != nil {
		return Salt{}, fmt.Errorf("%w: %v", ErrSaltSyntax, err)
	}
	if len(raw) != SaltSize {
		return Salt{}, fmt.Errorf("%w: got %d bytes, need %d", ErrSaltSyntax, len(raw), SaltSize)
	}
	var s Salt
	copy(s.Data[:], raw)
	return s, nil
}

// Equal is byte-wise equality.
func (s Salt) Equal(other Salt) bool {
	return bytes.Equal(s.Data[:], other.Data[:])
}

// IV returns the cipher initialization vector derived from this salt.
func (s Salt) IV(size int) []byte {
	return s.Data[:size]
}
