package encoding

import (
	"errors"
	"strings"
)

// The compact integer form writes a number as base-64 positional digits in
// the same URL-safe alphabet, least significant digit first. The value 20
// becomes "U", zero becomes "A". This is shorter than base64-encoding the
// little-endian bytes and is what the header format has always used.
// CRITICAL: the digit order and alphabet are frozen by the on-disk format.

const smallIntAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// ErrSmallIntSyntax indicates a compact integer field contained a character
// outside the URL-safe base64 alphabet, or was empty.
var ErrSmallIntSyntax = errors.New("malformed compact integer")

// ErrSmallIntRange indicates a compact integer did not fit in 64 bits.
var ErrSmallIntRange = errors.New("compact integer out of range")

// EncodeUint64 renders n in the compact integer form.
func EncodeUint64(n uint64) string {
	if n == 0 {
		return "A"
	}
	var sb strings.Builder
	for n > 0 {
		sb.WriteByte(smallIntAlphabet[n&63])
		n >>= 6
	}
	return sb.String()
}

// DecodeUint64 parses the compact integer form back into a number.
func DecodeUint64(text string) (uint64, error) {
	if text == "" {
		return 0, ErrSmallIntSyntax
	}
	var n uint64
	for i := len(text) - 1; i >= 0; i-- {
		d := strings.IndexByte(smallIntAlphabet, text[i])
		if d < 0 {
			return 0, ErrSmallIntSyntax
		}
		if n > (1<<64-1)>>6 {
			return 0, ErrSmallIntRange
		}
		n = n<<6 | uint64(d)
	}
	return n, nil
}
