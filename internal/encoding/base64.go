// Package encoding provides the textual encodings used inside file headers:
// URL-safe unpadded base64 for byte strings (salts, checksums) and a compact
// base-64 digit form for small integers (lengths, timestamps).
package encoding

import "encoding/base64"

// Base64 is the alphabet used everywhere in the header format: URL-safe,
// without padding. CRITICAL: changing this breaks every existing artifact.
var Base64 = base64.URLEncoding.WithPadding(base64.NoPadding)

// EncodeBytes encodes raw bytes for embedding in a header line.
func EncodeBytes(data []byte) string {
	return Base64.EncodeToString(data)
}

// DecodeBytes decodes a header base64 field back into raw bytes.
func DecodeBytes(text string) ([]byte, error) {
	return Base64.DecodeString(text)
}
