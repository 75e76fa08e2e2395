// Package key holds everything secret-adjacent: the passphrase wrapper, the
// 256-bit salts, the stretching chain that turns a passphrase into cipher
// key material, and the per-batch stretched-key cache.
//
// This is AUDIT-CRITICAL code - changes here directly affect whether
// existing artifacts can be decrypted.
package key

import (
	"github.com/Picocrypt/zxcvbn-go"
)

// StrongScore is the minimum zxcvbn score (0-4) considered strong.
const StrongScore = 3

// Key wraps the user passphrase. The contents are deliberately kept out of
// String/Format output; never log or print the raw passphrase.
type Key struct {
	data          []byte
	score         int
	crackTimeText string
}

// NewKey wraps a passphrase and scores it once.
func NewKey(passphrase string) *Key {
	strength := zxcvbn.PasswordStrength(passphrase, nil)
	return &Key{
		data:          []byte(passphrase),
		score:         strength.Score,
		crackTimeText: strength.CrackTimeDisplay,
	}
}

// String hides the passphrase from logs and %v formatting.
func (k *Key) String() string {
	return "Key(***)"
}

// Bytes exposes the raw passphrase bytes for key derivation only.
func (k *Key) Bytes() []byte {
	return k.data
}

// IsStrong reports whether the passphrase scored at least StrongScore.
func (k *Key) IsStrong() bool {
	return k.score >= StrongScore
}

// TimeToCrack is a human-readable estimate for offline slow hashing.
func (k *Key) TimeToCrack() string {
	return k.crackTimeText
}

// Equal compares passphrase contents.
func (k *Key) Equal(other *Key) bool {
	if len(k.data) != len(other.data) {
		return false
	}
	for i := range k.data {
		if k.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Wipe overwrites the passphrase bytes. Best-effort: Go may have made
// copies during string conversion, but the long-lived buffer is scrubbed.
func (k *Key) Wipe() {
	for i := range k.data {
		k.data[i] = 0
	}
}
