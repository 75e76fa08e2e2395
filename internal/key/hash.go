package key

import (
	"crypto/sha512"
	"encoding/binary"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blowfish"
)

// KeyHashAlg identifies one stage of the key-stretching hash chain.
type KeyHashAlg int

const (
	AlgBCrypt KeyHashAlg = iota
	AlgArgon2i
	AlgSha512
)

func (a KeyHashAlg) String() string {
	switch a {
	case AlgBCrypt:
		return "bcrypt"
	case AlgArgon2i:
		return "argon2i"
	case AlgSha512:
		return "sha512"
	default:
		return "unknown"
	}
}

// Derivation parameters.
//
// CRITICAL: these are frozen by the on-disk format. Changing any of them
// makes every existing artifact undecryptable.
const (
	argonTime    = 2
	argonMemory  = 32 * 1024 // KiB, so 32 MiB
	argonThreads = 4
	argonKeyLen  = 64

	bcryptCost    = 10 // 2^10 expansion rounds
	bcryptMaxData = 72 // classic bcrypt password limit
	bcryptSaltLen = 16
)

// hashAlg applies one salted hash stage: (data, salt) -> digest.
// Every algorithm consumes arbitrary-length data and returns its full
// digest; the chain in Stretch feeds each output into the next input.
func hashAlg(data []byte, salt *Salt, alg KeyHashAlg) []byte {
	switch alg {
	case AlgBCrypt:
		return bcryptHash(data, salt)
	case AlgArgon2i:
		return argon2.Key(data, salt.Data[:], argonTime, argonMemory, argonThreads, argonKeyLen)
	case AlgSha512:
		h := sha512.New()
		h.Write(data)
		h.Write(salt.Data[:])
		return h.Sum(nil)
	default:
		panic("unreachable: unknown key hash algorithm")
	}
}

// bcryptMagic is the traditional 24-byte ECB plaintext, "OrpheanBeholderScryDoubt".
var bcryptMagic = []byte("OrpheanBeholderScryDoubt")

// bcryptHash is the classic expensive-key-schedule Blowfish construction:
// a salted key schedule followed by 2^cost alternating expansions, then the
// magic block encrypted 64 times. Output is the 24-byte result. Input data
// beyond 72 bytes is ignored, like bcrypt itself does.
func bcryptHash(data []byte, salt *Salt) []byte {
	pw := data
	if len(pw) > bcryptMaxData {
		pw = pw[:bcryptMaxData]
	}
	if len(pw) == 0 {
		pw = []byte{0}
	}
	csalt := salt.Data[:bcryptSaltLen]

	c, err := blowfish.NewSaltedCipher(pw, csalt)
	if err != nil {
		panic("unreachable: bcrypt key size already bounded")
	}
	for i := 0; i < 1<<bcryptCost; i++ {
		blowfish.ExpandKey(pw, c)
		blowfish.ExpandKey(csalt, c)
	}

	out := make([]byte, len(bcryptMagic))
	copy(out, bcryptMagic)
	for i := 0; i < 24; i += 8 {
		for j := 0; j < 64; j++ {
			c.Encrypt(out[i:i+8], out[i:i+8])
		}
	}
	return out
}

// stretchCounter appends the 8 little-endian bytes of the iteration counter,
// as mixed into the chain between hash rounds.
func stretchCounter(buf []byte, i uint64) []byte {
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], i)
	return append(buf, ctr[:]...)
}
