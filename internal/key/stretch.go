package key

// StretchKey is the derived cipher key material. At least 32 bytes; the
// cascade uses the leading bytes as cipher keys. Zero it with Wipe when the
// batch is done.
type StretchKey struct {
	data []byte
}

// NewStretchKey wraps derived key material. Callers must hand over at least
// 32 bytes.
func NewStretchKey(data []byte) *StretchKey {
	if len(data) < 32 {
		panic("stretched key must be at least 32 bytes")
	}
	return &StretchKey{data: data}
}

// Len is the number of bytes of key material.
func (s *StretchKey) Len() int {
	return len(s.data)
}

// Leading returns the first n bytes, the slice handed to ciphers.
func (s *StretchKey) Leading(n int) []byte {
	return s.data[:n]
}

// String hides the key material from logs and %v formatting.
func (s *StretchKey) String() string {
	return "StretchKey(***)"
}

// Wipe overwrites the key material.
func (s *StretchKey) Wipe() {
	for i := range s.data {
		s.data[i] = 0
	}
}

// Stretch derives cipher key material from the passphrase and salt by an
// iterated hash chain. For each algorithm in order: one initial salted hash,
// then stretchCount rounds that mix in the round counter before hashing
// again. onAlg fires once per algorithm so progress can be attributed to the
// expensive stages.
//
// CRITICAL: the chain structure is frozen by the on-disk format.
func Stretch(raw *Key, salt *Salt, stretchCount uint64, algs []KeyHashAlg, onAlg func(KeyHashAlg)) *StretchKey {
	if len(algs) == 0 {
		panic("key stretching requires at least one hash algorithm")
	}
	data := make([]byte, len(raw.Bytes()))
	copy(data, raw.Bytes())
	for _, alg := range algs {
		if onAlg != nil {
			onAlg(alg)
		}
		data = hashAlg(data, salt, alg)
		for i := uint64(0); i < stretchCount; i++ {
			data = stretchCounter(data, i)
			data = hashAlg(data, salt, alg)
		}
	}
	return NewStretchKey(data)
}
