package key

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"time"
)

// randWarnDelay is how long a blocking OS entropy read may take before a
// warning is printed. There is no hard timeout; the read blocks until
// entropy is available.
const randWarnDelay = time.Second

// ErrRandomnessUnavailable indicates the OS generator itself failed, which
// should essentially never happen.
var ErrRandomnessUnavailable = errors.New("the OS random generator failed")

// SecureRandom fills buf from the OS generator, warning on stderr if the
// call takes long (that usually means the system is low on entropy).
func SecureRandom(buf []byte) error {
	start := time.Now()
	done := make(chan struct{})
	warned := make(chan bool, 1)
	go func() {
		select {
		case <-done:
			warned <- false
		case <-time.After(randWarnDelay):
			fmt.Fprintln(os.Stderr, "secure random number generation is taking long; perhaps there is not enough entropy available")
			warned <- true
		}
	}()
	_, err := crand.Read(buf)
	close(done)
	if <-warned {
		fmt.Fprintf(os.Stderr, "secure random number generation ready after %d ms\n", time.Since(start).Milliseconds())
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	return nil
}

// padRng generates the cosmetic in-header padding characters. It is seeded
// once from the OS generator; unpredictability of individual characters is
// not security-relevant, only their count is.
var padRng = newPadRng()

func newPadRng() *mrand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// Extremely unlikely; the zero seed only affects cosmetic padding.
		fmt.Fprintln(os.Stderr, "warning: falling back to fixed seed for padding characters")
	}
	return mrand.New(mrand.NewChaCha8(seed))
}

// RandomPrintable returns length random characters in the printable,
// non-whitespace ASCII range 33..126.
func RandomPrintable(length uint16) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = byte(33 + padRng.IntN(94))
	}
	return string(buf)
}
