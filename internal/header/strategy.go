package header

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"file_endec/internal/compress"
	"file_endec/internal/config"
	"file_endec/internal/key"
	"file_endec/internal/symmetric"
)

// Strategy is the full algorithm selection for one artifact: how hard to
// stretch the key, which hash chain to run, which ciphers to cascade, and
// how to compress. Strategies are value data; callers must not mutate the
// shared slices.
type Strategy struct {
	StretchCount  uint64
	Compression   compress.CompressionAlg
	KeyHashAlgs   []key.KeyHashAlg
	SymmetricAlgs []symmetric.SymAlg
}

// ErrUnknownVersion indicates the artifact version predates the first
// release and no strategy exists for it.
var ErrUnknownVersion = errors.New("non-existent version")

// The registry entries. This should keep the strategy for all old versions:
// don't delete any, just add new ones.
var (
	strategyDefault = &Strategy{
		StretchCount:  5,
		Compression:   compress.AlgBrotli,
		KeyHashAlgs:   []key.KeyHashAlg{key.AlgBCrypt, key.AlgArgon2i, key.AlgSha512},
		SymmetricAlgs: []symmetric.SymAlg{symmetric.AlgAes256, symmetric.AlgTwofish},
	}
	strategyFast = &Strategy{
		StretchCount:  2,
		Compression:   compress.AlgBrotli,
		KeyHashAlgs:   []key.KeyHashAlg{key.AlgArgon2i, key.AlgSha512},
		SymmetricAlgs: []symmetric.SymAlg{symmetric.AlgAes256},
	}
)

// StrategyFor resolves the algorithms for an artifact of the given version
// and options. Pure and deterministic.
func StrategyFor(version *semver.Version, options config.EncOptionSet) (*Strategy, error) {
	if version.LessThan(minimumVersion) {
		return nil, fmt.Errorf("%w %s (minimum is %s)", ErrUnknownVersion, formatVersion(version), formatVersion(minimumVersion))
	}
	if options.Has(config.OptionFast) {
		return strategyFast, nil
	}
	return strategyDefault, nil
}

// CurrentStrategy resolves the algorithms used when writing new artifacts.
func CurrentStrategy(options config.EncOptionSet) *Strategy {
	strat, err := StrategyFor(currentVersion, options)
	if err != nil {
		panic("unreachable: current version always has a strategy")
	}
	return strat
}
