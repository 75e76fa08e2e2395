// Package header implements the self-describing artifact headers: the
// public text header at the start of every encrypted file, the encrypted
// private header behind it, and the strategy registry that maps a header's
// version and options to concrete algorithms.
//
// This is AUDIT-CRITICAL code - the wire format must stay bit-exact
// compatible with files written by earlier versions.
package header

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CurrentVersionString is the format version written into new artifacts.
const CurrentVersionString = "1.1.0"

var (
	currentVersion = semver.MustParse(CurrentVersionString)
	// Options and the private header were introduced together in 1.1.0;
	// before that the public header carried everything.
	optionsIntroducedIn = semver.MustParse("1.1.0")
	minimumVersion      = semver.MustParse("1.0.0")
)

// CurrentVersion returns the version new artifacts are written as.
func CurrentVersion() *semver.Version {
	return currentVersion
}

// VersionHasOptionsMeta reports whether artifacts of this version carry an
// options line and a private header.
func VersionHasOptionsMeta(v *semver.Version) bool {
	return !v.LessThan(optionsIntroducedIn)
}

// formatVersion renders exactly "major.minor.patch", without pre-release or
// build parts, as the header stores it.
func formatVersion(v *semver.Version) string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}
