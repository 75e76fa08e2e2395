// Package cli provides the command-line surface for the fileenc and
// filedec binaries: flag handling, key acquisition, and terminal progress.
package cli

import (
	"fmt"
	"os"

	"file_endec/internal/config"
	"file_endec/internal/log"
	"file_endec/internal/progress"
)

// resolveVerbosity maps the -v/-q flags, rejecting the contradictory
// combination.
func resolveVerbosity(debug, quiet bool) (config.Verbosity, error) {
	switch {
	case debug && quiet:
		return 0, fmt.Errorf("%w: cannot use quiet mode and debug mode together", config.ErrInvalidConfig)
	case debug:
		return config.VerbosityDebug, nil
	case quiet:
		return config.VerbosityQuiet, nil
	default:
		return config.VerbosityNormal, nil
	}
}

// setupLogging enables the stderr logger at debug verbosity; otherwise
// logging stays off.
func setupLogging(verbosity config.Verbosity) {
	if verbosity.Debug() {
		log.SetLogger(log.NewWriterLogger(os.Stderr, log.LevelDebug))
	}
}

// sinkFor picks the progress implementation for a verbosity level.
func sinkFor(verbosity config.Verbosity) progress.Sink {
	switch verbosity {
	case config.VerbosityQuiet:
		return progress.NewSilent()
	case config.VerbosityDebug:
		return progress.NewLogging()
	default:
		return NewReporter(false)
	}
}
