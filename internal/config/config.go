// Package config holds the validated settings the pipelines consume, built
// by the CLI layer (or directly by tests).
package config

import (
	"errors"
	"fmt"

	"file_endec/internal/key"
)

// Verbosity controls how chatty the tool is.
type Verbosity int

const (
	VerbosityQuiet Verbosity = iota
	VerbosityNormal
	VerbosityDebug
)

// Debug reports whether debug output is enabled.
func (v Verbosity) Debug() bool { return v == VerbosityDebug }

// Quiet reports whether non-critical output is suppressed.
func (v Verbosity) Quiet() bool { return v == VerbosityQuiet }

// ExtensionPolicy says how the output filename is derived from the input.
type ExtensionPolicy struct {
	// Add appends Ext to the input name (encrypt); otherwise the trailing
	// Ext is stripped (decrypt).
	Add bool
	Ext string
}

// ErrInvalidConfig covers contradictory or empty configurations.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the capability set both pipelines consume. EncryptConfig and
// DecryptConfig implement it.
type Config interface {
	Files() []string
	RawKey() *key.Key
	Verbosity() Verbosity
	Overwrite() bool
	DeleteInput() bool
	OutputDir() string // empty means alongside the input
	Extension() ExtensionPolicy
}

// Both config types satisfy the shared capability set.
var (
	_ Config = (*EncryptConfig)(nil)
	_ Config = (*DecryptConfig)(nil)
)

// EncryptConfig parameterizes one encryption batch.
type EncryptConfig struct {
	files           []string
	rawKey          *key.Key
	options         EncOptionSet
	verbosity       Verbosity
	overwrite       bool
	deleteInput     bool
	outputDir       string
	outputExtension string
	dryRun          bool
}

// NewEncryptConfig validates and builds an encryption config. A dry run
// never deletes input, whatever deleteInput says.
func NewEncryptConfig(files []string, rawKey *key.Key, options EncOptionSet, verbosity Verbosity,
	overwrite, deleteInput bool, outputDir, outputExtension string, dryRun bool) (*EncryptConfig, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no input files given", ErrInvalidConfig)
	}
	if dryRun {
		deleteInput = false
	}
	if outputExtension == "" {
		outputExtension = ".enc"
	}
	if outputExtension[0] != '.' {
		outputExtension = "." + outputExtension
	}
	return &EncryptConfig{
		files:           files,
		rawKey:          rawKey,
		options:         options,
		verbosity:       verbosity,
		overwrite:       overwrite,
		deleteInput:     deleteInput,
		outputDir:       outputDir,
		outputExtension: outputExtension,
		dryRun:          dryRun,
	}, nil
}

func (c *EncryptConfig) Files() []string      { return c.files }
func (c *EncryptConfig) RawKey() *key.Key     { return c.rawKey }
func (c *EncryptConfig) Verbosity() Verbosity { return c.verbosity }
func (c *EncryptConfig) Overwrite() bool      { return c.overwrite }
func (c *EncryptConfig) DeleteInput() bool    { return c.deleteInput }
func (c *EncryptConfig) OutputDir() string    { return c.outputDir }
func (c *EncryptConfig) Options() EncOptionSet {
	return c.options
}
func (c *EncryptConfig) DryRun() bool { return c.dryRun }
func (c *EncryptConfig) Extension() ExtensionPolicy {
	return ExtensionPolicy{Add: true, Ext: c.outputExtension}
}

// DecryptConfig parameterizes one decryption batch.
type DecryptConfig struct {
	files          []string
	rawKey         *key.Key
	verbosity      Verbosity
	overwrite      bool
	deleteInput    bool
	outputDir      string
	inputExtension string
}

// NewDecryptConfig validates and builds a decryption config.
func NewDecryptConfig(files []string, rawKey *key.Key, verbosity Verbosity,
	overwrite, deleteInput bool, outputDir, inputExtension string) (*DecryptConfig, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no input files given", ErrInvalidConfig)
	}
	if inputExtension == "" {
		inputExtension = ".enc"
	}
	if inputExtension[0] != '.' {
		inputExtension = "." + inputExtension
	}
	return &DecryptConfig{
		files:          files,
		rawKey:         rawKey,
		verbosity:      verbosity,
		overwrite:      overwrite,
		deleteInput:    deleteInput,
		outputDir:      outputDir,
		inputExtension: inputExtension,
	}, nil
}

func (c *DecryptConfig) Files() []string      { return c.files }
func (c *DecryptConfig) RawKey() *key.Key     { return c.rawKey }
func (c *DecryptConfig) Verbosity() Verbosity { return c.verbosity }
func (c *DecryptConfig) Overwrite() bool      { return c.overwrite }
func (c *DecryptConfig) DeleteInput() bool    { return c.deleteInput }
func (c *DecryptConfig) OutputDir() string    { return c.outputDir }
func (c *DecryptConfig) Extension() ExtensionPolicy {
	return ExtensionPolicy{Add: false, Ext: c.inputExtension}
}
