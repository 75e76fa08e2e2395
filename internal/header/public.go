package header

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"

	"file_endec/internal/checksum"
	"file_endec/internal/config"
	"file_endec/internal/encoding"
	"file_endec/internal/key"
	"file_endec/internal/log"
)

// Public header tokens.
//
// CRITICAL: fixed ASCII, frozen by the on-disk format.
const (
	PubMarker            = "github.com/mverleg/file_endec\x00"
	pubVersionMarker     = "v"
	pubSaltMarker        = "salt"
	pubChecksumMarker    = "check"
	pubOptionMarker      = "opts"
	pubPrivateMetaMarker = "prv"
	PubPureDataMarker    = "data:"       // legacy artifacts: payload follows
	PubMetaAndDataMarker = "meta1+data:" // v1.1+: private header, then payload
)

// PrivateMeta describes the encrypted private header that follows the
// public one: its exact ciphertext length and the checksum of its
// plaintext serialization.
type PrivateMeta struct {
	EncryptedLength uint64
	Checksum        checksum.Checksum
}

// PublicHeader is the cleartext header at the start of every artifact. Two
// shapes exist: legacy (< 1.1.0, no options, no private header) and
// current (>= 1.1.0, options plus private-header metadata). The shape is
// decided by the version; constructors keep the invariant.
type PublicHeader struct {
	version      *semver.Version
	salt         key.Salt
	dataChecksum checksum.Checksum
	options      config.EncOptionSet
	privateMeta  *PrivateMeta
}

// NewPublicHeader builds a current-shape header (version >= 1.1.0).
func NewPublicHeader(version *semver.Version, salt key.Salt, dataChecksum checksum.Checksum,
	options config.EncOptionSet, privateMeta PrivateMeta) *PublicHeader {
	if !VersionHasOptionsMeta(version) {
		panic("current header shape requires version >= 1.1.0")
	}
	return &PublicHeader{
		version:      version,
		salt:         salt,
		dataChecksum: dataChecksum,
		options:      options,
		privateMeta:  &privateMeta,
	}
}

// NewLegacyHeader builds a legacy-shape header (version < 1.1.0).
func NewLegacyHeader(version *semver.Version, salt key.Salt, dataChecksum checksum.Checksum) *PublicHeader {
	if VersionHasOptionsMeta(version) {
		panic("legacy header shape requires version < 1.1.0")
	}
	return &PublicHeader{
		version:      version,
		salt:         salt,
		dataChecksum: dataChecksum,
		options:      config.NewOptionSet(),
	}
}

func (h *PublicHeader) Version() *semver.Version        { return h.version }
func (h *PublicHeader) Salt() key.Salt                  { return h.salt }
func (h *PublicHeader) DataChecksum() checksum.Checksum { return h.dataChecksum }
func (h *PublicHeader) Options() config.EncOptionSet    { return h.options }

// PrivateMeta returns the private-header metadata, nil for legacy shape.
func (h *PublicHeader) PrivateMeta() *PrivateMeta { return h.privateMeta }

// WritePublicHeader emits the header in its exact wire form. The output is
// deterministic given the same salt and checksums.
func WritePublicHeader(w io.Writer, h *PublicHeader) error {
	if err := writeLine(w, PubMarker, ""); err != nil {
		return err
	}
	if err := writeLine(w, pubVersionMarker, formatVersion(h.version)); err != nil {
		return err
	}
	if VersionHasOptionsMeta(h.version) && h.options.Len() > 0 {
		if err := writeLine(w, pubOptionMarker, h.options.String()); err != nil {
			return err
		}
	}
	if err := writeLine(w, pubSaltMarker, h.salt.Base64()); err != nil {
		return err
	}
	if err := writeLine(w, pubChecksumMarker, h.dataChecksum.String()); err != nil {
		return err
	}
	if h.privateMeta != nil {
		value := fmt.Sprintf("%s %s", encoding.EncodeUint64(h.privateMeta.EncryptedLength), h.privateMeta.Checksum.String())
		if err := writeLine(w, pubPrivateMetaMarker, value); err != nil {
			return err
		}
		return writeLine(w, PubMetaAndDataMarker, "")
	}
	return writeLine(w, PubPureDataMarker, "")
}

// ParseResult is a parsed public header plus the byte length of its wire
// form, so readers can seek straight to the payload.
type ParseResult struct {
	Header      *PublicHeader
	HeaderBytes int
}

// ParsePublicHeader reads and validates the public header from the start of
// an artifact. Unknown keys are warned about and ignored so that older
// readers can still attempt newer artifacts.
func ParsePublicHeader(r io.Reader) (*ParseResult, error) {
	br := bufio.NewReader(r)
	fields, endMarker, index, err := readHeaderKeys(br, PubMarker,
		[]string{PubMetaAndDataMarker, PubPureDataMarker})
	if err != nil {
		if err == errNoStartMarker {
			return nil, fmt.Errorf("did not recognize encryption header; was this file really encrypted with fileenc? (%w)", err)
		}
		return nil, fmt.Errorf("could not read the public file header: %w", err)
	}

	versionText, ok := fields.get(pubVersionMarker)
	if !ok {
		return nil, &SyntaxError{Line: "missing " + pubVersionMarker}
	}
	version, err := semver.StrictNewVersion(versionText)
	if err != nil {
		return nil, fmt.Errorf("could not determine the version of fileenc that encrypted this file; got %q which is invalid", versionText)
	}

	hasOptions := VersionHasOptionsMeta(version)
	options := config.NewOptionSet()
	if optionsText, found := fields.get(pubOptionMarker); found {
		if !hasOptions {
			return nil, &SyntaxError{Line: pubOptionMarker + " " + optionsText}
		}
		options, err = config.ParseOptionSet(optionsText)
		if err != nil {
			return nil, fmt.Errorf("could not read the encryption options of this file; maybe it was encrypted with a newer version? (%w)", err)
		}
	}

	saltText, ok := fields.get(pubSaltMarker)
	if !ok {
		return nil, &SyntaxError{Line: "missing " + pubSaltMarker}
	}
	salt, err := key.ParseSalt(saltText)
	if err != nil {
		return nil, err
	}

	checksumText, ok := fields.get(pubChecksumMarker)
	if !ok {
		return nil, &SyntaxError{Line: "missing " + pubChecksumMarker}
	}
	dataChecksum, err := checksum.Parse(checksumText)
	if err != nil {
		return nil, err
	}

	for _, keyName := range fields.keys {
		switch keyName {
		case pubVersionMarker, pubOptionMarker, pubSaltMarker, pubChecksumMarker, pubPrivateMetaMarker:
		default:
			log.Warn("ignoring unknown public header field; the artifact may be from a newer version",
				log.String("key", keyName))
		}
	}

	var header *PublicHeader
	if hasOptions {
		if endMarker != PubMetaAndDataMarker {
			return nil, &SyntaxError{Line: endMarker}
		}
		metaText, found := fields.get(pubPrivateMetaMarker)
		if !found {
			// A v1.1 artifact without private-header metadata straddles
			// the format boundary; such files are never produced.
			return nil, &SyntaxError{Line: "missing " + pubPrivateMetaMarker}
		}
		meta, err := parsePrivateMeta(metaText)
		if err != nil {
			return nil, err
		}
		header = NewPublicHeader(version, salt, dataChecksum, options, meta)
	} else {
		if endMarker != PubPureDataMarker {
			return nil, &SyntaxError{Line: endMarker}
		}
		if _, found := fields.get(pubPrivateMetaMarker); found {
			return nil, &SyntaxError{Line: pubPrivateMetaMarker}
		}
		header = NewLegacyHeader(version, salt, dataChecksum)
	}
	return &ParseResult{Header: header, HeaderBytes: index}, nil
}

func parsePrivateMeta(value string) (PrivateMeta, error) {
	lengthText, checksumText, found := strings.Cut(value, " ")
	if !found {
		return PrivateMeta{}, &SyntaxError{Line: pubPrivateMetaMarker + " " + value}
	}
	length, err := encoding.DecodeUint64(lengthText)
	if err != nil {
		return PrivateMeta{}, fmt.Errorf("metadata about private header contained an incorrectly formatted length: %w", err)
	}
	sum, err := checksum.Parse(checksumText)
	if err != nil {
		return PrivateMeta{}, fmt.Errorf("metadata about private header contained an incorrectly formatted checksum: %w", err)
	}
	return PrivateMeta{EncryptedLength: length, Checksum: sum}, nil
}
