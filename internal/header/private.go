package header

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"file_endec/internal/config"
	"file_endec/internal/encoding"
	"file_endec/internal/key"
	"file_endec/internal/log"
)

// Private header tokens. The private header has no start marker (its
// position is known from the public header) and ends at "enc:".
//
// CRITICAL: fixed ASCII, frozen by the on-disk format.
const (
	privFilenameMarker    = "name"
	privPermissionsMarker = "perm"
	privCreatedMarker     = "crt"
	privModifiedMarker    = "cng"
	privAccessedMarker    = "acs"
	privSizeMarker        = "sz"
	privPepperMarker      = "pepr"
	privPaddingMarker     = "pad"
	privDataMarker        = "enc:"
)

// MaxPaddingLength bounds the in-header padding field.
const MaxPaddingLength = 1024

// PrivateHeader is the metadata stored encrypted between the public header
// and the payload. The filename, pepper and sizes are always present;
// permissions and timestamps only when the artifact hides metadata.
type PrivateHeader struct {
	// Original filename without directory, with extension.
	Filename string
	// Unix permission bits; nil when not recorded.
	Permissions *uint32
	// Timestamps in nanoseconds since the epoch; nil when not recorded.
	CreatedNs  *uint64
	ModifiedNs *uint64
	AccessedNs *uint64
	// Length in bytes of the encrypted payload that follows the private
	// header. Everything after PayloadSize bytes is padding.
	PayloadSize uint64
	// Secondary salt, never revealed in cleartext.
	Pepper key.Salt
	// Number of cosmetic padding characters in the serialized header,
	// derived from the pepper to obfuscate the header's length.
	PaddingLength uint16
}

// PaddingLengthFor derives the in-header padding length from a pepper.
// The sum of the first two pepper bytes gives an expectation of 255 with
// enough spread to mask the filename length.
func PaddingLengthFor(pepper key.Salt) uint16 {
	return uint16(pepper.Data[0]) + uint16(pepper.Data[1])
}

// WritePrivateHeader serializes the header. The caller encrypts the
// resulting bytes; nothing here may hit the disk in cleartext. The
// permission and timestamp fields are written only under HideMeta.
func WritePrivateHeader(w io.Writer, h *PrivateHeader, options config.EncOptionSet) error {
	if err := writeLine(w, privFilenameMarker, h.Filename); err != nil {
		return err
	}
	if options.Has(config.OptionHideMeta) {
		if h.Permissions != nil {
			if err := writeLine(w, privPermissionsMarker, strconv.FormatUint(uint64(*h.Permissions), 8)); err != nil {
				return err
			}
		}
		for _, ts := range []struct {
			marker string
			value  *uint64
		}{
			{privCreatedMarker, h.CreatedNs},
			{privModifiedMarker, h.ModifiedNs},
			{privAccessedMarker, h.AccessedNs},
		} {
			if ts.value != nil {
				if err := writeLine(w, ts.marker, encoding.EncodeUint64(*ts.value)); err != nil {
					return err
				}
			}
		}
	}
	if err := writeLine(w, privSizeMarker, encoding.EncodeUint64(h.PayloadSize)); err != nil {
		return err
	}
	if err := writeLine(w, privPepperMarker, h.Pepper.Base64()); err != nil {
		return err
	}
	if h.PaddingLength > 0 {
		if err := writeLine(w, privPaddingMarker, key.RandomPrintable(h.PaddingLength)); err != nil {
			return err
		}
	}
	return writeLine(w, privDataMarker, "")
}

// ParsePrivateHeader reads the decrypted private header bytes back.
func ParsePrivateHeader(r io.Reader) (*PrivateHeader, error) {
	fields, _, _, err := readHeaderKeys(bufio.NewReader(r), "", []string{privDataMarker})
	if err != nil {
		switch err {
		case errNoEndMarker:
			return nil, fmt.Errorf("could not find the end of the private file header inside encrypted block; has the file been corrupted? (%w)", err)
		case errRead:
			return nil, fmt.Errorf("the private file header inside encrypted block could not be read (%w)", err)
		default:
			return nil, fmt.Errorf("part of the private file header inside encrypted block could not be parsed: %w", err)
		}
	}

	h := &PrivateHeader{}
	h.Filename, err = requireField(fields, privFilenameMarker, "original filename")
	if err != nil {
		return nil, err
	}

	if permText, found := fields.get(privPermissionsMarker); found {
		perm, err := strconv.ParseUint(permText, 8, 32)
		if err != nil {
			return nil, &SyntaxError{Line: privPermissionsMarker + " " + permText}
		}
		perm32 := uint32(perm)
		h.Permissions = &perm32
	}
	for _, ts := range []struct {
		marker string
		target **uint64
	}{
		{privCreatedMarker, &h.CreatedNs},
		{privModifiedMarker, &h.ModifiedNs},
		{privAccessedMarker, &h.AccessedNs},
	} {
		if text, found := fields.get(ts.marker); found {
			ns, err := encoding.DecodeUint64(text)
			if err != nil {
				return nil, &SyntaxError{Line: ts.marker + " " + text}
			}
			*ts.target = &ns
		}
	}

	sizeText, err := requireField(fields, privSizeMarker, "payload size")
	if err != nil {
		return nil, err
	}
	h.PayloadSize, err = encoding.DecodeUint64(sizeText)
	if err != nil {
		return nil, &SyntaxError{Line: privSizeMarker + " " + sizeText}
	}

	pepperText, err := requireField(fields, privPepperMarker, "pepper")
	if err != nil {
		return nil, err
	}
	h.Pepper, err = key.ParseSalt(pepperText)
	if err != nil {
		return nil, err
	}

	if padText, found := fields.get(privPaddingMarker); found {
		if len(padText) > MaxPaddingLength {
			return nil, &SyntaxError{Line: privPaddingMarker}
		}
		h.PaddingLength = uint16(len(padText))
	}

	for _, keyName := range fields.keys {
		switch keyName {
		case privFilenameMarker, privPermissionsMarker, privCreatedMarker,
			privModifiedMarker, privAccessedMarker, privSizeMarker,
			privPepperMarker, privPaddingMarker:
		default:
			log.Warn("ignoring unknown private header field; the artifact may be from a newer version",
				log.String("key", keyName))
		}
	}
	return h, nil
}

func requireField(fields *headerFields, marker, description string) (string, error) {
	value, found := fields.get(marker)
	if !found {
		return "", fmt.Errorf("could not find the %s in the file header", description)
	}
	return value, nil
}
