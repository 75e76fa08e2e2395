package header

import (
	"bytes"
	"strings"
	"testing"

	"file_endec/internal/config"
	"file_endec/internal/key"
)

func uint32p(v uint32) *uint32 { return &v }
func uint64p(v uint64) *uint64 { return &v }

func samplePrivateHeader() *PrivateHeader {
	return &PrivateHeader{
		Filename:      "my_filename.ext",
		Permissions:   uint32p(0o754),
		CreatedNs:     uint64p(123_456_789_000),
		ModifiedNs:    uint64p(987_654_321_000),
		AccessedNs:    uint64p(999_999_999_999),
		PayloadSize:   1_024_000,
		Pepper:        key.FixedSalt(44),
		PaddingLength: 16,
	}
}

func TestWritePrivateVanilla(t *testing.T) {
	// Without HideMeta, permissions and timestamps stay out of the header.
	var buf bytes.Buffer
	if err := WritePrivateHeader(&buf, samplePrivateHeader(), config.NewOptionSet()); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	for _, marker := range []string{"perm ", "crt ", "cng ", "acs "} {
		if strings.Contains(text, marker) {
			t.Errorf("header without HideMeta contains %q: %q", marker, text)
		}
	}
	for _, marker := range []string{"name my_filename.ext\n", "sz ", "pepr ", "pad "} {
		if !strings.Contains(text, marker) {
			t.Errorf("header missing %q: %q", marker, text)
		}
	}
	if !strings.HasSuffix(text, "enc:\n") {
		t.Errorf("header should end with enc: marker, got %q", text)
	}
}

func TestWritePrivateHideMeta(t *testing.T) {
	var buf bytes.Buffer
	opts := config.NewOptionSet(config.OptionHideMeta)
	if err := WritePrivateHeader(&buf, samplePrivateHeader(), opts); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	if !strings.Contains(text, "perm 754\n") {
		t.Errorf("permissions should be octal: %q", text)
	}
	for _, marker := range []string{"crt ", "cng ", "acs "} {
		if !strings.Contains(text, marker) {
			t.Errorf("HideMeta header missing %q: %q", marker, text)
		}
	}
}

func TestWritePrivateMissingOptionalFields(t *testing.T) {
	h := samplePrivateHeader()
	h.Permissions = nil
	h.AccessedNs = nil
	var buf bytes.Buffer
	if err := WritePrivateHeader(&buf, h, config.NewOptionSet(config.OptionHideMeta)); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	if strings.Contains(text, "perm ") || strings.Contains(text, "acs ") {
		t.Errorf("absent fields should not be written: %q", text)
	}
	if !strings.Contains(text, "crt ") || !strings.Contains(text, "cng ") {
		t.Errorf("present fields should be written: %q", text)
	}
}

func TestPrivateRoundTrip(t *testing.T) {
	for _, opts := range []config.EncOptionSet{
		config.NewOptionSet(),
		config.NewOptionSet(config.OptionHideMeta),
	} {
		orig := samplePrivateHeader()
		var buf bytes.Buffer
		if err := WritePrivateHeader(&buf, orig, opts); err != nil {
			t.Fatal(err)
		}
		parsed, err := ParsePrivateHeader(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if parsed.Filename != orig.Filename {
			t.Errorf("filename = %q", parsed.Filename)
		}
		if parsed.PayloadSize != orig.PayloadSize {
			t.Errorf("payload size = %d", parsed.PayloadSize)
		}
		if !parsed.Pepper.Equal(orig.Pepper) {
			t.Error("pepper mismatch")
		}
		if parsed.PaddingLength != orig.PaddingLength {
			t.Errorf("padding length = %d; want %d", parsed.PaddingLength, orig.PaddingLength)
		}
		if opts.Has(config.OptionHideMeta) {
			if parsed.Permissions == nil || *parsed.Permissions != 0o754 {
				t.Error("permissions lost")
			}
			if parsed.ModifiedNs == nil || *parsed.ModifiedNs != *orig.ModifiedNs {
				t.Error("modified timestamp lost")
			}
		} else {
			if parsed.Permissions != nil || parsed.CreatedNs != nil {
				t.Error("metadata should be absent without HideMeta")
			}
		}
	}
}

func TestPrivateZeroPadding(t *testing.T) {
	h := samplePrivateHeader()
	h.PaddingLength = 0
	var buf bytes.Buffer
	if err := WritePrivateHeader(&buf, h, config.NewOptionSet()); err != nil {
		t.Fatal(err)
	}
	parsed, err := ParsePrivateHeader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if parsed.PaddingLength != 0 {
		t.Errorf("padding length = %d; want 0", parsed.PaddingLength)
	}
}

func TestPrivateMissingFilename(t *testing.T) {
	wire := "sz U\npepr " + key.FixedSalt(1).Base64() + "\nenc:\n"
	if _, err := ParsePrivateHeader(strings.NewReader(wire)); err == nil {
		t.Error("missing name should fail")
	}
}

func TestPrivateNoEndMarker(t *testing.T) {
	wire := "name a.txt\nsz U\n"
	if _, err := ParsePrivateHeader(strings.NewReader(wire)); err == nil {
		t.Error("missing enc: marker should fail")
	}
}

func TestPaddingLengthFor(t *testing.T) {
	pepper := key.Salt{}
	pepper.Data[0] = 200
	pepper.Data[1] = 200
	if got := PaddingLengthFor(pepper); got != 400 {
		t.Errorf("PaddingLengthFor = %d; want 400", got)
	}
	if got := PaddingLengthFor(key.Salt{}); got != 0 {
		t.Errorf("PaddingLengthFor(zero) = %d; want 0", got)
	}
}
