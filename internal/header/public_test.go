package header

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"

	"file_endec/internal/checksum"
	"file_endec/internal/config"
	"file_endec/internal/key"
)

func mustVersion(t *testing.T, text string) *semver.Version {
	t.Helper()
	v, err := semver.StrictNewVersion(text)
	if err != nil {
		t.Fatalf("bad version %q: %v", text, err)
	}
	return v
}

func TestWriteVanilla(t *testing.T) {
	h := NewPublicHeader(
		mustVersion(t, "1.1.0"),
		key.FixedSalt(1),
		checksum.Fixed([]byte{2}),
		config.NewOptionSet(),
		PrivateMeta{EncryptedLength: 20, Checksum: checksum.Fixed([]byte{10, 20, 30})},
	)
	var buf bytes.Buffer
	if err := WritePublicHeader(&buf, h); err != nil {
		t.Fatal(err)
	}
	expected := "github.com/mverleg/file_endec\x00\n" +
		"v 1.1.0\n" +
		"salt AQAAAAAAAAABAAAAAAAAAAEAAAAAAAAAAQAAAAAAAAA\n" +
		"check xx_sha256 Ag\n" +
		"prv U xx_sha256 ChQe\n" +
		"meta1+data:\n"
	if buf.String() != expected {
		t.Errorf("header bytes:\n%q\nwant:\n%q", buf.String(), expected)
	}
}

func TestWriteWithOptions(t *testing.T) {
	h := NewPublicHeader(
		mustVersion(t, "1.1.0"),
		key.FixedSalt(123_456_789_123_456_789),
		checksum.Fixed([]byte{0, 5, 0, 5, 0, 5, 0, 5, 0, 5, 0, 5}),
		config.NewOptionSet(config.OptionFast, config.OptionHideMeta, config.OptionPadSize),
		PrivateMeta{EncryptedLength: 20, Checksum: checksum.Fixed([]byte{10, 100})},
	)
	var buf bytes.Buffer
	if err := WritePublicHeader(&buf, h); err != nil {
		t.Fatal(err)
	}
	expected := "github.com/mverleg/file_endec\x00\n" +
		"v 1.1.0\n" +
		"opts fast hide-meta pad-size\n" +
		"salt FV_QrEubtgEVX9CsS5u2ARVf0KxLm7YBFV_QrEubtgE\n" +
		"check xx_sha256 AAUABQAFAAUABQAF\n" +
		"prv U xx_sha256 CmQ\n" +
		"meta1+data:\n"
	if buf.String() != expected {
		t.Errorf("header bytes:\n%q\nwant:\n%q", buf.String(), expected)
	}
}

func TestWriteLegacy(t *testing.T) {
	h := NewLegacyHeader(mustVersion(t, "1.0.0"), key.FixedSalt(1), checksum.Fixed([]byte{2}))
	var buf bytes.Buffer
	if err := WritePublicHeader(&buf, h); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "data:\n") {
		t.Errorf("legacy header should end in data: marker, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "prv ") || strings.Contains(buf.String(), "opts ") {
		t.Errorf("legacy header must not carry v1.1 fields: %q", buf.String())
	}
}

func TestParseEncodeRoundTrip(t *testing.T) {
	headers := []*PublicHeader{
		NewLegacyHeader(mustVersion(t, "1.0.0"), key.FixedSalt(7), checksum.Fixed([]byte{1, 2, 3})),
		NewPublicHeader(mustVersion(t, "1.1.0"), key.FixedSalt(8), checksum.Fixed([]byte{4}),
			config.NewOptionSet(), PrivateMeta{EncryptedLength: 48, Checksum: checksum.Fixed([]byte{5, 6})}),
		NewPublicHeader(mustVersion(t, "1.1.0"), key.FixedSalt(9), checksum.Fixed([]byte{7}),
			config.NewOptionSet(config.OptionHideMeta, config.OptionPadSize),
			PrivateMeta{EncryptedLength: 1 << 20, Checksum: checksum.Fixed([]byte{8, 9, 10})}),
	}
	for _, h := range headers {
		var buf bytes.Buffer
		if err := WritePublicHeader(&buf, h); err != nil {
			t.Fatal(err)
		}
		wire := buf.Bytes()

		result, err := ParsePublicHeader(bytes.NewReader(wire))
		if err != nil {
			t.Fatalf("parse failed for %q: %v", wire, err)
		}
		if result.HeaderBytes != len(wire) {
			t.Errorf("HeaderBytes = %d; want %d", result.HeaderBytes, len(wire))
		}

		var again bytes.Buffer
		if err := WritePublicHeader(&again, result.Header); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(wire, again.Bytes()) {
			t.Errorf("encode(parse(h)) != h:\n%q\n%q", wire, again.Bytes())
		}
	}
}

func TestParseStopsAtPayload(t *testing.T) {
	h := NewLegacyHeader(mustVersion(t, "1.0.0"), key.FixedSalt(1), checksum.Fixed([]byte{2}))
	var buf bytes.Buffer
	if err := WritePublicHeader(&buf, h); err != nil {
		t.Fatal(err)
	}
	payload := "this is the data and should not be read!\nthe end of the data"
	buf.WriteString(payload)

	full := buf.Bytes()
	result, err := ParsePublicHeader(bytes.NewReader(full))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(full[result.HeaderBytes:]); got != payload {
		t.Errorf("payload after HeaderBytes = %q; want %q", got, payload)
	}
}

func TestParseUnknownKeyIgnored(t *testing.T) {
	wire := "github.com/mverleg/file_endec\x00\n" +
		"v 1.0.0\n" +
		"futurefield some value\n" +
		"salt " + key.FixedSalt(3).Base64() + "\n" +
		"check xx_sha256 Ag\n" +
		"data:\n"
	result, err := ParsePublicHeader(strings.NewReader(wire))
	if err != nil {
		t.Fatalf("unknown key should be ignored, got %v", err)
	}
	if !result.Header.Salt().Equal(key.FixedSalt(3)) {
		t.Error("salt lost while skipping unknown key")
	}
}

func TestParseNoStartMarker(t *testing.T) {
	_, err := ParsePublicHeader(strings.NewReader("not an artifact\nv 1.0.0\n"))
	if !errors.Is(err, ErrNoStartMarker) {
		t.Errorf("want ErrNoStartMarker, got %v", err)
	}
}

func TestParseNoEndMarker(t *testing.T) {
	wire := "github.com/mverleg/file_endec\x00\nv 1.0.0\nsalt " + key.FixedSalt(3).Base64() + "\n"
	_, err := ParsePublicHeader(strings.NewReader(wire))
	if !errors.Is(err, ErrNoEndMarker) {
		t.Errorf("want ErrNoEndMarker, got %v", err)
	}
}

func TestParseBadVersion(t *testing.T) {
	wire := "github.com/mverleg/file_endec\x00\nv one.two\nsalt " + key.FixedSalt(3).Base64() + "\ncheck xx_sha256 Ag\ndata:\n"
	if _, err := ParsePublicHeader(strings.NewReader(wire)); err == nil {
		t.Error("invalid version should fail")
	}
}

func TestParseUnknownOption(t *testing.T) {
	wire := "github.com/mverleg/file_endec\x00\nv 1.1.0\nopts warp-speed\nsalt " + key.FixedSalt(3).Base64() +
		"\ncheck xx_sha256 Ag\nprv U xx_sha256 Ag\nmeta1+data:\n"
	_, err := ParsePublicHeader(strings.NewReader(wire))
	if !errors.Is(err, config.ErrUnknownOption) {
		t.Errorf("want ErrUnknownOption, got %v", err)
	}
}

func TestParseDuplicateOption(t *testing.T) {
	wire := "github.com/mverleg/file_endec\x00\nv 1.1.0\nopts fast fast\nsalt " + key.FixedSalt(3).Base64() +
		"\ncheck xx_sha256 Ag\nprv U xx_sha256 Ag\nmeta1+data:\n"
	_, err := ParsePublicHeader(strings.NewReader(wire))
	if !errors.Is(err, config.ErrDuplicateOption) {
		t.Errorf("want ErrDuplicateOption, got %v", err)
	}
}

func TestParseStraddlingRejected(t *testing.T) {
	// v1.1 shape but missing the prv line: never produced, reject.
	wire := "github.com/mverleg/file_endec\x00\nv 1.1.0\nsalt " + key.FixedSalt(3).Base64() +
		"\ncheck xx_sha256 Ag\nmeta1+data:\n"
	var syntaxErr *SyntaxError
	_, err := ParsePublicHeader(strings.NewReader(wire))
	if !errors.As(err, &syntaxErr) {
		t.Errorf("straddling artifact should fail with SyntaxError, got %v", err)
	}

	// Legacy version with a v1.1 end marker is likewise malformed.
	wire = "github.com/mverleg/file_endec\x00\nv 1.0.0\nsalt " + key.FixedSalt(3).Base64() +
		"\ncheck xx_sha256 Ag\nprv U xx_sha256 Ag\nmeta1+data:\n"
	if _, err := ParsePublicHeader(strings.NewReader(wire)); err == nil {
		t.Error("legacy artifact with private meta should fail")
	}
}

func TestParseSyntaxError(t *testing.T) {
	wire := "github.com/mverleg/file_endec\x00\nv 1.0.0\nnovalueline\nsalt x\ncheck xx_sha256 Ag\ndata:\n"
	var syntaxErr *SyntaxError
	_, err := ParsePublicHeader(strings.NewReader(wire))
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("want SyntaxError, got %v", err)
	}
	if syntaxErr.Line != "novalueline" {
		t.Errorf("SyntaxError.Line = %q", syntaxErr.Line)
	}
}
