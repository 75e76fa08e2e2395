package compress

import (
	"bytes"
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("hello"),
		bytes.Repeat([]byte("compressible data "), 1000),
	}
	for _, data := range cases {
		packed, err := Compress(data, AlgBrotli, nil)
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}
		back, err := Decompress(packed, AlgBrotli, nil)
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}
		if !bytes.Equal(data, back) {
			t.Errorf("round trip mismatch for %d bytes", len(data))
		}
	}
}

func TestCompressShrinksRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 10_000)
	packed, err := Compress(data, AlgBrotli, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(packed) >= len(data)/10 {
		t.Errorf("repetitive data barely compressed: %d -> %d", len(data), len(packed))
	}
}

func TestDecompressGarbageFails(t *testing.T) {
	_, err := Decompress([]byte("this is definitely not brotli data!!"), AlgBrotli, nil)
	if !errors.Is(err, ErrCompressionFailed) {
		t.Errorf("garbage input should fail with ErrCompressionFailed, got %v", err)
	}
}

func TestProgressCallback(t *testing.T) {
	var seen []CompressionAlg
	if _, err := Compress([]byte("x"), AlgBrotli, func(a CompressionAlg) { seen = append(seen, a) }); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != AlgBrotli {
		t.Errorf("progress = %v", seen)
	}
}
