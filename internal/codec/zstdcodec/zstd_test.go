package zstdcodec

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	original := bytes.Repeat([]byte("ruleset "), 128)

	encoded, err := c.Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) >= len(original) {
		t.Errorf("repetitive input should compress: %d >= %d", len(encoded), len(original))
	}

	decoded, err := c.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Error("round-trip mismatch")
	}
}

func TestDecodeGarbage(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Decode([]byte("not zstd")); err == nil {
		t.Error("expected an error decoding garbage")
	}
}
