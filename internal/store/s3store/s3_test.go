package s3store

import (
	"testing"

	"github.com/discochess/ruleval/internal/codec"
	"github.com/discochess/ruleval/internal/codec/noopcodec"
	"github.com/discochess/ruleval/internal/codec/zstdcodec"
)

func TestKeyLayout(t *testing.T) {
	zc, err := zstdcodec.New()
	if err != nil {
		t.Fatalf("creating zstd codec: %v", err)
	}

	tests := []struct {
		prefix string
		codec  codec.Codec
		name   string
		want   string
	}{
		{"", noopcodec.New(), "default", "rulesets/default.json"},
		{"", zc, "default", "rulesets/default.json.zst"},
		{"eval", noopcodec.New(), "club", "eval/rulesets/club.json"},
		{"eval/", zc, "club", "eval/rulesets/club.json.zst"},
	}
	for _, tt := range tests {
		s := &Store{codec: tt.codec}
		if err := WithPrefix(tt.prefix)(s); err != nil {
			t.Fatalf("WithPrefix(%q): %v", tt.prefix, err)
		}
		if got := s.key(tt.name); got != tt.want {
			t.Errorf("key(%q) with prefix %q = %q, want %q", tt.name, tt.prefix, got, tt.want)
		}
	}
}
