// Package zstdcodec provides a zstd compression codec.
package zstdcodec

import (
	"github.com/klauspost/compress/zstd"

	"github.com/discochess/ruleval/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements zstd compression. Encoder and decoder are created
// once and reused; both are safe for concurrent use.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// New returns a new zstd codec.
func New() (*Codec, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &Codec{encoder: encoder, decoder: decoder}, nil
}

// Encode compresses data with zstd.
func (c *Codec) Encode(data []byte) ([]byte, error) {
	return c.encoder.EncodeAll(data, nil), nil
}

// Decode decompresses zstd data.
func (c *Codec) Decode(data []byte) ([]byte, error) {
	return c.decoder.DecodeAll(data, nil)
}

// Extension returns "zst".
func (c *Codec) Extension() string {
	return "zst"
}
