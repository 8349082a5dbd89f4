// Package noopcodec provides a no-op codec (no compression).
package noopcodec

import "github.com/discochess/ruleval/internal/codec"

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements no compression.
type Codec struct{}

// New returns a new no-op codec.
func New() *Codec {
	return &Codec{}
}

// Encode returns data unchanged.
func (c *Codec) Encode(data []byte) ([]byte, error) {
	return data, nil
}

// Decode returns data unchanged.
func (c *Codec) Decode(data []byte) ([]byte, error) {
	return data, nil
}

// Extension returns empty string.
func (c *Codec) Extension() string {
	return ""
}
