// Package codec provides compression for stored ruleset documents.
// Documents are small, so codecs work on whole byte slices.
package codec

// Codec compresses and decompresses document bytes.
type Codec interface {
	// Encode compresses data.
	Encode(data []byte) ([]byte, error)
	// Decode decompresses data.
	Decode(data []byte) ([]byte, error)
	// Extension returns the file extension without dot (e.g., "zst",
	// "gz"). Returns empty string for no compression.
	Extension() string
}
