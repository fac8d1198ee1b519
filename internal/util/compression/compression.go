// Package compression provides pluggable compressors for persisted blobs.
package compression

// Compressor round-trips a byte payload through a compression codec.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Noop passes data through unchanged, for backends that store plain text.
type Noop struct{}

func (Noop) Compress(data []byte) ([]byte, error)   { return data, nil }
func (Noop) Decompress(data []byte) ([]byte, error) { return data, nil }
