package compression

import (
	"bytes"
	"testing"
)

func TestCompressors(t *testing.T) {
	payload := bytes.Repeat([]byte(`[{"id":"1","title":"compressible"}]`), 64)

	compressors := []struct {
		name string
		c    Compressor
	}{
		{"Noop", Noop{}},
		{"Zstd", ZstdCompressor{}},
		{"Gzip", GzipCompressor{}},
	}

	for _, tc := range compressors {
		t.Run(tc.name, func(t *testing.T) {
			compressed, err := tc.c.Compress(payload)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}

			got, err := tc.c.Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Error("Expected round trip to preserve the payload")
			}
		})
	}

	t.Run("Zstd shrinks repetitive data", func(t *testing.T) {
		compressed, err := ZstdCompressor{}.Compress(payload)
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}
		if len(compressed) >= len(payload) {
			t.Errorf("Expected compression, got %d >= %d bytes", len(compressed), len(payload))
		}
	})

	t.Run("Empty payload", func(t *testing.T) {
		for _, tc := range compressors {
			compressed, err := tc.c.Compress(nil)
			if err != nil {
				t.Fatalf("%s Compress failed: %v", tc.name, err)
			}
			got, err := tc.c.Decompress(compressed)
			if err != nil {
				t.Fatalf("%s Decompress failed: %v", tc.name, err)
			}
			if len(got) != 0 {
				t.Errorf("%s: expected empty payload, got %d bytes", tc.name, len(got))
			}
		}
	})
}
