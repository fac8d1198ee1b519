package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell-blog/inkwell/internal/util/compression"
)

type FileStore struct { // implements Store
	dir        string
	compressor compression.Compressor
}

// NewFileStore keeps one file per key under dir. With compress set,
// values are zstd-encoded on disk.
func NewFileStore(dir string, compress bool) *FileStore {
	var compressor compression.Compressor = compression.Noop{}
	if compress {
		compressor = compression.ZstdCompressor{}
	}
	return &FileStore{
		dir:        dir,
		compressor: compressor,
	}
}

func (s *FileStore) path(key string) string {
	// Keys are fixed application constants, but keep path traversal out
	// anyway.
	name := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, name+".dat")
}

func (s *FileStore) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("error reading %s: %w", key, err)
	}

	decoded, err := s.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("error decompressing %s: %w", key, err)
	}
	return decoded, nil
}

func (s *FileStore) Write(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("error creating data dir: %w", err)
	}

	encoded, err := s.compressor.Compress(data)
	if err != nil {
		return fmt.Errorf("error compressing %s: %w", key, err)
	}

	// Write via a temp file and rename so a failed write never leaves a
	// truncated value behind.
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error closing %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error replacing %s: %w", key, err)
	}

	storageLogger.Debug().Str("key", key).Int("bytes", len(encoded)).Msg("Wrote storage key")
	return nil
}
