package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell-blog/inkwell/internal/db"
	"github.com/inkwell-blog/inkwell/internal/util/compression"
)

type DBStore struct { // implements Store
	db         db.Db
	compressor compression.Compressor
}

// NewDBStore persists keys as zstd-compressed rows in the storage table.
func NewDBStore(database db.Db) *DBStore {
	return &DBStore{
		db:         database,
		compressor: compression.ZstdCompressor{},
	}
}

func (s *DBStore) Read(key string) ([]byte, error) {
	var compressed []byte
	row := s.db.Get().QueryRow(`SELECT value FROM storage WHERE key = ?`, key)
	if err := row.Scan(&compressed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("error reading %s: %w", key, err)
	}

	data, err := s.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing %s: %w", key, err)
	}
	return data, nil
}

func (s *DBStore) Write(key string, data []byte) error {
	compressed, err := s.compressor.Compress(data)
	if err != nil {
		return fmt.Errorf("error compressing %s: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO storage (key, value, modified_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, modified_at = excluded.modified_at`,
		key, compressed, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", key, err)
	}

	storageLogger.Debug().Str("key", key).Int("bytes", len(compressed)).Msg("Wrote storage key")
	return nil
}
