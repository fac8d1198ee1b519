// Package storage is the durable key/value layer backing the post
// collection and the theme preference. Each key maps to one serialized
// blob; backends differ only in where the blob lives.
package storage

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrKeyNotFound is returned by Read when a key has never been written.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store reads and writes keyed blobs. A Write either fully succeeds or
// leaves the previously persisted value intact.
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

var storageLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storageLogger = l
}
