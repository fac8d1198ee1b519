package db

import (
	"database/sql"

	"github.com/rs/zerolog"
)

// Db abstracts the relational backend behind the key/value storage
// table. The storage layer only ever reads single rows and upserts, so
// the surface is deliberately small.
type Db interface {
	InitDb() error

	Get() *sql.DB
	Close() error

	Exec(query string, args ...interface{}) (sql.Result, error)
}

var dbLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	dbLogger = l
}
