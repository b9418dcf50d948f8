package port

import (
	"context"
	"database/sql"
)

// DatabaseProvider hands out the database connection, opening it on first
// use.
type DatabaseProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
	Close() error
	IsInitialized() bool
}
