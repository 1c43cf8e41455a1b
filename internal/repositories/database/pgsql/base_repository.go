package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the shared connection pool for all pgsql repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}
