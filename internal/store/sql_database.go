package store

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/migrations"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB wraps the raw connection pool with the driver name and logger so that
// repositories can build driver-appropriate queries.
type DB struct {
	*sql.DB
	driver string
	logger *logger.Logger
}

// Migrate applies all embedded schema migrations to the database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// builder returns a squirrel statement builder configured with the
// placeholder format the driver expects ($N for PostgreSQL, ? for SQLite).
func (db *DB) builder() sq.StatementBuilderType {
	if db.driver == DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// likeOperator returns the case-insensitive pattern-match operator for the
// driver. SQLite's plain LIKE is already case-insensitive for ASCII.
func (db *DB) likeOperator() string {
	if db.driver == DriverPostgres {
		return "ILIKE"
	}
	return "LIKE"
}

// postgresError extracts the PostgreSQL error code from err, or returns an
// empty string when err did not originate from the pgx driver.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
