// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassifier maps driver-level errors onto the store's domain sentinels
// where a mapping exists. Each SQL backend supplies its own implementation.
type ErrorClassifier interface {
	// IsUniqueViolation reports whether err signals a primary-key or
	// unique-constraint violation.
	IsUniqueViolation(err error) bool
}

// PostgresErrorClassifier implements [ErrorClassifier] for PostgreSQL by
// inspecting the pgconn error code returned by the pgx driver.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// IsUniqueViolation implements [ErrorClassifier]. It attempts to unwrap err
// as a *pgconn.PgError and matches the unique_violation code (23505).
func (c *PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	return false
}

// SQLiteErrorClassifier implements [ErrorClassifier] for SQLite via the
// extended result codes exposed by mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// IsUniqueViolation implements [ErrorClassifier]. SQLite reports both
// PRIMARY KEY and UNIQUE conflicts as constraint errors with dedicated
// extended codes.
func (c *SQLiteErrorClassifier) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
