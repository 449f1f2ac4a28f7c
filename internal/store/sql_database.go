package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/migrations"
)

// DB bundles an open database handle with the pieces that differ between the
// SQL backends: the placeholder format squirrel builds queries with, the
// goose dialect used for migrations, and the driver-specific error
// classifier.
type DB struct {
	*sql.DB

	builder    sq.StatementBuilderType
	dialect    string
	classifier ErrorClassifier
	logger     *logger.Logger
}

// Migrate applies the embedded goose migrations to the database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
