package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/logger"
)

// NewConnectSQLite opens the SQLite database file named by the DSN, creating
// it first when it does not exist yet.
func NewConnectSQLite(ctx context.Context, cfg config.Storage, log *logger.Logger) (*DB, error) {
	if err := ensureDatabaseFile(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error pinging database")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("dsn", cfg.DSN).Msg("connected to database")

	return &DB{
		DB:         conn,
		builder:    sq.StatementBuilder.PlaceholderFormat(sq.Question),
		dialect:    "sqlite3",
		classifier: NewSQLiteErrorClassifier(),
		logger:     log,
	}, nil
}

// ensureDatabaseFile creates an empty database file when none exists, so a
// first run against a fresh DSN does not fail.
func ensureDatabaseFile(dbFile string) error {
	f, err := os.OpenFile(dbFile, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("error creating DB file: %w", err)
	}

	return f.Close()
}
