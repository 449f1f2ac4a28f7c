package store

import (
	"context"
	"fmt"

	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/logger"
)

// Storages aggregates every store the application uses, constructed once at
// startup from the storage configuration.
type Storages struct {
	Resources ResourceStore
}

// NewStorages selects the backend named by cfg.Driver, connects it, runs the
// migrations for SQL backends, and returns the assembled [Storages].
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch cfg.Driver {
	case "", config.DriverMemory:
		return &Storages{Resources: NewMemoryStore(log)}, nil

	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			return nil, err
		}
		return &Storages{Resources: NewSQLResourceStore(db, log)}, nil

	case config.DriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			return nil, err
		}
		return &Storages{Resources: NewSQLResourceStore(db, log)}, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Driver)
	}
}
