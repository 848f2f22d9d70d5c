package store

import (
	"context"
	"fmt"

	"github.com/gvnetwork/contacts-api/internal/config"
	"github.com/gvnetwork/contacts-api/internal/logger"
)

// Storages aggregates every repository backed by the contacts store.
type Storages struct {
	DB *DB

	UserRepository       UserRepository
	ContactRepository    ContactRepository
	ConnectionRepository ConnectionRepository
}

// NewStorages connects to the configured database backend, applies
// migrations, and wires all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.DB.Driver {
	case DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		DB:                   db,
		UserRepository:       NewUserRepository(db, log),
		ContactRepository:    NewContactRepository(db, log),
		ConnectionRepository: NewConnectionRepository(db, log),
	}, nil
}
