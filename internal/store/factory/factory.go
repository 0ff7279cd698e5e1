// Package factory opens the Entity Store selected by STORE_DRIVER.
package factory

import (
	"context"
	"fmt"
	"hotelbooking/internal/store"
	"hotelbooking/internal/store/memory"
	mongostore "hotelbooking/internal/store/mongo"
	pgstore "hotelbooking/internal/store/postgres"
	"hotelbooking/pkg/config"
)

// New connects the configured backend through cfg.Client and returns a
// store over it.
func New(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		cfg.Log.Warn("Using in-memory store; data is lost on restart")
		return memory.New(), nil
	case config.DriverMongo:
		cfg.SetMongo()
		return mongostore.New(cfg.Client.Mongo, cfg.MongoDatabaseName, mongostore.Options{
			ReadTimeout:     cfg.ReadTimeout,
			WriteTimeout:    cfg.WriteTimeout,
			LockTTL:         cfg.RoomLockTTL,
			LockWaitTimeout: cfg.RoomLockWaitTimeout,
		}), nil
	case config.DriverPostgres:
		cfg.SetPostgres()
		return pgstore.New(cfg.Client.Postgres, pgstore.Options{
			LockWaitTimeout: cfg.RoomLockWaitTimeout,
		}), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// Migrate applies the schema for the configured backend. The memory driver
// needs none.
func Migrate(ctx context.Context, cfg *config.Config) error {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return nil
	case config.DriverMongo:
		if cfg.Client.Mongo == nil {
			cfg.SetMongo()
		}
		return mongostore.Migrate(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log)
	case config.DriverPostgres:
		if cfg.Client.Postgres == nil {
			cfg.SetPostgres()
		}
		return pgstore.Migrate(ctx, cfg.Client.Postgres, cfg.Log)
	}
	return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
