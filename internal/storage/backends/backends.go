// Package backends opens the configured storage implementations.
package backends

import (
	"context"

	"city-stats/internal/config"
	"city-stats/internal/storage"
	chstore "city-stats/internal/storage/clickhouse"
	"city-stats/internal/storage/file"
	"city-stats/internal/storage/migrations"
	pgstore "city-stats/internal/storage/postgres"
	"city-stats/internal/storage/sqlite"
)

// OpenSaveStore opens the first configured save backend: PostgreSQL,
// SQLite, then a state-file directory. With none configured it returns a
// nil store. The returned close function is never nil.
func OpenSaveStore(ctx context.Context, s config.StorageConfig) (storage.SaveStore, func(), error) {
	switch {
	case s.PostgresDSN != "":
		pool, err := pgstore.NewPool(ctx, s.PostgresDSN)
		if err != nil {
			return nil, func() {}, err
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, func() {}, err
		}
		return pgstore.NewSaveStore(pool), pool.Close, nil

	case s.SQLitePath != "":
		db, err := sqlite.Open(s.SQLitePath)
		if err != nil {
			return nil, func() {}, err
		}
		return sqlite.NewSaveStore(db), func() { db.Close() }, nil

	case s.SaveDir != "":
		store, err := file.NewSaveStore(s.SaveDir)
		if err != nil {
			return nil, func() {}, err
		}
		return store, func() {}, nil

	default:
		return nil, func() {}, nil
	}
}

// OpenArchive connects to ClickHouse, applies migrations and returns the
// turn archive. With no DSN configured it returns a nil archive.
func OpenArchive(ctx context.Context, s config.StorageConfig) (storage.SnapshotArchive, func(), error) {
	if s.ClickhouseDSN == "" {
		return nil, func() {}, nil
	}
	conn, err := migrations.RunClickhouseMigrations(ctx, s.ClickhouseDSN)
	if err != nil {
		return nil, func() {}, err
	}
	return chstore.NewSnapshotStore(conn), func() { conn.Close() }, nil
}
