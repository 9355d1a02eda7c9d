package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/BuzzHive_Go/internal/config"
	"github.com/osse101/BuzzHive_Go/internal/database"
	"github.com/osse101/BuzzHive_Go/internal/database/postgres"
	"github.com/osse101/BuzzHive_Go/internal/database/sqlite"
	"github.com/osse101/BuzzHive_Go/internal/handler"
	"github.com/osse101/BuzzHive_Go/internal/repository"
)

// Storage is the opened snapshot backend
type Storage struct {
	Blobs  repository.BlobStore
	Pinger handler.Pinger
	Close  func()
}

// OpenStorage connects the blob store selected by cfg.StoreDriver and brings
// its schema up to date
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPool(ctx, database.PoolConfig{
			ConnString:  cfg.GetDBConnString(),
			MaxConns:    cfg.DBMaxConns,
			MaxIdleTime: cfg.DBMaxConnIdleTime,
			MaxLifetime: cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, err
		}
		if err := database.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return &Storage{
			Blobs:  postgres.NewSnapshotRepository(pool),
			Pinger: pool,
			Close:  pool.Close,
		}, nil

	case config.StoreDriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver, "path", cfg.SQLitePath)
		return &Storage{
			Blobs:  repo,
			Pinger: repo,
			Close:  repo.Close,
		}, nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStoreDriver, cfg.StoreDriver)
}
