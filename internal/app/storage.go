package app

import (
	"context"
	"fmt"
	"path/filepath"

	"pricealert/config"
	"pricealert/pkg/storage"
	"pricealert/pkg/storage/file"
	"pricealert/pkg/storage/memory"
	"pricealert/pkg/storage/postgres"
	"pricealert/pkg/storage/s3"
	"pricealert/pkg/storage/sqlite"

	"go.uber.org/zap"
)

// OpenStorage builds the alert storage backend named by cfg.Storage.Driver.
func OpenStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.Store, error) {
	sc := cfg.Storage

	switch sc.Driver {
	case "memory":
		log.Warn("memory storage selected, alerts will not survive a restart")
		return memory.New(), nil

	case "", "file":
		return file.New(sc.Path)

	case "sqlite":
		path := sc.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "alerts.db")
		}
		return sqlite.New(path)

	case "postgres":
		return postgres.InitializeAndMigrate(cfg.Postgres, cfg.Log.Environment, true, log)

	case "s3":
		if sc.Bucket == "" {
			return nil, fmt.Errorf("storage.bucket is required for the s3 driver")
		}
		return s3.New(ctx, sc.Bucket, sc.Prefix)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
}
