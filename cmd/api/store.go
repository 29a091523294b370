package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/blog-api/internal/core/ports"
	mongostore "github.com/sirpyerre/blog-api/internal/infrastructure/db/mongo"
	"github.com/sirpyerre/blog-api/internal/infrastructure/db/sqlstore"
	"github.com/sirpyerre/blog-api/internal/pkg/config"
)

// store bundles the repositories of whichever backend STORAGE_DRIVER selects.
type store struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	comments ports.CommentRepository
	health   ports.Pinger
	close    func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.Storage.Driver {
	case config.StorageMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &store{
			users:    mongostore.NewUserRepository(db),
			posts:    mongostore.NewPostRepository(db),
			comments: mongostore.NewCommentRepository(db),
			health:   mongostore.NewHealthChecker(client),
			close:    client.Disconnect,
		}, nil

	case config.StorageSQLite, config.StoragePostgres:
		dsn := cfg.Storage.SQLitePath
		if cfg.Storage.Driver == config.StoragePostgres {
			dsn = cfg.Storage.PostgresDSN
		}
		db, err := sqlstore.Open(ctx, sqlstore.Config{
			Driver:   cfg.Storage.Driver,
			DSN:      dsn,
			MaxConns: cfg.Storage.PostgresMaxConns,
			Log:      log,
		})
		if err != nil {
			return nil, err
		}
		return &store{
			users:    sqlstore.NewUserRepository(db),
			posts:    sqlstore.NewPostRepository(db),
			comments: sqlstore.NewCommentRepository(db),
			health:   sqlstore.NewHealthChecker(db),
			close:    func(context.Context) error { return sqlstore.Close(db) },
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
