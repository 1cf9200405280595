package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
	"github.com/jhoicas/b2b-portal-api/internal/infrastructure/mongo"
	"github.com/jhoicas/b2b-portal-api/internal/infrastructure/postgres"
	"github.com/jhoicas/b2b-portal-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/b2b-portal-api/pkg/config"
)

// stores repositorios del backend elegido por STORE_DRIVER.
type stores struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	orders    repository.OrderRepository
	stats     repository.StatsRepository
	close     func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:     postgres.NewUserRepository(pool),
			companies: postgres.NewCompanyRepository(pool),
			orders:    postgres.NewOrderRepository(pool),
			stats:     postgres.NewStatsRepository(pool),
			close:     pool.Close,
		}, nil

	case config.StoreDriverMongo:
		client, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			users:     mongo.NewUserRepository(db),
			companies: mongo.NewCompanyRepository(db),
			orders:    mongo.NewOrderRepository(db),
			stats:     mongo.NewStatsRepository(db),
			close:     func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.StoreDriverSQLite:
		if dir := filepath.Dir(cfg.Store.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("crear directorio de SQLite: %w", err)
			}
		}
		db, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:     sqlite.NewUserRepository(db),
			companies: sqlite.NewCompanyRepository(db),
			orders:    sqlite.NewOrderRepository(db),
			stats:     sqlite.NewStatsRepository(db),
			close:     func() { _ = sqlite.Close(db) },
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Store.Driver)
}
