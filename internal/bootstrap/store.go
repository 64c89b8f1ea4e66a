package bootstrap

import (
	"context"
	"fmt"

	"github.com/noah-isme/classroom-tracker/internal/repository"
	"github.com/noah-isme/classroom-tracker/internal/service"
	"github.com/noah-isme/classroom-tracker/pkg/cache"
	"github.com/noah-isme/classroom-tracker/pkg/config"
	"github.com/noah-isme/classroom-tracker/pkg/database"
)

// StateBackend is a StateStore holding an open connection or directory.
type StateBackend interface {
	service.StateStore
	Close() error
}

// ReadinessChecks maps a dependency name to a probe of its reachability.
type ReadinessChecks map[string]func(ctx context.Context) error

// OpenStateStore builds the configured persistence backend and its readiness checks.
func OpenStateStore(ctx context.Context, cfg *config.Config) (StateBackend, ReadinessChecks, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		checks := ReadinessChecks{
			"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}
		return repository.NewRedisStateRepository(client, cfg.Store.KeyPrefix), checks, nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewPostgresStateRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		checks := ReadinessChecks{
			"postgres": db.PingContext,
		}
		return repo, checks, nil
	case config.StoreDriverFile, "":
		repo, err := repository.NewFileStateRepository(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
