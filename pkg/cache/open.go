package cache

import (
	"context"
	"fmt"

	"github.com/rokucommunity/release-dashboard/pkg/config"
)

// Open creates the store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Cache) (Store, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return NewNullStore(), nil
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile, "":
		dir, err := cfg.CacheDir()
		if err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
		return NewFileStore(dir)
	case config.BackendRedis:
		s, err := DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return s, nil
	case config.BackendMongo:
		s, err := DialMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
