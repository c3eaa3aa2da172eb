package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/anthill/internal/config"
	"github.com/aretw0/anthill/internal/logging"
	"github.com/aretw0/anthill/pkg/adapters/file"
	"github.com/aretw0/anthill/pkg/adapters/memory"
	"github.com/aretw0/anthill/pkg/adapters/redis"
	"github.com/aretw0/anthill/pkg/adapters/sqlite"
	"github.com/aretw0/anthill/pkg/persistence/middleware"
	"github.com/aretw0/anthill/pkg/ports"
)

// OpenStore builds the match store selected by the record section, wrapped
// with logging and the snapshot window. It returns a nil store for the "none"
// backend. The returned close function is never nil.
func OpenStore(cfg config.RecordConfig, logger *slog.Logger) (ports.MatchStore, func() error, error) {
	noop := func() error { return nil }
	if logger == nil {
		logger = logging.NewNop()
	}

	var (
		store   ports.MatchStore
		closeFn = noop
	)
	switch cfg.Backend {
	case "", config.BackendNone:
		return nil, noop, nil
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendFile:
		store = file.New(cfg.Path)
	case config.BackendRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		store, closeFn = s, s.Close
	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		store, closeFn = s, s.Close
	default:
		return nil, noop, fmt.Errorf("unknown record backend %q", cfg.Backend)
	}

	logger.Debug("match store opened", "backend", cfg.Backend, "path", cfg.Path)
	return middleware.Chain(store,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewWindowMiddleware(cfg.KeepWorlds),
	), closeFn, nil
}
