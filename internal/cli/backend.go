package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/parley/internal/config"
	"github.com/aretw0/parley/pkg/adapters/file"
	"github.com/aretw0/parley/pkg/adapters/redis"
	"github.com/aretw0/parley/pkg/persistence/middleware"
	"github.com/aretw0/parley/pkg/ports"
)

// Backend is the session persistence selected by configuration.
type Backend struct {
	Store  ports.SessionStore
	Locker ports.DistributedLocker
	// Kind is "redis" or "file".
	Kind  string
	close func() error
}

// Close releases connections held by the backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend picks Redis when RedisURL is set and the file store otherwise,
// then wraps the store with the configured masking and encryption.
func OpenBackend(cfg config.Config, logger *slog.Logger) (*Backend, error) {
	b := &Backend{}

	if cfg.RedisURL != "" {
		store, err := redis.New(cfg.RedisURL, redis.WithTTL(cfg.SessionTTL))
		if err != nil {
			return nil, err
		}
		b.Store = store
		b.Locker = redis.NewLocker(store.Client(), redis.DefaultPrefix)
		b.Kind = "redis"
		b.close = store.Close
	} else {
		b.Store = file.NewStore(cfg.SessionDir)
		b.Kind = "file"
	}

	var mws []middleware.Middleware
	if len(cfg.MaskVariables) > 0 {
		pii, err := middleware.NewPIIMiddleware(cfg.MaskVariables)
		if err != nil {
			b.Close()
			return nil, err
		}
		mws = append(mws, pii)
	}

	key, err := cfg.EncryptionKeyBytes()
	if err != nil {
		b.Close()
		return nil, err
	}
	if key != nil {
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("invalid encryption config: %w", err)
		}
		mws = append(mws, enc)
	}
	b.Store = middleware.Chain(b.Store, mws...)

	logger.Debug("Session backend ready",
		"kind", b.Kind,
		"masked_patterns", len(cfg.MaskVariables),
		"encrypted", key != nil,
	)
	return b, nil
}
