package backend

import (
	"context"
	"fmt"

	"splitter/internal/kv/memory"
	"splitter/internal/kv/sqlite"
	"splitter/internal/log"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Default(log.ComponentBackend)
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	var store *memory.Store
	if config.SeedDir != "" {
		seeded, err := memory.NewFromFiles(config.SeedDir, config.QuotaBytes)
		if err != nil {
			return nil, fmt.Errorf("seed memory backend: %w", err)
		}
		store = seeded
	} else {
		store = memory.New(config.QuotaBytes)
	}

	f.logger.InfoContext(ctx, "Initialized memory backend",
		"quota_bytes", config.QuotaBytes,
		"seed_dir", config.SeedDir,
		log.FieldBytes, store.Used())

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}
