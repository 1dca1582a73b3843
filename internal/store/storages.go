package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
)

// Backend names the kind of user store selected by a DSN.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// DetectBackend maps a DSN to its backend:
//   - "" or "memory"                          -> BackendMemory
//   - "postgres://..." or "postgresql://..."  -> BackendPostgres
//   - "file:..." or a path ending .db/.sqlite -> BackendSQLite
func DetectBackend(dsn string) (Backend, error) {
	lower := strings.ToLower(strings.TrimSpace(dsn))

	switch {
	case lower == "" || lower == string(BackendMemory):
		return BackendMemory, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres, nil
	case strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return BackendSQLite, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
}

// Storages bundles the repositories of the service together with the
// database handle behind them (nil for the memory backend).
type Storages struct {
	UserRepository UserRepository
	Backend        Backend

	db *DB
}

// NewStorages connects to the backend selected by cfg.DB.DSN, applies the
// schema migrations for SQL backends, and builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	backend, err := DetectBackend(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	var db *DB
	switch backend {
	case BackendMemory:
		log.Warn().Msg("no database configured, users are kept in memory")
		return &Storages{
			UserRepository: NewMemoryUserRepository(log),
			Backend:        backend,
		}, nil
	case BackendPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case BackendSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error migrating database")
		db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		Backend:        backend,
		db:             db,
	}, nil
}

// Ping checks that the backend is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
