package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/keyring"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/storage/postgres"
	"github.com/julianstephens/streakly/internal/storage/sqlite"
)

// OpenStore picks a storage backend for target:
//   - ":memory:" keeps everything in memory
//   - postgres:// and postgresql:// URLs use PostgreSQL
//   - paths ending in .json use a single JSON file
//   - any other path is a SQLite database
//
// PostgreSQL targets must not embed a password. The credentials come from
// connection (the STREAKLY_DB_CONNECTION value), then the OS keyring, and
// otherwise from .pgpass when the server asks for one.
func OpenStore(target, connection string) (storage.Provider, error) {
	switch {
	case target == constants.MemoryTarget:
		return storage.NewMemoryStore(), nil
	case postgres.IsConnString(target):
		if _, err := postgres.ValidateConnString(target); err != nil {
			return nil, err
		}
		return postgres.New(resolveConnection(target, connection)), nil
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return storage.NewJSONStore(target), nil
	case target == "":
		return nil, fmt.Errorf("no storage target configured")
	default:
		return sqlite.NewStore(target), nil
	}
}

func resolveConnection(target, connection string) string {
	if connection != "" {
		logger.Debug("Using connection string from environment", "env", constants.EnvConnection)
		return connection
	}

	connStr, err := keyring.GetConnectionString()
	if err == nil {
		logger.Debug("Using connection string from OS keyring")
		return connStr
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return target
}

// isFileBacked reports whether the store keeps its data in a single local file
func isFileBacked(store storage.Provider) bool {
	switch store.(type) {
	case *storage.JSONStore, *sqlite.Store:
		return true
	}
	return false
}
