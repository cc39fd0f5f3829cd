package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pq "github.com/lib/pq"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/storage"
)

const (
	itemsTable       = constants.AppName + ".items"
	statementTimeout = 5 * time.Second
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// PgConnection is the subset of *pgxpool.Pool the store needs
type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	connStr string
	conn    PgConnection
	close   func()
}

func New(connStr string) *Store {
	return &Store{
		connStr: connStr,
	}
}

// NewWithConn creates a store on top of an existing connection
func NewWithConn(conn PgConnection) *Store {
	return &Store{
		conn: conn,
	}
}

// IsConnString reports whether target looks like a PostgreSQL URL
func IsConnString(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

// hasSSLMode checks if the connection string contains an sslmode parameter key (case-insensitive).
// It supports both URL-style and DSN-style connection strings.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}

	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "sslmode") {
			return true
		}
	}

	return false
}

// ValidateConnString checks if a connection string is a valid
// PostgreSQL connection string (URI or DSN) and ensures it does not
// contain a password.
//
// It returns true if the connection string is valid and contains no password.
// Otherwise, it returns false and an error describing the issue.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if IsConnString(connStr) {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}

		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
	} else {
		for _, pair := range strings.Fields(connStr) {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) == 2 && strings.ToLower(strings.TrimSpace(parts[0])) == "password" {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

func (s *Store) connect(ctx context.Context) error {
	if s.conn != nil {
		return nil
	}

	pool, err := pgxpool.New(ctx, s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.conn = pool
	s.close = pool.Close

	if err := pool.Ping(ctx); err != nil {
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

func (s *Store) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	if err := s.connect(ctx); err != nil {
		return err
	}

	if _, err := s.conn.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	_, err := s.conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+itemsTable+` (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	if err != nil {
		return fmt.Errorf("failed to create items table: %w", err)
	}

	logger.Debug("Initialized PostgreSQL storage", "table", itemsTable)
	return nil
}

func (s *Store) Load() error {
	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	if err := s.connect(ctx); err != nil {
		return err
	}

	var exists bool
	if err := s.conn.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", itemsTable).Scan(&exists); err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		return storage.ErrNotInitialized
	}

	return nil
}

func (s *Store) Close() error {
	if s.close != nil {
		s.close()
		s.close = nil
	}
	s.conn = nil
	return nil
}

func (s *Store) GetItem(key string) (string, bool, error) {
	if s.conn == nil {
		return "", false, storage.ErrNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	var value string
	err := s.conn.QueryRow(ctx, "SELECT value FROM "+itemsTable+" WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read item %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) SetItem(key, value string) error {
	if s.conn == nil {
		return storage.ErrNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := s.conn.Exec(ctx,
		"INSERT INTO "+itemsTable+" (key, value, updated_at) VALUES ($1, $2, now()) "+
			"ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write item %q: %w", key, err)
	}
	return nil
}

func (s *Store) RemoveItem(key string) error {
	if s.conn == nil {
		return storage.ErrNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	if _, err := s.conn.Exec(ctx, "DELETE FROM "+itemsTable+" WHERE key = $1", key); err != nil {
		return fmt.Errorf("failed to remove item %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	// Return a non-sensitive identifier instead of the full connection string
	return "postgresql"
}
