package storage

import "errors"

var (
	// ErrNotInitialized is returned by Load when no storage exists yet
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrAlreadyInitialized is returned by Init when storage already exists
	ErrAlreadyInitialized = errors.New("storage already initialized")
	// ErrNotLoaded is returned when an item is accessed before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a synchronous string-keyed store. Every SetItem replaces the
// whole value for its key.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error

	// Utils
	GetConfigPath() string
}
