package storage

import "github.com/julianstephens/streakly/internal/constants"

// MemoryStore keeps items in a map. Nothing survives the process.
type MemoryStore struct {
	items map[string]string
	// Writes counts successful SetItem and RemoveItem calls
	Writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	if s.items != nil {
		return ErrAlreadyInitialized
	}
	s.items = make(map[string]string)
	return nil
}

func (s *MemoryStore) Load() error {
	if s.items == nil {
		s.items = make(map[string]string)
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) GetItem(key string) (string, bool, error) {
	if s.items == nil {
		return "", false, ErrNotLoaded
	}
	value, ok := s.items[key]
	return value, ok, nil
}

func (s *MemoryStore) SetItem(key, value string) error {
	if s.items == nil {
		return ErrNotLoaded
	}
	s.items[key] = value
	s.Writes++
	return nil
}

func (s *MemoryStore) RemoveItem(key string) error {
	if s.items == nil {
		return ErrNotLoaded
	}
	delete(s.items, key)
	s.Writes++
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return constants.MemoryTarget
}
