// Package persistence maps the user name and habit collection onto a
// string-keyed storage backend.
package persistence

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/storage"
)

type Storage struct {
	provider storage.Provider
}

func New(provider storage.Provider) *Storage {
	return &Storage{
		provider: provider,
	}
}

// GetUserName returns the stored greeting name, if any
func (s *Storage) GetUserName() (string, bool, error) {
	name, ok, err := s.provider.GetItem(constants.UserNameKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to read user name: %w", err)
	}
	return name, ok, nil
}

func (s *Storage) SaveUserName(name string) error {
	if err := s.provider.SetItem(constants.UserNameKey, name); err != nil {
		return fmt.Errorf("failed to save user name: %w", err)
	}
	return nil
}

// ClearUserName forgets the stored greeting name
func (s *Storage) ClearUserName() error {
	if err := s.provider.RemoveItem(constants.UserNameKey); err != nil {
		return fmt.Errorf("failed to clear user name: %w", err)
	}
	return nil
}

// GetHabits returns the stored habits, or an empty slice when none were saved
func (s *Storage) GetHabits() ([]models.Habit, error) {
	raw, ok, err := s.provider.GetItem(constants.HabitsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []models.Habit{}, nil
	}

	var habits []models.Habit
	if err := json.Unmarshal([]byte(raw), &habits); err != nil {
		return nil, fmt.Errorf("failed to parse habits: %w", err)
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits, nil
}

// SaveHabits overwrites the stored collection
func (s *Storage) SaveHabits(habits []models.Habit) error {
	if habits == nil {
		habits = []models.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("failed to serialize habits: %w", err)
	}
	if err := s.provider.SetItem(constants.HabitsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}
	return nil
}

// DeleteHabit removes a habit straight from storage, bypassing any loaded tracker
func (s *Storage) DeleteHabit(id string) ([]models.Habit, error) {
	habits, err := s.GetHabits()
	if err != nil {
		return nil, err
	}

	remaining := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.ID != id {
			remaining = append(remaining, h)
		}
	}

	if err := s.SaveHabits(remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}
