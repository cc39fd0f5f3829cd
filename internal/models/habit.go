package models

import (
	"encoding/json"
	"slices"
	"time"
)

type HabitType string

const (
	HabitTypeToDo    HabitType = "to-do"
	HabitTypeNotToDo HabitType = "not-to-do"
)

// HabitTypes lists the recognized habit categories in display order
var HabitTypes = []HabitType{HabitTypeToDo, HabitTypeNotToDo}

// IsKnown reports whether t is one of the recognized habit categories
func (t HabitType) IsKnown() bool {
	return slices.Contains(HabitTypes, t)
}

// Weekdays is the set of scheduled weekdays (0=Sunday..6=Saturday).
// Order and duplicates are kept as given.
type Weekdays []int

// UnmarshalJSON accepts a JSON array of integers. Any other value decodes to
// nil instead of failing so a single malformed habit does not block loading.
func (w *Weekdays) UnmarshalJSON(data []byte) error {
	var days []int
	if err := json.Unmarshal(data, &days); err != nil {
		*w = nil
		return nil
	}
	*w = days
	return nil
}

// Contains reports whether the given weekday is scheduled
func (w Weekdays) Contains(day time.Weekday) bool {
	return slices.Contains(w, int(day))
}

// Habit represents a recurring practice with a single completion flag
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      HabitType `json:"type"`
	Days      Weekdays  `json:"days"`
	Streak    int       `json:"streak"`
	Completed bool      `json:"completed"`

	// rawDays holds a stored days value that is not an integer array. It is
	// written back unchanged for as long as Days stays nil.
	rawDays json.RawMessage
}

// habitJSON mirrors Habit field for field so the encoded key order is stable
type habitJSON struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      HabitType       `json:"type"`
	Days      json.RawMessage `json:"days"`
	Streak    int             `json:"streak"`
	Completed bool            `json:"completed"`
}

// UnmarshalJSON decodes a stored habit. A days value that is not an array of
// integers leaves Days nil and is kept verbatim for MarshalJSON.
func (h *Habit) UnmarshalJSON(data []byte) error {
	var aux habitJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*h = Habit{
		ID:        aux.ID,
		Name:      aux.Name,
		Type:      aux.Type,
		Streak:    aux.Streak,
		Completed: aux.Completed,
	}
	if len(aux.Days) == 0 || string(aux.Days) == "null" {
		return nil
	}

	var days []int
	if err := json.Unmarshal(aux.Days, &days); err != nil {
		h.rawDays = slices.Clone(aux.Days)
		return nil
	}
	h.Days = days
	return nil
}

func (h Habit) MarshalJSON() ([]byte, error) {
	days := h.rawDays
	if h.Days != nil || days == nil {
		encoded, err := json.Marshal(h.Days)
		if err != nil {
			return nil, err
		}
		days = encoded
	}
	return json.Marshal(habitJSON{
		ID:        h.ID,
		Name:      h.Name,
		Type:      h.Type,
		Days:      days,
		Streak:    h.Streak,
		Completed: h.Completed,
	})
}

// HasMalformedDays reports whether the stored days value could not be read
func (h Habit) HasMalformedDays() bool {
	return h.Days == nil && h.rawDays != nil
}

// Clone returns a copy of h that shares no memory with it
func (h Habit) Clone() Habit {
	h.Days = slices.Clone(h.Days)
	h.rawDays = slices.Clone(h.rawDays)
	return h
}

// Stats holds aggregate statistics over all habits
type Stats struct {
	CompletionRate  float64 `json:"completionRate"`
	TotalHabits     int     `json:"totalHabits"`
	CompletedHabits int     `json:"completedHabits"`
	LongestStreak   int     `json:"longestStreak"`
	AverageStreak   float64 `json:"averageStreak"`
}

// Remaining returns the number of habits not currently completed
func (s Stats) Remaining() int {
	return s.TotalHabits - s.CompletedHabits
}
