// Package tracker owns the habit collection: its mutation rules, streak
// accounting and derived statistics. Every mutation is written through to
// the injected Persistence before the call returns.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
)

// ErrHabitNotFound is for callers that turn a false lookup result into an error
var ErrHabitNotFound = errors.New("habit not found")

// Persistence is the durable store the tracker loads from and writes through to
type Persistence interface {
	GetUserName() (string, bool, error)
	SaveUserName(name string) error
	GetHabits() ([]models.Habit, error)
	SaveHabits(habits []models.Habit) error
}

// HabitUpdate carries the editable fields of a habit
type HabitUpdate struct {
	Name string
	Type models.HabitType
	Days models.Weekdays
}

type Option func(*Tracker)

// WithClock sets the source of "now" used to determine today's weekday
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithIDGenerator replaces the default UUID generator
func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) {
		t.newID = newID
	}
}

// WithLogger replaces the package-level logger
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		t.log = l
	}
}

type Tracker struct {
	mu     sync.Mutex
	store  Persistence
	habits []models.Habit
	now    func() time.Time
	newID  func() string
	log    *log.Logger
}

// New loads the habit collection from store
func New(store Persistence, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
		log:   logger.Logger,
	}
	for _, opt := range opts {
		opt(t)
	}

	habits, err := store.GetHabits()
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	t.habits = habits
	t.debug("Loaded habits", "count", len(habits))

	return t, nil
}

func (t *Tracker) debug(msg string, keyvals ...interface{}) {
	if t.log != nil {
		t.log.Debug(msg, keyvals...)
	}
}

// persist writes the whole collection. Callers hold t.mu.
func (t *Tracker) persist() error {
	if err := t.store.SaveHabits(t.habits); err != nil {
		if t.log != nil {
			t.log.Error("Failed to persist habits", "error", err)
		}
		return err
	}
	return nil
}

func (t *Tracker) indexOf(id string) int {
	return slices.IndexFunc(t.habits, func(h models.Habit) bool { return h.ID == id })
}

// Habits returns a snapshot of the collection in creation order
func (t *Tracker) Habits() []models.Habit {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneAll(t.habits)
}

// Habit looks up a habit by id
func (t *Tracker) Habit(id string) (models.Habit, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return models.Habit{}, false
	}
	return t.habits[i].Clone(), true
}

// FindByName returns the first habit with exactly the given name
func (t *Tracker) FindByName(name string) (models.Habit, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, h := range t.habits {
		if h.Name == name {
			return h.Clone(), true
		}
	}
	return models.Habit{}, false
}

// AddHabit appends a new habit with a fresh id, zero streak and not completed.
// Input is stored as given; callers validate beforehand.
func (t *Tracker) AddHabit(name string, habitType models.HabitType, days models.Weekdays) (models.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	habit := models.Habit{
		ID:   t.newID(),
		Name: name,
		Type: habitType,
		Days: slices.Clone(days),
	}
	t.habits = append(t.habits, habit)
	t.debug("Added habit", "id", habit.ID, "name", name)

	if err := t.persist(); err != nil {
		return models.Habit{}, err
	}
	return habit.Clone(), nil
}

// UpdateHabit overwrites name, type and days. Streak and completion are kept.
// The boolean is false when no habit has the given id.
func (t *Tracker) UpdateHabit(id string, update HabitUpdate) (models.Habit, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return models.Habit{}, false, nil
	}

	h := &t.habits[i]
	h.Name = update.Name
	h.Type = update.Type
	h.Days = slices.Clone(update.Days)
	t.debug("Updated habit", "id", id)

	if err := t.persist(); err != nil {
		return models.Habit{}, true, err
	}
	return h.Clone(), true, nil
}

// DeleteHabit removes the habit with the given id, if present, and returns
// the remaining collection. The collection is persisted either way.
func (t *Tracker) DeleteHabit(id string) ([]models.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.habits = slices.DeleteFunc(t.habits, func(h models.Habit) bool { return h.ID == id })
	t.debug("Deleted habit", "id", id)

	if err := t.persist(); err != nil {
		return nil, err
	}
	return cloneAll(t.habits), nil
}

// ToggleHabitCompletion sets the completion flag. Marking complete always adds
// one to the streak and marking incomplete always removes one (never below
// zero), whatever the previous flag was.
func (t *Tracker) ToggleHabitCompletion(id string, completed bool) (models.Habit, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return models.Habit{}, false, nil
	}

	h := &t.habits[i]
	h.Completed = completed
	if completed {
		h.Streak++
	} else {
		h.Streak = max(0, h.Streak-1)
	}
	t.debug("Toggled habit", "id", id, "completed", completed, "streak", h.Streak)

	if err := t.persist(); err != nil {
		return models.Habit{}, true, err
	}
	return h.Clone(), true, nil
}

// TodaysHabits returns the habits scheduled for the current local weekday.
// Habits whose days could not be decoded are left out.
func (t *Tracker) TodaysHabits() []models.Habit {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.now().Weekday()
	todays := []models.Habit{}
	for _, h := range t.habits {
		if h.Days != nil && h.Days.Contains(today) {
			todays = append(todays, h.Clone())
		}
	}
	return todays
}

// Today returns the tracker's notion of the current time
func (t *Tracker) Today() time.Time {
	return t.now()
}

// CalculateStats summarizes completion and streaks across all habits
func (t *Tracker) CalculateStats() models.Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.habits) == 0 {
		return models.Stats{}
	}

	var completed, totalStreak, longest int
	for i, h := range t.habits {
		if h.Completed {
			completed++
		}
		totalStreak += h.Streak
		if i == 0 || h.Streak > longest {
			longest = h.Streak
		}
	}

	total := len(t.habits)
	return models.Stats{
		CompletionRate:  float64(completed) / float64(total) * 100,
		TotalHabits:     total,
		CompletedHabits: completed,
		LongestStreak:   longest,
		AverageStreak:   float64(totalStreak) / float64(total),
	}
}

// UserName returns the stored greeting name
func (t *Tracker) UserName() (string, bool, error) {
	return t.store.GetUserName()
}

// SaveUserName stores the greeting name
func (t *Tracker) SaveUserName(name string) error {
	return t.store.SaveUserName(name)
}

func cloneAll(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, len(habits))
	for i, h := range habits {
		out[i] = h.Clone()
	}
	return out
}
