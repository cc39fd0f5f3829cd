package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/persistence"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/validation"
)

type Context struct {
	Store       storage.Provider
	Persistence *persistence.Storage
	Out         io.Writer
	Now         func() time.Time

	tracker *tracker.Tracker
}

func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:       store,
		Persistence: persistence.New(store),
		Out:         os.Stdout,
		Now:         time.Now,
	}
}

// Tracker returns the habit tracker, loading habits from storage on first use.
// The store must already be loaded.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	tr, err := tracker.New(c.Persistence, tracker.WithClock(c.Now))
	if err != nil {
		return nil, err
	}
	c.tracker = tr
	return tr, nil
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// resolveHabit looks a habit up by ID, then by exact name
func resolveHabit(tr *tracker.Tracker, ref string) (models.Habit, error) {
	if habit, ok := tr.Habit(ref); ok {
		return habit, nil
	}
	if habit, ok := tr.FindByName(ref); ok {
		return habit, nil
	}
	return models.Habit{}, fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, ref)
}

// ScheduleFlags selects the weekdays a habit is scheduled on
type ScheduleFlags struct {
	Days     string `help:"Comma-separated weekdays (mon,tue,... or 0-6, 0=Sunday)." xor:"schedule"`
	Everyday bool   `help:"Schedule the habit every day." xor:"schedule"`
	Weekdays bool   `help:"Schedule the habit Monday through Friday." xor:"schedule"`
}

func (f ScheduleFlags) isSet() bool {
	return f.Days != "" || f.Everyday || f.Weekdays
}

func (f ScheduleFlags) resolve() (models.Weekdays, error) {
	switch {
	case f.Everyday:
		return validation.ParseWeekdays("everyday")
	case f.Weekdays:
		return validation.ParseWeekdays("weekdays")
	default:
		return validation.ParseWeekdays(f.Days)
	}
}
