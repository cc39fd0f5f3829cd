package cli

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/utils"
	"github.com/julianstephens/streakly/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit's name, type or schedule."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	List   HabitListCmd   `cmd:"" help:"List all habits."`
	Done   HabitDoneCmd   `cmd:"" help:"Mark a habit as completed."`
	Undo   HabitUndoCmd   `cmd:"" help:"Mark a habit as not completed."`
}

type HabitAddCmd struct {
	Name     string        `arg:"" help:"Habit name."`
	Type     string        `help:"Habit type (to-do or not-to-do)." default:"to-do"`
	Schedule ScheduleFlags `embed:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	name, err := validation.NormalizeName(c.Name)
	if err != nil {
		return err
	}
	habitType, err := validation.ParseHabitType(c.Type)
	if err != nil {
		return err
	}

	days := validation.Everyday
	if c.Schedule.isSet() {
		if days, err = c.Schedule.resolve(); err != nil {
			return err
		}
	}

	result := validation.New().ValidateInput(name, habitType, days)
	if err := result.Err(); err != nil {
		return err
	}

	if existing, ok := tr.FindByName(name); ok {
		ctx.printf("Note: a habit named %q already exists (ID: %s)\n", name, existing.ID)
	}

	habit, err := tr.AddHabit(name, habitType, days)
	if err != nil {
		return err
	}

	ctx.printf("Added habit: %s (ID: %s, %s)\n", habit.Name, habit.ID, validation.FormatWeekdays(habit.Days))
	return nil
}

type HabitEditCmd struct {
	Habit    string        `arg:"" help:"Habit ID or name."`
	Name     string        `help:"New habit name."`
	Type     string        `help:"New habit type (to-do or not-to-do)."`
	Schedule ScheduleFlags `embed:""`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := resolveHabit(tr, c.Habit)
	if err != nil {
		return err
	}

	update := tracker.HabitUpdate{Name: habit.Name, Type: habit.Type, Days: habit.Days}
	if c.Name != "" {
		if update.Name, err = validation.NormalizeName(c.Name); err != nil {
			return err
		}
	}
	if c.Type != "" {
		if update.Type, err = validation.ParseHabitType(c.Type); err != nil {
			return err
		}
	}
	if c.Schedule.isSet() {
		if update.Days, err = c.Schedule.resolve(); err != nil {
			return err
		}
	}

	result := validation.New().ValidateInput(update.Name, update.Type, update.Days)
	if err := result.Err(); err != nil {
		return err
	}

	updated, ok, err := tr.UpdateHabit(habit.ID, update)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, habit.ID)
	}

	ctx.printf("Updated habit: %s (%s, %s)\n", updated.Name, updated.Type, validation.FormatWeekdays(updated.Days))
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := resolveHabit(tr, c.Habit)
	if err != nil {
		return err
	}

	remaining, err := tr.DeleteHabit(habit.ID)
	if err != nil {
		return err
	}

	ctx.printf("Deleted habit: %s (%d remaining)\n", habit.Name, len(remaining))
	return nil
}

type HabitListCmd struct {
	ShowIDs bool `help:"Show habit IDs." name:"show-ids"`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habits := tr.Habits()
	if len(habits) == 0 {
		ctx.println("No habits found. Use 'streakly habit add NAME' to create one.")
		return nil
	}

	ctx.println("Habits:")
	for _, habit := range habits {
		ctx.printf("  %s\n", formatHabitLine(habit, c.ShowIDs))
		ctx.printf("      %s · %s · %s\n", habit.Type, validation.FormatWeekdays(habit.Days), utils.StreakLabel(habit.Streak))
	}
	return nil
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	return toggle(ctx, c.Habit, true)
}

type HabitUndoCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
}

func (c *HabitUndoCmd) Run(ctx *Context) error {
	return toggle(ctx, c.Habit, false)
}

func toggle(ctx *Context, ref string, completed bool) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := resolveHabit(tr, ref)
	if err != nil {
		return err
	}

	updated, ok, err := tr.ToggleHabitCompletion(habit.ID, completed)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, habit.ID)
	}

	if completed {
		ctx.printf("✓ Completed %s (streak: %d)\n", updated.Name, updated.Streak)
	} else {
		ctx.printf("○ Marked %s as not completed (streak: %d)\n", updated.Name, updated.Streak)
	}
	return nil
}

func formatHabitLine(habit models.Habit, showID bool) string {
	status := "[ ]"
	if habit.Completed {
		status = "[x]"
	}
	line := fmt.Sprintf("%s %s", status, habit.Name)
	if showID {
		line += fmt.Sprintf(" (ID: %s)", habit.ID)
	}
	return line
}
