package cli

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/tracker"
)

// ResetCmd edits storage directly, bypassing the tracker. It is meant for
// recovering from a habit that the tracker cannot load or display properly.
type ResetCmd struct {
	Habit string `help:"ID of the habit to remove from storage." required:""`
}

func (c *ResetCmd) Run(ctx *Context) error {
	before, err := ctx.Persistence.GetHabits()
	if err != nil {
		return err
	}

	after, err := ctx.Persistence.DeleteHabit(c.Habit)
	if err != nil {
		return err
	}
	if len(after) == len(before) {
		return fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, c.Habit)
	}

	ctx.printf("Removed habit %s from storage (%d remaining)\n", c.Habit, len(after))
	return nil
}
