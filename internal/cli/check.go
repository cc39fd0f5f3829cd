package cli

import (
	"errors"

	"github.com/julianstephens/streakly/internal/validation"
)

// CheckCmd reports problems in the stored habits that the tracker tolerates
type CheckCmd struct{}

func (c *CheckCmd) Run(ctx *Context) error {
	habits, err := ctx.Persistence.GetHabits()
	if err != nil {
		return err
	}

	result := validation.New().ValidateHabits(habits)
	ctx.printf("%s", result.FormatReport())
	if result.HasConflicts() {
		ctx.println()
		return errors.New("stored habits have problems; fix them with 'streakly habit edit' or 'streakly reset --habit ID'")
	}
	ctx.println()
	return nil
}
