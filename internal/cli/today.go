package cli

import (
	"github.com/julianstephens/streakly/internal/utils"
)

type TodayCmd struct {
	ShowIDs bool `help:"Show habit IDs." name:"show-ids"`
}

func (c *TodayCmd) Run(ctx *Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	now := ctx.Now()
	if name, ok, err := ctx.Persistence.GetUserName(); err == nil && ok && name != "" {
		ctx.printf("%s, %s\n", utils.Greeting(now), name)
	}
	ctx.printf("%s (%s)\n\n", utils.FormatDate(now), utils.WeekRange(now))

	today := tr.TodaysHabits()
	for _, habit := range today {
		ctx.printf("  %s\n", formatHabitLine(habit, c.ShowIDs))
	}
	if len(today) > 0 {
		ctx.println()
		ctx.println(utils.Bar(utils.CountCompleted(today), len(today), 30))
	}
	ctx.println(utils.ProgressLine(today))
	return nil
}
