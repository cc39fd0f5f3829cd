package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/streakly/internal/utils"
)

type StatsCmd struct {
	JSON bool `help:"Print statistics as JSON." name:"json"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	stats := tr.CalculateStats()

	if c.JSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode statistics: %w", err)
		}
		ctx.println(string(data))
		return nil
	}

	ctx.println("Statistics:")
	ctx.printf("  Total habits:     %d\n", stats.TotalHabits)
	ctx.printf("  Completed:        %d\n", stats.CompletedHabits)
	ctx.printf("  Completion rate:  %.1f%%\n", stats.CompletionRate)
	ctx.printf("  Longest streak:   %d\n", stats.LongestStreak)
	ctx.printf("  Average streak:   %.1f\n", stats.AverageStreak)
	ctx.println()
	ctx.println(utils.StatsBar(stats, 30))
	return nil
}
