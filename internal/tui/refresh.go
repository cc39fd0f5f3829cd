package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"

	"github.com/julianstephens/streakly/internal/logger"
)

// DayChangedMsg tells the model that the calendar day rolled over
type DayChangedMsg struct {
	At time.Time
}

// StartMidnightRefresh sends a DayChangedMsg at every local midnight so the
// Today tab follows the calendar while the TUI stays open. The caller stops
// the returned scheduler.
func StartMidnightRefresh(send func(tea.Msg)) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc("@midnight", func() {
		logger.Debug("Day changed, refreshing habits")
		send(DayChangedMsg{At: time.Now()})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule midnight refresh: %w", err)
	}
	c.Start()
	return c, nil
}
