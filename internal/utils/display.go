package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
)

// Greeting returns a time-of-day greeting for the given moment
func Greeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// FormatDate renders a date for headers ("October 19, 2026")
func FormatDate(t time.Time) string {
	return t.Format(constants.LongDateFormat)
}

// WeekRange renders the Monday-to-Sunday week containing t
func WeekRange(t time.Time) string {
	diff := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		diff = 6
	}
	start := t.AddDate(0, 0, -diff)
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%s - %s", start.Format(constants.ShortDateFormat), end.Format(constants.ShortDateFormat))
}

// Percent returns completed/total as a rounded percentage, 0 when total is 0
func Percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// CountCompleted returns how many of the habits are currently completed
func CountCompleted(habits []models.Habit) int {
	n := 0
	for _, h := range habits {
		if h.Completed {
			n++
		}
	}
	return n
}

// ProgressLine summarizes today's habits ("2 of 3 habits complete • 67% achieved")
func ProgressLine(today []models.Habit) string {
	total := len(today)
	if total == 0 {
		return "No habits for today"
	}
	completed := CountCompleted(today)
	return fmt.Sprintf("%d of %d habits complete • %d%% achieved", completed, total, Percent(completed, total))
}

// StreakLabel renders a habit's streak the way the habit list shows it
func StreakLabel(streak int) string {
	return fmt.Sprintf("🔥 Streak: %d day streak", streak)
}

var (
	completedBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2B95E2"))
	remainingBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
)

// Bar renders a completed-vs-remaining bar of the given width. The completed
// share is rounded to the nearest cell.
func Bar(completed, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = int(math.Round(float64(completed) / float64(total) * float64(width)))
		filled = min(max(filled, 0), width)
	}
	return completedBarStyle.Render(strings.Repeat("█", filled)) +
		remainingBarStyle.Render(strings.Repeat("░", width-filled))
}

// StatsBar renders the completed vs remaining breakdown with a legend
func StatsBar(stats models.Stats, width int) string {
	legend := fmt.Sprintf("%s Completed %d  %s Remaining %d",
		completedBarStyle.Render("█"), stats.CompletedHabits,
		remainingBarStyle.Render("░"), stats.Remaining())
	return lipgloss.JoinVertical(lipgloss.Left, Bar(stats.CompletedHabits, stats.TotalHabits, width), legend)
}
