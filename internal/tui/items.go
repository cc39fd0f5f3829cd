package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
	"github.com/julianstephens/streakly/internal/validation"
)

type Item struct {
	Habit models.Habit
}

func (i Item) Title() string {
	if i.Habit.Completed {
		return "✓ " + i.Habit.Name
	}
	return "○ " + i.Habit.Name
}

func (i Item) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.Habit.Type, validation.FormatWeekdays(i.Habit.Days), utils.StreakLabel(i.Habit.Streak))
}

func (i Item) FilterValue() string { return i.Habit.Name }

func toItems(habits []models.Habit) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h}
	}
	return items
}

func newHabitList(title string, habits []models.Habit) list.Model {
	l := list.New(toItems(habits), list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	return l
}

// selectedHabit returns the habit under the cursor of l
func selectedHabit(l list.Model) (models.Habit, bool) {
	if i, ok := l.SelectedItem().(Item); ok {
		return i.Habit, true
	}
	return models.Habit{}, false
}
