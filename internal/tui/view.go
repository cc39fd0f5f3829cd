package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streakly/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateAll:
		content = m.viewAll()
	case StateStats:
		content = m.viewStats()
	case StateNamePrompt, StateAddHabit, StateEditHabit:
		content = docStyle.Render(m.viewFormTitle() + "\n\n" + m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewHeader(), m.viewTabs(), content}
	if m.status != "" {
		style := subtleStyle
		if strings.HasPrefix(m.status, "Error: ") {
			style = warningStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader() string {
	now := m.tracker.Today()
	title := "streakly"
	if m.userName != "" {
		title = fmt.Sprintf("%s, %s", utils.Greeting(now), m.userName)
	}
	return titleStyle.Render(title) + "  " + subtleStyle.Render(utils.FormatDate(now)+" · "+utils.WeekRange(now))
}

func (m Model) viewTabs() string {
	var rendered []string
	for _, tab := range tabs {
		if m.state == tab.state {
			rendered = append(rendered, activeTabStyle.Render(tab.title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewToday() string {
	today := m.tracker.TodaysHabits()
	if len(today) == 0 {
		return docStyle.Render("No habits for today.\nPress 'a' to add one.")
	}

	progress := lipgloss.JoinVertical(lipgloss.Left,
		utils.Bar(utils.CountCompleted(today), len(today), 30),
		utils.ProgressLine(today),
	)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.todayList.View(), "", progress))
}

func (m Model) viewAll() string {
	if len(m.allList.Items()) == 0 {
		return docStyle.Render("No habits yet.\nPress 'a' to add one.")
	}
	return docStyle.Render(m.allList.View())
}

func (m Model) viewStats() string {
	stats := m.tracker.CalculateStats()
	lines := []string{
		fmt.Sprintf("Total habits:     %d", stats.TotalHabits),
		fmt.Sprintf("Completed:        %d", stats.CompletedHabits),
		fmt.Sprintf("Completion rate:  %.1f%%", stats.CompletionRate),
		fmt.Sprintf("Longest streak:   %d", stats.LongestStreak),
		fmt.Sprintf("Average streak:   %.1f", stats.AverageStreak),
		"",
		utils.StatsBar(stats, 40),
	}
	return docStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewFormTitle() string {
	switch m.state {
	case StateNamePrompt:
		return titleStyle.Render("Welcome to streakly")
	case StateEditHabit:
		return titleStyle.Render("Edit habit")
	}
	return titleStyle.Render("New habit")
}

func (m Model) viewConfirmDelete() string {
	habit, _ := m.tracker.Habit(m.deleteID)
	return lipgloss.Place(m.width, max(m.height-6, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q?", habit.Name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
