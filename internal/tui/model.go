package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/tracker"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateAll
	StateStats
	StateNamePrompt
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
)

// tabs are the states reachable with tab/shift+tab, in order
var tabs = []struct {
	state SessionState
	title string
}{
	{StateToday, "Today"},
	{StateAll, "All habits"},
	{StateStats, "Statistics"},
}

type Model struct {
	tracker       *tracker.Tracker
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	todayList     list.Model
	allList       list.Model
	form          *huh.Form
	nameForm      *NameFormModel
	habitForm     *HabitFormModel
	editingID     string
	deleteID      string
	userName      string
	status        string
	quitting      bool
	width         int
	height        int
}

func NewModel(tr *tracker.Tracker) Model {
	m := Model{
		tracker:   tr,
		state:     StateToday,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		todayList: newHabitList("Today", tr.TodaysHabits()),
		allList:   newHabitList("All habits", tr.Habits()),
	}
	// until the first WindowSizeMsg arrives
	m.setSize(80, 24)

	name, ok, err := tr.UserName()
	if err != nil {
		logger.Warn("Failed to read user name", "error", err)
	}
	if ok && name != "" {
		m.userName = name
	} else {
		m.nameForm = &NameFormModel{}
		m.form = NewNameForm(m.nameForm)
		m.state = StateNamePrompt
	}

	return m
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateToday, StateAll:
		return m.keys.ShortHelp()
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// refresh reloads both lists from the tracker
func (m *Model) refresh() {
	m.todayList.SetItems(toItems(m.tracker.TodaysHabits()))
	m.allList.SetItems(toItems(m.tracker.Habits()))
}

// activeList returns the list shown in the current tab, if any
func (m *Model) activeList() *list.Model {
	switch m.state {
	case StateToday:
		return &m.todayList
	case StateAll:
		return &m.allList
	}
	return nil
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	// header, tabs, progress, status and help lines
	listHeight := max(height-10, 3)
	m.todayList.SetSize(width-4, listHeight)
	m.allList.SetSize(width-4, listHeight)
}

func (m *Model) setError(err error) {
	logger.Error("TUI action failed", "error", err)
	m.status = "Error: " + err.Error()
}

// Run starts the interactive program and the midnight refresh that keeps
// the Today tab current.
func Run(tr *tracker.Tracker) error {
	p := tea.NewProgram(NewModel(tr), tea.WithAltScreen())

	scheduler, err := StartMidnightRefresh(p.Send)
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	_, err = p.Run()
	return err
}
