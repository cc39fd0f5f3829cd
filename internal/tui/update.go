package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	case DayChangedMsg:
		m.refresh()
		return m, nil
	}

	switch m.state {
	case StateNamePrompt, StateAddHabit, StateEditHabit:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if l := m.activeList(); l != nil && l.FilterState() == list.Filtering {
			return m.updateList(msg)
		}
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	return m.updateList(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.switchTab(1)
		return true, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.switchTab(-1)
		return true, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.Stats):
		m.state = StateStats
		return true, nil
	case key.Matches(msg, m.keys.Add):
		m.habitForm = newHabitFormModel(nil)
		m.form = NewHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateAddHabit
		return true, m.form.Init()
	}

	l := m.activeList()
	if l == nil {
		return false, nil
	}
	habit, ok := selectedHabit(*l)
	if !ok {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.toggle(habit)
		return true, nil
	case key.Matches(msg, m.keys.Edit):
		m.habitForm = newHabitFormModel(&habit)
		m.form = NewHabitForm(m.habitForm)
		m.editingID = habit.ID
		m.previousState = m.state
		m.state = StateEditHabit
		return true, m.form.Init()
	case key.Matches(msg, m.keys.Delete):
		m.deleteID = habit.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return true, nil
	}
	return false, nil
}

func (m *Model) switchTab(step int) {
	current := 0
	for i, tab := range tabs {
		if tab.state == m.state {
			current = i
		}
	}
	next := (current + step + len(tabs)) % len(tabs)
	m.state = tabs[next].state
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.todayList, cmd = m.todayList.Update(msg)
	case StateAll:
		m.allList, cmd = m.allList.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc && m.state != StateNamePrompt {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.completeForm()
	case huh.StateAborted:
		if m.state == StateNamePrompt {
			m.quitting = true
			return m, tea.Quit
		}
		m.closeForm()
	}
	return m, cmd
}

// completeForm submits the finished form. Invalid input reopens it so the
// user can fix it or cancel with ESC. Once the tracker has applied the
// change the form closes even if saving failed, so a second submit cannot
// repeat it.
func (m *Model) completeForm() {
	var err error
	switch m.state {
	case StateNamePrompt:
		err = m.submitName()
	case StateAddHabit:
		err = m.submitAdd()
	case StateEditHabit:
		err = m.submitEdit()
	}
	if err != nil {
		m.setError(err)
		var applied appliedError
		if !errors.As(err, &applied) {
			m.form.State = huh.StateNormal
			return
		}
	}
	m.closeForm()
}

// appliedError wraps a save failure for a change the tracker kept in memory
type appliedError struct {
	err error
}

func (e appliedError) Error() string { return e.err.Error() }
func (e appliedError) Unwrap() error { return e.err }

func (m *Model) closeForm() {
	m.form = nil
	m.habitForm = nil
	m.nameForm = nil
	m.editingID = ""
	if m.state == StateNamePrompt {
		m.state = StateToday
	} else {
		m.state = m.previousState
	}
}

func (m *Model) submitName() error {
	name, err := validation.NormalizeName(m.nameForm.Name)
	if err != nil {
		return err
	}
	if err := m.tracker.SaveUserName(name); err != nil {
		return err
	}
	m.userName = name
	m.status = ""
	return nil
}

func (m *Model) submitAdd() error {
	name, days, err := m.validatedHabitForm()
	if err != nil {
		return err
	}
	habit, err := m.tracker.AddHabit(name, m.habitForm.Type, days)
	m.refresh()
	if err != nil {
		return appliedError{err}
	}
	m.status = fmt.Sprintf("Added %s", habit.Name)
	return nil
}

func (m *Model) submitEdit() error {
	name, days, err := m.validatedHabitForm()
	if err != nil {
		return err
	}
	habit, ok, err := m.tracker.UpdateHabit(m.editingID, tracker.HabitUpdate{Name: name, Type: m.habitForm.Type, Days: days})
	m.refresh()
	if err != nil {
		return appliedError{err}
	}
	if !ok {
		return fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, m.editingID)
	}
	m.status = fmt.Sprintf("Updated %s", habit.Name)
	return nil
}

func (m *Model) validatedHabitForm() (string, models.Weekdays, error) {
	name, err := validation.NormalizeName(m.habitForm.Name)
	if err != nil {
		return "", nil, err
	}
	days := m.habitForm.Schedule()
	result := validation.New().ValidateInput(name, m.habitForm.Type, days)
	if err := result.Err(); err != nil {
		return "", nil, err
	}
	return name, days, nil
}

func (m *Model) toggle(habit models.Habit) {
	updated, ok, err := m.tracker.ToggleHabitCompletion(habit.ID, !habit.Completed)
	m.refresh()
	switch {
	case err != nil:
		m.setError(err)
	case !ok:
		m.setError(fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, habit.ID))
	case updated.Completed:
		m.status = fmt.Sprintf("✓ %s done, streak %d", updated.Name, updated.Streak)
	default:
		m.status = fmt.Sprintf("○ %s not done, streak %d", updated.Name, updated.Streak)
	}
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		habit, _ := m.tracker.Habit(m.deleteID)
		if _, err := m.tracker.DeleteHabit(m.deleteID); err != nil {
			m.setError(err)
		} else {
			m.status = fmt.Sprintf("Deleted %s", habit.Name)
		}
		m.refresh()
		m.deleteID = ""
		m.state = m.previousState
	case key.Matches(keyMsg, m.keys.Cancel):
		m.deleteID = ""
		m.state = m.previousState
	}
	return m, nil
}
