package tui

import (
	"slices"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/validation"
)

const (
	frequencyEveryday = "everyday"
	frequencyWeekdays = "weekdays"
	frequencyCustom   = "custom"
)

type NameFormModel struct {
	Name string
}

type HabitFormModel struct {
	Name      string
	Type      models.HabitType
	Frequency string
	Days      []int
}

// newHabitFormModel pre-fills the form from an existing habit, or with
// defaults when habit is nil
func newHabitFormModel(habit *models.Habit) *HabitFormModel {
	if habit == nil {
		return &HabitFormModel{Type: models.HabitTypeToDo, Frequency: frequencyEveryday}
	}

	fm := &HabitFormModel{
		Name:      habit.Name,
		Type:      habit.Type,
		Frequency: frequencyCustom,
		Days:      slices.Clone(habit.Days),
	}
	switch validation.FormatWeekdays(habit.Days) {
	case "every day":
		fm.Frequency = frequencyEveryday
	case "weekdays":
		fm.Frequency = frequencyWeekdays
	}
	return fm
}

// Schedule resolves the chosen frequency into weekdays
func (fm *HabitFormModel) Schedule() models.Weekdays {
	switch fm.Frequency {
	case frequencyEveryday:
		return slices.Clone(validation.Everyday)
	case frequencyWeekdays:
		return slices.Clone(validation.Weekdays)
	}
	days := models.Weekdays{}
	return append(days, fm.Days...)
}

func validateName(s string) error {
	_, err := validation.NormalizeName(s)
	return err
}

// NewNameForm asks for the name used in the greeting
func NewNameForm(fm *NameFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Welcome! What should we call you?").
				Value(&fm.Name).
				Validate(validateName),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewHabitForm creates the add/edit habit form
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	typeOptions := make([]huh.Option[models.HabitType], 0, len(models.HabitTypes))
	for _, t := range models.HabitTypes {
		typeOptions = append(typeOptions, huh.NewOption(string(t), t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(validateName),
			huh.NewSelect[models.HabitType]().
				Title("Type").
				Options(typeOptions...).
				Value(&fm.Type),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Every day", frequencyEveryday),
					huh.NewOption("Weekdays", frequencyWeekdays),
					huh.NewOption("Pick days", frequencyCustom),
				).
				Value(&fm.Frequency),
		),
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Days").
				Options(
					huh.NewOption("Monday", 1),
					huh.NewOption("Tuesday", 2),
					huh.NewOption("Wednesday", 3),
					huh.NewOption("Thursday", 4),
					huh.NewOption("Friday", 5),
					huh.NewOption("Saturday", 6),
					huh.NewOption("Sunday", 0),
				).
				Value(&fm.Days),
		).WithHideFunc(func() bool { return fm.Frequency != frequencyCustom }),
	).WithTheme(huh.ThemeDracula())
}
