package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/streakly/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyName          ConflictType = "empty_name"
	ConflictUnknownHabitType   ConflictType = "unknown_habit_type"
	ConflictInvalidWeekday     ConflictType = "invalid_weekday"
	ConflictMalformedDays      ConflictType = "malformed_days"
	ConflictMissingHabitID     ConflictType = "missing_habit_id"
	ConflictDuplicateHabitID   ConflictType = "duplicate_habit_id"
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictNegativeStreak     ConflictType = "negative_streak"
)

// Conflict represents a detected problem in habit input or stored habits
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Habit names involved
	HabitIDs    []string // IDs of habits involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Err returns the first conflict as an error, or nil
func (vr *ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	return fmt.Errorf("%s", vr.Conflicts[0].Description)
}

// Validator validates habit input and stored habits
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateInput checks the fields a user supplies when adding or editing a habit.
// The name is expected to be trimmed already (see NormalizeName).
func (v *Validator) ValidateInput(name string, habitType models.HabitType, days models.Weekdays) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if name == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictEmptyName,
			Description: "Habit name cannot be empty",
		})
	}

	if !habitType.IsKnown() {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictUnknownHabitType,
			Description: fmt.Sprintf("Unknown habit type %q (expected one of %s)", habitType, typeList()),
			Items:       []string{name},
		})
	}

	for _, d := range days {
		if d < 0 || d > 6 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidWeekday,
				Description: fmt.Sprintf("Invalid weekday %d (expected 0=Sunday through 6=Saturday)", d),
				Items:       []string{name},
			})
		}
	}

	return result
}

// ValidateHabits checks a stored collection for problems the core tolerates
// but the user should know about.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	idCount := make(map[string][]string)
	nameCount := make(map[string][]string)
	for _, habit := range habits {
		if habit.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingHabitID,
				Description: fmt.Sprintf("Habit \"%s\" has no ID", habit.Name),
				Items:       []string{habit.Name},
			})
		} else {
			idCount[habit.ID] = append(idCount[habit.ID], habit.Name)
		}

		// Skip empty names to avoid false positives
		if habit.Name != "" {
			nameCount[habit.Name] = append(nameCount[habit.Name], habit.ID)
		}

		if habit.Days == nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMalformedDays,
				Description: fmt.Sprintf("Habit \"%s\" has no readable schedule and never appears in today's list", habit.Name),
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
		}

		for _, d := range habit.Days {
			if d < 0 || d > 6 {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidWeekday,
					Description: fmt.Sprintf("Habit \"%s\" is scheduled on invalid weekday %d", habit.Name, d),
					Items:       []string{habit.Name},
					HabitIDs:    []string{habit.ID},
				})
			}
		}

		if habit.Streak < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeStreak,
				Description: fmt.Sprintf("Habit \"%s\" has a negative streak (%d)", habit.Name, habit.Streak),
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
		}
	}

	for _, habit := range habits {
		names, ok := idCount[habit.ID]
		if !ok || len(names) < 2 {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateHabitID,
			Description: fmt.Sprintf("Duplicate habit ID: %s (habits: %v)", habit.ID, names),
			Items:       names,
			HabitIDs:    []string{habit.ID},
		})
		delete(idCount, habit.ID)
	}

	for _, habit := range habits {
		ids, ok := nameCount[habit.Name]
		if !ok || len(ids) < 2 {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateHabitName,
			Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", habit.Name, ids),
			Items:       []string{habit.Name},
			HabitIDs:    ids,
		})
		delete(nameCount, habit.Name)
	}

	return result
}

// NormalizeName trims surrounding whitespace and rejects empty names
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	return name, nil
}

// ParseHabitType parses a habit type, accepting the canonical form and a
// few spellings without the hyphen.
func ParseHabitType(s string) (models.HabitType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "to-do", "todo", "do":
		return models.HabitTypeToDo, nil
	case "not-to-do", "nottodo", "not-todo", "dont", "don't":
		return models.HabitTypeNotToDo, nil
	}
	return "", fmt.Errorf("invalid habit type: %s (expected one of %s)", s, typeList())
}

func typeList() string {
	names := make([]string, len(models.HabitTypes))
	for i, t := range models.HabitTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Frequency presets offered next to the individual day buttons
var (
	Everyday = models.Weekdays{1, 2, 3, 4, 5, 6, 0}
	Weekdays = models.Weekdays{1, 2, 3, 4, 5}
)

var dayMap = map[string]int{
	"sun":       0,
	"sunday":    0,
	"mon":       1,
	"monday":    1,
	"tue":       2,
	"tuesday":   2,
	"wed":       3,
	"wednesday": 3,
	"thu":       4,
	"thursday":  4,
	"fri":       5,
	"friday":    5,
	"sat":       6,
	"saturday":  6,
}

// ParseWeekdays parses a comma-separated list of weekdays. Names, three-letter
// abbreviations and numbers (0=Sunday, 6=Saturday) are accepted, as are the
// presets "everyday" and "weekdays". An empty string yields an empty schedule.
func ParseWeekdays(s string) (models.Weekdays, error) {
	weekdays := models.Weekdays{}
	if strings.TrimSpace(s) == "" {
		return weekdays, nil
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "everyday", "daily":
		return append(weekdays, Everyday...), nil
	case "weekdays":
		return append(weekdays, Weekdays...), nil
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		// Try parsing as number (0=Sunday, 6=Saturday)
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, num)
	}

	return weekdays, nil
}

var shortNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatWeekdays renders a schedule for display
func FormatWeekdays(days models.Weekdays) string {
	switch {
	case days == nil:
		return "invalid schedule"
	case len(days) == 0:
		return "never"
	case sameDays(days, Everyday):
		return "every day"
	case sameDays(days, Weekdays):
		return "weekdays"
	}

	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			names = append(names, shortNames[d])
		} else {
			names = append(names, strconv.Itoa(d))
		}
	}
	return strings.Join(names, ", ")
}

func sameDays(a, b models.Weekdays) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]bool, len(a))
	for _, d := range a {
		seen[d] = true
	}
	for _, d := range b {
		if !seen[d] {
			return false
		}
	}
	return len(seen) == len(b)
}
