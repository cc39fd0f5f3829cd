package tracker

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/streakly/internal/models"
)

type fakeStore struct {
	userName string
	habits   []models.Habit
	saves    int
	saveErr  error
}

func (f *fakeStore) GetUserName() (string, bool, error) {
	return f.userName, f.userName != "", nil
}

func (f *fakeStore) SaveUserName(name string) error {
	f.userName = name
	return nil
}

func (f *fakeStore) GetHabits() ([]models.Habit, error) {
	return cloneAll(f.habits), nil
}

func (f *fakeStore) SaveHabits(habits []models.Habit) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.habits = cloneAll(habits)
	return nil
}

// monday is 2026-10-19, a Monday
var monday = time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("habit-%d", n)
	}
}

func newTestTracker(t *testing.T, seed ...models.Habit) (*Tracker, *fakeStore) {
	t.Helper()
	store := &fakeStore{habits: seed}
	tr, err := New(store, WithClock(func() time.Time { return monday }), WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return tr, store
}

func TestAddHabit(t *testing.T) {
	tr, store := newTestTracker(t)

	habit, err := tr.AddHabit("Drink Water", models.HabitTypeToDo, models.Weekdays{1, 2, 3})
	if err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	want := models.Habit{ID: "habit-1", Name: "Drink Water", Type: models.HabitTypeToDo, Days: models.Weekdays{1, 2, 3}}
	if !reflect.DeepEqual(habit, want) {
		t.Errorf("AddHabit() = %#v, want %#v", habit, want)
	}

	habits := tr.Habits()
	if len(habits) != 1 || habits[0].ID != habit.ID {
		t.Errorf("Habits() = %#v, want only the new habit", habits)
	}
	if store.saves != 1 || !reflect.DeepEqual(store.habits, habits) {
		t.Errorf("store not updated: saves=%d habits=%#v", store.saves, store.habits)
	}

	stats := tr.CalculateStats()
	if stats != (models.Stats{TotalHabits: 1}) {
		t.Errorf("CalculateStats() = %+v", stats)
	}
}

func TestAddHabitUniqueIDs(t *testing.T) {
	store := &fakeStore{}
	tr, err := New(store)
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		h, err := tr.AddHabit("same", models.HabitTypeToDo, nil)
		if err != nil {
			t.Fatal(err)
		}
		if h.ID == "" || seen[h.ID] {
			t.Fatalf("duplicate or empty id %q", h.ID)
		}
		seen[h.ID] = true
	}
}

func TestAddHabitCopiesDays(t *testing.T) {
	tr, _ := newTestTracker(t)

	days := models.Weekdays{1, 2}
	habit, err := tr.AddHabit("Stretch", models.HabitTypeToDo, days)
	if err != nil {
		t.Fatal(err)
	}
	days[0] = 6

	stored, _ := tr.Habit(habit.ID)
	if stored.Days[0] != 1 {
		t.Errorf("caller mutation leaked into store: %v", stored.Days)
	}

	habit.Days[1] = 5
	stored, _ = tr.Habit(habit.ID)
	if stored.Days[1] != 2 {
		t.Errorf("mutating returned habit leaked into store: %v", stored.Days)
	}
}

func TestAddHabitKeepsInputAsGiven(t *testing.T) {
	tr, _ := newTestTracker(t)

	habit, err := tr.AddHabit("", models.HabitType("weird"), models.Weekdays{9, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if habit.Name != "" || habit.Type != "weird" || !reflect.DeepEqual(habit.Days, models.Weekdays{9, 1, 1}) {
		t.Errorf("AddHabit() altered input: %#v", habit)
	}
}

func TestUpdateHabit(t *testing.T) {
	seed := models.Habit{ID: "1", Name: "Exercise", Type: models.HabitTypeToDo, Days: models.Weekdays{1, 2}, Streak: 4, Completed: true}
	tr, store := newTestTracker(t, seed)

	updated, ok, err := tr.UpdateHabit("1", HabitUpdate{Name: "Morning Exercise", Type: models.HabitTypeToDo, Days: models.Weekdays{1, 3}})
	if err != nil || !ok {
		t.Fatalf("UpdateHabit() = ok %v, err %v", ok, err)
	}

	want := models.Habit{ID: "1", Name: "Morning Exercise", Type: models.HabitTypeToDo, Days: models.Weekdays{1, 3}, Streak: 4, Completed: true}
	if !reflect.DeepEqual(updated, want) {
		t.Errorf("UpdateHabit() = %#v, want %#v", updated, want)
	}
	if !reflect.DeepEqual(store.habits, tr.Habits()) {
		t.Errorf("store = %#v, want %#v", store.habits, tr.Habits())
	}
}

func TestUpdateHabitNotFound(t *testing.T) {
	tr, store := newTestTracker(t, models.Habit{ID: "1", Name: "Exercise"})

	habit, ok, err := tr.UpdateHabit("missing", HabitUpdate{})
	if err != nil {
		t.Fatalf("UpdateHabit() error = %v", err)
	}
	if ok {
		t.Error("UpdateHabit() reported success for unknown id")
	}
	if !reflect.DeepEqual(habit, models.Habit{}) {
		t.Errorf("UpdateHabit() = %#v, want zero habit", habit)
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0 for unknown id", store.saves)
	}
}

func TestUpdateHabitToEmptyValues(t *testing.T) {
	tr, _ := newTestTracker(t, models.Habit{ID: "1", Name: "Exercise", Days: models.Weekdays{1}})

	habit, ok, err := tr.UpdateHabit("1", HabitUpdate{})
	if err != nil || !ok {
		t.Fatalf("UpdateHabit() = ok %v, err %v", ok, err)
	}
	if habit.ID != "1" || habit.Name != "" || habit.Days != nil {
		t.Errorf("UpdateHabit() = %#v", habit)
	}
}

func TestDeleteHabit(t *testing.T) {
	habit1 := models.Habit{ID: "1", Name: "Drink Water", Streak: 2, Days: models.Weekdays{1, 3}}
	habit2 := models.Habit{ID: "2", Name: "Exercise", Streak: 1, Days: models.Weekdays{4}}
	habit3 := models.Habit{ID: "3", Name: "Read", Days: models.Weekdays{0}}
	tr, store := newTestTracker(t, habit1, habit2, habit3)

	remaining, err := tr.DeleteHabit("2")
	if err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}

	want := []models.Habit{habit1, habit3}
	if !reflect.DeepEqual(remaining, want) {
		t.Errorf("DeleteHabit() = %#v, want %#v", remaining, want)
	}
	if !reflect.DeepEqual(store.habits, want) {
		t.Errorf("store = %#v, want %#v", store.habits, want)
	}
}

func TestDeleteHabitUnknownIDStillPersists(t *testing.T) {
	habit := models.Habit{ID: "1", Name: "Drink Water"}
	tr, store := newTestTracker(t, habit)

	remaining, err := tr.DeleteHabit("nope")
	if err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}
	if !reflect.DeepEqual(remaining, []models.Habit{habit}) {
		t.Errorf("DeleteHabit() = %#v", remaining)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if !reflect.DeepEqual(store.habits, []models.Habit{habit}) {
		t.Errorf("store = %#v", store.habits)
	}
}

func TestDeleteLastHabit(t *testing.T) {
	tr, store := newTestTracker(t, models.Habit{ID: "1"})

	remaining, err := tr.DeleteHabit("1")
	if err != nil {
		t.Fatal(err)
	}
	if remaining == nil || len(remaining) != 0 {
		t.Errorf("DeleteHabit() = %#v, want empty slice", remaining)
	}
	if len(store.habits) != 0 {
		t.Errorf("store = %#v", store.habits)
	}
}

func TestToggleHabitCompletion(t *testing.T) {
	tr, store := newTestTracker(t, models.Habit{ID: "1", Name: "Drink Water", Streak: 2, Days: models.Weekdays{1, 3}})

	habit, ok, err := tr.ToggleHabitCompletion("1", true)
	if err != nil || !ok {
		t.Fatalf("ToggleHabitCompletion() = ok %v, err %v", ok, err)
	}
	if !habit.Completed || habit.Streak != 3 {
		t.Errorf("ToggleHabitCompletion(true) = completed %v streak %d, want true 3", habit.Completed, habit.Streak)
	}
	if !reflect.DeepEqual(store.habits, tr.Habits()) {
		t.Errorf("store = %#v", store.habits)
	}
}

func TestToggleCompletedTwiceIncrementsTwice(t *testing.T) {
	tr, _ := newTestTracker(t, models.Habit{ID: "1"})

	for i := 0; i < 2; i++ {
		if _, _, err := tr.ToggleHabitCompletion("1", true); err != nil {
			t.Fatal(err)
		}
	}
	habit, _ := tr.Habit("1")
	if habit.Streak != 2 || !habit.Completed {
		t.Errorf("after two completions: streak %d completed %v, want 2 true", habit.Streak, habit.Completed)
	}

	habit, _, _ = tr.ToggleHabitCompletion("1", false)
	if habit.Streak != 1 || habit.Completed {
		t.Errorf("after undo: streak %d completed %v, want 1 false", habit.Streak, habit.Completed)
	}
}

func TestToggleStreakFloor(t *testing.T) {
	tr, store := newTestTracker(t, models.Habit{ID: "1", Streak: 1, Completed: true})

	for i := 0; i < 5; i++ {
		habit, ok, err := tr.ToggleHabitCompletion("1", false)
		if err != nil || !ok {
			t.Fatalf("ToggleHabitCompletion() = ok %v, err %v", ok, err)
		}
		if habit.Streak < 0 {
			t.Fatalf("streak went negative: %d", habit.Streak)
		}
	}
	habit, _ := tr.Habit("1")
	if habit.Streak != 0 || habit.Completed {
		t.Errorf("habit = %#v, want streak 0, not completed", habit)
	}
	if store.saves != 5 {
		t.Errorf("saves = %d, want one per call", store.saves)
	}
}

func TestToggleHabitCompletionNotFound(t *testing.T) {
	tr, store := newTestTracker(t)

	_, ok, err := tr.ToggleHabitCompletion("missing", true)
	if err != nil || ok {
		t.Errorf("ToggleHabitCompletion() = ok %v, err %v; want false, nil", ok, err)
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0", store.saves)
	}
}

func TestTodaysHabits(t *testing.T) {
	today := int(monday.Weekday())
	habit1 := models.Habit{ID: "1", Name: "Drink Water", Days: models.Weekdays{today}}
	habit2 := models.Habit{ID: "2", Name: "Exercise", Days: models.Weekdays{today + 1}}
	habit3 := models.Habit{ID: "3", Name: "Malformed", Days: nil}
	habit4 := models.Habit{ID: "4", Name: "Twice", Days: models.Weekdays{5, today, today}}
	tr, _ := newTestTracker(t, habit1, habit2, habit3, habit4)

	got := tr.TodaysHabits()
	want := []models.Habit{habit1, habit4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TodaysHabits() = %#v, want %#v", got, want)
	}
}

func TestTodaysHabitsFollowsClock(t *testing.T) {
	now := monday
	store := &fakeStore{habits: []models.Habit{{ID: "sun", Days: models.Weekdays{0}}}}
	tr, err := New(store, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatal(err)
	}

	if got := tr.TodaysHabits(); len(got) != 0 {
		t.Errorf("TodaysHabits() on Monday = %#v", got)
	}
	now = monday.AddDate(0, 0, 6)
	if got := tr.TodaysHabits(); len(got) != 1 {
		t.Errorf("TodaysHabits() on Sunday = %#v", got)
	}
	if !tr.Today().Equal(now) {
		t.Errorf("Today() = %v, want %v", tr.Today(), now)
	}
}

func TestCalculateStats(t *testing.T) {
	tests := []struct {
		name   string
		habits []models.Habit
		want   models.Stats
	}{
		{
			name: "empty",
			want: models.Stats{},
		},
		{
			name: "one completed one not",
			habits: []models.Habit{
				{ID: "1", Name: "Drink Water", Streak: 5, Completed: true},
				{ID: "2", Name: "Exercise", Streak: 3, Completed: false},
			},
			want: models.Stats{CompletionRate: 50, TotalHabits: 2, CompletedHabits: 1, LongestStreak: 5, AverageStreak: 4},
		},
		{
			name: "unrounded average",
			habits: []models.Habit{
				{ID: "1", Streak: 1, Completed: true},
				{ID: "2", Streak: 0, Completed: true},
				{ID: "3", Streak: 0},
			},
			want: models.Stats{CompletionRate: 200.0 / 3, TotalHabits: 3, CompletedHabits: 2, LongestStreak: 1, AverageStreak: 1.0 / 3},
		},
		{
			name: "all zero streaks",
			habits: []models.Habit{
				{ID: "1"},
			},
			want: models.Stats{TotalHabits: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, store := newTestTracker(t, tt.habits...)
			got := tr.CalculateStats()
			if got != tt.want {
				t.Errorf("CalculateStats() = %+v, want %+v", got, tt.want)
			}
			if store.saves != 0 {
				t.Errorf("CalculateStats() wrote to the store")
			}
		})
	}
}

func TestHabitsSnapshotIsReadOnly(t *testing.T) {
	tr, _ := newTestTracker(t, models.Habit{ID: "1", Name: "Read", Days: models.Weekdays{1}})

	snapshot := tr.Habits()
	snapshot[0].Name = "changed"
	snapshot[0].Days[0] = 4

	habit, _ := tr.Habit("1")
	if habit.Name != "Read" || habit.Days[0] != 1 {
		t.Errorf("snapshot mutation leaked: %#v", habit)
	}
}

func TestFindByName(t *testing.T) {
	tr, _ := newTestTracker(t, models.Habit{ID: "1", Name: "Read"}, models.Habit{ID: "2", Name: "Read"})

	habit, ok := tr.FindByName("Read")
	if !ok || habit.ID != "1" {
		t.Errorf("FindByName() = %#v, %v; want first match", habit, ok)
	}
	if _, ok := tr.FindByName("Write"); ok {
		t.Error("FindByName() found a missing habit")
	}
	if _, ok := tr.Habit("3"); ok {
		t.Error("Habit() found a missing id")
	}
}

func TestPersistenceFailureIsSurfaced(t *testing.T) {
	tr, store := newTestTracker(t, models.Habit{ID: "1"})
	store.saveErr = errors.New("quota exceeded")

	if _, err := tr.AddHabit("x", models.HabitTypeToDo, nil); err == nil {
		t.Error("AddHabit() swallowed persistence failure")
	}
	if _, ok, err := tr.ToggleHabitCompletion("1", true); !ok || err == nil {
		t.Errorf("ToggleHabitCompletion() = ok %v, err %v", ok, err)
	}
	if _, ok, err := tr.UpdateHabit("1", HabitUpdate{Name: "y"}); !ok || err == nil {
		t.Errorf("UpdateHabit() = ok %v, err %v", ok, err)
	}
	if _, err := tr.DeleteHabit("1"); err == nil {
		t.Error("DeleteHabit() swallowed persistence failure")
	}
}

type brokenLoad struct{ fakeStore }

func (b *brokenLoad) GetHabits() ([]models.Habit, error) {
	return nil, errors.New("disk on fire")
}

func TestNewLoadFailure(t *testing.T) {
	if _, err := New(&brokenLoad{}); err == nil {
		t.Error("New() should fail when habits cannot be loaded")
	}
}

func TestUserName(t *testing.T) {
	tr, store := newTestTracker(t)

	if _, ok, _ := tr.UserName(); ok {
		t.Error("UserName() found a name in empty store")
	}
	if err := tr.SaveUserName("ewurasi"); err != nil {
		t.Fatal(err)
	}
	if name, ok, _ := tr.UserName(); !ok || name != "ewurasi" || store.userName != "ewurasi" {
		t.Errorf("UserName() = %q, %v", name, ok)
	}
}
