package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestWeekdaysUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Weekdays
	}{
		{"array", `{"days":[1,2,3]}`, Weekdays{1, 2, 3}},
		{"duplicates kept", `{"days":[3,1,3]}`, Weekdays{3, 1, 3}},
		{"empty array", `{"days":[]}`, Weekdays{}},
		{"string", `{"days":"mon"}`, nil},
		{"object", `{"days":{"mon":true}}`, nil},
		{"null", `{"days":null}`, nil},
		{"missing", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h Habit
			if err := json.Unmarshal([]byte(tt.input), &h); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !reflect.DeepEqual(h.Days, tt.want) {
				t.Errorf("Days = %#v, want %#v", h.Days, tt.want)
			}
		})
	}
}

func TestHabitJSONFieldNames(t *testing.T) {
	h := Habit{ID: "1", Name: "Read", Type: HabitTypeToDo, Days: Weekdays{1}, Streak: 2, Completed: true}
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"1","name":"Read","type":"to-do","days":[1],"streak":2,"completed":true}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestHabitKeepsMalformedDays(t *testing.T) {
	tests := []struct {
		name string
		days string
	}{
		{"string", `"1,2"`},
		{"object", `{"mon":true}`},
		{"number", `3`},
		{"mixed array", `[1,"tue"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"id":"a","name":"A","type":"to-do","days":` + tt.days + `,"streak":1,"completed":false}`
			var h Habit
			if err := json.Unmarshal([]byte(input), &h); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if h.Days != nil || !h.HasMalformedDays() {
				t.Fatalf("Days = %#v, want nil with the stored value kept", h.Days)
			}
			if h.Days.Contains(time.Monday) {
				t.Error("malformed days should match no weekday")
			}

			h.Streak = 2
			data, err := json.Marshal(h.Clone())
			if err != nil {
				t.Fatal(err)
			}
			want := `{"id":"a","name":"A","type":"to-do","days":` + tt.days + `,"streak":2,"completed":false}`
			if string(data) != want {
				t.Errorf("Marshal() = %s, want %s", data, want)
			}
		})
	}
}

func TestHabitNewDaysReplaceMalformed(t *testing.T) {
	var h Habit
	if err := json.Unmarshal([]byte(`{"id":"a","days":"mon"}`), &h); err != nil {
		t.Fatal(err)
	}
	h.Days = Weekdays{1}
	if h.HasMalformedDays() {
		t.Error("HasMalformedDays() after days were set")
	}
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"a","name":"","type":"","days":[1],"streak":0,"completed":false}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestHabitNullDaysStayNull(t *testing.T) {
	for _, input := range []string{`{"id":"a","days":null}`, `{"id":"a"}`} {
		var h Habit
		if err := json.Unmarshal([]byte(input), &h); err != nil {
			t.Fatal(err)
		}
		if h.HasMalformedDays() {
			t.Errorf("%s: null or missing days reported as malformed", input)
		}
		data, err := json.Marshal(h)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), `"days":null`) {
			t.Errorf("%s: Marshal() = %s", input, data)
		}
	}
}

func TestWeekdaysContains(t *testing.T) {
	days := Weekdays{0, 3}
	if !days.Contains(time.Sunday) || !days.Contains(time.Wednesday) {
		t.Error("Contains() missed a scheduled day")
	}
	if days.Contains(time.Monday) {
		t.Error("Contains() reported an unscheduled day")
	}
	if Weekdays(nil).Contains(time.Sunday) {
		t.Error("nil schedule should contain nothing")
	}
}

func TestHabitClone(t *testing.T) {
	h := Habit{ID: "1", Days: Weekdays{1, 2}}
	c := h.Clone()
	c.Days[0] = 5
	if h.Days[0] != 1 {
		t.Error("Clone() shares the days slice")
	}
	if (Habit{}).Clone().Days != nil {
		t.Error("Clone() of nil days should stay nil")
	}
}

func TestHabitTypeIsKnown(t *testing.T) {
	for _, typ := range HabitTypes {
		if !typ.IsKnown() {
			t.Errorf("%q should be known", typ)
		}
	}
	if HabitType("maybe").IsKnown() {
		t.Error("unexpected known type")
	}
}

func TestStatsRemaining(t *testing.T) {
	s := Stats{TotalHabits: 5, CompletedHabits: 2}
	if s.Remaining() != 3 {
		t.Errorf("Remaining() = %d", s.Remaining())
	}
}
