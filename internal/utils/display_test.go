package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/julianstephens/streakly/internal/models"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Good morning"},
		{11, "Good morning"},
		{12, "Good afternoon"},
		{17, "Good afternoon"},
		{18, "Good evening"},
		{23, "Good evening"},
	}
	for _, tt := range tests {
		now := time.Date(2026, 10, 19, tt.hour, 30, 0, 0, time.UTC)
		if got := Greeting(now); got != tt.want {
			t.Errorf("Greeting(%02d:30) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC))
	if got != "October 05, 2026" {
		t.Errorf("FormatDate() = %q", got)
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{"monday", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "Mon, Oct 19 - Sun, Oct 25"},
		{"wednesday", time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC), "Mon, Oct 19 - Sun, Oct 25"},
		{"sunday belongs to the week before", time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC), "Mon, Oct 19 - Sun, Oct 25"},
		{"across months", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), "Mon, Oct 26 - Sun, Nov 01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekRange(tt.day); got != tt.want {
				t.Errorf("WeekRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{2, 3, 67},
		{1, 3, 33},
		{3, 3, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.completed, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestProgressLine(t *testing.T) {
	if got := ProgressLine(nil); got != "No habits for today" {
		t.Errorf("ProgressLine(nil) = %q", got)
	}

	today := []models.Habit{{Completed: true}, {Completed: true}, {}}
	want := "2 of 3 habits complete • 67% achieved"
	if got := ProgressLine(today); got != want {
		t.Errorf("ProgressLine() = %q, want %q", got, want)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		completed, total, width int
		want                    string
	}{
		{0, 0, 4, "░░░░"},
		{1, 2, 4, "██░░"},
		{2, 2, 4, "████"},
		{1, 3, 10, "███░░░░░░░"},
		{1, 1, 0, ""},
	}
	for _, tt := range tests {
		if got := Bar(tt.completed, tt.total, tt.width); got != tt.want {
			t.Errorf("Bar(%d, %d, %d) = %q, want %q", tt.completed, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestStatsBar(t *testing.T) {
	out := StatsBar(models.Stats{TotalHabits: 2, CompletedHabits: 1}, 4)
	if !strings.Contains(out, "██░░") || !strings.Contains(out, "Completed 1") || !strings.Contains(out, "Remaining 1") {
		t.Errorf("StatsBar() = %q", out)
	}
}
