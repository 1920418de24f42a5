package cache

import (
	"testing"
	"time"
)

func TestWindowBounds(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		window   Window
		wantFrom string
		wantTo   string
	}{
		{"reference deployment", Window{PastDays: 60, FutureDays: 90}, "2025-06-16", "2025-11-13"},
		{"zero offsets", Window{}, "2025-08-15", "2025-08-15"},
		{"single day each way", Window{PastDays: 1, FutureDays: 1}, "2025-08-14", "2025-08-16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.window.Bounds(now)
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("Bounds() = (%s, %s), want (%s, %s)", from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestDayMapStartsLoading(t *testing.T) {
	m := NewDayMap[string]()
	if !m.Loading() {
		t.Fatal("new DayMap should report loading until the first range load")
	}
	if _, ok := m.Get("2025-08-15"); ok {
		t.Fatal("new DayMap should be empty")
	}
}

func TestDayMapReplaceAll(t *testing.T) {
	m := NewDayMap[string]()
	m.ReplaceAll("2025-06-16", "2025-11-13", map[string]string{
		"2025-08-15": "standup moved",
		"2025-08-16": "",
	})

	if m.Loading() {
		t.Error("ReplaceAll should clear the loading flag")
	}
	if got, ok := m.Get("2025-08-15"); !ok || got != "standup moved" {
		t.Errorf("Get(2025-08-15) = (%q, %v)", got, ok)
	}
	if got, ok := m.Get("2025-08-16"); !ok || got != "" {
		t.Errorf("empty message should still be a cache hit, got (%q, %v)", got, ok)
	}
	if _, ok := m.Get("2025-08-17"); ok {
		t.Error("day without a row should be a miss")
	}

	// A later swap fully discards the previous mapping.
	m.ReplaceAll("2025-06-16", "2025-11-13", map[string]string{"2025-09-01": "x"})
	if _, ok := m.Get("2025-08-15"); ok {
		t.Error("entries from the previous swap should be gone")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestDayMapEndLoadKeepsEntries(t *testing.T) {
	m := NewDayMap[string]()
	m.ReplaceAll("2025-06-16", "2025-11-13", map[string]string{"2025-08-15": "keep"})

	m.BeginLoad()
	if !m.Loading() {
		t.Error("BeginLoad should set the loading flag")
	}

	m.EndLoad()
	if m.Loading() {
		t.Error("EndLoad should clear the loading flag")
	}
	if got, ok := m.Get("2025-08-15"); !ok || got != "keep" {
		t.Errorf("failed load must leave last-known-good entries, got (%q, %v)", got, ok)
	}
}

func TestDayMapPut(t *testing.T) {
	m := NewDayMap[string]()
	m.ReplaceAll("2025-06-16", "2025-11-13", map[string]string{})

	snapshot := m.Snapshot()
	m.Put("2025-12-24", "outside the window")

	if _, ok := snapshot["2025-12-24"]; ok {
		t.Error("Put must not mutate previously taken snapshots")
	}
	if got, ok := m.Get("2025-12-24"); !ok || got != "outside the window" {
		t.Errorf("Get after Put = (%q, %v)", got, ok)
	}
}

func TestDayMapContains(t *testing.T) {
	m := NewDayMap[struct{}]()
	if m.Contains("2025-08-15") {
		t.Error("no day is inside the window before the first load")
	}

	m.ReplaceAll("2025-06-16", "2025-11-13", nil)

	tests := []struct {
		day  string
		want bool
	}{
		{"2025-06-15", false},
		{"2025-06-16", true}, // inclusive lower bound
		{"2025-08-15", true},
		{"2025-11-13", true}, // inclusive upper bound
		{"2025-11-14", false},
	}
	for _, tt := range tests {
		if got := m.Contains(tt.day); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.day, got, tt.want)
		}
	}
}
