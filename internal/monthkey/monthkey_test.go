package monthkey

import (
	"reflect"
	"testing"
	"time"
)

func TestValid(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"2024-03", true},
		{"2024-12", true},
		{"2024-01", true},
		{"2024-13", false},
		{"2024-00", false},
		{"2024-3", false},
		{"24-03", false},
		{"2024/03", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.key); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestFor(t *testing.T) {
	got := For(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))
	if got != "2024-03" {
		t.Errorf("For = %q, want %q", got, "2024-03")
	}
}

func TestAddRollsOverYear(t *testing.T) {
	tests := []struct {
		key   string
		delta int
		want  string
	}{
		{"2024-01", -1, "2023-12"},
		{"2024-12", 1, "2025-01"},
		{"2024-03", 0, "2024-03"},
		{"2024-06", -6, "2023-12"},
		{"2024-06", -18, "2022-12"},
		{"2023-11", 3, "2024-02"},
	}
	for _, tt := range tests {
		got, err := Add(tt.key, tt.delta)
		if err != nil {
			t.Fatalf("Add(%q, %d): %v", tt.key, tt.delta, err)
		}
		if got != tt.want {
			t.Errorf("Add(%q, %d) = %q, want %q", tt.key, tt.delta, got, tt.want)
		}
	}
}

func TestAddInvalidKey(t *testing.T) {
	if _, err := Add("garbage", 1); err == nil {
		t.Error("expected error for invalid key")
	}
}

func TestTrailing(t *testing.T) {
	got, err := Trailing("2024-02", 6)
	if err != nil {
		t.Fatalf("trailing: %v", err)
	}
	want := []string{"2023-09", "2023-10", "2023-11", "2023-12", "2024-01", "2024-02"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Trailing = %v, want %v", got, want)
	}
}

func TestTrailingRejectsNonPositive(t *testing.T) {
	if _, err := Trailing("2024-02", 0); err == nil {
		t.Error("expected error for n=0")
	}
}
