package records

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.August, 29, 10, 30, 0, 0, time.UTC)

func TestNextIDEmptyTable(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{"no rows at all", nil},
		{"header only", [][]string{{"Timestamp", "ID", "Product"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NextID(tt.rows, "C", testNow)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if id != "C-0826-001" {
				t.Errorf("Expected C-0826-001, got %s", id)
			}
		})
	}
}

func TestNextIDIncrementsWithinMonth(t *testing.T) {
	rows := [][]string{
		{"Timestamp", "ID"},
		{"2026-08-01 09:00:00", "C-0826-001"},
		{"2026-08-12 14:00:00", "C-0826-002"},
	}

	id, err := NextID(rows, "C", testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "C-0826-003" {
		t.Errorf("Expected C-0826-003, got %s", id)
	}
}

func TestNextIDZeroPadsSerial(t *testing.T) {
	tests := []struct {
		lastID string
		want   string
	}{
		{"D-0826-009", "D-0826-010"},
		{"D-0826-099", "D-0826-100"},
		{"D-0826-999", "D-0826-1000"},
	}

	for _, tt := range tests {
		rows := [][]string{{"header"}, {"2026-08-01 09:00:00", tt.lastID}}
		id, err := NextID(rows, "D", testNow)
		if err != nil {
			t.Fatalf("Expected no error for %s, got %v", tt.lastID, err)
		}
		if id != tt.want {
			t.Errorf("Expected %s after %s, got %s", tt.want, tt.lastID, id)
		}
	}
}

func TestNextIDRestartsOnMonthRollover(t *testing.T) {
	rows := [][]string{
		{"Timestamp", "ID"},
		{"2026-07-30 09:00:00", "CC-0726-041"},
	}

	id, err := NextID(rows, "CC", testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "CC-0826-001" {
		t.Errorf("Expected CC-0826-001, got %s", id)
	}
}

func TestNextIDRestartsOnForeignLastID(t *testing.T) {
	tests := []struct {
		name   string
		lastID string
	}{
		{"different prefix", "D-0826-004"},
		{"no id column", ""},
		{"garbage id", "not-an-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := [][]string{{"header"}, {"2026-08-01 09:00:00", tt.lastID}}
			id, err := NextID(rows, "C", testNow)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if id != "C-0826-001" {
				t.Errorf("Expected C-0826-001, got %s", id)
			}
		})
	}
}

func TestNextIDShortLastRow(t *testing.T) {
	rows := [][]string{
		{"Timestamp", "ID"},
		{"2026-08-01 09:00:00"},
	}

	id, err := NextID(rows, "C", testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "C-0826-001" {
		t.Errorf("Expected C-0826-001, got %s", id)
	}
}

func TestNextIDMalformedSerial(t *testing.T) {
	tests := []string{"C-0826-abc", "C-0826-"}

	for _, lastID := range tests {
		rows := [][]string{{"header"}, {"2026-08-01 09:00:00", lastID}}
		_, err := NextID(rows, "C", testNow)

		var malformed *MalformedIDError
		if !errors.As(err, &malformed) {
			t.Fatalf("Expected MalformedIDError for %q, got %v", lastID, err)
		}
		if malformed.Raw != lastID {
			t.Errorf("Expected Raw %q, got %q", lastID, malformed.Raw)
		}
	}
}

func TestNextIDUsesCurrentMonth(t *testing.T) {
	now := time.Date(2027, time.January, 3, 0, 0, 0, 0, time.UTC)

	id, err := NextID(nil, "C", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := fmt.Sprintf("C-%s-001", now.Format("0106"))
	if id != want {
		t.Errorf("Expected %s, got %s", want, id)
	}
	if id != "C-0127-001" {
		t.Errorf("Expected C-0127-001, got %s", id)
	}
}
