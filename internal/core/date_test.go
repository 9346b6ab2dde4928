package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 3, 15, 13, 45, 0, 0, time.UTC)

	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2025-01-31", NewDate(2025, 1, 31), true},
		{"31/01/2025", NewDate(2025, 1, 31), true},
		{"1/2/2025", NewDate(2025, 2, 1), true},
		{"today", NewDate(2025, 3, 15), true},
		{"TODAY", NewDate(2025, 3, 15), true},
		{"yesterday", NewDate(2025, 3, 14), true},
		{"", NewDate(2025, 3, 15), true},
		{"  2025-01-31  ", NewDate(2025, 1, 31), true},
		{"2025-13-01", Date{}, false},
		{"2025-02-30", Date{}, false},
		{"31-01-2025", Date{}, false},
		{"tomorrow", Date{}, false},
		{"not a date", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in, now)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q unexpected error: %v", tc.in, err)
			}
			if !got.Equal(tc.want.Time) {
				t.Fatalf("%q expected %s, got %s", tc.in, tc.want, got)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %s", tc.in, got)
		}
	}
}

func TestParseDateYesterdayCrossesMonth(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	got, err := ParseDate("yesterday", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "2025-02-28" {
		t.Fatalf("expected 2025-02-28, got %s", got)
	}
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, 2)
	if first.String() != "2024-02-01" || last.String() != "2024-02-29" {
		t.Fatalf("got %s .. %s", first, last)
	}
	first, last = MonthRange(2025, 12)
	if first.String() != "2025-12-01" || last.String() != "2025-12-31" {
		t.Fatalf("got %s .. %s", first, last)
	}
}

func TestPreviousMonth(t *testing.T) {
	y, m := PreviousMonth(2025, 1)
	if y != 2024 || m != 12 {
		t.Fatalf("got %d-%d", y, m)
	}
	y, m = PreviousMonth(2025, 7)
	if y != 2025 || m != 6 {
		t.Fatalf("got %d-%d", y, m)
	}
}
