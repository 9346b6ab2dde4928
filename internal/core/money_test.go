package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"1.234,56", 123456, true},
		{"1,234.56", 123456, true},
		{"1 234,56", 123456, true},
		{"1.234.567", 123456700, true}, // repeated dot can only be thousands
		{"10,000", 1000, true},         // a lone separator is always decimal, like "10.000"
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"abc", 0, false},
		{"1.2.3,4.5", 0, false},
		{"", 0, false},
		{"   ", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error, got %d", tc.in, got.Cents)
			}
		}
	}
}

func TestParseAmountSingleComma(t *testing.T) {
	// A lone comma is a decimal separator, matching how amounts were
	// historically entered: "10,5" means ten and a half.
	got, err := ParseAmount("10,5")
	if err != nil || got.Cents != 1050 {
		t.Fatalf("expected 1050, got %d (err=%v)", got.Cents, err)
	}
}

func TestFormatAmountRoundTrip(t *testing.T) {
	for _, cents := range []int64{1, 99, 100, 1234, 100000, 999999999} {
		s := FormatAmount(Money{Cents: cents})
		back, err := ParseAmount(s)
		if err != nil {
			t.Fatalf("%d -> %q failed to re-parse: %v", cents, s, err)
		}
		if back.Cents != cents {
			t.Fatalf("%d -> %q -> %d, precision lost", cents, s, back.Cents)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}
