// Package core provides the expense tracker domain model: dates, money,
// expenses, categories and the pure parsing and analysis functions over them.
//
// This file handles monetary amounts. Amounts are stored as integer cents
// and parsed through shopspring/decimal so no binary floating point ever
// touches a stored value.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-supplied amount string to Money.
//
// Spaces and thousand separators are stripped before parsing. Both dot and
// comma are accepted as the decimal separator:
//
//	ParseAmount("12.34")     -> 1234 cents
//	ParseAmount("12,34")     -> 1234 cents
//	ParseAmount("1.234,56")  -> 123456 cents
//	ParseAmount("1,234.56")  -> 123456 cents
//	ParseAmount("12.345")    -> 1235 cents (half-up on the third decimal)
//
// Zero, negative and non-numeric input fail with a ValidationError wrapping
// ErrInvalidAmount.
func ParseAmount(s string) (Money, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if cleaned == "" {
		return Money{}, invalidField("amount", "empty", ErrInvalidAmount)
	}
	if strings.HasPrefix(cleaned, "+") || strings.HasPrefix(cleaned, "-") {
		return Money{}, invalidField("amount", "must be positive", ErrInvalidAmount)
	}

	normalized, err := normalizeSeparators(cleaned)
	if err != nil {
		return Money{}, err
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Money{}, invalidField("amount", "not a number", ErrInvalidAmount)
	}
	if d.Sign() <= 0 {
		return Money{}, invalidField("amount", "must be greater than zero", ErrInvalidAmount)
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0)
	if !cents.IsInteger() || !cents.BigInt().IsInt64() {
		return Money{}, invalidField("amount", "out of range", ErrInvalidAmount)
	}
	m := Money{Cents: cents.IntPart()}
	if m.Cents <= 0 {
		return Money{}, invalidField("amount", "must be greater than zero", ErrInvalidAmount)
	}
	return m, nil
}

// normalizeSeparators reduces mixed dot/comma input to a plain decimal-point
// string. When both separators occur, the rightmost one is the decimal
// separator and the other marks thousands. A separator that repeats can only
// be a thousands mark and is stripped entirely.
func normalizeSeparators(s string) (string, error) {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		lastDot := strings.LastIndex(s, ".")
		lastComma := strings.LastIndex(s, ",")
		if lastDot > lastComma {
			if dots > 1 {
				return "", invalidField("amount", "malformed separators", ErrInvalidAmount)
			}
			s = strings.ReplaceAll(s, ",", "")
		} else {
			if commas > 1 {
				return "", invalidField("amount", "malformed separators", ErrInvalidAmount)
			}
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	case commas == 1:
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s, nil
}

// FormatAmount renders cents as a plain two-decimal string, e.g. 1234 -> "12.34".
// The output is the canonical form used in CSV exports and must re-parse
// to the same cents value.
func FormatAmount(m Money) string {
	return decimal.NewFromInt(m.Cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// Units returns the amount as a float64 for display and charting only.
// Calculations stay in cents.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}
