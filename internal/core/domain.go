package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	// Date is a calendar date with day granularity, always UTC midnight.
	Date struct {
		time.Time
	}

	// Money is a monetary amount in integer cents.
	Money struct {
		Cents int64
	}

	Expense struct {
		ID          int64
		Date        Date
		Category    string
		Amount      Money
		Description string
		CreatedAt   time.Time
	}

	Category struct {
		ID          int64
		Name        string
		BudgetLimit *Money // nil when no budget is set
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyCategory   = errors.New("empty category")
)

// ValidationError reports a rejected user-supplied field. It wraps one of the
// sentinel errors above so callers can match with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalidField(field, reason string, sentinel error) error {
	return &ValidationError{Field: field, Reason: reason, Err: sentinel}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day granularity.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month, 1-12
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// String renders the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategory
	}
	if c.BudgetLimit != nil {
		if err := c.BudgetLimit.Validate(); err != nil {
			return err
		}
	}
	return nil
}
