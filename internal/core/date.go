package core

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02", // canonical ISO form
	"02/01/2006",
	"2/1/2006",
}

// ParseDate converts free-form user input to a canonical Date.
//
// Accepted forms: ISO YYYY-MM-DD, DD/MM/YYYY, the tokens "today" and
// "yesterday", and the empty string meaning today. now anchors the relative
// tokens so callers and tests control the clock. Anything else fails with
// a ValidationError wrapping ErrInvalidDate.
func ParseDate(s string, now time.Time) (Date, error) {
	s = strings.TrimSpace(s)

	switch strings.ToLower(s) {
	case "", "today":
		return DateOf(now), nil
	case "yesterday":
		return DateOf(now.AddDate(0, 0, -1)), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, invalidField("date", "use YYYY-MM-DD or DD/MM/YYYY", ErrInvalidDate)
}

// MonthRange returns the first and last day of the given month.
func MonthRange(year, month int) (Date, Date) {
	first := NewDate(year, month, 1)
	last := Date{Time: first.AddDate(0, 1, -1)}
	return first, last
}

// PreviousMonth steps one month back from year+month.
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
