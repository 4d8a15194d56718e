package rulesettime

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// DateParserInterface defines the methods for organizer-entered date parsing.
type DateParserInterface interface {
	ParseDate(input string, reference time.Time) (time.Time, error)
}

// DateParser parses organizer-typed dates, trying strict layouts before a
// natural-language fallback.
type DateParser struct {
	w *when.Parser
}

// NewDateParser creates a new DateParser instance.
func NewDateParser() *DateParser {
	w := when.New(nil)
	w.Add(en.All...)
	return &DateParser{w: w}
}

// Strict layouts accepted before falling back to natural language. Dates
// only; any time-of-day component is discarded.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02.01.2006",
	"01/02/2006",
	"2006/01/02",
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
}

// ParseDate resolves a date string to UTC midnight. Relative or partial
// inputs ("june 1") resolve against the reference date's year.
func (dp *DateParser) ParseDate(input string, reference time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return truncateToDay(t), nil
		}
	}

	r, err := dp.w.Parse(trimmed, reference)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not recognize date format %q: %w", trimmed, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize date format %q", trimmed)
	}
	return truncateToDay(r.Time), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
