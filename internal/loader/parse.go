package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order; the first hit wins.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"2006-01",
	"01/2006",
}

// trimCell strips surrounding whitespace and a leading UTF-8 BOM, which
// spreadsheet exports like to prepend to the first header cell.
func trimCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(s)
}

// ParseFloat parses a numeric cell, tolerating thousands separators.
func ParseFloat(cell string) (float64, error) {
	s := strings.ReplaceAll(trimCell(cell), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	return v, nil
}

// ParseDate parses a date cell against the known layouts.
func ParseDate(cell string) (time.Time, error) {
	s := trimCell(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", cell)
}
