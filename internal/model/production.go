package model

import (
	"strings"
	"time"
)

// ProductionRecord is one row of gas material-balance input.
type ProductionRecord struct {
	Date          time.Time
	Pressure      float64 // psia
	ZFactor       float64
	CumProduction float64 // scf
}

// RatePoint is one (time, rate) observation for decline analysis.
// Month is an offset from the first observation, not a calendar month.
type RatePoint struct {
	Month float64
	Rate  float64
}

// Dataset holds a raw table as read from disk, before column mapping.
type Dataset struct {
	Source  string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1. An exact
// match wins; otherwise the comparison ignores case, so DBF headers in
// upper case still resolve.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	for i, c := range d.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, column index), tolerating short rows.
func (d *Dataset) Cell(row, col int) string {
	if row < 0 || row >= len(d.Rows) || col < 0 || col >= len(d.Rows[row]) {
		return ""
	}
	return d.Rows[row][col]
}
