package loader

import (
	"math"
	"sort"
	"strings"

	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

// GasColumns names the dataset columns feeding the material-balance tool.
type GasColumns struct {
	Date     string
	Pressure string
	Z        string
	Cum      string
}

// DefaultGasColumns matches the canonical survey layout.
func DefaultGasColumns() GasColumns {
	return GasColumns{Date: "Date", Pressure: "Pressure", Z: "Z", Cum: "CumProduction"}
}

// DeclineColumns names the dataset columns feeding the decline tool.
// Time may hold month numbers or calendar dates.
type DeclineColumns struct {
	Time string
	Rate string
}

// Row numbers in errors are 1-based data rows, header excluded.

// ExtractGasRecords maps named columns onto production records, sorted by
// date ascending.
func ExtractGasRecords(ds *model.Dataset, cols GasColumns) ([]model.ProductionRecord, error) {
	if ds == nil || len(ds.Rows) == 0 {
		return nil, util.BadInput("dataset holds no rows, load a file first")
	}
	dateIdx, err := resolveColumn(ds, cols.Date)
	if err != nil {
		return nil, err
	}
	pressIdx, err := resolveColumn(ds, cols.Pressure)
	if err != nil {
		return nil, err
	}
	zIdx, err := resolveColumn(ds, cols.Z)
	if err != nil {
		return nil, err
	}
	cumIdx, err := resolveColumn(ds, cols.Cum)
	if err != nil {
		return nil, err
	}

	records := make([]model.ProductionRecord, 0, len(ds.Rows))
	for i := range ds.Rows {
		date, err := ParseDate(ds.Cell(i, dateIdx))
		if err != nil {
			return nil, util.BadDataf("row %d, column %s: %v", i+1, cols.Date, err)
		}
		pressure, err := ParseFloat(ds.Cell(i, pressIdx))
		if err != nil {
			return nil, util.BadDataf("row %d, column %s: %v", i+1, cols.Pressure, err)
		}
		z, err := ParseFloat(ds.Cell(i, zIdx))
		if err != nil {
			return nil, util.BadDataf("row %d, column %s: %v", i+1, cols.Z, err)
		}
		if z <= 0 {
			return nil, util.BadDataf("row %d: z-factor must be positive, got %g", i+1, z)
		}
		cum, err := ParseFloat(ds.Cell(i, cumIdx))
		if err != nil {
			return nil, util.BadDataf("row %d, column %s: %v", i+1, cols.Cum, err)
		}
		records = append(records, model.ProductionRecord{
			Date:          date,
			Pressure:      pressure,
			ZFactor:       z,
			CumProduction: cum,
		})
	}

	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Date.Before(records[b].Date)
	})
	return records, nil
}

// ExtractRatePoints maps named columns onto (month, rate) observations,
// sorted by month ascending. A numeric time column is used as-is; a date
// column becomes calendar-month offsets from the earliest date.
func ExtractRatePoints(ds *model.Dataset, cols DeclineColumns) ([]model.RatePoint, error) {
	if ds == nil || len(ds.Rows) == 0 {
		return nil, util.BadInput("dataset holds no rows, load a file first")
	}
	timeIdx, err := resolveColumn(ds, cols.Time)
	if err != nil {
		return nil, err
	}
	rateIdx, err := resolveColumn(ds, cols.Rate)
	if err != nil {
		return nil, err
	}

	months, err := timeColumn(ds, timeIdx, cols.Time)
	if err != nil {
		return nil, err
	}

	points := make([]model.RatePoint, 0, len(ds.Rows))
	for i := range ds.Rows {
		rate, err := ParseFloat(ds.Cell(i, rateIdx))
		if err != nil {
			return nil, util.BadDataf("row %d, column %s: %v", i+1, cols.Rate, err)
		}
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
			return nil, util.BadDataf("row %d: rate must be a non-negative number, got %g", i+1, rate)
		}
		points = append(points, model.RatePoint{Month: months[i], Rate: rate})
	}

	sort.SliceStable(points, func(a, b int) bool {
		return points[a].Month < points[b].Month
	})
	for i := 1; i < len(points); i++ {
		if points[i].Month == points[i-1].Month {
			return nil, util.BadDataf("duplicate time value %g, observations must be distinct", points[i].Month)
		}
	}
	return points, nil
}

// timeColumn parses the time column in one of two modes. The first row
// decides: numeric means month offsets as given, anything else means dates.
func timeColumn(ds *model.Dataset, idx int, name string) ([]float64, error) {
	months := make([]float64, len(ds.Rows))
	if _, err := ParseFloat(ds.Cell(0, idx)); err == nil {
		for i := range ds.Rows {
			v, err := ParseFloat(ds.Cell(i, idx))
			if err != nil {
				return nil, util.BadDataf("row %d, column %s: %v", i+1, name, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, util.BadDataf("row %d: time must be a non-negative number, got %g", i+1, v)
			}
			months[i] = v
		}
		return months, nil
	}

	dates := make([]struct{ y, m int }, len(ds.Rows))
	first := -1
	for i := range ds.Rows {
		t, err := ParseDate(ds.Cell(i, idx))
		if err != nil {
			return nil, util.BadDataf("row %d, column %s: %v", i+1, name, err)
		}
		dates[i] = struct{ y, m int }{t.Year(), int(t.Month())}
		if first < 0 || dates[i].y*12+dates[i].m < dates[first].y*12+dates[first].m {
			first = i
		}
	}
	for i, d := range dates {
		months[i] = float64((d.y-dates[first].y)*12 + d.m - dates[first].m)
	}
	return months, nil
}

func resolveColumn(ds *model.Dataset, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return -1, util.BadInput("column name must not be empty")
	}
	idx := ds.ColumnIndex(name)
	if idx < 0 {
		return -1, util.BadInputf("column %q not found, dataset has: %s", name, strings.Join(ds.Columns, ", "))
	}
	return idx, nil
}
