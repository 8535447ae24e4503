package loader

import (
	"testing"

	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

func gasDataset(rows [][]string) *model.Dataset {
	return &model.Dataset{
		Source:  "test",
		Columns: []string{"Date", "Pressure", "Z", "CumProduction"},
		Rows:    rows,
	}
}

func TestExtractGasRecords_MapsAndSorts(t *testing.T) {
	ds := gasDataset([][]string{
		{"2023-03-01", "2,900", "0.84", "120,000"},
		{"2023-01-01", "3000", "0.85", "0"},
		{"2023-02-01", "2950", "0.845", "60000"},
	})

	records, err := ExtractGasRecords(ds, DefaultGasColumns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if !records[i-1].Date.Before(records[i].Date) {
			t.Fatalf("records not sorted by date: %v before %v", records[i-1].Date, records[i].Date)
		}
	}
	if records[0].Pressure != 3000 || records[0].CumProduction != 0 {
		t.Errorf("first record = %+v, want the January row", records[0])
	}
	if records[2].Pressure != 2900 || records[2].CumProduction != 120000 {
		t.Errorf("last record = %+v, want the comma-separated March row", records[2])
	}
}

func TestExtractGasRecords_UppercaseHeaders(t *testing.T) {
	ds := &model.Dataset{
		Source:  "legacy.dbf",
		Columns: []string{"DATE", "PRESSURE", "Z", "CUMPRODUCTION"},
		Rows:    [][]string{{"2023-01-01", "3000", "0.85", "0"}},
	}
	if _, err := ExtractGasRecords(ds, DefaultGasColumns()); err != nil {
		t.Fatalf("case-insensitive mapping failed: %v", err)
	}
}

func TestExtractGasRecords_Errors(t *testing.T) {
	good := [][]string{{"2023-01-01", "3000", "0.85", "0"}}
	cases := []struct {
		name string
		ds   *model.Dataset
		cols GasColumns
		kind util.Kind
	}{
		{
			name: "empty dataset",
			ds:   gasDataset(nil),
			cols: DefaultGasColumns(),
			kind: util.KindInput,
		},
		{
			name: "missing column",
			ds:   gasDataset(good),
			cols: GasColumns{Date: "Date", Pressure: "Pwf", Z: "Z", Cum: "CumProduction"},
			kind: util.KindInput,
		},
		{
			name: "blank column name",
			ds:   gasDataset(good),
			cols: GasColumns{Date: "Date", Pressure: "", Z: "Z", Cum: "CumProduction"},
			kind: util.KindInput,
		},
		{
			name: "unparseable date",
			ds:   gasDataset([][]string{{"first of March", "3000", "0.85", "0"}}),
			cols: DefaultGasColumns(),
			kind: util.KindData,
		},
		{
			name: "unparseable pressure",
			ds:   gasDataset([][]string{{"2023-01-01", "high", "0.85", "0"}}),
			cols: DefaultGasColumns(),
			kind: util.KindData,
		},
		{
			name: "zero z-factor",
			ds:   gasDataset([][]string{{"2023-01-01", "3000", "0", "0"}}),
			cols: DefaultGasColumns(),
			kind: util.KindData,
		},
		{
			name: "short row leaves empty cum cell",
			ds:   gasDataset([][]string{{"2023-01-01", "3000", "0.85"}}),
			cols: DefaultGasColumns(),
			kind: util.KindData,
		},
	}
	for _, c := range cases {
		_, err := ExtractGasRecords(c.ds, c.cols)
		if err == nil {
			t.Errorf("%s: expected an error", c.name)
			continue
		}
		if kind := util.KindOf(err); kind != c.kind {
			t.Errorf("%s: kind = %s, want %s (%v)", c.name, kind, c.kind, err)
		}
	}
}

func declineDataset(columns []string, rows [][]string) *model.Dataset {
	return &model.Dataset{Source: "test", Columns: columns, Rows: rows}
}

func TestExtractRatePoints_NumericTime(t *testing.T) {
	ds := declineDataset([]string{"Month", "Rate"}, [][]string{
		{"2", "900"},
		{"0", "1000"},
		{"1", "950"},
	})
	points, err := ExtractRatePoints(ds, DeclineColumns{Time: "Month", Rate: "Rate"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	for i, want := range []model.RatePoint{{Month: 0, Rate: 1000}, {Month: 1, Rate: 950}, {Month: 2, Rate: 900}} {
		if points[i] != want {
			t.Errorf("point %d = %+v, want %+v", i, points[i], want)
		}
	}
}

func TestExtractRatePoints_DateTime(t *testing.T) {
	ds := declineDataset([]string{"Date", "Rate"}, [][]string{
		{"2023-01-15", "1000"},
		{"2023-02-15", "950"},
		{"2023-04-15", "870"},
	})
	points, err := ExtractRatePoints(ds, DeclineColumns{Time: "Date", Rate: "Rate"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 1, 3}
	for i, p := range points {
		if p.Month != want[i] {
			t.Errorf("point %d month = %g, want %g", i, p.Month, want[i])
		}
	}
}

func TestExtractRatePoints_Errors(t *testing.T) {
	cases := []struct {
		name string
		ds   *model.Dataset
		kind util.Kind
	}{
		{
			name: "duplicate numeric time",
			ds: declineDataset([]string{"Month", "Rate"}, [][]string{
				{"0", "1000"}, {"1", "950"}, {"1", "940"},
			}),
			kind: util.KindData,
		},
		{
			name: "same calendar month twice",
			ds: declineDataset([]string{"Date", "Rate"}, [][]string{
				{"2023-01-05", "1000"}, {"2023-01-25", "990"},
			}),
			kind: util.KindData,
		},
		{
			name: "negative rate",
			ds: declineDataset([]string{"Month", "Rate"}, [][]string{
				{"0", "1000"}, {"1", "-5"},
			}),
			kind: util.KindData,
		},
		{
			name: "negative time",
			ds: declineDataset([]string{"Month", "Rate"}, [][]string{
				{"-1", "1000"}, {"0", "950"},
			}),
			kind: util.KindData,
		},
		{
			name: "mixed time cells",
			ds: declineDataset([]string{"Month", "Rate"}, [][]string{
				{"0", "1000"}, {"2023-02-01", "950"},
			}),
			kind: util.KindData,
		},
	}
	for _, c := range cases {
		_, err := ExtractRatePoints(c.ds, DeclineColumns{Time: c.ds.Columns[0], Rate: "Rate"})
		if err == nil {
			t.Errorf("%s: expected an error", c.name)
			continue
		}
		if kind := util.KindOf(err); kind != c.kind {
			t.Errorf("%s: kind = %s, want %s (%v)", c.name, kind, c.kind, err)
		}
	}
}
