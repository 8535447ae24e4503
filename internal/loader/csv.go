package loader

import (
	"encoding/csv"
	"os"

	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

// CSVReader reads a comma-delimited file whose first row is the header.
type CSVReader struct{}

func (r *CSVReader) Name() string { return "csv" }

func (r *CSVReader) Read(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.IOFailure("open csv", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // ragged rows surface later as empty cells

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, util.IOFailure("read csv", err)
	}
	if len(rows) == 0 {
		return nil, util.BadInput("csv file is empty, expected a header row")
	}

	header := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		header[i] = trimCell(c)
	}
	return &model.Dataset{Source: path, Columns: header, Rows: rows[1:]}, nil
}
