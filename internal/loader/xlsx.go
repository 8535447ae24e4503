package loader

import (
	"github.com/xuri/excelize/v2"

	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

// XLSXReader reads the first sheet of a workbook; row one is the header.
type XLSXReader struct{}

func (r *XLSXReader) Name() string { return "xlsx" }

func (r *XLSXReader) Read(path string) (*model.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, util.IOFailure("open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, util.BadInput("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, util.IOFailure("read sheet", err)
	}
	if len(rows) == 0 {
		return nil, util.BadInput("first sheet is empty, expected a header row")
	}

	header := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		header[i] = trimCell(c)
	}
	return &model.Dataset{Source: path, Columns: header, Rows: rows[1:]}, nil
}
