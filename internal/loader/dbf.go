package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Valentin-Kaiser/go-dbase/dbase"

	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

// DBFReader reads a dBase/FoxPro table, the format most legacy production
// accounting systems still export. Deleted records are skipped.
type DBFReader struct{}

func (r *DBFReader) Name() string { return "dbf" }

func (r *DBFReader) Read(path string) (*model.Dataset, error) {
	table, err := dbase.OpenTable(&dbase.Config{
		Filename:   path,
		TrimSpaces: true,
		ReadOnly:   true,
	})
	if err != nil {
		return nil, util.IOFailure("open dbf", err)
	}
	defer table.Close()

	var header []string
	for _, col := range table.Columns() {
		header = append(header, col.Name())
	}
	if len(header) == 0 {
		return nil, util.BadInput("dbf table declares no columns")
	}

	var rows [][]string
	for !table.EOF() {
		row, err := table.Next()
		if err != nil {
			return nil, util.IOFailure("read dbf record", err)
		}
		if row.Deleted {
			continue
		}
		cells := make([]string, len(header))
		for i, name := range header {
			value, err := row.ValueByName(name)
			if err != nil {
				return nil, util.IOFailure(fmt.Sprintf("read dbf field %s", name), err)
			}
			cells[i] = stringifyDBF(value)
		}
		rows = append(rows, cells)
	}

	return &model.Dataset{Source: path, Columns: header, Rows: rows}, nil
}

// stringifyDBF renders a typed DBF value as the cell text the mapping layer
// parses, so all three formats feed the calculators identically.
func stringifyDBF(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", value))
}
