// Package loader reads production tables from disk into a raw Dataset and
// maps named columns onto the typed records the calculators consume.
package loader

import (
	"path/filepath"
	"strings"

	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

// Reader turns one on-disk format into a Dataset.
type Reader interface {
	Name() string
	Read(path string) (*model.Dataset, error)
}

// ReaderFor picks a reader by file extension.
func ReaderFor(path string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVReader{}, nil
	case ".xlsx":
		return &XLSXReader{}, nil
	case ".dbf":
		return &DBFReader{}, nil
	}
	return nil, util.BadInputf("unsupported file type %q, expected .csv, .xlsx or .dbf", filepath.Ext(path))
}

// Load dispatches on extension and reads the file in one step.
func Load(path string) (*model.Dataset, error) {
	r, err := ReaderFor(path)
	if err != nil {
		return nil, err
	}
	return r.Read(path)
}
