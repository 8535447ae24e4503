package history

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/golang/snappy"

	"ReservoirBench/internal/model"
)

// encodeSnapshot re-encodes the dataset as CSV and snappy-compresses it.
// A nil dataset encodes as nil, letting callers record without a snapshot.
func encodeSnapshot(ds *model.Dataset) ([]byte, error) {
	if ds == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ds.Columns); err != nil {
		return nil, fmt.Errorf("encode snapshot header: %w", err)
	}
	for _, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("encode snapshot row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush snapshot: %w", err)
	}
	return snappy.Encode(nil, buf.Bytes()), nil
}

// decodeSnapshot reverses encodeSnapshot.
func decodeSnapshot(blob []byte, source string) (*model.Dataset, error) {
	raw, err := snappy.Decode(nil, blob)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1 // source rows may be ragged
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("snapshot is empty")
	}
	return &model.Dataset{Source: source, Columns: rows[0], Rows: rows[1:]}, nil
}
