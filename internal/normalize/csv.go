package normalize

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadCSV reads an uploaded sheet into rows keyed by header column
// name. Ragged rows are tolerated (missing trailing cells become
// absent fields); an empty file or a header with no data rows is an
// InputError.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &InputError{Err: fmt.Errorf("reading CSV: %w", err)}
	}
	if len(records) < 2 {
		return nil, &InputError{Err: errors.New("no data rows")}
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadCSVFile reads an uploaded sheet from disk.
func ReadCSVFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Err: fmt.Errorf("opening upload: %w", err)}
	}
	defer f.Close()

	return ReadCSV(f)
}
