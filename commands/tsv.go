package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gradebook/gradebook-sheets/grades"
)

// sheetToTSV writes the header row and every non-blank record, padded to the width of the
// widest row.
func sheetToTSV(f io.Writer, table grades.Table) error {
	if len(table) == 0 {
		return fmt.Errorf("Empty sheet")
	}

	columns := 0
	for _, row := range table {
		if len(row) > columns {
			columns = len(row)
		}
	}

	if columns == 0 {
		return fmt.Errorf("Missing/invalid header row")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	for i := range table {
		record := make([]string, columns)
		empty := true
		for j := range record {
			record[j] = clean(table.Cell(i, j))
			if record[j] != "" {
				empty = false
			}
		}

		if empty && i > 0 {
			continue
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func tsvToSheet(f io.Reader) ([][]interface{}, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	rows := make([][]interface{}, 0, len(records))
	for _, record := range records {
		row := make([]interface{}, len(record))
		for i, v := range record {
			row[i] = clean(v)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
