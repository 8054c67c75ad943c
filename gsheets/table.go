package gsheets

import (
	"fmt"

	"github.com/gradebook/gradebook-sheets/grades"
)

func makeTable(values [][]interface{}) grades.Table {
	table := make(grades.Table, 0, len(values))

	for _, row := range values {
		record := make([]string, len(row))
		for i, v := range row {
			switch s := v.(type) {
			case string:
				record[i] = s
			case nil:
				record[i] = ""
			default:
				record[i] = fmt.Sprintf("%v", v)
			}
		}

		table = append(table, record)
	}

	return table
}
