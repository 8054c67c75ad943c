package grades

import (
	"strings"
)

// Table is a snapshot of a rectangular worksheet range. Rows may be ragged and row 0, if present,
// is the header row. A Table is only meaningful for the duration of a single read-modify-write
// sequence and is never cached.
type Table [][]string

// Cell returns the value at (row,col), treating anything outside the table as blank.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t) || col < 0 || col >= len(t[row]) {
		return ""
	}

	return t[row][col]
}

// FindRowByValue returns the index of the first row (header included) whose cell in column 'col'
// matches 'value' exactly. Rows too short to have the column are skipped.
func (t Table) FindRowByValue(col int, value string) (int, bool) {
	return t.findRow(0, []int{col}, value)
}

// FindRowByValueIn is FindRowByValue over an explicit list of candidate key columns, a row
// matching if any of the candidate cells match.
func (t Table) FindRowByValueIn(columns []int, value string) (int, bool) {
	return t.findRow(0, columns, value)
}

func (t Table) findRow(start int, columns []int, value string) (int, bool) {
	for row := start; row < len(t); row++ {
		for _, col := range columns {
			if col >= 0 && col < len(t[row]) && t[row][col] == value {
				return row, true
			}
		}
	}

	return 0, false
}

// FindColumnByHeader returns the index of the first header cell that matches 'header' exactly.
func (t Table) FindColumnByHeader(header string) (int, bool) {
	if len(t) == 0 {
		return 0, false
	}

	for col, v := range t[0] {
		if v == header {
			return col, true
		}
	}

	return 0, false
}

// FindFirstEmptyRow returns the index of the first row in which every cell is blank or, failing
// that, len(t) i.e. the row after the last row.
func (t Table) FindFirstEmptyRow() int {
	for row, record := range t {
		empty := true
		for _, v := range record {
			if !blank(v) {
				empty = false
				break
			}
		}

		if empty {
			return row
		}
	}

	return len(t)
}

// FindFirstEmptyColumn returns the index of the first column which is blank in every row (missing
// cells count as blank) or, failing that, the width of the widest row.
func (t Table) FindFirstEmptyColumn() int {
	columns := 0
	for _, record := range t {
		if len(record) > columns {
			columns = len(record)
		}
	}

	for col := 0; col < columns; col++ {
		empty := true
		for row := range t {
			if !blank(t.Cell(row, col)) {
				empty = false
				break
			}
		}

		if empty {
			return col
		}
	}

	return columns
}

func blank(v string) bool {
	return strings.TrimSpace(v) == ""
}
