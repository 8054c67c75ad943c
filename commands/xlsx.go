package commands

import (
	"io"
	"regexp"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/gradebook/gradebook-sheets/grades"
)

// sheetToXLSX writes the table as a single worksheet Excel workbook with a bold header row.
// Numeric cells are stored as numbers so that they can be summed.
func sheetToXLSX(w io.Writer, sheet string, table grades.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	name := worksheetName(sheet)
	if name != "Sheet1" {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	}

	for row, record := range table {
		for col, v := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return err
			}

			var value any = v
			if n, err := strconv.ParseFloat(v, 64); err == nil && row > 0 {
				value = n
			}

			if err := f.SetCellValue(name, cell, value); err != nil {
				return err
			}
		}
	}

	if len(table) > 0 && len(table[0]) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}

		last, err := excelize.CoordinatesToCellName(len(table[0]), 1)
		if err != nil {
			return err
		}

		if err := f.SetCellStyle(name, "A1", last, style); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// worksheetName replaces the characters Excel doesn't allow in worksheet names and truncates
// the name to 31 characters.
func worksheetName(sheet string) string {
	name := regexp.MustCompile(`[\[\]:*?/\\]`).ReplaceAllString(sheet, "_")

	if runes := []rune(name); len(runes) > excelize.MaxSheetNameLength {
		name = string(runes[:excelize.MaxSheetNameLength])
	}

	if name == "" {
		return "Sheet1"
	}

	return name
}
