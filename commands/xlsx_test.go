package commands

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/gradebook/gradebook-sheets/grades"
)

func TestSheetToXLSX(t *testing.T) {
	table := grades.Table{
		{"github_id", "task01", "task02"},
		{"alice", "1", "0.5"},
		{"bob", "", "pending"},
	}

	var b bytes.Buffer
	if err := sheetToXLSX(&b, "Grades", table); err != nil {
		t.Fatalf("Unexpected error returned from sheetToXLSX (%v)", err)
	}

	f, err := excelize.OpenReader(&b)
	if err != nil {
		t.Fatalf("Error reading XLSX (%v)", err)
	}

	defer f.Close()

	if sheets := f.GetSheetList(); !reflect.DeepEqual(sheets, []string{"Grades"}) {
		t.Errorf("Incorrect worksheets - expected:%v, got:%v", []string{"Grades"}, sheets)
	}

	rows, err := f.GetRows("Grades")
	if err != nil {
		t.Fatalf("Error reading worksheet (%v)", err)
	}

	expected := [][]string{
		{"github_id", "task01", "task02"},
		{"alice", "1", "0.5"},
		{"bob", "", "pending"},
	}

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %v\n   got:      %v\n", expected, rows)
	}
}

func TestWorksheetName(t *testing.T) {
	tests := map[string]string{
		"Grades":          "Grades",
		"":                "Sheet1",
		"2024/25 [CS101]": "2024_25 _CS101_",
		"An extremely long worksheet name for CS": "An extremely long worksheet nam",
	}

	for sheet, expected := range tests {
		if name := worksheetName(sheet); name != expected {
			t.Errorf("Incorrect worksheet name for '%v' - expected:%v, got:%v", sheet, expected, name)
		}
	}
}
