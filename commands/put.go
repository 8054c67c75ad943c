package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/gradebook/gradebook-sheets/grades"
	"github.com/gradebook/gradebook-sheets/gsheets"
)

var PutCmd = Put{
	command: command{
		credentials: "",
		url:         "",
		debug:       false,
	},

	area:  "",
	file:  "",
	clear: false,
}

type Put struct {
	command
	area  string
	file  string
	clear bool
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Uploads a TSV file to a Google Sheets worksheet"
}

func (cmd *Put) Usage() string {
	return "--credentials <file> --url <url> --range <range> --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --url <URL> --range <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Uploads a TSV file to a Google Sheets worksheet, starting at the top left cell of the range")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    gradebook-sheets --debug put --credentials "credentials.json" \`)
	fmt.Println(`                                 --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                 --range "Grades!A1" \`)
	fmt.Println(`                                 --file "grades.tsv"`)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range e.g. 'Grades!A1'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file")
	flagset.BoolVar(&cmd.clear, "clear", cmd.clear, "Clears the columns spanned by the TSV file before uploading")

	return flagset
}

func (cmd *Put) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.area) == "" {
		return fmt.Errorf("--range is a required option")
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	spreadsheet, err := spreadsheetID(cmd.url)
	if err != nil {
		return err
	}

	sheet, origin, err := topLeft(cmd.area)
	if err != nil {
		return err
	}

	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	rows, err := tsvToSheet(f)
	if err != nil {
		return fmt.Errorf("invalid TSV file (%w)", err)
	}

	area, columns := span(origin, rows)

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  sheet:%s  range:%s", spreadsheet, sheet, area)
	}

	// ... authorise
	ctx := context.Background()

	client, err := cmd.authorise(ctx, gsheets.SHEETS)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := getSheets(ctx, client)
	if err != nil {
		return err
	}

	gateway := gsheets.NewGateway(google, spreadsheet, sheet)

	if cmd.clear {
		infof("Clearing existing data from worksheet")
		if err := gateway.Clear(ctx, columns); err != nil {
			return err
		}
	}

	if err := gateway.WriteRange(ctx, area, rows); err != nil {
		return err
	}

	infof("Uploaded TSV file %v to Google Sheets %v!%v", cmd.file, sheet, area)

	return nil
}

// topLeft returns the worksheet name and top left cell of a range e.g. 'Grades!B2:F'.
func topLeft(area string) (string, grades.CellAddress, error) {
	sheet, err := sheetName(area)
	if err != nil {
		return "", grades.CellAddress{}, err
	}

	match := regexp.MustCompile(`!([a-zA-Z]+[0-9]+)(?::.*)?$`).FindStringSubmatch(strings.TrimSpace(area))
	if len(match) < 2 {
		return "", grades.CellAddress{}, fmt.Errorf("invalid range '%s' - expected something like 'Grades!A1'", area)
	}

	origin, err := grades.ParseCellAddress(match[1])
	if err != nil {
		return "", grades.CellAddress{}, err
	}

	return sheet, origin, nil
}

// span returns the A1 range covered by the rows when written at the origin, along with the
// open ended range of the columns it spans.
func span(origin grades.CellAddress, rows [][]interface{}) (string, string) {
	width := 1
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	height := len(rows)
	if height == 0 {
		height = 1
	}

	bottomRight := grades.CellAddress{
		Row: origin.Row + height - 1,
		Col: origin.Col + width - 1,
	}

	area := fmt.Sprintf("%v:%v", origin, bottomRight)
	columns := fmt.Sprintf("%v:%v", origin, grades.ColumnLetters(bottomRight.Col))

	return area, columns
}
