package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gradebook/gradebook-sheets/gsheets"
)

var GetCmd = Get{
	command: command{
		credentials: "",
		url:         "",
		debug:       false,
	},

	area: "Sheet1!A1:ZZ",
	file: time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	area string
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a grade sheet from a Google Sheets worksheet and stores it to a local TSV or XLSX file"
}

func (cmd *Get) Usage() string {
	return "--credentials <file> --url <url> --range <range> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --url <URL> --range <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet to a TSV file or, if the file has an .xlsx extension, an Excel workbook")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    gradebook-sheets --debug get --credentials "credentials.json" \`)
	fmt.Println(`                                 --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                 --range "Grades!A1:ZZ" \`)
	fmt.Println(`                                 --file "grades.xlsx"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range e.g. 'Grades!A1:ZZ'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV or XLSX file name. Defaults to '<yyyy-mm-dd HHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
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

	sheet, err := sheetName(cmd.area)
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  range:%s", spreadsheet, cmd.area)
	}

	// ... authorise
	ctx := context.Background()

	client, err := cmd.authorise(ctx, gsheets.SHEETS, gsheets.DRIVE)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := getSheets(ctx, client)
	if err != nil {
		return err
	}

	table, err := gsheets.NewGateway(google, spreadsheet, sheet).ReadRange(ctx, cmd.area)
	if err != nil {
		return err
	}

	if len(table) == 0 {
		return fmt.Errorf("no data in spreadsheet/range")
	}

	tmp, err := os.CreateTemp(os.TempDir(), "grades")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if strings.EqualFold(filepath.Ext(cmd.file), ".xlsx") {
		if err := sheetToXLSX(tmp, sheet, table); err != nil {
			return fmt.Errorf("error creating XLSX file (%w)", err)
		}
	} else if err := sheetToTSV(tmp, table); err != nil {
		return fmt.Errorf("error creating TSV file (%w)", err)
	}

	tmp.Close()

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	infof("Retrieved grade sheet to file %s", cmd.file)

	logRevision(ctx, client, spreadsheet)

	return nil
}
