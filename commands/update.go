package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/gradebook/gradebook-sheets/grades"
	"github.com/gradebook/gradebook-sheets/gsheets"
)

var UpdateCmd = Update{
	dotenv: DOTENV,
	debug:  false,
}

type Update struct {
	dotenv string
	debug  bool
}

func (cmd *Update) Name() string {
	return "update"
}

func (cmd *Update) Description() string {
	return "Records an assignment result for a student in a Google Sheets grade sheet"
}

func (cmd *Update) Usage() string {
	return ""
}

func (cmd *Update) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [update]\n", APP)
	fmt.Println()
	fmt.Println("  Writes the result of an assignment to the cell at the intersection of the student's row and the")
	fmt.Println("  assignment's column, adding the student and/or assignment if necessary. The grade sheet must have")
	fmt.Printf("  a '%v' column. 'update' is the default command and is configured entirely from the environment\n", grades.KeyHeader)
	fmt.Printf("  (or a %v file in the current directory):\n", DOTENV)
	fmt.Println()
	fmt.Printf("    %-18s Assignment name (column header)\n", ENV_TASK)
	fmt.Printf("    %-18s Student GitHub ID. Defaults to %v\n", ENV_GITHUB_ID, ENV_GITHUB_ACTOR)
	fmt.Printf("    %-18s Service account credentials (JSON, base64 encoded JSON or file)\n", ENV_CREDENTIALS)
	fmt.Printf("    %-18s Spreadsheet ID or URL\n", ENV_SPREADSHEET)
	fmt.Printf("    %-18s Worksheet name. Defaults to %v\n", ENV_SHEET, DEFAULT_SHEET)
	fmt.Printf("    %-18s Result to record\n", ENV_RESULT)
	fmt.Printf("    %-18s Base64 encoded test results - records the number of passed tests if %v is not set\n", ENV_TEST_RESULTS, ENV_RESULT)
	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    TASK_NAME=task01 GITHUB_ID=alice RESULT=1 gradebook-sheets --debug update`)
	fmt.Println()
}

func (cmd *Update) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("update", flag.ExitOnError)
}

func (cmd *Update) Execute(args ...any) error {
	if len(args) > 0 {
		if options, ok := args[0].(*Options); ok && options != nil {
			cmd.debug = options.Debug
		}
	}

	ctx := context.Background()

	// ... check configuration
	conf, err := loadConfig(cmd.dotenv)
	if err != nil {
		return err
	}

	value, err := conf.value()
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  sheet:%s  student:%s  task:%s  result:%v", conf.spreadsheet, conf.sheet, conf.student, conf.task, value)
	}

	// ... authorise
	scopes := []string{gsheets.SHEETS}
	if cmd.debug {
		scopes = append(scopes, gsheets.DRIVE)
	}

	client, err := gsheets.Authorize(ctx, conf.credentials, scopes...)
	if err != nil {
		return err
	}

	google, err := getSheets(ctx, client)
	if err != nil {
		return err
	}

	// ... update
	gateway := gsheets.NewGateway(google, conf.spreadsheet, conf.sheet)
	updater := grades.NewUpdater(gateway, grades.DefaultRange)

	update, err := updater.Update(ctx, conf.student, conf.task, value)
	if err != nil {
		return err
	}

	if update.NewStudent {
		infof("Added student '%v' at row %v", conf.student, update.Cell.Row+1)
	}

	if update.NewAssignment {
		infof("Added assignment '%v' in column %v", conf.task, grades.ColumnLetters(update.Cell.Col))
	}

	infof("Recorded result %v for '%v' task '%v' in %v!%v", value, conf.student, conf.task, conf.sheet, update.Cell)

	if cmd.debug {
		logRevision(ctx, client, conf.spreadsheet)
	}

	return nil
}
