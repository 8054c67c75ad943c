package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/gradebook/gradebook-sheets/grades"
	"github.com/gradebook/gradebook-sheets/gsheets"
)

const APP = "gradebook-sheets"

type Options struct {
	Debug bool
}

type command struct {
	credentials string
	url         string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Service account credentials file. Defaults to $ROBOT_CREDENTIALS")
	flagset.StringVar(&c.url, "url", c.url, "Spreadsheet URL or ID. Defaults to $SPREADSHEET_ID")

	return flagset
}

func (c *command) validate() error {
	if strings.TrimSpace(c.credentials) == "" {
		c.credentials = os.Getenv(ENV_CREDENTIALS)
	}

	if strings.TrimSpace(c.credentials) == "" {
		if _, err := os.Stat(DEFAULT_CREDENTIALS); err == nil {
			c.credentials = DEFAULT_CREDENTIALS
		}
	}

	if strings.TrimSpace(c.url) == "" {
		c.url = os.Getenv(ENV_SPREADSHEET)
	}

	if strings.TrimSpace(c.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(c.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	return nil
}

func (c *command) authorise(ctx context.Context, scopes ...string) (*http.Client, error) {
	credentials, err := readCredentials(c.credentials)
	if err != nil {
		return nil, err
	}

	return gsheets.Authorize(ctx, credentials, scopes...)
}

func getSheets(ctx context.Context, client *http.Client) (*sheets.Service, error) {
	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	return google, nil
}

// logRevision is informational only and never fails the command.
func logRevision(ctx context.Context, client *http.Client, spreadsheet string) {
	gdrive, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		warnf("unable to create new Drive client (%v)", err)
		return
	}

	if revision, err := gsheets.LatestRevision(ctx, gdrive, spreadsheet); err != nil {
		warnf("%v", err)
	} else {
		infof("Spreadsheet %v revision %v (%v)", spreadsheet, revision.ID, revision.Modified.Local().Format("2006-01-02 15:04:05"))
	}
}

// spreadsheetID accepts either a Google Sheets URL or a bare spreadsheet ID.
func spreadsheetID(v string) (string, error) {
	v = strings.TrimSpace(v)

	if match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(v); len(match) > 1 && match[1] != "" {
		return match[1], nil
	}

	if regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(v) {
		return v, nil
	}

	return "", &grades.Error{
		Kind:    grades.ConfigMissing,
		Message: fmt.Sprintf("invalid spreadsheet '%v' - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'", v),
	}
}

// sheetName returns the unquoted worksheet name of an A1 range e.g. 'Grades' for "'Grades'!A1:ZZ".
func sheetName(area string) (string, error) {
	match := regexp.MustCompile(`^(.+?)!.*`).FindStringSubmatch(strings.TrimSpace(area))
	if len(match) < 2 {
		return "", fmt.Errorf("invalid range '%s' - expected something like 'Grades!A1:ZZ'", area)
	}

	name := match[1]
	if strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") && len(name) > 1 {
		name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}

	return name, nil
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("    --debug         Displays internal information for diagnosing errors")
}
