package commands

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gradebook/gradebook-sheets/grades"
	"github.com/gradebook/gradebook-sheets/results"
)

const (
	ENV_TASK         = "TASK_NAME"
	ENV_GITHUB_ID    = "GITHUB_ID"
	ENV_GITHUB_ACTOR = "GITHUB_ACTOR"
	ENV_CREDENTIALS  = "ROBOT_CREDENTIALS"
	ENV_SPREADSHEET  = "SPREADSHEET_ID"
	ENV_SHEET        = "SHEET_NAME"
	ENV_RESULT       = "RESULT"
	ENV_TEST_RESULTS = "TEST_RESULTS"

	DEFAULT_SHEET = "Sheet1"
	DOTENV        = ".env"
)

type config struct {
	task        string
	student     string
	credentials []byte
	spreadsheet string
	sheet       string
	result      string
	results     string
}

// loadConfig reads the update configuration from the environment, after loading any .env file
// in the current directory. Variables that are already set take precedence over the .env file.
func loadConfig(dotenv string) (*config, error) {
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return nil, fmt.Errorf("error loading %v (%w)", dotenv, err)
		}
	}

	getenv := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				return v
			}
		}

		return ""
	}

	missing := func(key string) error {
		return &grades.Error{
			Kind:    grades.ConfigMissing,
			Message: fmt.Sprintf("%v is not set", key),
		}
	}

	c := config{
		task:    getenv(ENV_TASK),
		student: getenv(ENV_GITHUB_ID, ENV_GITHUB_ACTOR),
		sheet:   getenv(ENV_SHEET),
		result:  getenv(ENV_RESULT),
		results: getenv(ENV_TEST_RESULTS),
	}

	if c.task == "" {
		return nil, missing(ENV_TASK)
	}

	if c.student == "" {
		return nil, missing(ENV_GITHUB_ID)
	}

	if c.sheet == "" {
		c.sheet = DEFAULT_SHEET
	}

	if c.result == "" && c.results == "" {
		return nil, missing(fmt.Sprintf("%v or %v", ENV_RESULT, ENV_TEST_RESULTS))
	}

	if v := getenv(ENV_SPREADSHEET); v == "" {
		return nil, missing(ENV_SPREADSHEET)
	} else if id, err := spreadsheetID(v); err != nil {
		return nil, err
	} else {
		c.spreadsheet = id
	}

	if v := getenv(ENV_CREDENTIALS); v == "" {
		return nil, missing(ENV_CREDENTIALS)
	} else if credentials, err := readCredentials(v); err != nil {
		return nil, err
	} else {
		c.credentials = credentials
	}

	return &c, nil
}

// value returns the value to write to the grade sheet: RESULT verbatim if set, otherwise the
// number of passed tests in TEST_RESULTS.
func (c *config) value() (any, error) {
	if c.result != "" {
		return c.result, nil
	}

	r, err := results.Decode(c.results)
	if err != nil {
		return nil, err
	}

	return r.Score(), nil
}

// readCredentials accepts service account credentials as raw JSON, base64 encoded JSON or the
// path to a JSON file.
func readCredentials(v string) ([]byte, error) {
	v = strings.TrimSpace(v)

	if strings.HasPrefix(v, "{") {
		return []byte(v), nil
	}

	if info, err := os.Stat(v); err == nil && !info.IsDir() {
		return os.ReadFile(v)
	}

	b, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		if b, err = base64.RawStdEncoding.DecodeString(v); err != nil {
			return nil, &grades.Error{
				Kind:    grades.AuthFailure,
				Message: "malformed credentials - expected JSON, base64 encoded JSON or a credentials file",
				Err:     err,
			}
		}
	}

	return b, nil
}
