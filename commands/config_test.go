package commands

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/gradebook/gradebook-sheets/grades"
)

const CREDENTIALS = `{"type":"service_account","client_email":"robot@gradebook.iam.gserviceaccount.com"}`

var environment = []string{
	ENV_TASK,
	ENV_GITHUB_ID,
	ENV_GITHUB_ACTOR,
	ENV_CREDENTIALS,
	ENV_SPREADSHEET,
	ENV_SHEET,
	ENV_RESULT,
	ENV_TEST_RESULTS,
}

func setenv(t *testing.T, vars map[string]string) {
	for _, k := range environment {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setenv(t, map[string]string{
		ENV_TASK:        "task01",
		ENV_GITHUB_ID:   "alice",
		ENV_CREDENTIALS: base64.StdEncoding.EncodeToString([]byte(CREDENTIALS)),
		ENV_SPREADSHEET: "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0",
		ENV_RESULT:      "1",
	})

	conf, err := loadConfig(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if conf.task != "task01" || conf.student != "alice" || conf.sheet != DEFAULT_SHEET {
		t.Errorf("Incorrect configuration %+v", conf)
	}

	if conf.spreadsheet != "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" {
		t.Errorf("Incorrect spreadsheet ID - expected:%v, got:%v", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", conf.spreadsheet)
	}

	if string(conf.credentials) != CREDENTIALS {
		t.Errorf("Incorrect credentials - expected:%v, got:%v", CREDENTIALS, string(conf.credentials))
	}

	if v, err := conf.value(); err != nil || v != "1" {
		t.Errorf("Incorrect value - expected:%v, got:%v (%v)", "1", v, err)
	}
}

func TestLoadConfigWithGitHubActor(t *testing.T) {
	setenv(t, map[string]string{
		ENV_TASK:         "task01",
		ENV_GITHUB_ACTOR: "bob",
		ENV_CREDENTIALS:  CREDENTIALS,
		ENV_SPREADSHEET:  "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		ENV_SHEET:        "Grades",
		ENV_TEST_RESULTS: base64.StdEncoding.EncodeToString([]byte(`{"version":1,"status":"fail","tests":[{"name":"a","status":"pass"},{"name":"b","status":"fail"},{"name":"c","status":"pass"}]}`)),
	})

	conf, err := loadConfig(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if conf.student != "bob" || conf.sheet != "Grades" {
		t.Errorf("Incorrect configuration %+v", conf)
	}

	if v, err := conf.value(); err != nil || v != 2 {
		t.Errorf("Incorrect value - expected:%v, got:%v (%v)", 2, v, err)
	}
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	setenv(t, map[string]string{
		ENV_RESULT: "5",
	})

	dotenv := filepath.Join(t.TempDir(), ".env")
	contents := `TASK_NAME=task02
GITHUB_ID=carol
ROBOT_CREDENTIALS='` + CREDENTIALS + `'
SPREADSHEET_ID=1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms
RESULT=3
`

	if err := os.WriteFile(dotenv, []byte(contents), 0600); err != nil {
		t.Fatalf("Error creating .env file (%v)", err)
	}

	conf, err := loadConfig(dotenv)
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if conf.task != "task02" || conf.student != "carol" || conf.result != "5" {
		t.Errorf("Incorrect configuration %+v", conf)
	}

	if string(conf.credentials) != CREDENTIALS {
		t.Errorf("Incorrect credentials - expected:%v, got:%v", CREDENTIALS, string(conf.credentials))
	}
}

func TestLoadConfigWithMissingValues(t *testing.T) {
	complete := map[string]string{
		ENV_TASK:        "task01",
		ENV_GITHUB_ID:   "alice",
		ENV_CREDENTIALS: CREDENTIALS,
		ENV_SPREADSHEET: "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		ENV_RESULT:      "1",
	}

	for k := range complete {
		vars := map[string]string{}
		for kk, v := range complete {
			if kk != k {
				vars[kk] = v
			}
		}

		setenv(t, vars)

		_, err := loadConfig(filepath.Join(t.TempDir(), ".env"))
		if kind, ok := grades.KindOf(err); !ok || kind != grades.ConfigMissing {
			t.Errorf("Expected %v error for missing %v, got %v", grades.ConfigMissing, k, err)
		}
	}
}

func TestLoadConfigWithInvalidTestResults(t *testing.T) {
	setenv(t, map[string]string{
		ENV_TASK:         "task01",
		ENV_GITHUB_ID:    "alice",
		ENV_CREDENTIALS:  CREDENTIALS,
		ENV_SPREADSHEET:  "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		ENV_TEST_RESULTS: "not base64!",
	})

	conf, err := loadConfig(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if _, err := conf.value(); err == nil {
		t.Errorf("Expected error decoding invalid test results")
	} else if kind, _ := grades.KindOf(err); kind != grades.DecodeFailure {
		t.Errorf("Incorrect error kind - expected:%v, got:%v", grades.DecodeFailure, kind)
	}
}

func TestReadCredentials(t *testing.T) {
	file := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(file, []byte(CREDENTIALS), 0600); err != nil {
		t.Fatalf("Error creating credentials file (%v)", err)
	}

	tests := []string{
		CREDENTIALS,
		"  " + CREDENTIALS + "\n",
		base64.StdEncoding.EncodeToString([]byte(CREDENTIALS)),
		base64.RawStdEncoding.EncodeToString([]byte(CREDENTIALS)),
		file,
	}

	for _, v := range tests {
		credentials, err := readCredentials(v)
		if err != nil {
			t.Errorf("Unexpected error reading credentials '%v' (%v)", v, err)
		} else if string(credentials) != CREDENTIALS {
			t.Errorf("Incorrect credentials from '%v' - expected:%v, got:%v", v, CREDENTIALS, string(credentials))
		}
	}
}

func TestReadCredentialsWithMalformedCredentials(t *testing.T) {
	_, err := readCredentials(filepath.Join(t.TempDir(), "missing.json"))

	if kind, ok := grades.KindOf(err); !ok || kind != grades.AuthFailure {
		t.Errorf("Expected %v error, got %v", grades.AuthFailure, err)
	}
}
