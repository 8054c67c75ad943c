// Package results decodes the base64 encoded JSON test results payload produced by the
// autograding step of a CI pipeline.
package results

import (
	"encoding/base64"
	"fmt"
	"strings"

	json "github.com/bytedance/sonic"

	"github.com/gradebook/gradebook-sheets/grades"
)

const PASS = "pass"

type TestResult struct {
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Score    *float64 `json:"score,omitempty"`
	TestCode *string  `json:"test_code,omitempty"`
	Filename *string  `json:"filename,omitempty"`
	LineNo   *uint32  `json:"line_no,omitempty"`
	Duration *uint64  `json:"duration,omitempty"`
}

type TestResults struct {
	Version  uint8        `json:"version"`
	Status   string       `json:"status"`
	MaxScore *float64     `json:"max_score,omitempty"`
	Tests    []TestResult `json:"tests"`
}

// Outcome is the (test name, status) pair for a single test.
type Outcome struct {
	Name   string
	Status string
}

// Decode unpacks a base64 encoded (padded or unpadded) JSON test results payload.
func Decode(payload string) (*TestResults, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, failed("empty payload", nil)
	}

	bytes, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if b, e := base64.RawStdEncoding.DecodeString(payload); e != nil {
			return nil, failed("invalid base64", err)
		} else {
			bytes = b
		}
	}

	var results TestResults
	if err := json.Unmarshal(bytes, &results); err != nil {
		return nil, failed("invalid JSON", err)
	}

	if results.Tests == nil {
		return nil, failed("missing 'tests' list", nil)
	}

	return &results, nil
}

// Passed returns true if the test status is 'pass'.
func (t TestResult) Passed() bool {
	return t.Status == PASS
}

func (r TestResults) Outcomes() []Outcome {
	outcomes := make([]Outcome, 0, len(r.Tests))
	for _, t := range r.Tests {
		outcomes = append(outcomes, Outcome{Name: t.Name, Status: t.Status})
	}

	return outcomes
}

// Score maps each test to 1 if it passed and 0 otherwise and returns the sum.
func (r TestResults) Score() int {
	score := 0
	for _, t := range r.Tests {
		if t.Passed() {
			score++
		}
	}

	return score
}

func failed(msg string, err error) error {
	return &grades.Error{
		Kind:    grades.DecodeFailure,
		Message: msg,
		Err:     err,
	}
}

func (o Outcome) String() string {
	return fmt.Sprintf("%v: %v", o.Name, o.Status)
}
