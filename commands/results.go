package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gradebook/gradebook-sheets/results"
)

var ResultsCmd = Results{
	payload: "",
}

type Results struct {
	payload string
}

func (cmd *Results) Name() string {
	return "results"
}

func (cmd *Results) Description() string {
	return "Decodes and displays a base64 encoded test results payload"
}

func (cmd *Results) Usage() string {
	return "[--payload <base64>]"
}

func (cmd *Results) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s results [--payload <base64>]\n", APP)
	fmt.Println()
	fmt.Printf("  Decodes a test results payload and lists the test outcomes and score. Defaults to $%v\n", ENV_TEST_RESULTS)
	fmt.Println()

	cmd.FlagSet().VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-12s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
}

func (cmd *Results) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("results", flag.ExitOnError)

	flagset.StringVar(&cmd.payload, "payload", cmd.payload, "Base64 encoded JSON test results")

	return flagset
}

func (cmd *Results) Execute(args ...any) error {
	payload := cmd.payload
	if strings.TrimSpace(payload) == "" {
		payload = os.Getenv(ENV_TEST_RESULTS)
	}

	r, err := results.Decode(payload)
	if err != nil {
		return err
	}

	fmt.Printf("  version: %v  status: %v\n", r.Version, r.Status)
	fmt.Println()

	for _, outcome := range r.Outcomes() {
		fmt.Printf("    %-40s %v\n", outcome.Name, outcome.Status)
	}

	fmt.Println()

	fmt.Printf("  passed: %v/%v\n", r.Score(), len(r.Tests))

	return nil
}
