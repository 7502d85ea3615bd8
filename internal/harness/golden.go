package harness

import (
	"context"
	"strings"
	"testing"

	"github.com/roach88/tsbind/internal/testutil"
)

// RunWithGolden runs a scenario and compares the printed text against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario itself cannot be run. A translation
// failure is compared as the text "error: <message>".
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()
	testutil.AssertGolden(t, name, []byte(snapshot(result)))
}

func snapshot(result *Result) string {
	if result.Err != "" {
		return "error: " + result.Err + "\n"
	}
	return strings.Join(result.Lines, "\n") + "\n"
}
