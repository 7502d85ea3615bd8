// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// GoldenDir is where golden files live, relative to the package under test.
const GoldenDir = "testdata/golden"

// Golden returns a goldie instance reading {GoldenDir}/{name}.golden.
func Golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
}

// AssertGolden compares data against {GoldenDir}/{name}.golden.
// Run the test with -update to rewrite the file.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()
	Golden(t).Assert(t, name, data)
}

// ReadFixture reads testdata/{name}, failing the test if it is missing.
func ReadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "reading fixture %s", name)
	return data
}

// Source joins lines into declaration source text ending in a newline.
func Source(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}
