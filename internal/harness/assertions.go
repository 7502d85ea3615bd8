package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It carries the full output to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Lines    []string // Full output for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Lines) > 0 {
		fmt.Fprintf(&buf, "\nOutput:\n")
		for i, line := range e.Lines {
			fmt.Fprintf(&buf, "  %3d| %s\n", i+1, line)
		}
	}

	return buf.String()
}

// findLine returns the index of the first line at or after from that,
// trimmed, equals want, or -1.
func findLine(lines []string, want string, from int) int {
	want = strings.TrimSpace(want)
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == want {
			return i
		}
	}
	return -1
}

func assertContains(lines []string, a Assertion) error {
	if findLine(lines, a.Line, 0) >= 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertContains,
		Expected: fmt.Sprintf("line %q", a.Line),
		Actual:   "not found in output",
		Lines:    lines,
	}
}

func assertNotContains(lines []string, a Assertion) error {
	for i, line := range lines {
		if strings.Contains(line, a.Line) {
			return &AssertionError{
				Type:     AssertNotContains,
				Expected: fmt.Sprintf("no line containing %q", a.Line),
				Actual:   fmt.Sprintf("line %d: %s", i+1, line),
				Lines:    lines,
			}
		}
	}
	return nil
}

// assertOrder checks that the lines occur in order. Other lines may
// appear between them.
func assertOrder(lines []string, a Assertion) error {
	pos := 0
	for _, want := range a.Lines {
		i := findLine(lines, want, pos)
		if i < 0 {
			actual := fmt.Sprintf("missing line: %s", want)
			if findLine(lines, want, 0) >= 0 {
				actual = fmt.Sprintf("%q appears before its predecessor", want)
			}
			return &AssertionError{
				Type:     AssertOrder,
				Expected: fmt.Sprintf("lines in order: %q", a.Lines),
				Actual:   actual,
				Lines:    lines,
			}
		}
		pos = i + 1
	}
	return nil
}

func assertLineCount(lines []string, a Assertion) error {
	if len(lines) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertLineCount,
		Expected: fmt.Sprintf("%d lines", a.Count),
		Actual:   fmt.Sprintf("%d lines", len(lines)),
		Lines:    lines,
	}
}

func assertDiagnostics(result *Result, a Assertion) error {
	if result.Diagnostics == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertDiagnostics,
		Expected: fmt.Sprintf("%d diagnostics", a.Count),
		Actual:   fmt.Sprintf("%d diagnostics", result.Diagnostics),
		Lines:    result.Lines,
	}
}

func assertError(result *Result, a Assertion) error {
	if result.Err != "" && strings.Contains(result.Err, a.Error) {
		return nil
	}
	actual := "translation succeeded"
	if result.Err != "" {
		actual = result.Err
	}
	return &AssertionError{
		Type:     AssertError,
		Expected: fmt.Sprintf("error containing %q", a.Error),
		Actual:   actual,
		Lines:    result.Lines,
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string

	for i, a := range assertions {
		var err error

		// A failed translation only satisfies error assertions.
		if result.Err != "" && a.Type != AssertError {
			errs = append(errs, fmt.Sprintf("assertion[%d]: translation failed: %s", i, result.Err))
			continue
		}

		switch a.Type {
		case AssertContains:
			err = assertContains(result.Lines, a)
		case AssertNotContains:
			err = assertNotContains(result.Lines, a)
		case AssertOrder:
			err = assertOrder(result.Lines, a)
		case AssertLineCount:
			err = assertLineCount(result.Lines, a)
		case AssertDiagnostics:
			err = assertDiagnostics(result, a)
		case AssertError:
			err = assertError(result, a)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}
