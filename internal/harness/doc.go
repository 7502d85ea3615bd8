// Package harness runs translation scenarios: small declaration sources
// paired with assertions about the printed bindings.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: enum_values
//	description: "Numeric enum members keep their values"
//	namespace: Test
//	config:
//	  max_union_arity: 4
//	source: |
//	  declare enum E { A = 1, B = 2 }
//	assertions:
//	  - type: contains
//	    line: "| A = 1"
//	  - type: order
//	    lines: ["| A = 1", "| B = 2"]
//
// Source may be replaced by source_file, a path relative to the scenario
// file.
//
// # Assertion Types
//
//   - contains: some output line, trimmed, equals line
//   - not_contains: no output line contains line as a substring
//   - order: the given lines occur in this order (other lines may sit between)
//   - line_count: the output has exactly count lines
//   - diagnostics: lowering degraded exactly count nodes
//   - error: translation fails with an error whose message contains error
//
// # Determinism
//
// Every run uses the scenario's namespace (default "Test") and a discarding
// logger, so the printed text depends only on the source and config. That
// makes it suitable for golden comparison with RunWithGolden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/enum_values.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(ctx, scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
