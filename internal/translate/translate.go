// Package translate runs one declaration file through the whole chain:
// parse, lower, merge, fix, print.
//
// Files are independent: nothing is shared between two calls except the
// read-only naming tables, so callers translating several files simply
// call Source or File once per input.
package translate

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/tsbind/internal/config"
	"github.com/roach88/tsbind/internal/fix"
	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/lower"
	"github.com/roach88/tsbind/internal/merge"
	"github.com/roach88/tsbind/internal/printer"
	"github.com/roach88/tsbind/internal/syntax"
)

// Options configures a run. A zero Config is replaced by config.Default().
type Options struct {
	Config config.Config
	Logger *slog.Logger
}

// Result is the outcome of translating one input.
type Result struct {
	RunID       string               `json:"run_id"`
	Input       string               `json:"input"`
	Output      string               `json:"output,omitempty"`
	Namespace   string               `json:"namespace"`
	Lines       []string             `json:"-"`
	LineCount   int                  `json:"line_count"`
	File        ir.File              `json:"-"`
	Diagnostics []lower.Diagnostic   `json:"diagnostics"`
	Violations  []ir.ValidationError `json:"violations,omitempty"`
	SyntaxError bool                 `json:"syntax_error"`
}

// Text returns the rendered lines joined with newlines, ending in one.
func (r *Result) Text() string {
	return strings.Join(r.Lines, "\n") + "\n"
}

// Source translates src, naming the run after input.
func Source(ctx context.Context, input string, src []byte, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg.NamespacePrefix == "" && cfg.Namespace == "" {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	res := &Result{
		RunID:     uuid.NewString(),
		Input:     input,
		Namespace: cfg.NamespaceFor(input),
	}
	logger = logger.With("run_id", res.RunID, "input", input)

	src = norm.NFC.Bytes(src)

	logger.Debug("parsing", "stage", "parse", "bytes", len(src))
	tree, err := syntax.Parse(ctx, src)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", input)
	}
	defer tree.Close()
	if tree.HasErrors() {
		res.SyntaxError = true
		logger.Warn("input has syntax errors, translating what parsed", "stage", "parse")
	}

	lowered, err := lower.File(res.Namespace, tree.Root(), logger.With("stage", "lower"))
	res.Diagnostics = lowered.Diagnostics
	if err != nil {
		return nil, errors.Wrapf(err, "lowering %s", input)
	}

	f := merge.File(lowered.File)
	for _, v := range ir.Validate(f, ir.ValidateOptions{}) {
		logger.Warn("merged IR violates invariant", "stage", "merge", "code", v.Code, "path", v.Path, "message", v.Message)
	}

	f.Opens = append([]string(nil), cfg.Opens...)
	f, err = fix.Run(f, fix.Options{
		BrowserOpen:   cfg.BrowserOpen,
		MaxUnionArity: cfg.MaxUnionArity,
	}, logger.With("stage", "fix"))
	if err != nil {
		return nil, errors.Wrapf(err, "fixing %s", input)
	}
	res.File = f

	res.Violations = ir.Validate(f, ir.ValidateOptions{
		StaticsExtracted: true,
		MaxUnionArity:    cfg.MaxUnionArity,
	})
	for _, v := range res.Violations {
		logger.Warn("fixed IR violates invariant", "stage", "fix", "code", v.Code, "path", v.Path, "message", v.Message)
	}

	lines, err := printer.Print(f)
	if err != nil {
		return nil, errors.Wrapf(err, "printing %s", input)
	}
	res.Lines = lines
	res.LineCount = len(lines)

	logger.Info("translation complete",
		"stage", "print",
		"lines", res.LineCount,
		"diagnostics", len(res.Diagnostics),
	)
	return res, nil
}

// File reads input, translates it and writes the result to output.
func File(ctx context.Context, input, output string, opts Options) (*Result, error) {
	src, err := os.ReadFile(input)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	res, err := Source(ctx, input, src, opts)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(output, []byte(res.Text()), 0o644); err != nil {
		return nil, errors.Wrap(err, "write output")
	}
	res.Output = output
	return res, nil
}
