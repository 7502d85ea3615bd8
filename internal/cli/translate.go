package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/roach88/tsbind/internal/config"
	"github.com/roach88/tsbind/internal/lower"
	"github.com/roach88/tsbind/internal/printer"
	"github.com/roach88/tsbind/internal/translate"
)

func runTranslate(opts *RootOptions, input, output string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeConfig, "loading config", err)
	}

	src, err := os.ReadFile(input)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("reading input %s", input), err)
	}

	res, err := translate.Source(cmd.Context(), input, src, translate.Options{
		Config: cfg,
		Logger: newLogger(opts, cmd.ErrOrStderr()),
	})
	if err != nil {
		return fail(formatter, ExitFailure, translateErrorCode(err), fmt.Sprintf("translating %s", input), err)
	}

	if err := os.WriteFile(output, []byte(res.Text()), 0o644); err != nil {
		return fail(formatter, ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output %s", output), err)
	}
	res.Output = output

	for _, d := range res.Diagnostics {
		formatter.VerboseLog("  degraded: %s", d)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	fmt.Fprintf(formatter.Writer, "✓ Translated %s → %s (%d lines, %d diagnostics)\n",
		input, output, res.LineCount, len(res.Diagnostics))
	return nil
}

// translateErrorCode maps a failed translation to its CLI error code.
func translateErrorCode(err error) string {
	switch {
	case errors.Is(err, lower.ErrUnresolvedName):
		return ErrCodeLowering
	case errors.Is(err, printer.ErrVariadicNotArray):
		return ErrCodePrinting
	case errors.HasAssertionFailure(err):
		return ErrCodeInternal
	default:
		return ErrCodeGeneric
	}
}

// fail reports err through the formatter and returns it as an ExitError.
func fail(formatter *OutputFormatter, exit int, code, message string, err error) error {
	_ = formatter.Error(code, fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(exit, message, err)
}

// newLogger builds the run logger: text to w, Warn by default, Debug
// with --verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
