package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tsbind/internal/config"
	"github.com/roach88/tsbind/internal/translate"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	OutDir string
}

// BatchFileResult is the per-input outcome of a batch run.
type BatchFileResult struct {
	Input       string `json:"input"`
	Output      string `json:"output,omitempty"`
	RunID       string `json:"run_id,omitempty"`
	Lines       int    `json:"lines"`
	Diagnostics int    `json:"diagnostics"`
	Error       string `json:"error,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	Files     []BatchFileResult `json:"files"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <input.d.ts>...",
		Short: "Translate several declaration files into a directory",
		Long: `Translate each input in order, writing <name>.fs into --out-dir.

Files are processed one after another and share nothing; a file that fails
does not stop the rest. The command exits 1 if any file failed.`,
		Args:          usageArgs(cobra.MinimumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "out-dir", "o", ".", "directory for generated .fs files")

	return cmd
}

func runBatch(opts *BatchOptions, inputs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeConfig, "loading config", err)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fail(formatter, ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("creating %s", opts.OutDir), err)
	}

	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	result := BatchResult{}
	for _, input := range inputs {
		output := filepath.Join(opts.OutDir, OutputName(input))
		fr := BatchFileResult{Input: input}

		res, err := translate.File(cmd.Context(), input, output, translate.Options{Config: cfg, Logger: logger})
		if err != nil {
			fr.Error = err.Error()
			fr.ErrorCode = translateErrorCode(err)
			result.Failed++
			formatter.VerboseLog("✗ %s: %v", input, err)
		} else {
			fr.Output = res.Output
			fr.RunID = res.RunID
			fr.Lines = res.LineCount
			fr.Diagnostics = len(res.Diagnostics)
			result.Succeeded++
			formatter.VerboseLog("✓ %s → %s", input, output)
		}
		result.Files = append(result.Files, fr)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		outputBatchText(formatter, result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d file(s) failed", result.Failed, len(inputs)))
	}
	return nil
}

func outputBatchText(formatter *OutputFormatter, result BatchResult) {
	for _, f := range result.Files {
		if f.Error != "" {
			fmt.Fprintf(formatter.Writer, "✗ %s: %s\n", f.Input, f.Error)
			continue
		}
		fmt.Fprintf(formatter.Writer, "✓ Translated %s → %s (%d lines, %d diagnostics)\n",
			f.Input, f.Output, f.Lines, f.Diagnostics)
	}
	fmt.Fprintf(formatter.Writer, "\n%d succeeded, %d failed\n", result.Succeeded, result.Failed)
}

// OutputName maps an input path to the generated file name: the base name
// without .d.ts or .ts, with .fs appended.
func OutputName(input string) string {
	base := filepath.Base(input)
	for _, ext := range []string{".d.ts", ".ts"} {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(base, ext) + ".fs"
		}
	}
	return base + ".fs"
}
