package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tsbind/internal/config"
	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/translate"
)

// NewIRCommand creates the ir command, which dumps the post-pipeline IR.
func NewIRCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ir <input.d.ts>",
		Short: "Print the normalized IR of a declaration file as JSON",
		Long: `Run the translation pipeline and write the IR handed to the printer
as canonical JSON. Useful when a binding comes out wrong and you need to see
what the fix passes produced.`,
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIR(rootOpts, args[0], cmd)
		},
	}
}

func runIR(opts *RootOptions, input string, cmd *cobra.Command) error {
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

	data, err := ir.MarshalIndent(res.File)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeGeneric, "encoding IR", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(json.RawMessage(data))
	}
	fmt.Fprintln(formatter.Writer, string(data))
	return nil
}
