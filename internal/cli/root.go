package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // path to a .yaml/.yml/.cue config file
}

// Version is reported by --version.
var Version = "0.1.0"

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tsbind CLI.
// Invoked with two positional arguments it translates one file.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tsbind <input.d.ts> <output.fs>",
		Short: "tsbind - TypeScript declarations to Fable bindings",
		Long: `Translate a TypeScript declaration file (.d.ts) into an F# bindings file for Fable.

The declaration file is parsed, lowered to an intermediate representation,
merged, normalized by a fixed sequence of rewrite passes and printed.`,
		Version:       Version,
		Args:          translateArgs,
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], args[1], cmd)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return NewExitError(ExitCommandError, err.Error())
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (.yaml, .yml or .cue)")

	// Add subcommands
	cmd.AddCommand(NewIRCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))

	return cmd
}

// translateArgs requires exactly an input and an output path.
func translateArgs(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return NewExitError(ExitCommandError, "missing input path: usage: tsbind <input.d.ts> <output.fs>")
	case 1:
		return NewExitError(ExitCommandError, "missing output path: usage: tsbind <input.d.ts> <output.fs>")
	case 2:
		return nil
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("expected 2 arguments (input, output), got %d", len(args)))
	}
}

// usageArgs reports positional argument errors as command errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
		return nil
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
