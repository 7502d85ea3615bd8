// Package fix holds the ordered rewrites that turn merged IR into IR the
// printer can render.
//
// Every pass is a pure function from one file to a new file built with
// ir.Rewrite. Order matters: static holders must exist before exports are
// synthesized, names must be escaped before generic parameters are quoted,
// and union capping runs last so that no later pass can widen a union.
package fix

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/roach88/tsbind/internal/ir"
)

// Options configures the pipeline.
type Options struct {
	// BrowserOpen is appended to the file's opens when DOM types are used.
	BrowserOpen string
	// MaxUnionArity is the widest union kept; wider unions become obj.
	MaxUnionArity int
}

// Pass is one named whole-file rewrite.
type Pass struct {
	Name  string
	Apply func(ir.File) ir.File
}

// Pipeline returns the passes in the order Run applies them: the
// auxiliary fixes, the eight numbered passes, then import conversion.
func Pipeline(opts Options) []Pass {
	return []Pass{
		{Name: "this", Apply: FixThis},
		{Name: "array", Apply: FixArray},
		{Name: "date", Apply: FixDate},
		{Name: "drop-unsupported", Apply: DropUnsupported},
		{Name: "browser", Apply: func(f ir.File) ir.File { return DetectBrowser(f, opts.BrowserOpen) }},
		{Name: "statics", Apply: ExtractStatics},
		{Name: "exports", Apply: SynthesizeExports},
		{Name: "escape", Apply: EscapeNames},
		{Name: "quote-functions", Apply: QuoteFunctionGenerics},
		{Name: "quote-types", Apply: QuoteTypeGenerics},
		{Name: "string-overloads", Apply: SpecializeStringOverloads},
		{Name: "unions", Apply: func(f ir.File) ir.File { return CapUnions(f, opts.MaxUnionArity) }},
		{Name: "imports", Apply: ConvertImports},
	}
}

// Run applies Pipeline(opts) to f. An internal-consistency violation raised
// by a rewrite is returned as an assertion-failure error instead of a panic.
func Run(f ir.File, opts Options, logger *slog.Logger) (ir.File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return runPasses(f, Pipeline(opts), logger)
}

func runPasses(f ir.File, passes []Pass, logger *slog.Logger) (out ir.File, err error) {
	var current string
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && errors.HasAssertionFailure(e) {
			err = errors.Wrapf(e, "fix pass %q", current)
			return
		}
		panic(r)
	}()

	for _, p := range passes {
		current = p.Name
		f = p.Apply(f)
		logger.Debug("fix pass applied", "pass", p.Name)
	}
	return f, nil
}
