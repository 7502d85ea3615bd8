// Package config loads translation settings from YAML or CUE files.
//
// Both formats describe the same fields. CUE files are unified against an
// embedded schema, so type and range errors are reported by CUE itself;
// YAML files are decoded strictly and checked by Validate.
package config

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tsbind/internal/naming"
)

//go:embed schema.cue
var schemaSource string

// MaxUnionArity is the widest union family the target defines (U2..U6).
const MaxUnionArity = 6

// ErrInvalid marks configuration values that are out of range.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings of one translation run.
type Config struct {
	// Namespace is printed on the header line. Empty means derive it from
	// the input file name under NamespacePrefix.
	Namespace       string   `yaml:"namespace" json:"namespace,omitempty"`
	NamespacePrefix string   `yaml:"namespace_prefix" json:"namespace_prefix,omitempty"`
	Opens           []string `yaml:"opens" json:"opens,omitempty"`
	BrowserOpen     string   `yaml:"browser_open" json:"browser_open,omitempty"`
	MaxUnionArity   int      `yaml:"max_union_arity" json:"max_union_arity,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		NamespacePrefix: "Fable.Import",
		Opens:           []string{"System", "Fable.Core", "Fable.Import.JS"},
		BrowserOpen:     "Fable.Import.Browser",
		MaxUnionArity:   MaxUnionArity,
	}
}

// Load reads path and overlays it on Default. An empty path returns the
// defaults. The format is chosen by extension: .yaml, .yml or .cue.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(data, path)
	default:
		return Config{}, errors.Newf("unsupported config format %q (want .yaml, .yml or .cue)", ext)
	}
}

// ParseYAML decodes YAML config, rejecting unknown fields.
func ParseYAML(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "parse yaml config")
	}
	return Resolve(c)
}

// ParseCUE evaluates CUE config against the embedded schema.
func ParseCUE(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, errors.Wrap(err, "compile config schema")
	}
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return Config{}, errors.Wrap(err, "compile cue config")
	}
	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, errors.Mark(errors.Wrap(err, "validate cue config"), ErrInvalid)
	}
	var c Config
	if err := unified.Decode(&c); err != nil {
		return Config{}, errors.Wrap(err, "decode cue config")
	}
	return Resolve(c)
}

// Resolve overlays the non-zero fields of c on Default and validates the
// result.
func Resolve(c Config) (Config, error) {
	out := Default()
	if c.Namespace != "" {
		out.Namespace = c.Namespace
	}
	if c.NamespacePrefix != "" {
		out.NamespacePrefix = c.NamespacePrefix
	}
	if c.Opens != nil {
		out.Opens = c.Opens
	}
	if c.BrowserOpen != "" {
		out.BrowserOpen = c.BrowserOpen
	}
	if c.MaxUnionArity != 0 {
		out.MaxUnionArity = c.MaxUnionArity
	}
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

// Validate checks ranges the decoders cannot express.
func (c Config) Validate() error {
	if c.MaxUnionArity < 2 || c.MaxUnionArity > MaxUnionArity {
		return errors.Wrapf(ErrInvalid, "max_union_arity %d out of range [2, %d]", c.MaxUnionArity, MaxUnionArity)
	}
	if c.Namespace == "" && c.NamespacePrefix == "" {
		return errors.Wrap(ErrInvalid, "namespace or namespace_prefix is required")
	}
	for i, o := range c.Opens {
		if strings.TrimSpace(o) == "" {
			return errors.Wrapf(ErrInvalid, "opens[%d] is empty", i)
		}
	}
	return nil
}

// NamespaceFor returns the header namespace for input: Namespace when set,
// otherwise NamespacePrefix plus the normalized base name of input.
func (c Config) NamespaceFor(input string) string {
	if c.Namespace != "" {
		return c.Namespace
	}
	base := filepath.Base(input)
	for _, ext := range []string{".d.ts", ".ts"} {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	name := naming.Normalize(base)
	if c.NamespacePrefix == "" {
		return name
	}
	return c.NamespacePrefix + "." + name
}
