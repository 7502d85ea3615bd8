package ir

import (
	"fmt"
	"strings"
)

// Validation error codes (E200-E299)
const (
	ErrDuplicateModule    = "E201" // two modules with the same non-empty name in one scope
	ErrUnionNotDistinct   = "E202" // union alternatives contain structural duplicates
	ErrAnonymousModule    = "E203" // nested module without a name
	ErrMissingName        = "E204" // named declaration with empty name
	ErrStaticNotExtracted = "E205" // non-holder interface still carries static members
	ErrUnionArity         = "E206" // union wider than the allowed arity
)

// ValidationError represents an IR invariant violation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
}

// ValidateOptions selects which post-pipeline invariants are checked.
// The zero value checks only the invariants that hold right after merging.
type ValidateOptions struct {
	// StaticsExtracted requires that static members live only on holders.
	StaticsExtracted bool
	// MaxUnionArity, when positive, bounds the number of union alternatives.
	MaxUnionArity int
}

// Validate checks f against the IR invariants.
// Returns all errors found (does not fail-fast).
func Validate(f File, opts ValidateOptions) []ValidationError {
	v := &validator{opts: opts}
	v.modules(f.Name, f.Modules, true)
	return v.errs
}

type validator struct {
	opts ValidateOptions
	errs []ValidationError
}

func (v *validator) add(path, code, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{
		Path:    path,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *validator) modules(path string, modules []Module, topLevel bool) {
	seen := make(map[string]bool, len(modules))
	for _, m := range modules {
		if m.Name == "" && !topLevel {
			v.add(path, ErrAnonymousModule, "nested module has no name")
		}
		if m.Name != "" {
			if seen[m.Name] {
				v.add(path, ErrDuplicateModule, "module %q declared more than once", m.Name)
			}
			seen[m.Name] = true
		}
		v.module(join(path, m.Name), m)
	}
}

func (v *validator) module(path string, m Module) {
	var nested []Module
	for _, t := range m.Types {
		switch d := t.(type) {
		case Module:
			nested = append(nested, d)
		case Interface:
			if d.Name == "" {
				v.add(path, ErrMissingName, "interface has no name")
			}
			if v.opts.StaticsExtracted && !d.IsStatic {
				for _, member := range d.Members {
					if isStaticMember(member) {
						v.add(join(path, d.Name), ErrStaticNotExtracted, "static member left on non-holder interface")
						break
					}
				}
			}
			v.types(join(path, d.Name), t)
		case Alias:
			if d.Name == "" {
				v.add(path, ErrMissingName, "alias has no name")
			}
			v.types(join(path, d.Name), t)
		case Enum:
			if d.Name == "" {
				v.add(path, ErrMissingName, "enum has no name")
			}
		default:
			v.types(path, t)
		}
	}
	v.modules(path, nested, false)
}

func (v *validator) types(path string, t FsType) {
	Walk(t, func(n FsType) {
		u, ok := n.(Union)
		if !ok {
			return
		}
		if len(Distinct(u.Types)) != len(u.Types) {
			v.add(path, ErrUnionNotDistinct, "union has duplicate alternatives")
		}
		if v.opts.MaxUnionArity > 0 && len(u.Types) > v.opts.MaxUnionArity {
			v.add(path, ErrUnionArity, "union has %d alternatives (max %d)", len(u.Types), v.opts.MaxUnionArity)
		}
	})
}

func isStaticMember(t FsType) bool {
	switch m := t.(type) {
	case Function:
		return m.IsStatic
	case Property:
		return m.IsStatic
	}
	return false
}

func join(path, name string) string {
	if name == "" {
		return path
	}
	if path == "" {
		return name
	}
	return strings.Join([]string{path, name}, ".")
}
