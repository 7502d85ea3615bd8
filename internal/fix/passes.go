package fix

import (
	"strings"

	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/naming"
)

// StaticSuffix marks interfaces synthesized to hold static members.
const StaticSuffix = "Static"

// ExportsName is the interface synthesized to hold a module's free values.
const ExportsName = "IExports"

// DefaultMaxUnionArity is the widest union the target can express (U2..U6).
const DefaultMaxUnionArity = 6

// DetectBrowser appends open to f.Opens when any opaque name starts with
// "HTML". It does not change IR nodes.
func DetectBrowser(f ir.File, open string) ir.File {
	found := false
	ir.Walk(f, func(t ir.FsType) {
		if m, ok := t.(ir.Mapped); ok && strings.HasPrefix(string(m), "HTML") {
			found = true
		}
	})
	if !found || open == "" {
		return f
	}
	for _, o := range f.Opens {
		if o == open {
			return f
		}
	}
	opens := make([]string, 0, len(f.Opens)+1)
	f.Opens = append(append(opens, f.Opens...), open)
	return f
}

// ExtractStatics splits every interface that has static members into the
// original interface with only instance members and a holder named
// Name+StaticSuffix carrying the static ones, placed right after it. The
// holder is never generic.
func ExtractStatics(f ir.File) ir.File {
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		m, ok := t.(ir.Module)
		if !ok {
			return t
		}
		out := make([]ir.FsType, 0, len(m.Types))
		for _, c := range m.Types {
			iface, ok := c.(ir.Interface)
			if !ok || iface.IsStatic {
				out = append(out, c)
				continue
			}
			instance, statics := partitionStatic(iface.Members)
			if len(statics) == 0 {
				out = append(out, c)
				continue
			}
			holder := ir.Interface{
				Name:     iface.Name + StaticSuffix,
				IsStatic: true,
				Members:  liftTypeParameters(statics, iface.TypeParameters),
			}
			iface.Members = instance
			out = append(out, iface, holder)
		}
		m.Types = out
		return m
	})
}

// liftTypeParameters adds the class's type parameters to each static
// function. The holder is referenced without type arguments from IExports,
// so it cannot be generic itself.
func liftTypeParameters(members, params []ir.FsType) []ir.FsType {
	if len(params) == 0 {
		return members
	}
	out := make([]ir.FsType, len(members))
	for i, m := range members {
		fn, ok := m.(ir.Function)
		if !ok {
			out[i] = m
			continue
		}
		fn.TypeParameters = ir.Distinct(append(append([]ir.FsType(nil), fn.TypeParameters...), params...))
		out[i] = fn
	}
	return out
}

func partitionStatic(members []ir.FsType) (instance, statics []ir.FsType) {
	for _, member := range members {
		if isStatic(member) {
			statics = append(statics, member)
		} else {
			instance = append(instance, member)
		}
	}
	return instance, statics
}

func isStatic(t ir.FsType) bool {
	switch m := t.(type) {
	case ir.Function:
		return m.IsStatic
	case ir.Property:
		return m.IsStatic
	}
	return false
}

// SynthesizeExports collects each module's non-declare variables, free
// functions and static-holder accessors into a leading IExports interface.
// Variables and functions move into it; holders stay where they are.
func SynthesizeExports(f ir.File) ir.File {
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		m, ok := t.(ir.Module)
		if !ok {
			return t
		}
		var exports []ir.FsType
		rest := make([]ir.FsType, 0, len(m.Types))
		for _, c := range m.Types {
			switch v := c.(type) {
			case ir.Variable:
				if v.HasDeclare {
					rest = append(rest, c)
					continue
				}
				exports = append(exports, ir.Property{Name: v.Name, Type: v.Type})
			case ir.Function:
				v.IsStatic = false
				exports = append(exports, v)
			case ir.Interface:
				if v.IsStatic {
					exports = append(exports, ir.Property{
						Name: strings.TrimSuffix(v.Name, StaticSuffix),
						Type: ir.Mapped(v.Name),
					})
				}
				rest = append(rest, c)
			default:
				rest = append(rest, c)
			}
		}
		if len(exports) == 0 {
			return m
		}
		m.Types = append([]ir.FsType{ir.Interface{Name: ExportsName, Members: exports}}, rest...)
		return m
	})
}

// EscapeNames passes every identifier-bearing node through naming.Escape.
func EscapeNames(f ir.File) ir.File {
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		switch v := t.(type) {
		case ir.Mapped:
			return ir.Mapped(naming.Escape(string(v)))
		case ir.Param:
			v.Name = naming.Escape(v.Name)
			return v
		case ir.Function:
			v.Name = naming.Escape(v.Name)
			return v
		case ir.Property:
			v.Name = naming.Escape(v.Name)
			return v
		case ir.Interface:
			v.Name = naming.Escape(v.Name)
			return v
		case ir.Module:
			v.Name = naming.Escape(v.Name)
			return v
		case ir.Alias:
			v.Name = naming.Escape(v.Name)
			return v
		case ir.Enum:
			v.Name = naming.Escape(v.Name)
			return v
		case ir.Variable:
			v.Name = naming.Escape(v.Name)
			return v
		}
		return t
	})
}

// QuoteFunctionGenerics quotes, inside each interface member function,
// every occurrence of the function's own type parameters ('T).
func QuoteFunctionGenerics(f ir.File) ir.File {
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		iface, ok := t.(ir.Interface)
		if !ok {
			return t
		}
		members := make([]ir.FsType, len(iface.Members))
		for i, m := range iface.Members {
			fn, ok := m.(ir.Function)
			if !ok || len(fn.TypeParameters) == 0 {
				members[i] = m
				continue
			}
			members[i] = quote(fn, generics(fn.TypeParameters))
		}
		iface.Members = members
		return iface
	})
}

// QuoteTypeGenerics quotes every occurrence of an interface's or alias's
// own type parameters in its body.
func QuoteTypeGenerics(f ir.File) ir.File {
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		switch v := t.(type) {
		case ir.Interface:
			if len(v.TypeParameters) > 0 {
				return quote(v, generics(v.TypeParameters))
			}
		case ir.Alias:
			if len(v.TypeParameters) > 0 {
				return quote(v, generics(v.TypeParameters))
			}
		}
		return t
	})
}

func generics(params []ir.FsType) map[ir.Mapped]bool {
	names := make(map[ir.Mapped]bool, len(params))
	for _, p := range params {
		if m, ok := p.(ir.Mapped); ok {
			names[m] = true
		}
	}
	return names
}

func quote(t ir.FsType, names map[ir.Mapped]bool) ir.FsType {
	return ir.Rewrite(t, func(n ir.FsType) ir.FsType {
		if m, ok := n.(ir.Mapped); ok && names[m] {
			return ir.Mapped("'" + string(m))
		}
		return n
	})
}

// SpecializeStringOverloads turns `on(kind: "click", h)` into `on_click(h)`
// with an emit template that passes the literal as the first argument.
// Members that already carry a template (Invoke, Create) get the literal
// folded into it: `$0($1...)` becomes `$0('a',$1...)`.
func SpecializeStringOverloads(f ir.File) ir.File {
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		fn, ok := t.(ir.Function)
		if !ok || fn.Name == "" || len(fn.Params) == 0 {
			return t
		}
		if fn.Emit != "" && !strings.Contains(fn.Emit, argsPlaceholder) {
			return t
		}
		lit, ok := fn.Params[0].Type.(ir.StringLiteral)
		if !ok {
			return t
		}

		orig := naming.Unescape(fn.Name)
		arg := "'" + strings.ReplaceAll(string(lit), "'", `\'`) + "'"
		fn.Name = naming.Escape(orig + "_" + naming.Sanitize(string(lit)))
		fn.Params = append([]ir.Param(nil), fn.Params[1:]...)

		template := fn.Emit
		if template == "" {
			template = "$0." + orig + "(" + argsPlaceholder + ")"
		}
		if len(fn.Params) == 0 {
			fn.Emit = strings.Replace(template, argsPlaceholder, arg, 1)
		} else {
			fn.Emit = strings.Replace(template, argsPlaceholder, arg+","+argsPlaceholder, 1)
		}
		return fn
	})
}

// argsPlaceholder is the emit-template slot for the remaining arguments.
const argsPlaceholder = "$1..."

// CapUnions removes duplicate union alternatives and degrades unions wider
// than maxArity to obj.
func CapUnions(f ir.File, maxArity int) ir.File {
	if maxArity <= 0 {
		maxArity = DefaultMaxUnionArity
	}
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		u, ok := t.(ir.Union)
		if !ok {
			return t
		}
		u.Types = ir.Distinct(u.Types)
		if len(u.Types) > maxArity {
			return ir.TypeObj
		}
		return u
	})
}
