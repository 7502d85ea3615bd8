// Package printer renders a finished IR file as F# binding declarations
// for Fable.
//
// The printer is read-only over the IR and keeps no state between calls.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/naming"
)

// ErrVariadicNotArray is returned for a function with an emit template
// whose variadic parameter is not typed as an array.
var ErrVariadicNotArray = errors.New("variadic parameter of emitted function is not an array")

const indentUnit = "    "

// Print renders f to lines: the module header, one open directive per
// entry of f.Opens, then every non-empty top-level module.
func Print(f ir.File) ([]string, error) {
	p := &printer{}
	p.line(0, "module rec %s", f.Name)
	for _, o := range f.Opens {
		p.line(0, "open %s", o)
	}
	for _, m := range f.Modules {
		if len(m.Types) == 0 {
			continue
		}
		if m.Name == "" {
			p.members(0, m.Types)
			continue
		}
		p.module(0, m)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.lines, nil
}

type printer struct {
	lines []string
	err   error
}

func (p *printer) line(indent int, format string, args ...any) {
	p.lines = append(p.lines, strings.Repeat(indentUnit, indent)+fmt.Sprintf(format, args...))
}

func (p *printer) blank() {
	p.lines = append(p.lines, "")
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) module(indent int, m ir.Module) {
	p.blank()
	p.line(indent, "module %s =", m.Name)
	p.members(indent+1, m.Types)
}

// members renders the declarations of one module, each preceded by a
// blank line. Empty nested modules are skipped.
func (p *printer) members(indent int, types []ir.FsType) {
	for _, t := range types {
		switch v := t.(type) {
		case ir.Module:
			if len(v.Types) > 0 {
				p.module(indent, v)
			}
		case ir.Interface:
			p.blank()
			p.iface(indent, v)
		case ir.Enum:
			p.blank()
			p.enum(indent, v)
		case ir.Alias:
			p.blank()
			p.alias(indent, v)
		case ir.Import:
			p.blank()
			p.importLine(indent, v)
		case ir.Variable:
			p.blank()
			p.importLine(indent, ir.Import{Variable: v.Name, Type: TypeString(v.Type)})
		case ir.TODO, ir.None:
		default:
			p.blank()
			p.line(indent, "(* %s *)", TypeString(t))
		}
	}
}

func (p *printer) iface(indent int, i ir.Interface) {
	p.line(indent, "type [<AllowNullLiteral>] %s%s =", i.Name, typeParams(i.TypeParameters))
	start := len(p.lines)
	for _, h := range i.Inherits {
		p.line(indent+1, "inherit %s", TypeString(h))
	}
	for _, m := range i.Members {
		switch v := m.(type) {
		case ir.Function:
			p.function(indent+1, v)
		case ir.Property:
			p.property(indent+1, v)
		default:
			p.line(indent+1, "%s", TypeString(m))
		}
	}
	if len(p.lines) == start {
		p.line(indent+1, "interface end")
	}
}

func (p *printer) function(indent int, f ir.Function) {
	params := make([]string, 0, len(f.Params))
	for _, param := range f.Params {
		s, err := paramString(f, param)
		if err != nil {
			p.fail(err)
			return
		}
		params = append(params, s)
	}
	sig := string(ir.TypeUnit)
	if len(params) > 0 {
		sig = strings.Join(params, " * ")
	}
	p.line(indent, "%sabstract %s: %s -> %s", emitAttr(f.Emit), f.Name, sig, TypeString(f.ReturnType))
}

func paramString(f ir.Function, param ir.Param) (string, error) {
	if param.ParamArray {
		elem := string(ir.TypeObj)
		if arr, ok := param.Type.(ir.Array); ok {
			elem = TypeString(arr.Type)
		} else if f.Emit != "" {
			return "", errors.Wrapf(ErrVariadicNotArray, "function %s parameter %s has type %s",
				f.Name, param.Name, TypeString(param.Type))
		}
		return fmt.Sprintf("[<ParamArray>] %s: %s[]", param.Name, elem), nil
	}
	if param.Optional {
		return fmt.Sprintf("?%s: %s", param.Name, TypeString(param.Type)), nil
	}
	return fmt.Sprintf("%s: %s", param.Name, TypeString(param.Type)), nil
}

func (p *printer) property(indent int, prop ir.Property) {
	access := "with get, set"
	if prop.IsReadonly {
		access = "with get"
	}
	t := TypeString(prop.Type)
	if prop.Option && !isNullable(prop.Type) {
		t += " option"
	}
	if prop.Index != nil {
		p.line(indent, "%sabstract %s: %s: %s -> %s %s", emitAttr(prop.Emit), prop.Name,
			prop.Index.Name, TypeString(prop.Index.Type), t, access)
		return
	}
	p.line(indent, "%sabstract %s: %s %s", emitAttr(prop.Emit), prop.Name, t, access)
}

// isNullable reports whether t already prints with an option suffix.
func isNullable(t ir.FsType) bool {
	u, ok := t.(ir.Union)
	return ok && u.Option
}

func (p *printer) enum(indent int, e ir.Enum) {
	if len(e.Cases) == 0 || e.Type() == ir.EnumCaseUnknown {
		p.line(indent, "type %s = obj", e.Name)
		return
	}

	if e.Type() == ir.EnumCaseString {
		p.line(indent, "type [<StringEnum>] [<RequireQualifiedAccess>] %s =", e.Name)
		for _, c := range e.Cases {
			compiled := c.Name
			if c.Value != nil {
				compiled = *c.Value
			}
			name := naming.Normalize(c.Name)
			p.line(indent+1, "| %s%s", compiledName(name, compiled), name)
		}
		return
	}

	p.line(indent, "type [<RequireQualifiedAccess>] %s =", e.Name)
	next := int64(0)
	for _, c := range e.Cases {
		value := strconv.FormatInt(next, 10)
		if c.Value != nil {
			value = *c.Value
		}
		if n, err := strconv.ParseInt(value, 0, 64); err == nil {
			next = n + 1
		}
		name := naming.Normalize(c.Name)
		p.line(indent+1, "| %s%s = %s", compiledName(name, c.Name), name, value)
	}
}

// compiledName returns the CompiledName attribute needed when the printed
// case name differs from the JavaScript name.
func compiledName(printed, compiled string) string {
	if printed == compiled {
		return ""
	}
	return fmt.Sprintf("[<CompiledName %q>] ", compiled)
}

func (p *printer) alias(indent int, a ir.Alias) {
	p.line(indent, "type %s%s =", a.Name, typeParams(a.TypeParameters))
	p.line(indent+1, "%s", TypeString(a.Type))
}

func (p *printer) importLine(indent int, im ir.Import) {
	segments := make([]string, len(im.Namespace))
	for i, s := range im.Namespace {
		segments[i] = naming.Unescape(s)
	}
	if len(segments) == 0 {
		p.line(indent, "let [<Global>] %s: %s = jsNative", im.Variable, im.Type)
		return
	}
	p.line(indent, "let [<Import(%q,%q)>] %s: %s = jsNative",
		naming.Unescape(im.Variable), strings.Join(segments, "."), im.Variable, im.Type)
}

func typeParams(ts []ir.FsType) string {
	if len(ts) == 0 {
		return ""
	}
	return "<" + joinTypes(ts, ", ") + ">"
}

func emitAttr(emit string) string {
	if emit == "" {
		return ""
	}
	return fmt.Sprintf("[<Emit %q>] ", emit)
}
