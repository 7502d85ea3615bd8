// Package lower turns a parsed declaration file into IR.
//
// Lowering never fails on shapes it does not understand: unsupported
// statements and type nodes degrade to TODO or obj and are reported as
// diagnostics. The only fatal condition is a type reference without a name.
package lower

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/syntax"
)

// Result is the outcome of lowering one file.
type Result struct {
	File        ir.File
	Diagnostics []Diagnostic
}

// File lowers the statements under root into an ir.File named name.
//
// Top-level statements go into the global module (empty name), which is
// always Modules[0]; every top-level namespace follows it in source order.
func File(name string, root *syntax.Node, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := &lowerer{logger: logger}

	global := ir.Module{Name: ""}
	modules := []ir.Module{}
	for _, t := range l.statements(root.Statements()) {
		if m, ok := t.(ir.Module); ok {
			modules = append(modules, m)
			continue
		}
		global.Types = append(global.Types, t)
	}
	if l.err != nil {
		return Result{Diagnostics: l.diags}, l.err
	}

	return Result{
		File: ir.File{
			Name:    name,
			Modules: append([]ir.Module{global}, modules...),
		},
		Diagnostics: l.diags,
	}, nil
}

// Type lowers a single type node. It is exported for tests and for tools
// that inspect individual annotations.
func Type(n *syntax.Node, logger *slog.Logger) (ir.FsType, []Diagnostic, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := &lowerer{logger: logger}
	t := l.typ(n)
	return t, l.diags, l.err
}

type lowerer struct {
	logger *slog.Logger
	diags  []Diagnostic
	err    error // first fatal error
}

// maxDiagnosticText caps the source excerpt kept in a diagnostic, in bytes.
const maxDiagnosticText = 80

// degrade records a diagnostic for n.
func (l *lowerer) degrade(n *syntax.Node, msg string) {
	text := n.Text()
	if len(text) > maxDiagnosticText {
		cut := maxDiagnosticText
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	l.logger.Warn("lowering degraded",
		"kind", n.Kind(),
		"node", n.RawType(),
		"line", n.Line(),
		"text", text,
		"reason", msg,
	)
	l.diags = append(l.diags, Diagnostic{
		Kind:    n.Kind(),
		Message: msg,
		Text:    text,
		Line:    n.Line(),
		Column:  n.Column(),
	})
}

// fail records the first fatal error; lowering keeps walking so the
// caller still gets diagnostics for the rest of the file.
func (l *lowerer) fail(n *syntax.Node, msg string) {
	if l.err != nil {
		return
	}
	l.err = &LowerError{
		Kind:    n.Kind(),
		Message: msg,
		Line:    n.Line(),
		Column:  n.Column(),
		Err:     ErrUnresolvedName,
	}
}

func (l *lowerer) statements(nodes []*syntax.Node) []ir.FsType {
	var out []ir.FsType
	for _, n := range nodes {
		if n.IsGlobalAugmentation() {
			out = append(out, l.statements(n.Statements())...)
			continue
		}
		out = append(out, l.statement(n))
	}
	return out
}

func (l *lowerer) statement(n *syntax.Node) ir.FsType {
	switch n.Kind() {
	case syntax.KindInterfaceDeclaration, syntax.KindClassDeclaration:
		return l.interfaceDecl(n)
	case syntax.KindEnumDeclaration:
		return l.enum(n)
	case syntax.KindTypeAliasDeclaration:
		return l.alias(n)
	case syntax.KindVariableStatement:
		return l.variable(n)
	case syntax.KindFunctionDeclaration:
		f := l.signature(n)
		f.Name = n.Name()
		return f
	case syntax.KindModuleDeclaration:
		return l.module(n)
	case syntax.KindImportDeclaration, syntax.KindExportDeclaration,
		syntax.KindExportAssignment, syntax.KindNamespaceExportDeclaration:
		l.logger.Debug("skipping statement", "kind", n.Kind(), "line", n.Line())
		return ir.TODO{}
	default:
		l.degrade(n, "unsupported statement")
		return ir.TODO{}
	}
}

// module lowers a namespace or ambient module. Dotted names become nested
// modules; quoted module names lose their quotes.
func (l *lowerer) module(n *syntax.Node) ir.FsType {
	raw := n.Name()
	var segments []string
	if isQuoted(raw) {
		segments = []string{unquote(raw)}
	} else {
		segments = strings.Split(raw, ".")
	}

	m := ir.Module{
		Name:  segments[len(segments)-1],
		Types: l.statements(n.Statements()),
	}
	for i := len(segments) - 2; i >= 0; i-- {
		m = ir.Module{Name: segments[i], Types: []ir.FsType{m}}
	}
	return m
}

func (l *lowerer) interfaceDecl(n *syntax.Node) ir.FsType {
	iface := ir.Interface{Name: n.Name()}
	for _, tp := range n.TypeParameters() {
		iface.TypeParameters = append(iface.TypeParameters, ir.Mapped(tp.Name()))
	}
	for _, h := range n.Heritage() {
		iface.Inherits = append(iface.Inherits, l.typ(h))
	}

	accessors := map[string]int{}
	for _, m := range n.Members() {
		t := l.member(m)
		if t == nil {
			continue
		}
		// get/set pairs collapse into one read-write property
		if p, ok := t.(ir.Property); ok && (m.HasModifier("get") || m.HasModifier("set")) {
			key := accessorKey(p)
			if i, seen := accessors[key]; seen {
				prev := iface.Members[i].(ir.Property)
				prev.IsReadonly = prev.IsReadonly && p.IsReadonly
				iface.Members[i] = prev
				continue
			}
			accessors[key] = len(iface.Members)
		}
		iface.Members = append(iface.Members, t)
	}
	return iface
}

func accessorKey(p ir.Property) string {
	if p.IsStatic {
		return "static " + p.Name
	}
	return p.Name
}

func (l *lowerer) enum(n *syntax.Node) ir.FsType {
	e := ir.Enum{Name: n.Name()}
	for _, m := range n.EnumMembers() {
		c := ir.EnumCase{Name: unquote(m.Name()), Type: ir.EnumCaseNumeric}
		init := m.Initializer()
		switch init.Kind() {
		case syntax.KindUnknown:
			if init != nil {
				c.Type = ir.EnumCaseUnknown
				l.degrade(init, "non-literal enum initializer")
			}
		case syntax.KindNumericLiteral:
			v := init.Text()
			c.Value = &v
		case syntax.KindStringLiteral:
			v := unquote(init.Text())
			c.Type = ir.EnumCaseString
			c.Value = &v
		default:
			c.Type = ir.EnumCaseUnknown
			l.degrade(init, "non-literal enum initializer")
		}
		e.Cases = append(e.Cases, c)
	}
	return e
}

// alias lowers a type alias. A union made only of string literals becomes
// a string enum.
func (l *lowerer) alias(n *syntax.Node) ir.FsType {
	aliased := n.AliasedType()
	if cases, ok := stringLiteralCases(aliased); ok {
		return ir.Enum{Name: n.Name(), Cases: cases}
	}

	a := ir.Alias{Name: n.Name(), Type: l.typ(aliased)}
	for _, tp := range n.TypeParameters() {
		a.TypeParameters = append(a.TypeParameters, ir.Mapped(tp.Name()))
	}
	return a
}

func stringLiteralCases(n *syntax.Node) ([]ir.EnumCase, bool) {
	if n.Kind() != syntax.KindUnionType {
		return nil, false
	}
	alts := n.Alternatives()
	if len(alts) == 0 {
		return nil, false
	}
	cases := make([]ir.EnumCase, 0, len(alts))
	for _, alt := range alts {
		if alt.Kind() != syntax.KindLiteralType || alt.Literal().Kind() != syntax.KindStringLiteral {
			return nil, false
		}
		cases = append(cases, ir.EnumCase{
			Name: unquote(alt.Literal().Text()),
			Type: ir.EnumCaseString,
		})
	}
	return cases, true
}

// variable keeps only the first binding of a statement.
func (l *lowerer) variable(n *syntax.Node) ir.FsType {
	decls := n.Declarators()
	if len(decls) == 0 {
		l.degrade(n, "variable statement without bindings")
		return ir.TODO{}
	}
	if len(decls) > 1 {
		l.logger.Debug("dropping extra variable bindings",
			"line", n.Line(),
			"kept", decls[0].Name(),
			"dropped", len(decls)-1,
		)
	}
	d := decls[0]
	return ir.Variable{
		Name:       d.Name(),
		HasDeclare: n.HasModifier("declare"),
		Type:       l.typ(d.TypeAnnotation()),
	}
}

func isQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '"' || s[0] == '\'' || s[0] == '`') && s[len(s)-1] == s[0]
}

func unquote(s string) string {
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}
