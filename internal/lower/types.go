package lower

import (
	"strings"

	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/syntax"
)

// keywordTypes maps keyword type kinds to opaque names. Keywords not listed
// here lower to obj.
var keywordTypes = map[syntax.Kind]ir.Mapped{
	syntax.KindNumberKeyword:  ir.TypeFloat,
	syntax.KindStringKeyword:  ir.TypeString,
	syntax.KindBooleanKeyword: ir.TypeBool,
	syntax.KindVoidKeyword:    ir.TypeUnit,
}

// typ lowers a type node. A missing node (no annotation) lowers to obj.
func (l *lowerer) typ(n *syntax.Node) ir.FsType {
	if n == nil {
		return ir.TypeObj
	}

	k := n.Kind()
	if k.IsKeywordType() {
		if t, ok := keywordTypes[k]; ok {
			return t
		}
		return ir.TypeObj
	}

	switch k {
	case syntax.KindTypeReference, syntax.KindExpressionWithTypeArguments:
		return l.reference(n)

	case syntax.KindArrayType:
		return ir.Array{Type: l.typ(n.ElementType())}

	case syntax.KindUnionType:
		return l.union(n)

	case syntax.KindTupleType:
		var types []ir.FsType
		for _, e := range n.Elements() {
			types = append(types, l.typ(e))
		}
		return ir.Tuple{Types: types}

	case syntax.KindFunctionType:
		return l.signature(n)

	case syntax.KindLiteralType:
		lit := n.Literal()
		if lit.Kind() == syntax.KindStringLiteral {
			return ir.StringLiteral(unquote(lit.Text()))
		}
		return ir.TypeObj

	case syntax.KindThisType:
		return ir.This{}

	case syntax.KindTypePredicate:
		return ir.TypeBool

	case syntax.KindTypeLiteral, syntax.KindIntersectionType, syntax.KindMappedType,
		syntax.KindIndexedAccessType, syntax.KindTypeQuery, syntax.KindParenthesizedType,
		syntax.KindTypeOperator, syntax.KindConditionalType, syntax.KindTemplateLiteralType,
		syntax.KindConstructorType:
		l.logger.Debug("type lowered to obj", "kind", k, "line", n.Line())
		return ir.TypeObj

	default:
		l.degrade(n, "unsupported type node")
		return ir.TODO{}
	}
}

// reference lowers a named type. Only the first segment of a dotted name
// is kept.
func (l *lowerer) reference(n *syntax.Node) ir.FsType {
	name := n.ReferenceName()
	if name == "" {
		l.fail(n, "type reference has no name")
		return ir.TODO{}
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}

	args := n.TypeArguments()
	if len(args) == 0 {
		return ir.Mapped(name)
	}
	g := ir.Generic{Type: ir.Mapped(name)}
	for _, a := range args {
		g.TypeParameters = append(g.TypeParameters, l.typ(a))
	}
	return g
}

// union folds null and undefined alternatives into Option and drops
// duplicate alternatives.
func (l *lowerer) union(n *syntax.Node) ir.FsType {
	u := ir.Union{}
	var types []ir.FsType
	for _, alt := range n.Alternatives() {
		if alt.Kind().IsNullish() {
			u.Option = true
			continue
		}
		types = append(types, l.typ(alt))
	}
	u.Types = ir.Distinct(types)
	return u
}
