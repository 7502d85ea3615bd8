package lower

import (
	"fmt"

	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/syntax"
)

// Emit templates attached to synthesized members.
const (
	EmitIndexer = "$0[$1]{{=$2}}"
	EmitInvoke  = "$0($1...)"
	EmitCreate  = "new $0($1...)"
)

// member lowers one interface, class or type-literal member. It returns nil
// for members that are dropped.
func (l *lowerer) member(m *syntax.Node) ir.FsType {
	if m.HasComputedName() {
		l.degrade(m, "computed member name")
		return nil
	}

	switch m.Kind() {
	case syntax.KindIndexSignature:
		key, keyType := m.IndexParameter()
		return ir.Property{
			Name:       "Item",
			Index:      &ir.Param{Name: key, Type: l.typ(keyType)},
			IsReadonly: m.HasModifier("readonly"),
			Type:       l.typ(m.TypeAnnotation()),
			Emit:       EmitIndexer,
		}

	case syntax.KindCallSignature:
		f := l.signature(m)
		f.Name = "Invoke"
		f.Emit = EmitInvoke
		return f

	case syntax.KindConstructSignature, syntax.KindConstructor:
		f := l.signature(m)
		f.Name = "Create"
		f.IsStatic = true
		f.ReturnType = ir.This{}
		f.Emit = EmitCreate
		return f

	case syntax.KindMethodSignature, syntax.KindMethodDeclaration:
		name := unquote(m.Name())
		static := m.HasModifier("static")
		if m.HasModifier("get") {
			return ir.Property{Name: name, IsStatic: static, IsReadonly: true, Type: l.typ(m.ReturnType())}
		}
		if m.HasModifier("set") {
			var t ir.FsType = ir.TypeObj
			if params := m.Parameters(); len(params) > 0 {
				t = l.typ(params[0].TypeAnnotation())
			}
			return ir.Property{Name: name, IsStatic: static, Type: t}
		}
		f := l.signature(m)
		f.Name = name
		f.IsStatic = static
		return f

	case syntax.KindPropertySignature, syntax.KindPropertyDeclaration:
		return ir.Property{
			Name:       unquote(m.Name()),
			Option:     m.IsOptional(),
			IsStatic:   m.HasModifier("static"),
			IsReadonly: m.HasModifier("readonly"),
			Type:       l.typ(m.TypeAnnotation()),
		}

	default:
		l.degrade(m, "unsupported member")
		return nil
	}
}

// signature lowers the type parameters, parameters and return type shared
// by every callable node.
func (l *lowerer) signature(n *syntax.Node) ir.Function {
	var f ir.Function
	for _, tp := range n.TypeParameters() {
		f.TypeParameters = append(f.TypeParameters, ir.Mapped(tp.Name()))
	}
	for i, p := range n.Parameters() {
		param := l.param(p)
		if param.Name == "" {
			param.Name = fmt.Sprintf("arg%d", i)
		}
		f.Params = append(f.Params, param)
	}
	f.ReturnType = l.typ(n.ReturnType())
	return f
}

func (l *lowerer) param(p *syntax.Node) ir.Param {
	rest := p.IsRest()
	var t ir.FsType
	if ann := p.TypeAnnotation(); ann != nil {
		t = l.typ(ann)
	} else if rest {
		t = ir.Array{Type: ir.TypeObj}
	} else {
		t = ir.TypeObj
	}
	return ir.Param{
		Name:       p.Name(),
		Optional:   p.IsOptional() && !rest,
		ParamArray: rest,
		Type:       t,
	}
}
