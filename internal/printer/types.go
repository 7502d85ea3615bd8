package printer

import (
	"fmt"
	"strings"

	"github.com/roach88/tsbind/internal/ir"
)

// TypeString renders a type in the target surface syntax.
func TypeString(t ir.FsType) string {
	switch v := t.(type) {
	case nil:
		return string(ir.TypeObj)
	case ir.Mapped:
		return string(v)
	case ir.StringLiteral:
		return string(ir.TypeString)
	case ir.This, ir.None:
		return string(ir.TypeObj)
	case ir.TODO:
		return "obj (* TODO *)"
	case ir.Array:
		return "ResizeArray<" + TypeString(v.Type) + ">"
	case ir.Union:
		return unionString(v)
	case ir.Tuple:
		if len(v.Types) == 0 {
			return string(ir.TypeUnit)
		}
		return "(" + joinTypes(v.Types, " * ") + ")"
	case ir.Generic:
		return TypeString(v.Type) + "<" + joinTypes(v.TypeParameters, ", ") + ">"
	case ir.Function:
		return functionTypeString(v)
	case ir.Param:
		return TypeString(v.Type)
	case ir.Property:
		return TypeString(v.Type)
	case ir.Interface:
		return v.Name
	case ir.Enum:
		return v.Name
	case ir.Alias:
		return v.Name
	case ir.Variable:
		return TypeString(v.Type)
	case ir.Import:
		return v.Type
	default:
		return string(ir.TypeObj)
	}
}

// unionString prints a one-alternative union as that alternative, and a
// nullable union with an option suffix.
func unionString(u ir.Union) string {
	var s string
	switch len(u.Types) {
	case 0:
		s = string(ir.TypeObj)
	case 1:
		s = TypeString(u.Types[0])
	default:
		s = fmt.Sprintf("U%d<%s>", len(u.Types), joinTypes(u.Types, ", "))
	}
	if u.Option {
		s += " option"
	}
	return s
}

func functionTypeString(f ir.Function) string {
	parts := make([]string, 0, len(f.Params)+1)
	for _, p := range f.Params {
		parts = append(parts, TypeString(p.Type))
	}
	if len(parts) == 0 {
		parts = append(parts, string(ir.TypeUnit))
	}
	parts = append(parts, TypeString(f.ReturnType))
	return "(" + strings.Join(parts, " -> ") + ")"
}

func joinTypes(ts []ir.FsType, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = TypeString(t)
	}
	return strings.Join(parts, sep)
}
