package fix

import (
	"github.com/roach88/tsbind/internal/ir"
)

// FixThis replaces every This inside an interface's members with a
// reference to that interface, applied to its own type parameters.
func FixThis(f ir.File) ir.File {
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		iface, ok := t.(ir.Interface)
		if !ok {
			return t
		}
		members := make([]ir.FsType, len(iface.Members))
		for i, m := range iface.Members {
			members[i] = ir.Rewrite(m, func(n ir.FsType) ir.FsType {
				if _, ok := n.(ir.This); ok {
					return selfReference(iface)
				}
				return n
			})
		}
		iface.Members = members
		return iface
	})
}

func selfReference(iface ir.Interface) ir.FsType {
	if len(iface.TypeParameters) == 0 {
		return ir.Mapped(iface.Name)
	}
	return ir.Generic{
		Type:           ir.Mapped(iface.Name),
		TypeParameters: append([]ir.FsType(nil), iface.TypeParameters...),
	}
}

// arrayMarkers are generic names whose single type argument is the
// element type of a plain array.
var arrayMarkers = map[ir.Mapped]bool{
	"Array":         true,
	"ReadonlyArray": true,
}

// FixArray collapses Array<T> and ReadonlyArray<T> into an Array node.
func FixArray(f ir.File) ir.File {
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		g, ok := t.(ir.Generic)
		if !ok || len(g.TypeParameters) != 1 {
			return t
		}
		if base, ok := g.Type.(ir.Mapped); ok && arrayMarkers[base] {
			return ir.Array{Type: g.TypeParameters[0]}
		}
		return t
	})
}

// FixDate renames Date to DateTime.
func FixDate(f ir.File) ir.File {
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		if m, ok := t.(ir.Mapped); ok && m == "Date" {
			return ir.Mapped("DateTime")
		}
		return t
	})
}

// DropUnsupported removes TODO and None statements from module bodies.
func DropUnsupported(f ir.File) ir.File {
	return ir.RewriteFile(f, func(t ir.FsType) ir.FsType {
		m, ok := t.(ir.Module)
		if !ok {
			return t
		}
		kept := make([]ir.FsType, 0, len(m.Types))
		for _, c := range m.Types {
			switch c.(type) {
			case ir.TODO, ir.None:
				continue
			}
			kept = append(kept, c)
		}
		m.Types = kept
		return m
	})
}
