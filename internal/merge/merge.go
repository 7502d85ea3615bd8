// Package merge implements declaration merging: interfaces that share a
// name within one scope, and namespaces that share a name at the same
// depth, are folded into one declaration.
//
// Classes, enums and aliases are never merged; re-declarations of those
// simply coexist in source order.
package merge

import (
	"github.com/roach88/tsbind/internal/ir"
)

// File merges the top-level modules of f and everything below them.
func File(f ir.File) ir.File {
	f.Modules = Modules(f.Modules)
	return f
}

// Modules merges modules sharing a name. Each module's children are merged
// first, so merging is depth-first. The global module (empty name) can only
// ever match another global module.
func Modules(modules []ir.Module) []ir.Module {
	out := make([]ir.Module, 0, len(modules))
	index := make(map[string]int, len(modules))
	for _, m := range modules {
		m = children(m)
		if i, seen := index[m.Name]; seen {
			out[i] = combine(out[i], m)
			continue
		}
		index[m.Name] = len(out)
		out = append(out, m)
	}
	return out
}

// Types merges interfaces sharing a name by concatenating their inherited
// types and members. The merged interface takes the position of the first
// declaration; every other entry keeps its position.
func Types(types []ir.FsType) []ir.FsType {
	out := make([]ir.FsType, 0, len(types))
	index := make(map[string]int)
	for _, t := range types {
		iface, ok := t.(ir.Interface)
		if !ok {
			out = append(out, t)
			continue
		}
		i, seen := index[iface.Name]
		if !seen {
			index[iface.Name] = len(out)
			out = append(out, iface)
			continue
		}
		prev := out[i].(ir.Interface)
		if len(prev.TypeParameters) == 0 {
			prev.TypeParameters = iface.TypeParameters
		}
		prev.Inherits = concat(prev.Inherits, iface.Inherits)
		prev.Members = concat(prev.Members, iface.Members)
		out[i] = prev
	}
	return out
}

// children merges the nested modules of m, then the interfaces of m.
func children(m ir.Module) ir.Module {
	var out []ir.FsType
	index := make(map[string]int)
	for _, t := range m.Types {
		child, ok := t.(ir.Module)
		if !ok {
			out = append(out, t)
			continue
		}
		child = children(child)
		if i, seen := index[child.Name]; seen {
			out[i] = combine(out[i].(ir.Module), child)
			continue
		}
		index[child.Name] = len(out)
		out = append(out, child)
	}
	m.Types = Types(out)
	return m
}

func combine(a, b ir.Module) ir.Module {
	return children(ir.Module{Name: a.Name, Types: concat(a.Types, b.Types)})
}

func concat(a, b []ir.FsType) []ir.FsType {
	if len(a) == 0 && len(b) == 0 {
		return a
	}
	out := make([]ir.FsType, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
