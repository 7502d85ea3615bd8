package ir

import (
	"github.com/cockroachdb/errors"
)

// Rule is a local rewrite applied to one node whose children have already
// been rewritten.
type Rule func(FsType) FsType

// Rewrite rebuilds t bottom-up: every child is rewritten first, then rule is
// applied to the rebuilt node. Variants without children are passed straight
// to rule. The input tree is never modified.
//
// Params, index params and module members keep their static types; if rule
// turns a Param into something else, or a Module of a File into something
// else, Rewrite panics with an assertion failure. Run the pipeline through
// fix.Run to get that back as an error.
func Rewrite(t FsType, rule Rule) FsType {
	switch v := t.(type) {
	case Interface:
		v.TypeParameters = rewriteList(v.TypeParameters, rule)
		v.Inherits = rewriteList(v.Inherits, rule)
		v.Members = rewriteList(v.Members, rule)
		return rule(v)
	case Property:
		if v.Index != nil {
			p := rewriteParam(*v.Index, rule)
			v.Index = &p
		}
		v.Type = rewriteOne(v.Type, rule)
		return rule(v)
	case Param:
		v.Type = rewriteOne(v.Type, rule)
		return rule(v)
	case Function:
		v.TypeParameters = rewriteList(v.TypeParameters, rule)
		if v.Params != nil {
			params := make([]Param, len(v.Params))
			for i, p := range v.Params {
				params[i] = rewriteParam(p, rule)
			}
			v.Params = params
		}
		v.ReturnType = rewriteOne(v.ReturnType, rule)
		return rule(v)
	case Array:
		v.Type = rewriteOne(v.Type, rule)
		return rule(v)
	case Union:
		v.Types = rewriteList(v.Types, rule)
		return rule(v)
	case Tuple:
		v.Types = rewriteList(v.Types, rule)
		return rule(v)
	case Generic:
		v.Type = rewriteOne(v.Type, rule)
		v.TypeParameters = rewriteList(v.TypeParameters, rule)
		return rule(v)
	case Alias:
		v.Type = rewriteOne(v.Type, rule)
		v.TypeParameters = rewriteList(v.TypeParameters, rule)
		return rule(v)
	case Variable:
		v.Type = rewriteOne(v.Type, rule)
		return rule(v)
	case Module:
		v.Types = rewriteList(v.Types, rule)
		return rule(v)
	case File:
		if v.Modules != nil {
			modules := make([]Module, len(v.Modules))
			for i, m := range v.Modules {
				modules[i] = rewriteModule(m, rule)
			}
			v.Modules = modules
		}
		if v.Opens != nil {
			v.Opens = append([]string(nil), v.Opens...)
		}
		return rule(v)
	case nil:
		return nil
	default:
		// Enum, Import, Mapped, StringLiteral, This, TODO, None
		return rule(t)
	}
}

// RewriteFile is Rewrite specialized to a File root.
func RewriteFile(f File, rule Rule) File {
	out := Rewrite(f, rule)
	file, ok := out.(File)
	if !ok {
		panic(errors.AssertionFailedf("rewrite of file %q produced %T", f.Name, out))
	}
	return file
}

func rewriteOne(t FsType, rule Rule) FsType {
	if t == nil {
		return nil
	}
	return Rewrite(t, rule)
}

func rewriteList(ts []FsType, rule Rule) []FsType {
	if ts == nil {
		return nil
	}
	out := make([]FsType, len(ts))
	for i, t := range ts {
		out[i] = Rewrite(t, rule)
	}
	return out
}

func rewriteParam(p Param, rule Rule) Param {
	out := Rewrite(p, rule)
	param, ok := out.(Param)
	if !ok {
		panic(errors.AssertionFailedf("rewrite of parameter %q produced %T", p.Name, out))
	}
	return param
}

func rewriteModule(m Module, rule Rule) Module {
	out := Rewrite(m, rule)
	module, ok := out.(Module)
	if !ok {
		panic(errors.AssertionFailedf("rewrite of module %q produced %T", m.Name, out))
	}
	return module
}

// Walk visits every node of t in the same bottom-up order Rewrite uses,
// without building a new tree.
func Walk(t FsType, visit func(FsType)) {
	Rewrite(t, func(n FsType) FsType {
		visit(n)
		return n
	})
}
