package fix

import (
	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/printer"
)

// ConvertImports replaces every Variable left in a module with an Import
// bound to the path of its enclosing modules. The printed type is rendered
// here, after every other pass has run.
func ConvertImports(f ir.File) ir.File {
	modules := make([]ir.Module, len(f.Modules))
	for i, m := range f.Modules {
		modules[i] = convertModule(m, nil)
	}
	f.Modules = modules
	return f
}

func convertModule(m ir.Module, parent []string) ir.Module {
	path := parent
	if m.Name != "" {
		path = make([]string, 0, len(parent)+1)
		path = append(append(path, parent...), m.Name)
	}
	types := make([]ir.FsType, len(m.Types))
	for i, t := range m.Types {
		switch v := t.(type) {
		case ir.Variable:
			types[i] = ir.Import{
				Namespace: append([]string(nil), path...),
				Variable:  v.Name,
				Type:      printer.TypeString(v.Type),
			}
		case ir.Module:
			types[i] = convertModule(v, path)
		default:
			types[i] = t
		}
	}
	m.Types = types
	return m
}
