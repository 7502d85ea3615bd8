package printer

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/testutil"
)

func strp(s string) *string { return &s }

// render prints a file whose global module holds types and returns the
// lines after the header.
func render(t *testing.T, types ...ir.FsType) []string {
	t.Helper()
	lines, err := Print(ir.File{Name: "Test", Modules: []ir.Module{{Name: "", Types: types}}})
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	require.Equal(t, "module rec Test", lines[0])
	return lines[1:]
}

func TestPrint_HeaderAndOpens(t *testing.T) {
	lines, err := Print(ir.File{Name: "Fable.Import.Lib", Opens: []string{"System", "Fable.Core"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"module rec Fable.Import.Lib", "open System", "open Fable.Core"}, lines)
}

func TestPrint_EmptyModulesSkipped(t *testing.T) {
	lines, err := Print(ir.File{Name: "Test", Modules: []ir.Module{
		{Name: ""},
		{Name: "Empty"},
		{Name: "Outer", Types: []ir.FsType{ir.Module{Name: "Inner"}}},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"module rec Test", "", "module Outer ="}, lines)
}

func TestPrint_Interface(t *testing.T) {
	lines := render(t, ir.Interface{
		Name:           "Box",
		TypeParameters: []ir.FsType{ir.Mapped("'T")},
		Inherits:       []ir.FsType{ir.Mapped("Base")},
		Members: []ir.FsType{
			ir.Property{Name: "value", Type: ir.Mapped("'T")},
			ir.Property{Name: "size", IsReadonly: true, Type: ir.TypeFloat},
			ir.Property{Name: "label", Option: true, Type: ir.TypeString},
			ir.Function{Name: "get", Params: []ir.Param{{Name: "i", Type: ir.TypeFloat}, {Name: "d", Optional: true, Type: ir.Mapped("'T")}}, ReturnType: ir.Mapped("'T")},
			ir.Function{Name: "clear", ReturnType: ir.TypeUnit},
		},
	})
	assert.Equal(t, []string{
		"",
		"type [<AllowNullLiteral>] Box<'T> =",
		"    inherit Base",
		"    abstract value: 'T with get, set",
		"    abstract size: float with get",
		"    abstract label: string option with get, set",
		"    abstract get: i: float * ?d: 'T -> 'T",
		"    abstract clear: unit -> unit",
	}, lines)
}

func TestPrint_OptionalNullablePropertyHasOneOptionSuffix(t *testing.T) {
	lines := render(t, ir.Interface{
		Name: "P",
		Members: []ir.FsType{
			ir.Property{Name: "foo", Option: true, Type: ir.Union{Option: true, Types: []ir.FsType{ir.TypeString}}},
			ir.Property{Name: "bar", Option: true, Type: ir.Union{Types: []ir.FsType{ir.TypeString, ir.TypeFloat}}},
		},
	})
	assert.Equal(t, []string{
		"",
		"type [<AllowNullLiteral>] P =",
		"    abstract foo: string option with get, set",
		"    abstract bar: U2<string, float> option with get, set",
	}, lines)
}

func TestPrint_EmptyInterface(t *testing.T) {
	assert.Equal(t, []string{
		"",
		"type [<AllowNullLiteral>] Marker =",
		"    interface end",
	}, render(t, ir.Interface{Name: "Marker"}))
}

func TestPrint_IndexerAndEmit(t *testing.T) {
	lines := render(t, ir.Interface{Name: "Dict", Members: []ir.FsType{
		ir.Property{
			Name:  "Item",
			Index: &ir.Param{Name: "key", Type: ir.TypeString},
			Type:  ir.TypeFloat,
			Emit:  "$0[$1]{{=$2}}",
		},
		ir.Function{
			Name:       "on_click",
			Params:     []ir.Param{{Name: "h", Type: ir.Function{ReturnType: ir.TypeUnit}}},
			ReturnType: ir.TypeUnit,
			Emit:       "$0.on('click',$1...)",
		},
	}})
	assert.Equal(t, []string{
		"",
		"type [<AllowNullLiteral>] Dict =",
		`    [<Emit "$0[$1]{{=$2}}">] abstract Item: key: string -> float with get, set`,
		`    [<Emit "$0.on('click',$1...)">] abstract on_click: h: (unit -> unit) -> unit`,
	}, lines)
}

func TestPrint_ParamArray(t *testing.T) {
	lines := render(t, ir.Interface{Name: "Console", Members: []ir.FsType{
		ir.Function{Name: "log", Params: []ir.Param{{Name: "args", ParamArray: true, Type: ir.Array{Type: ir.TypeObj}}}, ReturnType: ir.TypeUnit},
		ir.Function{Name: "warn", Params: []ir.Param{{Name: "args", ParamArray: true, Type: ir.TypeString}}, ReturnType: ir.TypeUnit},
	}})
	assert.Equal(t, "    abstract log: [<ParamArray>] args: obj[] -> unit", lines[2])
	assert.Equal(t, "    abstract warn: [<ParamArray>] args: obj[] -> unit", lines[3])
}

func TestPrint_ParamArrayWithEmitMustBeArray(t *testing.T) {
	_, err := Print(ir.File{Name: "Test", Modules: []ir.Module{{Name: "", Types: []ir.FsType{
		ir.Interface{Name: "I", Members: []ir.FsType{
			ir.Function{
				Name:   "call",
				Emit:   "$0($1...)",
				Params: []ir.Param{{Name: "rest", ParamArray: true, Type: ir.TypeString}},
			},
		}},
	}}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVariadicNotArray))
	assert.Contains(t, err.Error(), "function call parameter rest")
}

func TestPrint_NumericEnum(t *testing.T) {
	lines := render(t, ir.Enum{Name: "E", Cases: []ir.EnumCase{
		{Name: "A", Value: strp("1")},
		{Name: "B", Value: strp("2")},
	}})
	assert.Equal(t, []string{
		"",
		"type [<RequireQualifiedAccess>] E =",
		"    | A = 1",
		"    | B = 2",
	}, lines)
}

func TestPrint_NumericEnumAutoNumbering(t *testing.T) {
	lines := render(t, ir.Enum{Name: "Dir", Cases: []ir.EnumCase{
		{Name: "up"},
		{Name: "down", Value: strp("0x10")},
		{Name: "left"},
	}})
	assert.Equal(t, []string{
		"",
		"type [<RequireQualifiedAccess>] Dir =",
		`    | [<CompiledName "up">] Up = 0`,
		`    | [<CompiledName "down">] Down = 0x10`,
		`    | [<CompiledName "left">] Left = 17`,
	}, lines)
}

func TestPrint_StringEnum(t *testing.T) {
	lines := render(t, ir.Enum{Name: "Mode", Cases: []ir.EnumCase{
		{Name: "Open", Type: ir.EnumCaseString, Value: strp("Open")},
		{Name: "closed", Type: ir.EnumCaseString},
		{Name: "Half", Type: ir.EnumCaseString, Value: strp("half-open")},
	}})
	assert.Equal(t, []string{
		"",
		"type [<StringEnum>] [<RequireQualifiedAccess>] Mode =",
		"    | Open",
		`    | [<CompiledName "closed">] Closed`,
		`    | [<CompiledName "half-open">] Half`,
	}, lines)
}

func TestPrint_UnknownOrEmptyEnum(t *testing.T) {
	assert.Equal(t, []string{"", "type E = obj"}, render(t, ir.Enum{Name: "E", Cases: []ir.EnumCase{{Name: "A", Type: ir.EnumCaseUnknown}}}))
	assert.Equal(t, []string{"", "type F = obj"}, render(t, ir.Enum{Name: "F"}))
}

func TestPrint_Alias(t *testing.T) {
	lines := render(t, ir.Alias{
		Name:           "Pair",
		TypeParameters: []ir.FsType{ir.Mapped("'A")},
		Type:           ir.Tuple{Types: []ir.FsType{ir.Mapped("'A"), ir.TypeString}},
	})
	assert.Equal(t, []string{"", "type Pair<'A> =", "    ('A * string)"}, lines)
}

func TestPrint_Imports(t *testing.T) {
	lines := render(t,
		ir.Import{Namespace: []string{"N", "``type``"}, Variable: "``val``", Type: "float"},
		ir.Import{Variable: "g", Type: "string"},
		ir.Variable{Name: "left", Type: ir.TypeBool},
	)
	assert.Equal(t, []string{
		"",
		"let [<Import(\"val\",\"N.type\")>] ``val``: float = jsNative",
		"",
		"let [<Global>] g: string = jsNative",
		"",
		"let [<Global>] left: bool = jsNative",
	}, lines)
}

func TestPrint_SkipsUnsupported(t *testing.T) {
	assert.Empty(t, render(t, ir.TODO{}, ir.None{}))
}

func TestPrint_NestedModules(t *testing.T) {
	lines, err := Print(ir.File{Name: "Test", Modules: []ir.Module{
		{Name: ""},
		{Name: "A", Types: []ir.FsType{
			ir.Module{Name: "B", Types: []ir.FsType{ir.Enum{Name: "E", Cases: []ir.EnumCase{{Name: "X"}}}}},
		}},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"module rec Test",
		"",
		"module A =",
		"",
		"    module B =",
		"",
		"        type [<RequireQualifiedAccess>] E =",
		"            | X = 0",
	}, lines)
}

func TestPrint_Golden(t *testing.T) {
	f := ir.File{
		Name:  "Fable.Import.Widgets",
		Opens: []string{"System", "Fable.Core", "Fable.Import.JS"},
		Modules: []ir.Module{
			{Name: "", Types: []ir.FsType{
				ir.Import{Variable: "VERSION", Type: "string"},
			}},
			{Name: "Widgets", Types: []ir.FsType{
				ir.Interface{Name: "IExports", Members: []ir.FsType{
					ir.Property{Name: "Widget", Type: ir.Mapped("WidgetStatic")},
					ir.Function{Name: "mount", Params: []ir.Param{{Name: "el", Type: ir.Mapped("HTMLElement")}}, ReturnType: ir.TypeUnit},
				}},
				ir.Interface{
					Name:           "Widget",
					TypeParameters: []ir.FsType{ir.Mapped("'T")},
					Members: []ir.FsType{
						ir.Property{Name: "state", Type: ir.Union{Option: true, Types: []ir.FsType{ir.Mapped("'T"), ir.TypeString}}},
						ir.Property{Name: "children", IsReadonly: true, Type: ir.Array{Type: ir.Generic{Type: ir.Mapped("Widget"), TypeParameters: []ir.FsType{ir.Mapped("'T")}}}},
						ir.Function{
							Name:       "on_change",
							Params:     []ir.Param{{Name: "listener", Type: ir.Function{Params: []ir.Param{{Name: "v", Type: ir.Mapped("'T")}}, ReturnType: ir.TypeUnit}}},
							ReturnType: ir.TypeUnit,
							Emit:       "$0.on('change',$1...)",
						},
					},
				},
				ir.Interface{
					Name:     "WidgetStatic",
					IsStatic: true,
					Members: []ir.FsType{
						ir.Function{Name: "Create", Params: []ir.Param{{Name: "init", Type: ir.Mapped("'T")}}, ReturnType: ir.Generic{Type: ir.Mapped("Widget"), TypeParameters: []ir.FsType{ir.Mapped("'T")}}, Emit: "new $0($1...)"},
					},
				},
				ir.Enum{Name: "Kind", Cases: []ir.EnumCase{
					{Name: "Button", Type: ir.EnumCaseString, Value: strp("button")},
					{Name: "Panel", Type: ir.EnumCaseString, Value: strp("Panel")},
				}},
				ir.Import{Namespace: []string{"Widgets"}, Variable: "defaults", Type: "obj"},
			}},
		},
	}

	lines, err := Print(f)
	require.NoError(t, err)
	testutil.AssertGolden(t, "widgets", []byte(strings.Join(lines, "\n")+"\n"))
}
