package lower

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/syntax"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func lowerSource(t *testing.T, src string) Result {
	t.Helper()
	tree, err := syntax.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	res, err := File("Test", tree.Root(), discard())
	require.NoError(t, err)
	require.NotEmpty(t, res.File.Modules)
	require.Equal(t, "", res.File.Modules[0].Name, "global module comes first")
	return res
}

// globals lowers src and returns the global module's declarations.
func globals(t *testing.T, src string) []ir.FsType {
	t.Helper()
	return lowerSource(t, src).File.Modules[0].Types
}

func assertIR(t *testing.T, want, got ir.FsType) {
	t.Helper()
	assert.True(t, ir.Equal(want, got), ir.Diff(want, got))
}

func TestFile_Interface(t *testing.T) {
	types := globals(t, `interface Point {
    x: number;
    readonly y?: string;
    move(dx: number, dy?: number): this;
}`)

	require.Len(t, types, 1)
	assertIR(t, ir.Interface{
		Name: "Point",
		Members: []ir.FsType{
			ir.Property{Name: "x", Type: ir.TypeFloat},
			ir.Property{Name: "y", Option: true, IsReadonly: true, Type: ir.TypeString},
			ir.Function{
				Name: "move",
				Params: []ir.Param{
					{Name: "dx", Type: ir.TypeFloat},
					{Name: "dy", Optional: true, Type: ir.TypeFloat},
				},
				ReturnType: ir.This{},
			},
		},
	}, types[0])
}

func TestFile_GenericInterfaceWithHeritage(t *testing.T) {
	types := globals(t, `interface Box<T> extends Base, Other<T> {
    items: T[];
    map<U>(f: (x: T) => U): Box<U>;
}`)

	require.Len(t, types, 1)
	assertIR(t, ir.Interface{
		Name:           "Box",
		TypeParameters: []ir.FsType{ir.Mapped("T")},
		Inherits: []ir.FsType{
			ir.Mapped("Base"),
			ir.Generic{Type: ir.Mapped("Other"), TypeParameters: []ir.FsType{ir.Mapped("T")}},
		},
		Members: []ir.FsType{
			ir.Property{Name: "items", Type: ir.Array{Type: ir.Mapped("T")}},
			ir.Function{
				Name:           "map",
				TypeParameters: []ir.FsType{ir.Mapped("U")},
				Params: []ir.Param{{
					Name: "f",
					Type: ir.Function{Params: []ir.Param{{Name: "x", Type: ir.Mapped("T")}}, ReturnType: ir.Mapped("U")},
				}},
				ReturnType: ir.Generic{Type: ir.Mapped("Box"), TypeParameters: []ir.FsType{ir.Mapped("U")}},
			},
		},
	}, types[0])
}

func TestFile_SpecialMembers(t *testing.T) {
	types := globals(t, `interface Fn {
    (x: number): string;
    new (s: string): Fn;
    [key: string]: any;
}`)

	require.Len(t, types, 1)
	members := types[0].(ir.Interface).Members
	require.Len(t, members, 3)

	assertIR(t, ir.Function{
		Name:       "Invoke",
		Params:     []ir.Param{{Name: "x", Type: ir.TypeFloat}},
		ReturnType: ir.TypeString,
		Emit:       EmitInvoke,
	}, members[0])
	assertIR(t, ir.Function{
		Name:       "Create",
		IsStatic:   true,
		Params:     []ir.Param{{Name: "s", Type: ir.TypeString}},
		ReturnType: ir.This{},
		Emit:       EmitCreate,
	}, members[1])
	assertIR(t, ir.Property{
		Name:  "Item",
		Index: &ir.Param{Name: "key", Type: ir.TypeString},
		Type:  ir.TypeObj,
		Emit:  EmitIndexer,
	}, members[2])
}

func TestFile_ClassStaticsAndConstructor(t *testing.T) {
	types := globals(t, `declare class Widget {
    constructor(name: string);
    static count: number;
    static create(): Widget;
    render(): void;
}`)

	require.Len(t, types, 1)
	iface := types[0].(ir.Interface)
	assert.Equal(t, "Widget", iface.Name)
	require.Len(t, iface.Members, 4)

	ctor := iface.Members[0].(ir.Function)
	assert.Equal(t, "Create", ctor.Name)
	assert.True(t, ctor.IsStatic)
	assert.Equal(t, ir.This{}, ctor.ReturnType)

	assert.True(t, iface.Members[1].(ir.Property).IsStatic)
	assert.True(t, iface.Members[2].(ir.Function).IsStatic)
	assert.False(t, iface.Members[3].(ir.Function).IsStatic)
}

func TestFile_AccessorPairCollapses(t *testing.T) {
	types := globals(t, `declare class Temp {
    get celsius(): number;
    set celsius(v: number);
    get kelvin(): number;
}`)

	members := types[0].(ir.Interface).Members
	require.Len(t, members, 2)
	assertIR(t, ir.Property{Name: "celsius", Type: ir.TypeFloat}, members[0])
	assertIR(t, ir.Property{Name: "kelvin", IsReadonly: true, Type: ir.TypeFloat}, members[1])
}

func TestFile_NumericEnum(t *testing.T) {
	types := globals(t, `declare enum E { A = 1, B = 2 }`)

	one, two := "1", "2"
	require.Len(t, types, 1)
	assertIR(t, ir.Enum{Name: "E", Cases: []ir.EnumCase{
		{Name: "A", Type: ir.EnumCaseNumeric, Value: &one},
		{Name: "B", Type: ir.EnumCaseNumeric, Value: &two},
	}}, types[0])
}

func TestFile_EnumWithoutInitializers(t *testing.T) {
	types := globals(t, `declare enum Dir { Up, Down }`)
	assertIR(t, ir.Enum{Name: "Dir", Cases: []ir.EnumCase{
		{Name: "Up", Type: ir.EnumCaseNumeric},
		{Name: "Down", Type: ir.EnumCaseNumeric},
	}}, types[0])
}

func TestFile_StringEnum(t *testing.T) {
	types := globals(t, `declare enum Color { Red = "red", Green = "green" }`)
	red, green := "red", "green"
	assertIR(t, ir.Enum{Name: "Color", Cases: []ir.EnumCase{
		{Name: "Red", Type: ir.EnumCaseString, Value: &red},
		{Name: "Green", Type: ir.EnumCaseString, Value: &green},
	}}, types[0])
}

func TestFile_ComputedEnumDegrades(t *testing.T) {
	res := lowerSource(t, `declare enum Flags { A = 1 << 0 }`)
	e := res.File.Modules[0].Types[0].(ir.Enum)
	require.Len(t, e.Cases, 1)
	assert.Equal(t, ir.EnumCaseUnknown, e.Cases[0].Type)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "non-literal enum initializer", res.Diagnostics[0].Message)
}

func TestFile_StringLiteralUnionAliasIsEnum(t *testing.T) {
	types := globals(t, `type Mode = "open" | "closed";`)
	assertIR(t, ir.Enum{Name: "Mode", Cases: []ir.EnumCase{
		{Name: "open", Type: ir.EnumCaseString},
		{Name: "closed", Type: ir.EnumCaseString},
	}}, types[0])
}

func TestFile_Alias(t *testing.T) {
	types := globals(t, `type Pair<A> = [A, string];`)
	assertIR(t, ir.Alias{
		Name:           "Pair",
		TypeParameters: []ir.FsType{ir.Mapped("A")},
		Type:           ir.Tuple{Types: []ir.FsType{ir.Mapped("A"), ir.TypeString}},
	}, types[0])
}

func TestFile_NullableUnion(t *testing.T) {
	types := globals(t, `declare const x: string | null;
declare const y: number | undefined | string | number;`)

	require.Len(t, types, 2)
	assertIR(t, ir.Variable{
		Name:       "x",
		HasDeclare: true,
		Type:       ir.Union{Option: true, Types: []ir.FsType{ir.TypeString}},
	}, types[0])
	assertIR(t, ir.Variable{
		Name:       "y",
		HasDeclare: true,
		Type:       ir.Union{Option: true, Types: []ir.FsType{ir.TypeFloat, ir.TypeString}},
	}, types[1])
}

func TestFile_FunctionDeclaration(t *testing.T) {
	types := globals(t, `declare function log(msg: string, ...rest: any[]): void;`)
	assertIR(t, ir.Function{
		Name: "log",
		Params: []ir.Param{
			{Name: "msg", Type: ir.TypeString},
			{Name: "rest", ParamArray: true, Type: ir.Array{Type: ir.TypeObj}},
		},
		ReturnType: ir.TypeUnit,
	}, types[0])
}

func TestFile_DestructuredParameterGetsPositionalName(t *testing.T) {
	types := globals(t, `declare function draw({ x, y }: Point, scale: number): void;`)
	fn := types[0].(ir.Function)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "arg0", fn.Params[0].Name)
	assert.Equal(t, ir.Mapped("Point"), fn.Params[0].Type)
	assert.Equal(t, "scale", fn.Params[1].Name)
}

func TestFile_Namespaces(t *testing.T) {
	res := lowerSource(t, `declare namespace A.B {
    const x: number;
}
declare module "lib" {
    function f(): void;
}`)

	modules := res.File.Modules
	require.Len(t, modules, 3)

	a := modules[1]
	assert.Equal(t, "A", a.Name)
	require.Len(t, a.Types, 1)
	b := a.Types[0].(ir.Module)
	assert.Equal(t, "B", b.Name)
	assertIR(t, ir.Variable{Name: "x", Type: ir.TypeFloat}, b.Types[0])

	assert.Equal(t, "lib", modules[2].Name)
	assert.IsType(t, ir.Function{}, modules[2].Types[0])
}

func TestFile_DeclareInsideNamespace(t *testing.T) {
	res := lowerSource(t, `export namespace N {
    declare const foo: string;
    const bar: number;
}`)

	n := res.File.Modules[1]
	assert.Equal(t, "N", n.Name)
	require.Len(t, n.Types, 2)
	assert.True(t, n.Types[0].(ir.Variable).HasDeclare)
	assert.False(t, n.Types[1].(ir.Variable).HasDeclare)
}

func TestFile_GlobalAugmentationSpliced(t *testing.T) {
	res := lowerSource(t, `declare global {
    interface Window { app: string; }
}`)
	require.Len(t, res.File.Modules, 1)
	types := res.File.Modules[0].Types
	require.Len(t, types, 1)
	assert.Equal(t, "Window", types[0].(ir.Interface).Name)
}

func TestFile_UnsupportedStatementDegrades(t *testing.T) {
	res := lowerSource(t, `console.log("hi");
declare const ok: boolean;`)

	types := res.File.Modules[0].Types
	require.Len(t, types, 2)
	assert.Equal(t, ir.TODO{}, types[0])
	assertIR(t, ir.Variable{Name: "ok", HasDeclare: true, Type: ir.TypeBool}, types[1])

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "unsupported statement", res.Diagnostics[0].Message)
	assert.Equal(t, 1, res.Diagnostics[0].Line)
}

func TestFile_DegradedTextTruncatesOnRuneBoundary(t *testing.T) {
	res := lowerSource(t, `console.log("`+strings.Repeat("é", 60)+`");`)

	require.Len(t, res.Diagnostics, 1)
	text := res.Diagnostics[0].Text
	assert.True(t, utf8.ValidString(text), "excerpt %q is not valid UTF-8", text)
	assert.True(t, strings.HasSuffix(text, "..."))
	assert.LessOrEqual(t, len(text), maxDiagnosticText+len("..."))
}

func TestFile_ImportsSkippedWithoutDiagnostics(t *testing.T) {
	res := lowerSource(t, `import { A } from "./a";
declare const a: A;`)
	types := res.File.Modules[0].Types
	require.Len(t, types, 2)
	assert.Equal(t, ir.TODO{}, types[0])
	assert.Empty(t, res.Diagnostics)
}

func TestFile_OpaqueTypesLowerToObj(t *testing.T) {
	types := globals(t, `declare const a: A & B;
declare const b: { x: number };
declare const c: keyof T;
declare const d: unknown;`)

	for i, tt := range types {
		assert.Equal(t, ir.TypeObj, tt.(ir.Variable).Type, "declaration %d", i)
	}
}

func TestFile_DottedReferenceKeepsFirstSegment(t *testing.T) {
	types := globals(t, `declare const el: React.ReactElement;`)
	assert.Equal(t, ir.Mapped("React"), types[0].(ir.Variable).Type)
}

func TestFile_StringLiteralParameter(t *testing.T) {
	types := globals(t, `interface Emitter { on(kind: "click", h: () => void): void; }`)
	fn := types[0].(ir.Interface).Members[0].(ir.Function)
	assert.Equal(t, ir.StringLiteral("click"), fn.Params[0].Type)
	assertIR(t, ir.Function{ReturnType: ir.TypeUnit}, fn.Params[1].Type)
}

func TestType_NilIsObj(t *testing.T) {
	got, diags, err := Type(nil, discard())
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, ir.TypeObj, got)
}

func TestLowerError(t *testing.T) {
	err := &LowerError{Kind: syntax.KindTypeReference, Message: "type reference has no name", Line: 3, Column: 7, Err: ErrUnresolvedName}
	assert.Equal(t, "3:7: TypeReference: type reference has no name", err.Error())
	assert.True(t, errors.Is(err, ErrUnresolvedName))

	wrapped := errors.Wrap(err, "lowering x.d.ts")
	assert.True(t, errors.Is(wrapped, ErrUnresolvedName))

	var le *LowerError
	require.True(t, errors.As(wrapped, &le))
	assert.Equal(t, 3, le.Line)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Kind: syntax.KindUnknown, Message: "unsupported statement", Line: 2, Column: 1}
	assert.Equal(t, "2:1: Unknown: unsupported statement", d.String())
}
