package translate

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tsbind/internal/config"
	"github.com/roach88/tsbind/internal/ir"
	"github.com/roach88/tsbind/internal/testutil"
)

var header = []string{
	"module rec Test",
	"open System",
	"open Fable.Core",
	"open Fable.Import.JS",
}

func testOptions(t *testing.T) Options {
	t.Helper()
	cfg, err := config.Resolve(config.Config{Namespace: "Test"})
	require.NoError(t, err)
	return Options{Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func translate(t *testing.T, lines ...string) *Result {
	t.Helper()
	res, err := Source(context.Background(), "test.d.ts", testutil.Source(lines...), testOptions(t))
	require.NoError(t, err)
	return res
}

func body(res *Result) []string {
	return res.Lines[len(header):]
}

func TestSource_DeclaredVariableInNamespaceIsImport(t *testing.T) {
	res := translate(t, "export namespace N { declare const foo: string; }")

	assert.Equal(t, header, res.Lines[:len(header)])
	assert.Equal(t, []string{
		"",
		"module N =",
		"",
		`    let [<Import("foo","N")>] foo: string = jsNative`,
	}, body(res))
}

func TestSource_NumericEnum(t *testing.T) {
	res := translate(t, "declare enum E { A = 1, B = 2 }")
	assert.Equal(t, []string{
		"",
		"type [<RequireQualifiedAccess>] E =",
		"    | A = 1",
		"    | B = 2",
	}, body(res))
}

func TestSource_StaticMembersSplitIntoHolder(t *testing.T) {
	res := translate(t,
		"declare class C {",
		"    static create(): C;",
		"    run(): void;",
		"}",
	)
	assert.Equal(t, []string{
		"",
		"type [<AllowNullLiteral>] IExports =",
		"    abstract C: CStatic with get, set",
		"",
		"type [<AllowNullLiteral>] C =",
		"    abstract run: unit -> unit",
		"",
		"type [<AllowNullLiteral>] CStatic =",
		"    abstract create: unit -> C",
	}, body(res))
}

func TestSource_GenericClassStaticsUsePlainHolder(t *testing.T) {
	res := translate(t, "declare class Box<T> { static of<T>(v: T): Box<T>; get(): T; }")
	assert.Equal(t, []string{
		"",
		"type [<AllowNullLiteral>] IExports =",
		"    abstract Box: BoxStatic with get, set",
		"",
		"type [<AllowNullLiteral>] Box<'T> =",
		"    abstract get: unit -> 'T",
		"",
		"type [<AllowNullLiteral>] BoxStatic =",
		"    abstract ``of``: v: 'T -> Box<'T>",
	}, body(res))
}

func TestSource_StringOverload(t *testing.T) {
	res := translate(t, `interface E { on(kind: "click", h: () => void): void; }`)
	assert.Equal(t, []string{
		"",
		"type [<AllowNullLiteral>] E =",
		`    [<Emit "$0.on('click',$1...)">] abstract on_click: h: (unit -> unit) -> unit`,
	}, body(res))
}

func TestSource_StringLiteralCallAndConstructSignatures(t *testing.T) {
	res := translate(t, `interface C { (kind: "a", x: number): void; new (kind: "b"): C; }`)
	assert.Equal(t, []string{
		"",
		"type [<AllowNullLiteral>] IExports =",
		"    abstract C: CStatic with get, set",
		"",
		"type [<AllowNullLiteral>] C =",
		`    [<Emit "$0('a',$1...)">] abstract Invoke_a: x: float -> unit`,
		"",
		"type [<AllowNullLiteral>] CStatic =",
		`    [<Emit "new $0('b')">] abstract Create_b: unit -> C`,
	}, body(res))
}

func TestSource_NullableBecomesOption(t *testing.T) {
	res := translate(t, "declare const x: string | null;")
	assert.Equal(t, []string{"", "let [<Global>] x: string option = jsNative"}, body(res))
}

func TestSource_OptionalNullableProperty(t *testing.T) {
	res := translate(t, "interface P { foo?: string | null; }")
	assert.Equal(t, []string{
		"",
		"type [<AllowNullLiteral>] P =",
		"    abstract foo: string option with get, set",
	}, body(res))
}

func TestSource_WideUnionBecomesObj(t *testing.T) {
	res := translate(t, "declare const x: A | B | C | D | E | F | G;")
	assert.Equal(t, []string{"", "let [<Global>] x: obj = jsNative"}, body(res))
	assert.Empty(t, res.Violations)
}

func TestSource_ConfiguredUnionArity(t *testing.T) {
	opts := testOptions(t)
	opts.Config.MaxUnionArity = 2
	res, err := Source(context.Background(), "t.d.ts", []byte("declare const x: A | B | C;\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, "let [<Global>] x: obj = jsNative", res.Lines[len(res.Lines)-1])
}

func TestSource_NamespacesMerge(t *testing.T) {
	res := translate(t,
		"declare namespace N { interface A { x: number; } }",
		"declare namespace N { interface A { y: string; } const v: number; }",
	)
	assert.Equal(t, []string{
		"",
		"module N =",
		"",
		"    type [<AllowNullLiteral>] IExports =",
		"        abstract v: float with get, set",
		"",
		"    type [<AllowNullLiteral>] A =",
		"        abstract x: float with get, set",
		"        abstract y: string with get, set",
	}, body(res))
}

func TestSource_BrowserOpenAdded(t *testing.T) {
	res := translate(t, "declare function mount(el: HTMLElement): void;")
	assert.Contains(t, res.Lines, "open Fable.Import.Browser")
	assert.Equal(t, []string{"Fable.Import.Browser"}, res.File.Opens[len(res.File.Opens)-1:])
}

func TestSource_DefaultConfigWhenZero(t *testing.T) {
	res, err := Source(context.Background(), "types/react-dom.d.ts", []byte("declare const a: number;\n"), Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fable.Import.ReactDom", res.Namespace)
	assert.Equal(t, "module rec Fable.Import.ReactDom", res.Lines[0])
}

func TestSource_RunMetadata(t *testing.T) {
	res := translate(t, "declare const a: number;")
	_, err := uuid.Parse(res.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "test.d.ts", res.Input)
	assert.Equal(t, len(res.Lines), res.LineCount)
	assert.False(t, res.SyntaxError)
	assert.True(t, strings.HasSuffix(res.Text(), "jsNative\n"))
}

func TestSource_DegradationsReported(t *testing.T) {
	res := translate(t, `console.log("x");`, "declare const ok: boolean;")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "unsupported statement", res.Diagnostics[0].Message)
	assert.Equal(t, []string{"", "let [<Global>] ok: bool = jsNative"}, body(res))
}

func TestSource_SyntaxErrorsKeepGoing(t *testing.T) {
	var logs bytes.Buffer
	opts := testOptions(t)
	opts.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	res, err := Source(context.Background(), "bad.d.ts", []byte("declare const b: string;\n)\n"), opts)
	require.NoError(t, err)
	assert.True(t, res.SyntaxError)
	assert.Contains(t, logs.String(), "input has syntax errors")
	assert.Contains(t, logs.String(), "run_id="+res.RunID)
}

func TestSource_FixedIRIsValid(t *testing.T) {
	src := testutil.ReadFixture(t, "widgets.d.ts")
	res, err := Source(context.Background(), "testdata/widgets.d.ts", src, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Violations)
	assert.Empty(t, ir.Validate(res.File, ir.ValidateOptions{StaticsExtracted: true, MaxUnionArity: 6}))
}

func TestSource_Golden(t *testing.T) {
	src := testutil.ReadFixture(t, "widgets.d.ts")
	res, err := Source(context.Background(), "testdata/widgets.d.ts", src, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	testutil.AssertGolden(t, "widgets", []byte(res.Text()))
}

func TestSource_Deterministic(t *testing.T) {
	src := testutil.ReadFixture(t, "widgets.d.ts")
	first, err := Source(context.Background(), "widgets.d.ts", src, testOptions(t))
	require.NoError(t, err)
	second, err := Source(context.Background(), "widgets.d.ts", src, testOptions(t))
	require.NoError(t, err)

	assert.Equal(t, first.Lines, second.Lines)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestFile_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "lib.d.ts")
	output := filepath.Join(dir, "Lib.fs")
	require.NoError(t, os.WriteFile(input, []byte("declare const a: number;\n"), 0o644))

	res, err := File(context.Background(), input, output, testOptions(t))
	require.NoError(t, err)
	assert.Equal(t, output, res.Output)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, res.Text(), string(written))
}

func TestFile_MissingInput(t *testing.T) {
	_, err := File(context.Background(), filepath.Join(t.TempDir(), "nope.d.ts"), "out.fs", testOptions(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}
