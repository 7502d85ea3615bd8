package ir

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFile() File {
	return File{
		Name:  "Test",
		Opens: []string{"System"},
		Modules: []Module{
			{Name: "", Types: []FsType{
				Interface{
					Name:           "Box",
					TypeParameters: []FsType{Mapped("T")},
					Members: []FsType{
						Property{Name: "value", Type: Mapped("T")},
						Function{
							Name:       "map",
							Params:     []Param{{Name: "f", Type: Function{Params: []Param{{Name: "x", Type: Mapped("T")}}, ReturnType: Mapped("T")}}},
							ReturnType: This{},
						},
					},
				},
			}},
			{Name: "N", Types: []FsType{
				Variable{Name: "count", Type: TypeFloat},
				Alias{Name: "Id", Type: Union{Types: []FsType{TypeString, TypeFloat}}},
			}},
		},
	}
}

func TestRewrite_IdentityPreservesTree(t *testing.T) {
	f := sampleFile()
	out := RewriteFile(f, func(n FsType) FsType { return n })
	assert.True(t, Equal(f, out), Diff(f, out))
}

func TestRewrite_DoesNotMutateInput(t *testing.T) {
	f := sampleFile()
	before := sampleFile()

	_ = RewriteFile(f, func(n FsType) FsType {
		if m, ok := n.(Mapped); ok && m == "T" {
			return Mapped("'T")
		}
		return n
	})

	assert.True(t, Equal(before, f), Diff(before, f))
}

func TestRewrite_ReplacesEveryOccurrence(t *testing.T) {
	out := RewriteFile(sampleFile(), func(n FsType) FsType {
		if m, ok := n.(Mapped); ok && m == "T" {
			return Mapped("'T")
		}
		return n
	})

	var remaining, quoted int
	Walk(out, func(n FsType) {
		switch n {
		case Mapped("T"):
			remaining++
		case Mapped("'T"):
			quoted++
		}
	})
	assert.Equal(t, 0, remaining)
	assert.Equal(t, 4, quoted)
}

func TestRewrite_BottomUp(t *testing.T) {
	var order []string
	Walk(Array{Type: Generic{Type: Mapped("List"), TypeParameters: []FsType{TypeFloat}}}, func(n FsType) {
		switch v := n.(type) {
		case Mapped:
			order = append(order, string(v))
		case Generic:
			order = append(order, "Generic")
		case Array:
			order = append(order, "Array")
		}
	})
	assert.Equal(t, []string{"List", "float", "Generic", "Array"}, order)
}

func TestRewrite_NilPassesThrough(t *testing.T) {
	assert.Nil(t, Rewrite(nil, func(n FsType) FsType { return TypeObj }))

	out := Rewrite(Property{Name: "p"}, func(n FsType) FsType { return n })
	assert.Nil(t, out.(Property).Type)
}

func TestRewrite_ParamReplacedPanicsWithAssertion(t *testing.T) {
	fn := Function{Name: "f", Params: []Param{{Name: "x", Type: TypeFloat}}}

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.HasAssertionFailure(err))
	}()
	Rewrite(fn, func(n FsType) FsType {
		if _, ok := n.(Param); ok {
			return TypeObj
		}
		return n
	})
}

func TestRewriteFile_ModuleReplacedPanics(t *testing.T) {
	assert.Panics(t, func() {
		RewriteFile(sampleFile(), func(n FsType) FsType {
			if _, ok := n.(Module); ok {
				return TODO{}
			}
			return n
		})
	})
}
