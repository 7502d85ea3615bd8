// Package syntax adapts the tree-sitter TypeScript grammar to the node
// contract lowering reads: a Kind per node, source text, and structural
// accessors for statements, members, parameters, heritage and type
// arguments.
package syntax

import (
	"context"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Tree is one parsed declaration source.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Parse parses src as TypeScript. A tree with syntax errors is still
// returned; check HasErrors.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "parse typescript")
	}
	if tree == nil {
		return nil, errors.New("parse typescript: parser returned no tree")
	}
	return &Tree{tree: tree, src: src}, nil
}

// Root returns the SourceFile node.
func (t *Tree) Root() *Node {
	if t == nil || t.tree == nil {
		return nil
	}
	return newNode(t.tree.RootNode(), t.src)
}

// HasErrors reports whether the parser recovered from syntax errors.
func (t *Tree) HasErrors() bool {
	if t == nil || t.tree == nil {
		return false
	}
	return t.tree.RootNode().HasError()
}

// Close releases the underlying tree.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
	}
}
