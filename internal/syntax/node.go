package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Node is a read-only view of one tree-sitter node shaped like the
// TypeScript compiler's node contract. Wrapper statements (declare, export)
// are unwrapped and surface as modifiers on the node they wrap.
//
// All accessors are nil-safe: calling them on a nil *Node returns zero values.
type Node struct {
	n        *sitter.Node
	src      []byte
	mods     []string
	kind     Kind         // overrides classification when set
	typeArgs *sitter.Node // type arguments of an ExpressionWithTypeArguments
}

func newNode(n *sitter.Node, src []byte) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n, src: src}
}

// Kind classifies the node.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindUnknown
	}
	if n.kind != "" {
		return n.kind
	}
	return classify(n.n, n.src)
}

// RawType returns the underlying tree-sitter node type, for diagnostics.
func (n *Node) RawType() string {
	if n == nil {
		return ""
	}
	return n.n.Type()
}

// Text returns the original source text of the node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.n.Content(n.src)
}

// Line returns the 1-based start line.
func (n *Node) Line() int {
	if n == nil {
		return 0
	}
	return int(n.n.StartPoint().Row) + 1
}

// Column returns the 1-based start column.
func (n *Node) Column() int {
	if n == nil {
		return 0
	}
	return int(n.n.StartPoint().Column) + 1
}

// HasModifier reports whether the node carries keyword m, either directly
// (static, readonly, abstract, get, set, const) or through an unwrapped
// wrapper statement (declare, export).
func (n *Node) HasModifier(m string) bool {
	if n == nil {
		return false
	}
	for _, x := range n.mods {
		if x == m {
			return true
		}
	}
	for i := 0; i < int(n.n.ChildCount()); i++ {
		c := n.n.Child(i)
		if c == nil {
			continue
		}
		if !c.IsNamed() && c.Type() == m {
			return true
		}
		if c.Type() == "accessibility_modifier" && c.Content(n.src) == m {
			return true
		}
	}
	return false
}

// IsGlobalAugmentation reports whether the node is a `declare global { }` block.
func (n *Node) IsGlobalAugmentation() bool {
	return n != nil && n.n.Type() == "ambient_declaration" && hasChildType(n.n, "global")
}

// Name returns the declared name as written in source (quotes and dots kept).
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	switch n.n.Type() {
	case "ambient_declaration":
		if n.IsGlobalAugmentation() {
			return "global"
		}
	case "property_identifier", "identifier", "type_identifier", "string", "number":
		// bare enum members
		return n.Text()
	case "required_parameter", "optional_parameter":
		p := parameterPattern(n.n)
		if p == nil || p.Type() == "object_pattern" || p.Type() == "array_pattern" {
			return ""
		}
		if p.Type() == "rest_pattern" {
			if inner := firstNamed(p); inner != nil {
				return inner.Content(n.src)
			}
		}
		return p.Content(n.src)
	}
	if n.kind == KindExpressionWithTypeArguments {
		return n.Text()
	}
	if f := n.n.ChildByFieldName("name"); f != nil {
		return f.Content(n.src)
	}
	if c := childOfType(n.n, nameTypes...); c != nil {
		return c.Content(n.src)
	}
	return ""
}

var nameTypes = []string{
	"type_identifier", "identifier", "property_identifier", "string", "number",
	"nested_identifier", "private_property_identifier", "computed_property_name",
}

// HasComputedName reports whether the member name is a computed expression
// such as [Symbol.iterator].
func (n *Node) HasComputedName() bool {
	if n == nil {
		return false
	}
	if f := n.n.ChildByFieldName("name"); f != nil {
		return f.Type() == "computed_property_name"
	}
	return childOfType(n.n, "computed_property_name") != nil
}

// ReferenceName returns the referenced name of a TypeReference or
// ExpressionWithTypeArguments, possibly dotted.
func (n *Node) ReferenceName() string {
	if n == nil {
		return ""
	}
	if n.kind == KindExpressionWithTypeArguments {
		return n.Text()
	}
	switch n.n.Type() {
	case "type_identifier", "nested_type_identifier", "identifier", "member_expression":
		return n.Text()
	case "generic_type":
		if f := n.n.ChildByFieldName("name"); f != nil {
			return f.Content(n.src)
		}
		if c := childOfType(n.n, "type_identifier", "nested_type_identifier"); c != nil {
			return c.Content(n.src)
		}
	}
	return ""
}

// TypeArguments returns the type arguments of a generic reference.
func (n *Node) TypeArguments() []*Node {
	if n == nil {
		return nil
	}
	args := n.typeArgs
	if args == nil && n.n.Type() == "generic_type" {
		args = n.n.ChildByFieldName("type_arguments")
		if args == nil {
			args = childOfType(n.n, "type_arguments")
		}
	}
	if args == nil {
		return nil
	}
	return n.typeList(args)
}

// TypeParameters returns the declared type parameters.
func (n *Node) TypeParameters() []*Node {
	if n == nil {
		return nil
	}
	tps := n.n.ChildByFieldName("type_parameters")
	if tps == nil {
		tps = childOfType(n.n, "type_parameters")
	}
	if tps == nil {
		return nil
	}
	var out []*Node
	for i := 0; i < int(tps.NamedChildCount()); i++ {
		c := tps.NamedChild(i)
		if c.Type() == "type_parameter" {
			out = append(out, newNode(c, n.src))
		}
	}
	return out
}

// Heritage returns the extends/implements entries of an interface or class.
func (n *Node) Heritage() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	switch n.n.Type() {
	case "interface_declaration":
		clause := childOfType(n.n, "extends_type_clause", "extends_clause")
		if clause != nil {
			out = append(out, n.typeList(clause)...)
		}
	case "class_declaration", "abstract_class_declaration":
		h := childOfType(n.n, "class_heritage")
		if h == nil {
			return nil
		}
		for i := 0; i < int(h.NamedChildCount()); i++ {
			clause := h.NamedChild(i)
			switch clause.Type() {
			case "extends_clause":
				out = append(out, n.extendsEntries(clause)...)
			case "implements_clause":
				out = append(out, n.typeList(clause)...)
			}
		}
	}
	return out
}

// extendsEntries pairs every value expression of a class extends clause
// with the type arguments that follow it.
func (n *Node) extendsEntries(clause *sitter.Node) []*Node {
	var out []*Node
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		c := clause.NamedChild(i)
		if c.Type() == "type_arguments" {
			if len(out) > 0 {
				out[len(out)-1].typeArgs = c
			}
			continue
		}
		out = append(out, &Node{n: c, src: n.src, kind: KindExpressionWithTypeArguments})
	}
	return out
}

// Members returns the members of an interface, class or type literal body.
func (n *Node) Members() []*Node {
	if n == nil {
		return nil
	}
	body := n.n
	if t := n.n.Type(); t != "object_type" && t != "interface_body" && t != "class_body" {
		body = n.n.ChildByFieldName("body")
		if body == nil {
			body = childOfType(n.n, "interface_body", "object_type", "class_body")
		}
	}
	if body == nil {
		return nil
	}
	var out []*Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		switch c.Type() {
		case "comment", "decorator", "class_static_block":
			continue
		}
		out = append(out, newNode(c, n.src))
	}
	return out
}

// Parameters returns the formal parameters, skipping a leading `this` parameter.
func (n *Node) Parameters() []*Node {
	if n == nil {
		return nil
	}
	fp := n.n.ChildByFieldName("parameters")
	if fp == nil {
		fp = childOfType(n.n, "formal_parameters")
	}
	if fp == nil {
		return nil
	}
	var out []*Node
	for i := 0; i < int(fp.NamedChildCount()); i++ {
		c := fp.NamedChild(i)
		if c.Type() != "required_parameter" && c.Type() != "optional_parameter" {
			continue
		}
		if p := parameterPattern(c); p != nil && p.Type() == "this" {
			continue
		}
		out = append(out, newNode(c, n.src))
	}
	return out
}

// IsOptional reports a `?` marker on a parameter, property or method.
func (n *Node) IsOptional() bool {
	if n == nil {
		return false
	}
	return n.n.Type() == "optional_parameter" || hasChildType(n.n, "?")
}

// IsRest reports a rest parameter (...args).
func (n *Node) IsRest() bool {
	if n == nil {
		return false
	}
	p := parameterPattern(n.n)
	return p != nil && p.Type() == "rest_pattern"
}

// ReturnType returns the declared return type of a signature or function type.
func (n *Node) ReturnType() *Node {
	if n == nil {
		return nil
	}
	if rt := n.n.ChildByFieldName("return_type"); rt != nil {
		return n.typeNode(rt)
	}
	if n.n.Type() == "construct_signature" {
		return n.TypeAnnotation()
	}
	seenParams := false
	for i := 0; i < int(n.n.ChildCount()); i++ {
		c := n.n.Child(i)
		if c.Type() == "formal_parameters" {
			seenParams = true
			continue
		}
		if seenParams && isAnnotation(c.Type()) {
			return n.typeNode(c)
		}
	}
	return nil
}

// TypeAnnotation returns the annotated type of a parameter, property,
// index signature or variable declarator.
func (n *Node) TypeAnnotation() *Node {
	if n == nil {
		return nil
	}
	if t := n.n.ChildByFieldName("type"); t != nil {
		return n.typeNode(t)
	}
	if c := childOfType(n.n, "type_annotation"); c != nil {
		return n.typeNode(c)
	}
	return nil
}

// AliasedType returns the right-hand side of a type alias.
func (n *Node) AliasedType() *Node {
	if n == nil {
		return nil
	}
	if v := n.n.ChildByFieldName("value"); v != nil {
		return n.typeNode(v)
	}
	seenEq := false
	for i := 0; i < int(n.n.ChildCount()); i++ {
		c := n.n.Child(i)
		if c.Type() == "=" {
			seenEq = true
			continue
		}
		if seenEq && c.IsNamed() {
			return n.typeNode(c)
		}
	}
	return nil
}

// IndexParameter returns the key name and key type of an index signature.
func (n *Node) IndexParameter() (string, *Node) {
	if n == nil {
		return "", nil
	}
	var name string
	var typ *sitter.Node
	if f := n.n.ChildByFieldName("name"); f != nil {
		name = f.Content(n.src)
	}
	if f := n.n.ChildByFieldName("index_type"); f != nil {
		typ = f
	}
	inBracket, afterColon := false, false
	for i := 0; i < int(n.n.ChildCount()) && (name == "" || typ == nil); i++ {
		c := n.n.Child(i)
		switch {
		case c.Type() == "[":
			inBracket = true
		case c.Type() == "]":
			i = int(n.n.ChildCount())
		case inBracket && c.Type() == ":":
			afterColon = true
		case inBracket && !afterColon && c.IsNamed() && name == "":
			name = c.Content(n.src)
		case afterColon && c.IsNamed() && typ == nil:
			typ = c
		}
	}
	return name, n.typeNode(typ)
}

// ElementType returns the element type of an array type.
func (n *Node) ElementType() *Node {
	if n == nil {
		return nil
	}
	return n.typeNode(firstNamed(n.n))
}

// Alternatives returns the flattened alternatives of a union type.
func (n *Node) Alternatives() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	var walk func(u *sitter.Node)
	walk = func(u *sitter.Node) {
		for i := 0; i < int(u.NamedChildCount()); i++ {
			c := u.NamedChild(i)
			if c.Type() == "union_type" {
				walk(c)
				continue
			}
			if c.Type() == "comment" {
				continue
			}
			out = append(out, n.typeNode(c))
		}
	}
	walk(n.n)
	return out
}

// Elements returns the element types of a tuple type.
func (n *Node) Elements() []*Node {
	if n == nil {
		return nil
	}
	return n.typeList(n.n)
}

// Literal returns the literal inside a literal type.
func (n *Node) Literal() *Node {
	if n == nil {
		return nil
	}
	return newNode(firstNamed(n.n), n.src)
}

// Statements returns the statements of a source file or module body, with
// declare/export wrappers unwrapped and comments dropped.
func (n *Node) Statements() []*Node {
	if n == nil {
		return nil
	}
	var block *sitter.Node
	switch n.n.Type() {
	case "program":
		block = n.n
	case "module", "internal_module":
		block = n.n.ChildByFieldName("body")
		if block == nil {
			block = childOfType(n.n, "statement_block")
		}
	case "ambient_declaration":
		block = childOfType(n.n, "statement_block")
	}
	if block == nil {
		return nil
	}
	var out []*Node
	for i := 0; i < int(block.NamedChildCount()); i++ {
		c := unwrap(block.NamedChild(i), n.src, nil)
		if c == nil || c.Kind() == KindComment {
			continue
		}
		out = append(out, c)
	}
	return out
}

// HasBody reports whether a module declaration has a block.
func (n *Node) HasBody() bool {
	if n == nil {
		return false
	}
	return n.n.ChildByFieldName("body") != nil || childOfType(n.n, "statement_block") != nil
}

// Declarators returns the bindings of a variable statement.
func (n *Node) Declarators() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for i := 0; i < int(n.n.NamedChildCount()); i++ {
		c := n.n.NamedChild(i)
		if c.Type() == "variable_declarator" {
			out = append(out, newNode(c, n.src))
		}
	}
	return out
}

// EnumMembers returns the members of an enum declaration.
func (n *Node) EnumMembers() []*Node {
	if n == nil {
		return nil
	}
	body := n.n.ChildByFieldName("body")
	if body == nil {
		body = childOfType(n.n, "enum_body")
	}
	if body == nil {
		return nil
	}
	var out []*Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		out = append(out, newNode(c, n.src))
	}
	return out
}

// Initializer returns the value expression of an enum member, or nil.
func (n *Node) Initializer() *Node {
	if n == nil || n.n.Type() != "enum_assignment" {
		return nil
	}
	if v := n.n.ChildByFieldName("value"); v != nil {
		return newNode(v, n.src)
	}
	count := int(n.n.NamedChildCount())
	if count < 2 {
		return nil
	}
	return newNode(n.n.NamedChild(count-1), n.src)
}

// typeNode wraps a type position, looking through annotations and
// modifiers that carry no structure of their own.
func (n *Node) typeNode(t *sitter.Node) *Node {
	for t != nil {
		switch t.Type() {
		case "type_annotation", "omitting_type_annotation", "adding_type_annotation",
			"opting_type_annotation", "readonly_type", "optional_type", "rest_type",
			"type_predicate_annotation", "asserts_annotation":
			t = firstNamed(t)
		case "tuple_parameter", "optional_tuple_parameter":
			if f := t.ChildByFieldName("type"); f != nil {
				t = f
			} else {
				t = childOfType(t, "type_annotation")
			}
		default:
			return newNode(t, n.src)
		}
	}
	return nil
}

func (n *Node) typeList(parent *sitter.Node) []*Node {
	var out []*Node
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		c := parent.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		if t := n.typeNode(c); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// unwrap strips ambient/export wrappers and module expression statements,
// recording the wrapper keywords as modifiers.
func unwrap(sn *sitter.Node, src []byte, mods []string) *Node {
	if sn == nil {
		return nil
	}
	switch sn.Type() {
	case "ambient_declaration":
		if hasChildType(sn, "global") {
			return &Node{n: sn, src: src, mods: withMod(mods, "declare")}
		}
		if inner := firstDeclaration(sn); inner != nil {
			return unwrap(inner, src, withMod(mods, "declare"))
		}
	case "export_statement":
		if decl := sn.ChildByFieldName("declaration"); decl != nil {
			return unwrap(decl, src, withMod(mods, "export"))
		}
		if inner := firstDeclaration(sn); inner != nil {
			return unwrap(inner, src, withMod(mods, "export"))
		}
	case "expression_statement":
		if c := firstNamed(sn); c != nil && (c.Type() == "internal_module" || c.Type() == "module") {
			return unwrap(c, src, mods)
		}
	}
	return &Node{n: sn, src: src, mods: mods}
}

func withMod(mods []string, m string) []string {
	out := make([]string, 0, len(mods)+1)
	out = append(out, mods...)
	return append(out, m)
}

func firstDeclaration(sn *sitter.Node) *sitter.Node {
	for i := 0; i < int(sn.NamedChildCount()); i++ {
		c := sn.NamedChild(i)
		if k, ok := declarationKinds[c.Type()]; ok && k != KindComment && k != KindImportDeclaration {
			return c
		}
		if c.Type() == "ambient_declaration" || c.Type() == "expression_statement" {
			return c
		}
	}
	return nil
}

func classify(sn *sitter.Node, src []byte) Kind {
	t := sn.Type()
	switch t {
	case "program":
		return KindSourceFile
	case "ambient_declaration":
		if hasChildType(sn, "global") {
			return KindModuleDeclaration
		}
		return KindUnknown
	case "export_statement":
		switch {
		case hasChildType(sn, "="):
			return KindExportAssignment
		case hasChildType(sn, "namespace"):
			return KindNamespaceExportDeclaration
		default:
			return KindExportDeclaration
		}
	case "method_signature", "method_definition", "abstract_method_signature":
		if name := sn.ChildByFieldName("name"); name != nil && name.Content(src) == "constructor" {
			return KindConstructor
		}
		if p := sn.Parent(); p != nil && p.Type() == "class_body" {
			return KindMethodDeclaration
		}
		return KindMethodSignature
	case "property_signature":
		return KindPropertySignature
	case "public_field_definition", "field_definition":
		return KindPropertyDeclaration
	case "index_signature":
		return KindIndexSignature
	case "call_signature":
		return KindCallSignature
	case "construct_signature":
		return KindConstructSignature
	case "required_parameter", "optional_parameter":
		return KindParameter
	case "type_parameter":
		return KindTypeParameter
	case "variable_declarator":
		return KindVariableDeclaration
	case "enum_assignment":
		return KindEnumMember
	case "predefined_type":
		if k, ok := keywordKinds[strings.TrimSpace(sn.Content(src))]; ok {
			return k
		}
		return KindUnknown
	case "literal_type":
		if inner := firstNamed(sn); inner != nil {
			switch inner.Type() {
			case "null":
				return KindNullKeyword
			case "undefined":
				return KindUndefinedKeyword
			}
		}
		return KindLiteralType
	case "object_type":
		if isMappedObject(sn) {
			return KindMappedType
		}
		return KindTypeLiteral
	case "type_identifier":
		if sn.Content(src) == "undefined" {
			return KindUndefinedKeyword
		}
		return KindTypeReference
	case "property_identifier", "identifier":
		if p := sn.Parent(); p != nil && p.Type() == "enum_body" {
			return KindEnumMember
		}
		return KindIdentifier
	case "string":
		if p := sn.Parent(); p != nil && p.Type() == "enum_body" {
			return KindEnumMember
		}
		return KindStringLiteral
	case "number":
		if p := sn.Parent(); p != nil && p.Type() == "enum_body" {
			return KindEnumMember
		}
		return KindNumericLiteral
	case "unary_expression":
		return KindPrefixUnaryExpression
	}
	if k, ok := declarationKinds[t]; ok {
		return k
	}
	if k, ok := typeKinds[t]; ok {
		return k
	}
	return KindUnknown
}

// isMappedObject reports `{ [K in T]: U }`.
func isMappedObject(sn *sitter.Node) bool {
	if sn.NamedChildCount() != 1 {
		return false
	}
	c := sn.NamedChild(0)
	return c.Type() == "index_signature" && childOfType(c, "mapped_type_clause") != nil
}

func isAnnotation(t string) bool {
	switch t {
	case "type_annotation", "type_predicate_annotation", "asserts_annotation":
		return true
	}
	return false
}

func parameterPattern(sn *sitter.Node) *sitter.Node {
	if p := sn.ChildByFieldName("pattern"); p != nil {
		return p
	}
	return childOfType(sn, "identifier", "rest_pattern", "this", "object_pattern", "array_pattern")
}

func firstNamed(sn *sitter.Node) *sitter.Node {
	if sn == nil || sn.NamedChildCount() == 0 {
		return nil
	}
	return sn.NamedChild(0)
}

func childOfType(sn *sitter.Node, types ...string) *sitter.Node {
	for i := 0; i < int(sn.ChildCount()); i++ {
		c := sn.Child(i)
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

func hasChildType(sn *sitter.Node, t string) bool {
	return childOfType(sn, t) != nil
}
