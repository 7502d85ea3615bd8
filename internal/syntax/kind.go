package syntax

// Kind is the parser-independent node vocabulary consumed by lowering.
// Names follow the TypeScript compiler's SyntaxKind spelling.
type Kind string

// Declarations and statements.
const (
	KindUnknown                    Kind = "Unknown"
	KindSourceFile                 Kind = "SourceFile"
	KindInterfaceDeclaration       Kind = "InterfaceDeclaration"
	KindClassDeclaration           Kind = "ClassDeclaration"
	KindEnumDeclaration            Kind = "EnumDeclaration"
	KindEnumMember                 Kind = "EnumMember"
	KindTypeAliasDeclaration       Kind = "TypeAliasDeclaration"
	KindVariableStatement          Kind = "VariableStatement"
	KindVariableDeclaration        Kind = "VariableDeclaration"
	KindFunctionDeclaration        Kind = "FunctionDeclaration"
	KindModuleDeclaration          Kind = "ModuleDeclaration"
	KindImportDeclaration          Kind = "ImportDeclaration"
	KindExportDeclaration          Kind = "ExportDeclaration"
	KindExportAssignment           Kind = "ExportAssignment"
	KindNamespaceExportDeclaration Kind = "NamespaceExportDeclaration"
	KindComment                    Kind = "Comment"
)

// Members.
const (
	KindMethodSignature     Kind = "MethodSignature"
	KindMethodDeclaration   Kind = "MethodDeclaration"
	KindPropertySignature   Kind = "PropertySignature"
	KindPropertyDeclaration Kind = "PropertyDeclaration"
	KindConstructor         Kind = "Constructor"
	KindIndexSignature      Kind = "IndexSignature"
	KindCallSignature       Kind = "CallSignature"
	KindConstructSignature  Kind = "ConstructSignature"
	KindParameter           Kind = "Parameter"
	KindTypeParameter       Kind = "TypeParameter"
)

// Keyword types.
const (
	KindAnyKeyword       Kind = "AnyKeyword"
	KindNumberKeyword    Kind = "NumberKeyword"
	KindStringKeyword    Kind = "StringKeyword"
	KindBooleanKeyword   Kind = "BooleanKeyword"
	KindVoidKeyword      Kind = "VoidKeyword"
	KindObjectKeyword    Kind = "ObjectKeyword"
	KindSymbolKeyword    Kind = "SymbolKeyword"
	KindNeverKeyword     Kind = "NeverKeyword"
	KindUnknownKeyword   Kind = "UnknownKeyword"
	KindBigIntKeyword    Kind = "BigIntKeyword"
	KindUndefinedKeyword Kind = "UndefinedKeyword"
	KindNullKeyword      Kind = "NullKeyword"
)

// Type nodes.
const (
	KindTypeReference               Kind = "TypeReference"
	KindArrayType                   Kind = "ArrayType"
	KindUnionType                   Kind = "UnionType"
	KindTupleType                   Kind = "TupleType"
	KindFunctionType                Kind = "FunctionType"
	KindConstructorType             Kind = "ConstructorType"
	KindLiteralType                 Kind = "LiteralType"
	KindThisType                    Kind = "ThisType"
	KindTypeLiteral                 Kind = "TypeLiteral"
	KindIntersectionType            Kind = "IntersectionType"
	KindMappedType                  Kind = "MappedType"
	KindIndexedAccessType           Kind = "IndexedAccessType"
	KindTypeQuery                   Kind = "TypeQuery"
	KindTypeOperator                Kind = "TypeOperator"
	KindConditionalType             Kind = "ConditionalType"
	KindTypePredicate               Kind = "TypePredicate"
	KindTemplateLiteralType         Kind = "TemplateLiteralType"
	KindExpressionWithTypeArguments Kind = "ExpressionWithTypeArguments"
	KindParenthesizedType           Kind = "ParenthesizedType"
)

// Expressions that can appear as enum initializers.
const (
	KindNumericLiteral        Kind = "NumericLiteral"
	KindStringLiteral         Kind = "StringLiteral"
	KindPrefixUnaryExpression Kind = "PrefixUnaryExpression"
	KindIdentifier            Kind = "Identifier"
)

// IsKeywordType reports whether k is one of the keyword type kinds.
func (k Kind) IsKeywordType() bool {
	switch k {
	case KindAnyKeyword, KindNumberKeyword, KindStringKeyword, KindBooleanKeyword,
		KindVoidKeyword, KindObjectKeyword, KindSymbolKeyword, KindNeverKeyword,
		KindUnknownKeyword, KindBigIntKeyword, KindUndefinedKeyword, KindNullKeyword:
		return true
	}
	return false
}

// IsNullish reports whether k denotes null or undefined.
func (k Kind) IsNullish() bool {
	return k == KindNullKeyword || k == KindUndefinedKeyword
}

// keywordKinds maps predefined type text to its keyword kind.
var keywordKinds = map[string]Kind{
	"any":       KindAnyKeyword,
	"number":    KindNumberKeyword,
	"string":    KindStringKeyword,
	"boolean":   KindBooleanKeyword,
	"void":      KindVoidKeyword,
	"object":    KindObjectKeyword,
	"symbol":    KindSymbolKeyword,
	"never":     KindNeverKeyword,
	"unknown":   KindUnknownKeyword,
	"bigint":    KindBigIntKeyword,
	"undefined": KindUndefinedKeyword,
	"null":      KindNullKeyword,
}

// declarationKinds maps tree-sitter statement node types to kinds.
var declarationKinds = map[string]Kind{
	"interface_declaration":      KindInterfaceDeclaration,
	"class_declaration":          KindClassDeclaration,
	"abstract_class_declaration": KindClassDeclaration,
	"enum_declaration":           KindEnumDeclaration,
	"type_alias_declaration":     KindTypeAliasDeclaration,
	"lexical_declaration":        KindVariableStatement,
	"variable_declaration":       KindVariableStatement,
	"function_signature":         KindFunctionDeclaration,
	"function_declaration":       KindFunctionDeclaration,
	"module":                     KindModuleDeclaration,
	"internal_module":            KindModuleDeclaration,
	"import_statement":           KindImportDeclaration,
	"import_alias":               KindImportDeclaration,
	"comment":                    KindComment,
}

// typeKinds maps tree-sitter type node types to kinds.
var typeKinds = map[string]Kind{
	"type_identifier":        KindTypeReference,
	"nested_type_identifier": KindTypeReference,
	"generic_type":           KindTypeReference,
	"array_type":             KindArrayType,
	"union_type":             KindUnionType,
	"tuple_type":             KindTupleType,
	"function_type":          KindFunctionType,
	"constructor_type":       KindConstructorType,
	"this_type":              KindThisType,
	"this":                   KindThisType,
	"intersection_type":      KindIntersectionType,
	"lookup_type":            KindIndexedAccessType,
	"type_query":             KindTypeQuery,
	"index_type_query":       KindTypeOperator,
	"conditional_type":       KindConditionalType,
	"type_predicate":         KindTypePredicate,
	"asserts":                KindTypePredicate,
	"template_literal_type":  KindTemplateLiteralType,
	"parenthesized_type":     KindParenthesizedType,
	"infer_type":             KindTypeOperator,
}
