package ir

// FsType is a sealed interface over every IR variant.
type FsType interface {
	fsType() // Sealed - only the variants below implement it
}

// Interface represents an interface or class shape.
// IsStatic is only ever set on holders synthesized by static-member extraction.
type Interface struct {
	Name           string   `json:"name"`
	IsStatic       bool     `json:"is_static"`
	TypeParameters []FsType `json:"type_parameters"`
	Inherits       []FsType `json:"inherits"`
	Members        []FsType `json:"members"`
}

func (Interface) fsType() {}

// EnumCaseType classifies the literal carried by an enum case.
type EnumCaseType int

const (
	EnumCaseNumeric EnumCaseType = iota
	EnumCaseString
	EnumCaseUnknown
)

// String returns the lowercase name used in dumps and logs.
func (t EnumCaseType) String() string {
	switch t {
	case EnumCaseNumeric:
		return "numeric"
	case EnumCaseString:
		return "string"
	default:
		return "unknown"
	}
}

// EnumCase is one member of an Enum. Value is nil when the source had no
// literal initializer (or the initializer was not a literal).
type EnumCase struct {
	Name  string       `json:"name"`
	Type  EnumCaseType `json:"type"`
	Value *string      `json:"value,omitempty"`
}

// Enum represents an enumeration with ordered cases.
type Enum struct {
	Name  string     `json:"name"`
	Cases []EnumCase `json:"cases"`
}

func (Enum) fsType() {}

// Type returns the weakest case kind: unknown beats string beats numeric.
func (e Enum) Type() EnumCaseType {
	kind := EnumCaseNumeric
	for _, c := range e.Cases {
		switch c.Type {
		case EnumCaseUnknown:
			return EnumCaseUnknown
		case EnumCaseString:
			kind = EnumCaseString
		}
	}
	return kind
}

// Param represents a function parameter.
type Param struct {
	Name       string `json:"name"`
	Optional   bool   `json:"optional"`
	ParamArray bool   `json:"param_array"`
	Type       FsType `json:"type"`
}

func (Param) fsType() {}

// Property represents a field, an index signature (Index != nil) or an accessor.
type Property struct {
	Name       string `json:"name"`
	Index      *Param `json:"index,omitempty"`
	Option     bool   `json:"option"`
	IsStatic   bool   `json:"is_static"`
	IsReadonly bool   `json:"is_readonly"`
	Type       FsType `json:"type"`
	Emit       string `json:"emit,omitempty"`
}

func (Property) fsType() {}

// Function represents a method, constructor, call or construct signature,
// a free function, or (with an empty Name) a function type.
type Function struct {
	Name           string   `json:"name,omitempty"`
	IsStatic       bool     `json:"is_static"`
	TypeParameters []FsType `json:"type_parameters"`
	Params         []Param  `json:"params"`
	ReturnType     FsType   `json:"return_type"`
	Emit           string   `json:"emit,omitempty"`
}

func (Function) fsType() {}

// Array is a homogeneous sequence type.
type Array struct {
	Type FsType `json:"type"`
}

func (Array) fsType() {}

// Union is a sum of alternatives. Option records that the value may be
// absent (null or undefined were among the source alternatives).
type Union struct {
	Option bool     `json:"option"`
	Types  []FsType `json:"types"`
}

func (Union) fsType() {}

// Tuple is a fixed-length heterogeneous sequence.
type Tuple struct {
	Types []FsType `json:"types"`
}

func (Tuple) fsType() {}

// Generic is a named type applied to type arguments.
type Generic struct {
	Type           FsType   `json:"type"`
	TypeParameters []FsType `json:"type_parameters"`
}

func (Generic) fsType() {}

// Alias is a named synonym for another type.
type Alias struct {
	Name           string   `json:"name"`
	Type           FsType   `json:"type"`
	TypeParameters []FsType `json:"type_parameters"`
}

func (Alias) fsType() {}

// Variable is an ambient value declaration.
type Variable struct {
	Name       string `json:"name"`
	HasDeclare bool   `json:"has_declare"`
	Type       FsType `json:"type"`
}

func (Variable) fsType() {}

// Import binds a value living in an external namespace.
type Import struct {
	Namespace []string `json:"namespace"`
	Variable  string   `json:"variable"`
	Type      string   `json:"type"`
}

func (Import) fsType() {}

// Module is a namespace. Name is empty only for a file's global module.
type Module struct {
	Name  string   `json:"name"`
	Types []FsType `json:"types"`
}

func (Module) fsType() {}

// File is a whole translation unit.
type File struct {
	Name    string   `json:"name"`
	Opens   []string `json:"opens"`
	Modules []Module `json:"modules"`
}

func (File) fsType() {}

// Mapped is an opaque named type: a primitive, a type parameter or a
// reference to another declaration by name.
type Mapped string

func (Mapped) fsType() {}

// StringLiteral is a literal string used as a type.
type StringLiteral string

func (StringLiteral) fsType() {}

// This is the self-referential return type.
type This struct{}

func (This) fsType() {}

// TODO marks something that could not be represented.
type TODO struct{}

func (TODO) fsType() {}

// None marks an absent node.
type None struct{}

func (None) fsType() {}

// Opaque primitive names produced by lowering.
const (
	TypeObj    Mapped = "obj"
	TypeString Mapped = "string"
	TypeFloat  Mapped = "float"
	TypeBool   Mapped = "bool"
	TypeUnit   Mapped = "unit"
)
