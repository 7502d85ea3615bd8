package ir

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces a deterministic JSON dump of an IR tree.
// Every node becomes an object with a "kind" discriminator; object keys are
// sorted, strings are NFC normalized and HTML characters are not escaped.
// Used for the `ir` CLI command and for comparing trees in tests.
func MarshalCanonical(t FsType) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // <, >, & appear in rendered types and must stay readable
	if err := enc.Encode(toCanonical(t)); err != nil {
		return nil, fmt.Errorf("marshaling IR: %w", err)
	}
	// json.Encoder adds trailing newline, remove it
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalIndent is MarshalCanonical with two-space indentation.
func MarshalIndent(t FsType) ([]byte, error) {
	data, err := MarshalCanonical(t)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, fmt.Errorf("indenting IR: %w", err)
	}
	return out.Bytes(), nil
}

func toCanonical(t FsType) any {
	switch v := t.(type) {
	case nil:
		return nil
	case Interface:
		return map[string]any{
			"kind":            "Interface",
			"name":            str(v.Name),
			"is_static":       v.IsStatic,
			"type_parameters": toCanonicalList(v.TypeParameters),
			"inherits":        toCanonicalList(v.Inherits),
			"members":         toCanonicalList(v.Members),
		}
	case Enum:
		cases := make([]any, len(v.Cases))
		for i, c := range v.Cases {
			m := map[string]any{"name": str(c.Name), "type": c.Type.String()}
			if c.Value != nil {
				m["value"] = str(*c.Value)
			}
			cases[i] = m
		}
		return map[string]any{
			"kind":  "Enum",
			"name":  str(v.Name),
			"type":  v.Type().String(),
			"cases": cases,
		}
	case Param:
		return map[string]any{
			"kind":        "Param",
			"name":        str(v.Name),
			"optional":    v.Optional,
			"param_array": v.ParamArray,
			"type":        toCanonical(v.Type),
		}
	case Property:
		m := map[string]any{
			"kind":        "Property",
			"name":        str(v.Name),
			"option":      v.Option,
			"is_static":   v.IsStatic,
			"is_readonly": v.IsReadonly,
			"type":        toCanonical(v.Type),
		}
		if v.Index != nil {
			m["index"] = toCanonical(*v.Index)
		}
		if v.Emit != "" {
			m["emit"] = str(v.Emit)
		}
		return m
	case Function:
		params := make([]any, len(v.Params))
		for i, p := range v.Params {
			params[i] = toCanonical(p)
		}
		m := map[string]any{
			"kind":            "Function",
			"is_static":       v.IsStatic,
			"type_parameters": toCanonicalList(v.TypeParameters),
			"params":          params,
			"return_type":     toCanonical(v.ReturnType),
		}
		if v.Name != "" {
			m["name"] = str(v.Name)
		}
		if v.Emit != "" {
			m["emit"] = str(v.Emit)
		}
		return m
	case Array:
		return map[string]any{"kind": "Array", "type": toCanonical(v.Type)}
	case Union:
		return map[string]any{"kind": "Union", "option": v.Option, "types": toCanonicalList(v.Types)}
	case Tuple:
		return map[string]any{"kind": "Tuple", "types": toCanonicalList(v.Types)}
	case Generic:
		return map[string]any{
			"kind":            "Generic",
			"type":            toCanonical(v.Type),
			"type_parameters": toCanonicalList(v.TypeParameters),
		}
	case Alias:
		return map[string]any{
			"kind":            "Alias",
			"name":            str(v.Name),
			"type":            toCanonical(v.Type),
			"type_parameters": toCanonicalList(v.TypeParameters),
		}
	case Variable:
		return map[string]any{
			"kind":        "Variable",
			"name":        str(v.Name),
			"has_declare": v.HasDeclare,
			"type":        toCanonical(v.Type),
		}
	case Import:
		ns := make([]any, len(v.Namespace))
		for i, s := range v.Namespace {
			ns[i] = str(s)
		}
		return map[string]any{
			"kind":      "Import",
			"namespace": ns,
			"variable":  str(v.Variable),
			"type":      str(v.Type),
		}
	case Module:
		return map[string]any{"kind": "Module", "name": str(v.Name), "types": toCanonicalList(v.Types)}
	case File:
		opens := make([]any, len(v.Opens))
		for i, o := range v.Opens {
			opens[i] = str(o)
		}
		modules := make([]any, len(v.Modules))
		for i, m := range v.Modules {
			modules[i] = toCanonical(m)
		}
		return map[string]any{"kind": "File", "name": str(v.Name), "opens": opens, "modules": modules}
	case Mapped:
		return map[string]any{"kind": "Mapped", "name": str(string(v))}
	case StringLiteral:
		return map[string]any{"kind": "StringLiteral", "value": str(string(v))}
	case This:
		return map[string]any{"kind": "This"}
	case TODO:
		return map[string]any{"kind": "TODO"}
	case None:
		return map[string]any{"kind": "None"}
	default:
		return map[string]any{"kind": fmt.Sprintf("%T", t)}
	}
}

func toCanonicalList(ts []FsType) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = toCanonical(t)
	}
	return out
}

// str NFC normalizes at the serialization boundary.
func str(s string) string {
	return norm.NFC.String(s)
}
