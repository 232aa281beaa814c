package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates the variants of ValueType.
type Kind int

const (
	KindBoolean Kind = iota
	KindInteger
	KindFloat
	KindString
	KindBytes
	KindArray
	KindObject
	KindFlow
	KindAny
)

var kindNames = map[Kind]string{
	KindBoolean: "boolean",
	KindInteger: "integer",
	KindFloat:   "float",
	KindString:  "string",
	KindBytes:   "bytes",
	KindArray:   "array",
	KindObject:  "object",
	KindFlow:    "flow",
	KindAny:     "any",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ValueType describes the type of a value flowing through a port.
// Array carries an element type, Object carries named fields, and the
// remaining kinds are leaves.
type ValueType struct {
	Kind   Kind
	Elem   *ValueType
	Fields map[string]ValueType
}

// Leaf value types, usable directly in port declarations.
var (
	Boolean = ValueType{Kind: KindBoolean}
	Integer = ValueType{Kind: KindInteger}
	Float   = ValueType{Kind: KindFloat}
	String  = ValueType{Kind: KindString}
	Bytes   = ValueType{Kind: KindBytes}
	Flow    = ValueType{Kind: KindFlow}
	Any     = ValueType{Kind: KindAny}
)

// ArrayOf returns the array type with the given element type.
func ArrayOf(elem ValueType) ValueType {
	return ValueType{Kind: KindArray, Elem: &elem}
}

// ObjectOf returns the object type with the given named fields.
func ObjectOf(fields map[string]ValueType) ValueType {
	return ValueType{Kind: KindObject, Fields: fields}
}

// Compatible reports whether a value of type a may flow into a port of
// type b. Any is compatible with everything in both directions, Flow only
// with Flow, primitives only with themselves. Arrays are compatible when
// their element types are, and objects when they have the same field
// count and every field of a has a compatible field of the same name in b.
func Compatible(a, b ValueType) bool {
	if a.Kind == KindAny || b.Kind == KindAny {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindArray:
		if a.Elem == nil || b.Elem == nil {
			return a.Elem == b.Elem
		}
		return Compatible(*a.Elem, *b.Elem)
	case KindObject:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for name, at := range a.Fields {
			bt, ok := b.Fields[name]
			if !ok || !Compatible(at, bt) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders the type in the editor's notation, e.g. "array<integer>".
func (t ValueType) String() string {
	switch t.Kind {
	case KindArray:
		if t.Elem == nil {
			return "array<any>"
		}
		return "array<" + t.Elem.String() + ">"
	case KindObject:
		names := make([]string, 0, len(t.Fields))
		for name := range t.Fields {
			names = append(names, name)
		}
		return "object{" + strings.Join(names, ",") + "}"
	default:
		return t.Kind.String()
	}
}

// typeJSON is the wire form used by the editor: a leaf is a bare string,
// arrays and objects are nested structures.
type typeJSON struct {
	Kind   string               `json:"kind"`
	Elem   *ValueType           `json:"elem,omitempty"`
	Fields map[string]ValueType `json:"fields,omitempty"`
}

// MarshalJSON encodes leaves as bare strings and composites as objects.
func (t ValueType) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case KindArray, KindObject:
		return json.Marshal(typeJSON{Kind: t.Kind.String(), Elem: t.Elem, Fields: t.Fields})
	default:
		return json.Marshal(t.Kind.String())
	}
}

// UnmarshalJSON accepts both the bare-string and the object encoding.
func (t *ValueType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		kind, ok := kindByName(name)
		if !ok {
			return fmt.Errorf("unknown value type %q", name)
		}
		*t = ValueType{Kind: kind}
		return nil
	}
	var tj typeJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return err
	}
	kind, ok := kindByName(tj.Kind)
	if !ok {
		return fmt.Errorf("unknown value type %q", tj.Kind)
	}
	*t = ValueType{Kind: kind, Elem: tj.Elem, Fields: tj.Fields}
	return nil
}

func kindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}
