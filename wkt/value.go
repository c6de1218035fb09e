package wkt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// NullValue is the singleton null sentinel enum.
type NullValue int32

// NullValueNull is the only NullValue.
const NullValueNull NullValue = 0

// MarshalJSON emits JSON null
func (NullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// UnmarshalJSON accepts JSON null or the enum name
func (n *NullValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" || string(b) == `"NULL_VALUE"` {
		*n = NullValueNull
		return nil
	}
	return fmt.Errorf("%w: expected null, got %s", ErrMalformed, b)
}

// ValueKind discriminates the active variant of a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
	KindBool
	KindStruct
	KindList
)

// Value is a recursive tagged union over the JSON value shapes. Exactly one
// variant field is meaningful, selected by Kind; the recursive variants are
// heap-indirected so the type stays finite-sized.
type Value struct {
	Kind   ValueKind
	Num    float64
	Str    string
	Bool   bool
	Struct *Struct
	List   *ListValue
}

// Struct is a mapping of unique string keys to Values; key order is
// irrelevant.
type Struct struct {
	Fields map[string]*Value
}

// ListValue is an ordered sequence of Values.
type ListValue struct {
	Values []*Value
}

// Constructors

// NewNullValue creates a null Value
func NewNullValue() *Value {
	return &Value{Kind: KindNull}
}

// NewNumberValue creates a number Value
func NewNumberValue(f float64) *Value {
	return &Value{Kind: KindNumber, Num: f}
}

// NewStringValue creates a string Value
func NewStringValue(s string) *Value {
	return &Value{Kind: KindString, Str: s}
}

// NewBoolValue creates a bool Value
func NewBoolValue(b bool) *Value {
	return &Value{Kind: KindBool, Bool: b}
}

// NewStructValue creates a struct Value
func NewStructValue(s *Struct) *Value {
	return &Value{Kind: KindStruct, Struct: s}
}

// NewListValue creates a list Value
func NewListValue(l *ListValue) *Value {
	return &Value{Kind: KindList, List: l}
}

// SERIALIZE DIRECTION

// MarshalJSON unwraps the active variant to its plain JSON shape.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return nil, fmt.Errorf("%w: non-finite number in Value", ErrRange)
		}
		return json.Marshal(v.Num)
	case KindString:
		return json.Marshal(v.Str)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindStruct:
		if v.Struct == nil {
			return []byte("{}"), nil
		}
		return v.Struct.MarshalJSON()
	case KindList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return v.List.MarshalJSON()
	default:
		return nil, fmt.Errorf("%w: unknown value kind %d", ErrMalformed, v.Kind)
	}
}

// MarshalJSON emits a plain JSON object, mapping every stored field through
// the serialize direction of Value.
func (s *Struct) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Fields))
	for key, field := range s.Fields {
		raw, err := field.MarshalJSON()
		if err != nil {
			return nil, wrapWithField(err, key)
		}
		out[key] = raw
	}
	return json.Marshal(out)
}

// MarshalJSON emits a plain JSON array, mapping every element through the
// serialize direction of Value.
func (l *ListValue) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, len(l.Values))
	for i, elem := range l.Values {
		raw, err := elem.MarshalJSON()
		if err != nil {
			return nil, wrapWithField(err, strconv.Itoa(i))
		}
		out[i] = raw
	}
	return json.Marshal(out)
}

// DESERIALIZE DIRECTION

// ValueFromJSON infers the variant from the shape of an already-decoded
// generic JSON value. Convention for empty collections: an empty array is an
// empty ListValue, an empty object an empty Struct.
func ValueFromJSON(x interface{}) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return NewNullValue(), nil
	case bool:
		return NewBoolValue(t), nil
	case float64:
		return NewNumberValue(t), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrMalformed, t.String())
		}
		return NewNumberValue(f), nil
	case string:
		return NewStringValue(t), nil
	case []interface{}:
		l, err := listValueFromJSON(t)
		if err != nil {
			return nil, err
		}
		return NewListValue(l), nil
	case map[string]interface{}:
		s, err := structFromJSON(t)
		if err != nil {
			return nil, err
		}
		return NewStructValue(s), nil
	default:
		return nil, fmt.Errorf("%w: unsupported JSON shape %T", ErrMalformed, x)
	}
}

func structFromJSON(m map[string]interface{}) (*Struct, error) {
	fields := make(map[string]*Value, len(m))
	for key, raw := range m {
		v, err := ValueFromJSON(raw)
		if err != nil {
			return nil, wrapWithField(err, key)
		}
		fields[key] = v
	}
	return &Struct{Fields: fields}, nil
}

func listValueFromJSON(arr []interface{}) (*ListValue, error) {
	values := make([]*Value, len(arr))
	for i, raw := range arr {
		v, err := ValueFromJSON(raw)
		if err != nil {
			return nil, wrapWithField(err, strconv.Itoa(i))
		}
		values[i] = v
	}
	return &ListValue{Values: values}, nil
}

// UnmarshalJSON decodes any JSON value into the matching variant.
func (v *Value) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSONValue(b)
	if err != nil {
		return err
	}
	parsed, err := ValueFromJSON(raw)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// UnmarshalJSON decodes a JSON object, mapping every entry through the
// deserialize direction of Value.
func (s *Struct) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSONValue(b)
	if err != nil {
		return err
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: expected JSON object, got %T", ErrMalformed, raw)
	}
	parsed, err := structFromJSON(m)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// UnmarshalJSON decodes a JSON array, mapping every element through the
// deserialize direction of Value.
func (l *ListValue) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSONValue(b)
	if err != nil {
		return err
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return fmt.Errorf("%w: expected JSON array, got %T", ErrMalformed, raw)
	}
	parsed, err := listValueFromJSON(arr)
	if err != nil {
		return err
	}
	*l = *parsed
	return nil
}

// AsInterface returns the Value as the generic Go shape of its JSON form.
func (v *Value) AsInterface() interface{} {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindString:
		return v.Str
	case KindBool:
		return v.Bool
	case KindStruct:
		return v.Struct.AsMap()
	case KindList:
		if v.List == nil {
			return []interface{}{}
		}
		out := make([]interface{}, len(v.List.Values))
		for i, elem := range v.List.Values {
			out[i] = elem.AsInterface()
		}
		return out
	default:
		return nil
	}
}

// AsMap returns the Struct as a plain map of generic JSON shapes.
func (s *Struct) AsMap() map[string]interface{} {
	if s == nil {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(s.Fields))
	for key, field := range s.Fields {
		out[key] = field.AsInterface()
	}
	return out
}
