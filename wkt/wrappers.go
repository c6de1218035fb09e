package wkt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"

	"github.com/anirudhraja/wirecore/wire"
)

// The wrapper types are transparent envelopes around a single scalar: their
// JSON form is the bare scalar itself. BytesValue text-encodes through
// base64; the integer wrappers additionally accept string-form numbers on
// input, as the canonical mapping allows.

// BoolValue wraps a bool
type BoolValue struct {
	Value bool
}

// MarshalJSON emits the bare JSON boolean
func (w BoolValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Value)
}

// UnmarshalJSON reads a bare JSON boolean
func (w *BoolValue) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: expected JSON boolean", ErrMalformed)
	}
	w.Value = v
	return nil
}

// StringValue wraps a string
type StringValue struct {
	Value string
}

// MarshalJSON emits the bare JSON string
func (w StringValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Value)
}

// UnmarshalJSON reads a bare JSON string
func (w *StringValue) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: expected JSON string", ErrMalformed)
	}
	w.Value = v
	return nil
}

// BytesValue wraps a byte slice; JSON form is base64 text
type BytesValue struct {
	Value []byte
}

// MarshalJSON emits the standard base64 encoding as a JSON string
func (w BytesValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(w.Value))
}

// UnmarshalJSON reads base64 text, accepting both padded and unpadded forms
func (w *BytesValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: expected base64 JSON string", ErrMalformed)
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("%w: invalid base64 text", ErrMalformed)
		}
	}
	w.Value = data
	return nil
}

// DoubleValue wraps a float64
type DoubleValue struct {
	Value float64
}

// MarshalJSON emits a bare number, or the canonical string spelling for
// non-finite values
func (w DoubleValue) MarshalJSON() ([]byte, error) {
	return marshalFloat(w.Value)
}

// UnmarshalJSON reads a number or a non-finite string spelling
func (w *DoubleValue) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSONValue(b)
	if err != nil {
		return err
	}
	v, err := coerceToFloat64(raw)
	if err != nil {
		return err
	}
	w.Value = v
	return nil
}

// FloatValue wraps a float32
type FloatValue struct {
	Value float32
}

// MarshalJSON emits a bare number, or the canonical string spelling for
// non-finite values
func (w FloatValue) MarshalJSON() ([]byte, error) {
	return marshalFloat(float64(w.Value))
}

// UnmarshalJSON reads a number or a non-finite string spelling
func (w *FloatValue) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSONValue(b)
	if err != nil {
		return err
	}
	v, err := coerceToFloat64(raw)
	if err != nil {
		return err
	}
	w.Value = float32(v)
	return nil
}

func marshalFloat(f float64) ([]byte, error) {
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(f)
}

// Int32Value wraps an int32
type Int32Value struct {
	Value int32
}

// MarshalJSON emits a bare number
func (w Int32Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Value)
}

// UnmarshalJSON reads a number or numeric string, reduced into int32 wire
// semantics
func (w *Int32Value) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSONValue(b)
	if err != nil {
		return err
	}
	v, err := coerceToInt64(raw)
	if err != nil {
		return err
	}
	w.Value = wire.LimitInt32(v)
	return nil
}

// Int64Value wraps an int64
type Int64Value struct {
	Value int64
}

// MarshalJSON emits a bare number
func (w Int64Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Value)
}

// UnmarshalJSON reads a number or numeric string
func (w *Int64Value) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSONValue(b)
	if err != nil {
		return err
	}
	v, err := coerceToInt64(raw)
	if err != nil {
		return err
	}
	w.Value = v
	return nil
}

// UInt32Value wraps a uint32
type UInt32Value struct {
	Value uint32
}

// MarshalJSON emits a bare number
func (w UInt32Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Value)
}

// UnmarshalJSON reads a number or numeric string, reduced modulo 2^32
func (w *UInt32Value) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSONValue(b)
	if err != nil {
		return err
	}
	v, err := coerceToUint64(raw)
	if err != nil {
		return err
	}
	w.Value = uint32(v)
	return nil
}

// UInt64Value wraps a uint64
type UInt64Value struct {
	Value uint64
}

// MarshalJSON emits a bare number
func (w UInt64Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Value)
}

// UnmarshalJSON reads a number or numeric string
func (w *UInt64Value) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSONValue(b)
	if err != nil {
		return err
	}
	v, err := coerceToUint64(raw)
	if err != nil {
		return err
	}
	w.Value = v
	return nil
}
