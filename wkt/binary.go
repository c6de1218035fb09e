package wkt

import (
	"fmt"
	"sort"

	"github.com/anirudhraja/wirecore/wire"
)

// Binary wire codecs for the well-known types, using the real protobuf field
// layouts. Proto3 semantics: zero-valued fields are omitted on encode (except
// inside the Value oneof, which always writes its active variant), unknown
// fields are skipped on decode, and structural failures abort the whole
// message.

// DURATION / TIMESTAMP

// MarshalBinary encodes the duration as {1: seconds varint, 2: nanos varint}.
func (d Duration) MarshalBinary() ([]byte, error) {
	if err := d.CheckValid(); err != nil {
		return nil, err
	}
	e := wire.NewEncoder()
	appendSecondsNanos(e, d.Seconds, d.Nanos)
	return e.Bytes(), nil
}

// UnmarshalBinary decodes and validates a duration message.
func (d *Duration) UnmarshalBinary(data []byte) error {
	seconds, nanos, err := decodeSecondsNanos(data)
	if err != nil {
		return err
	}
	out := Duration{Seconds: seconds, Nanos: nanos}
	if err := out.CheckValid(); err != nil {
		return err
	}
	*d = out
	return nil
}

// MarshalBinary encodes the timestamp as {1: seconds varint, 2: nanos varint}.
func (t Timestamp) MarshalBinary() ([]byte, error) {
	if err := t.CheckValid(); err != nil {
		return nil, err
	}
	e := wire.NewEncoder()
	appendSecondsNanos(e, t.Seconds, t.Nanos)
	return e.Bytes(), nil
}

// UnmarshalBinary decodes and validates a timestamp message.
func (t *Timestamp) UnmarshalBinary(data []byte) error {
	seconds, nanos, err := decodeSecondsNanos(data)
	if err != nil {
		return err
	}
	out := Timestamp{Seconds: seconds, Nanos: nanos}
	if err := out.CheckValid(); err != nil {
		return err
	}
	*t = out
	return nil
}

func appendSecondsNanos(e *wire.Encoder, seconds int64, nanos int32) {
	if seconds != 0 {
		e.EncodeTag(1, wire.WireVarint)
		e.EncodeInt64(seconds)
	}
	if nanos != 0 {
		e.EncodeTag(2, wire.WireVarint)
		e.EncodeInt64(int64(nanos))
	}
}

func decodeSecondsNanos(data []byte) (int64, int32, error) {
	d := wire.NewDecoder(data)
	var seconds int64
	var nanos int32
	for d.Remaining() > 0 {
		fieldNumber, wireType, err := d.DecodeTag()
		if err != nil {
			return 0, 0, err
		}
		switch {
		case fieldNumber == 1 && wireType == wire.WireVarint:
			v, err := d.DecodeVarint()
			if err != nil {
				return 0, 0, err
			}
			seconds = int64(v)
		case fieldNumber == 2 && wireType == wire.WireVarint:
			v, err := d.DecodeVarint()
			if err != nil {
				return 0, 0, err
			}
			nanos = int32(v)
		default:
			if err := d.SkipField(wireType); err != nil {
				return 0, 0, err
			}
		}
	}
	return seconds, nanos, nil
}

// WRAPPERS

// Each wrapper message is {1: value} with the scalar's natural wire type; a
// zero value encodes as an empty message.

// MarshalBinary encodes the wrapped bool.
func (w BoolValue) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if w.Value {
		e.EncodeTag(1, wire.WireVarint)
		e.EncodeVarint(1)
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes the wrapped bool.
func (w *BoolValue) UnmarshalBinary(data []byte) error {
	v, err := decodeWrapperVarint(data)
	if err != nil {
		return err
	}
	w.Value = v != 0
	return nil
}

// MarshalBinary encodes the wrapped int32.
func (w Int32Value) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if w.Value != 0 {
		e.EncodeTag(1, wire.WireVarint)
		e.EncodeInt64(int64(w.Value))
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes the wrapped int32.
func (w *Int32Value) UnmarshalBinary(data []byte) error {
	v, err := decodeWrapperVarint(data)
	if err != nil {
		return err
	}
	w.Value = int32(v)
	return nil
}

// MarshalBinary encodes the wrapped int64.
func (w Int64Value) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if w.Value != 0 {
		e.EncodeTag(1, wire.WireVarint)
		e.EncodeInt64(w.Value)
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes the wrapped int64.
func (w *Int64Value) UnmarshalBinary(data []byte) error {
	v, err := decodeWrapperVarint(data)
	if err != nil {
		return err
	}
	w.Value = int64(v)
	return nil
}

// MarshalBinary encodes the wrapped uint32.
func (w UInt32Value) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if w.Value != 0 {
		e.EncodeTag(1, wire.WireVarint)
		e.EncodeVarint(uint64(w.Value))
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes the wrapped uint32.
func (w *UInt32Value) UnmarshalBinary(data []byte) error {
	v, err := decodeWrapperVarint(data)
	if err != nil {
		return err
	}
	w.Value = uint32(v)
	return nil
}

// MarshalBinary encodes the wrapped uint64.
func (w UInt64Value) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if w.Value != 0 {
		e.EncodeTag(1, wire.WireVarint)
		e.EncodeVarint(w.Value)
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes the wrapped uint64.
func (w *UInt64Value) UnmarshalBinary(data []byte) error {
	v, err := decodeWrapperVarint(data)
	if err != nil {
		return err
	}
	w.Value = v
	return nil
}

// MarshalBinary encodes the wrapped double as fixed64.
func (w DoubleValue) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if w.Value != 0 {
		e.EncodeTag(1, wire.WireFixed64)
		e.EncodeFloat64(w.Value)
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes the wrapped double.
func (w *DoubleValue) UnmarshalBinary(data []byte) error {
	var out float64
	err := decodeWrapperField(data, wire.WireFixed64, func(d *wire.Decoder) error {
		fd := wire.NewFixedDecoder(d)
		v, err := fd.DecodeFloat64()
		out = v
		return err
	})
	if err != nil {
		return err
	}
	w.Value = out
	return nil
}

// MarshalBinary encodes the wrapped float as fixed32.
func (w FloatValue) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if w.Value != 0 {
		e.EncodeTag(1, wire.WireFixed32)
		fe := wire.NewFixedEncoder(e)
		fe.EncodeFloat32(w.Value)
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes the wrapped float.
func (w *FloatValue) UnmarshalBinary(data []byte) error {
	var out float32
	err := decodeWrapperField(data, wire.WireFixed32, func(d *wire.Decoder) error {
		fd := wire.NewFixedDecoder(d)
		v, err := fd.DecodeFloat32()
		out = v
		return err
	})
	if err != nil {
		return err
	}
	w.Value = out
	return nil
}

// MarshalBinary encodes the wrapped string as length-delimited UTF-8.
func (w StringValue) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if w.Value != "" {
		e.EncodeTag(1, wire.WireBytes)
		e.EncodeString(w.Value)
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes the wrapped string.
func (w *StringValue) UnmarshalBinary(data []byte) error {
	var out string
	err := decodeWrapperField(data, wire.WireBytes, func(d *wire.Decoder) error {
		v, err := d.DecodeString()
		out = v
		return err
	})
	if err != nil {
		return err
	}
	w.Value = out
	return nil
}

// MarshalBinary encodes the wrapped bytes as length-delimited.
func (w BytesValue) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if len(w.Value) > 0 {
		e.EncodeTag(1, wire.WireBytes)
		e.EncodeBytes(w.Value)
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes the wrapped bytes.
func (w *BytesValue) UnmarshalBinary(data []byte) error {
	var out []byte
	err := decodeWrapperField(data, wire.WireBytes, func(d *wire.Decoder) error {
		v, err := d.DecodeBytes()
		out = v
		return err
	})
	if err != nil {
		return err
	}
	w.Value = out
	return nil
}

// decodeWrapperVarint decodes a varint-typed wrapper value field.
func decodeWrapperVarint(data []byte) (uint64, error) {
	var out uint64
	err := decodeWrapperField(data, wire.WireVarint, func(d *wire.Decoder) error {
		v, err := d.DecodeVarint()
		out = v
		return err
	})
	return out, err
}

// decodeWrapperField walks a wrapper message, applying decodeValue at each
// occurrence of field 1 (last occurrence wins) and skipping unknown fields.
func decodeWrapperField(data []byte, want wire.WireType, decodeValue func(*wire.Decoder) error) error {
	d := wire.NewDecoder(data)
	for d.Remaining() > 0 {
		fieldNumber, wireType, err := d.DecodeTag()
		if err != nil {
			return err
		}
		if fieldNumber != 1 {
			if err := d.SkipField(wireType); err != nil {
				return err
			}
			continue
		}
		if wireType != want {
			return fmt.Errorf("%w: wrapper value field has wire type %d, want %d", ErrMalformed, wireType, want)
		}
		if err := decodeValue(d); err != nil {
			return err
		}
	}
	return nil
}

// VALUE / STRUCT / LISTVALUE

// Value oneof field numbers.
const (
	valueFieldNull   wire.FieldNumber = 1
	valueFieldNumber wire.FieldNumber = 2
	valueFieldString wire.FieldNumber = 3
	valueFieldBool   wire.FieldNumber = 4
	valueFieldStruct wire.FieldNumber = 5
	valueFieldList   wire.FieldNumber = 6
)

// MarshalBinary encodes the active variant of the Value oneof. The variant is
// always written, even when zero-valued, so the choice survives decoding.
func (v *Value) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if err := appendValue(e, v); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

func appendValue(e *wire.Encoder, v *Value) error {
	if v == nil {
		e.EncodeTag(valueFieldNull, wire.WireVarint)
		e.EncodeVarint(uint64(NullValueNull))
		return nil
	}
	switch v.Kind {
	case KindNull:
		e.EncodeTag(valueFieldNull, wire.WireVarint)
		e.EncodeVarint(uint64(NullValueNull))
	case KindNumber:
		e.EncodeTag(valueFieldNumber, wire.WireFixed64)
		e.EncodeFloat64(v.Num)
	case KindString:
		e.EncodeTag(valueFieldString, wire.WireBytes)
		e.EncodeString(v.Str)
	case KindBool:
		e.EncodeTag(valueFieldBool, wire.WireVarint)
		ve := wire.NewVarintEncoder(e)
		ve.EncodeBool(v.Bool)
	case KindStruct:
		sub, err := v.Struct.MarshalBinary()
		if err != nil {
			return err
		}
		e.EncodeTag(valueFieldStruct, wire.WireBytes)
		e.EncodeBytes(sub)
	case KindList:
		sub, err := v.List.MarshalBinary()
		if err != nil {
			return err
		}
		e.EncodeTag(valueFieldList, wire.WireBytes)
		e.EncodeBytes(sub)
	default:
		return fmt.Errorf("%w: unknown value kind %d", ErrMalformed, v.Kind)
	}
	return nil
}

// UnmarshalBinary decodes a Value message; the last oneof field present wins.
func (v *Value) UnmarshalBinary(data []byte) error {
	d := wire.NewDecoder(data)
	out := Value{Kind: KindNull}
	for d.Remaining() > 0 {
		fieldNumber, wireType, err := d.DecodeTag()
		if err != nil {
			return err
		}
		switch {
		case fieldNumber == valueFieldNull && wireType == wire.WireVarint:
			if _, err := d.DecodeVarint(); err != nil {
				return err
			}
			out = Value{Kind: KindNull}
		case fieldNumber == valueFieldNumber && wireType == wire.WireFixed64:
			fd := wire.NewFixedDecoder(d)
			f, err := fd.DecodeFloat64()
			if err != nil {
				return err
			}
			out = Value{Kind: KindNumber, Num: f}
		case fieldNumber == valueFieldString && wireType == wire.WireBytes:
			s, err := d.DecodeString()
			if err != nil {
				return err
			}
			out = Value{Kind: KindString, Str: s}
		case fieldNumber == valueFieldBool && wireType == wire.WireVarint:
			b, err := d.DecodeVarint()
			if err != nil {
				return err
			}
			out = Value{Kind: KindBool, Bool: b != 0}
		case fieldNumber == valueFieldStruct && wireType == wire.WireBytes:
			sub, err := d.DecodeBytes()
			if err != nil {
				return err
			}
			var s Struct
			if err := s.UnmarshalBinary(sub); err != nil {
				return err
			}
			out = Value{Kind: KindStruct, Struct: &s}
		case fieldNumber == valueFieldList && wireType == wire.WireBytes:
			sub, err := d.DecodeBytes()
			if err != nil {
				return err
			}
			var l ListValue
			if err := l.UnmarshalBinary(sub); err != nil {
				return err
			}
			out = Value{Kind: KindList, List: &l}
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	*v = out
	return nil
}

// MarshalBinary encodes the Struct as repeated map entries
// {1: key string, 2: value Value}. Keys are emitted in sorted order so the
// output is deterministic.
func (s *Struct) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if s == nil {
		return e.Bytes(), nil
	}
	keys := make([]string, 0, len(s.Fields))
	for key := range s.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		entry := wire.NewEncoder()
		entry.EncodeTag(1, wire.WireBytes)
		entry.EncodeString(key)
		sub, err := s.Fields[key].MarshalBinary()
		if err != nil {
			return nil, wrapWithField(err, key)
		}
		entry.EncodeTag(2, wire.WireBytes)
		entry.EncodeBytes(sub)

		e.EncodeTag(1, wire.WireBytes)
		e.EncodeBytes(entry.Bytes())
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes repeated map entries into the field map. An entry
// with an absent value yields a null Value, matching proto3 map semantics.
func (s *Struct) UnmarshalBinary(data []byte) error {
	d := wire.NewDecoder(data)
	fields := make(map[string]*Value)
	for d.Remaining() > 0 {
		fieldNumber, wireType, err := d.DecodeTag()
		if err != nil {
			return err
		}
		if fieldNumber != 1 || wireType != wire.WireBytes {
			if err := d.SkipField(wireType); err != nil {
				return err
			}
			continue
		}
		entryBytes, err := d.DecodeBytes()
		if err != nil {
			return err
		}
		key, value, err := decodeStructEntry(entryBytes)
		if err != nil {
			return err
		}
		fields[key] = value
	}
	*s = Struct{Fields: fields}
	return nil
}

func decodeStructEntry(data []byte) (string, *Value, error) {
	d := wire.NewDecoder(data)
	var key string
	value := NewNullValue()
	for d.Remaining() > 0 {
		fieldNumber, wireType, err := d.DecodeTag()
		if err != nil {
			return "", nil, err
		}
		switch {
		case fieldNumber == 1 && wireType == wire.WireBytes:
			key, err = d.DecodeString()
			if err != nil {
				return "", nil, err
			}
		case fieldNumber == 2 && wireType == wire.WireBytes:
			sub, err := d.DecodeBytes()
			if err != nil {
				return "", nil, err
			}
			var v Value
			if err := v.UnmarshalBinary(sub); err != nil {
				return "", nil, err
			}
			value = &v
		default:
			if err := d.SkipField(wireType); err != nil {
				return "", nil, err
			}
		}
	}
	return key, value, nil
}

// MarshalBinary encodes the list as {1: repeated Value message}.
func (l *ListValue) MarshalBinary() ([]byte, error) {
	e := wire.NewEncoder()
	if l == nil {
		return e.Bytes(), nil
	}
	for i, elem := range l.Values {
		sub, err := elem.MarshalBinary()
		if err != nil {
			return nil, wrapWithField(err, fmt.Sprintf("%d", i))
		}
		e.EncodeTag(1, wire.WireBytes)
		e.EncodeBytes(sub)
	}
	return e.Bytes(), nil
}

// UnmarshalBinary decodes repeated Value messages.
func (l *ListValue) UnmarshalBinary(data []byte) error {
	d := wire.NewDecoder(data)
	var values []*Value
	for d.Remaining() > 0 {
		fieldNumber, wireType, err := d.DecodeTag()
		if err != nil {
			return err
		}
		if fieldNumber != 1 || wireType != wire.WireBytes {
			if err := d.SkipField(wireType); err != nil {
				return err
			}
			continue
		}
		sub, err := d.DecodeBytes()
		if err != nil {
			return err
		}
		var v Value
		if err := v.UnmarshalBinary(sub); err != nil {
			return err
		}
		values = append(values, &v)
	}
	*l = ListValue{Values: values}
	return nil
}
