package wire

import (
	"fmt"
)

// Decoder handles low-level protobuf wire format decoding
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new wire format decoder
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		buf: data,
		pos: 0,
	}
}

// Pos returns the current read position.
func (d *Decoder) Pos() int {
	return d.pos
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// DecodeTag decodes a field tag from the current position. Field number 0 is
// reserved and rejected; wire types 6 and 7 do not exist.
func (d *Decoder) DecodeTag() (FieldNumber, WireType, error) {
	tag, err := d.DecodeVarint()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode tag: %w", err)
	}

	// Range-check on the raw 64-bit value; converting first would let an
	// oversized field number wrap around and alias a small one.
	if raw := tag >> 3; raw < 1 || raw > uint64(MaxFieldNumber) {
		return 0, 0, fmt.Errorf("%w: field number %d out of range", ErrInvalidTag, raw)
	}
	fieldNumber, wireType := ParseTag(Tag(tag))
	if wireType > WireFixed32 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidWireType, wireType)
	}
	return fieldNumber, wireType, nil
}

// SkipField skips a field based on wire type
func (d *Decoder) SkipField(wireType WireType) error {
	switch wireType {
	case WireVarint:
		vd := NewVarintDecoder(d)
		return vd.SkipVarint()
	case WireFixed64:
		if d.pos+8 > len(d.buf) {
			return fmt.Errorf("not enough data to skip fixed64")
		}
		d.pos += 8
		return nil
	case WireBytes:
		bd := NewBytesDecoder(d)
		return bd.SkipBytes()
	case WireFixed32:
		if d.pos+4 > len(d.buf) {
			return fmt.Errorf("not enough data to skip fixed32")
		}
		d.pos += 4
		return nil
	default:
		return fmt.Errorf("%w: cannot skip wire type %d", ErrInvalidWireType, wireType)
	}
}

// decodeRawValue decodes without type information
func (d *Decoder) decodeRawValue(wireType WireType) (interface{}, error) {
	switch wireType {
	case WireVarint:
		vd := NewVarintDecoder(d)
		return vd.DecodeVarint()
	case WireFixed64:
		fd := NewFixedDecoder(d)
		return fd.DecodeFixed64()
	case WireBytes:
		bd := NewBytesDecoder(d)
		return bd.DecodeBytes()
	case WireFixed32:
		fd := NewFixedDecoder(d)
		return fd.DecodeFixed32()
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidWireType, wireType)
	}
}

// DecodeField decodes a single tagged field from the current position.
// Returns nil at end of input.
func (d *Decoder) DecodeField() (*Value, error) {
	if d.pos >= len(d.buf) {
		return nil, nil
	}

	fieldNumber, wireType, err := d.DecodeTag()
	if err != nil {
		return nil, err
	}

	data, err := d.decodeRawValue(wireType)
	if err != nil {
		return nil, err
	}

	return &Value{
		FieldNumber: fieldNumber,
		WireType:    wireType,
		Data:        data,
	}, nil
}
