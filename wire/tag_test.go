package wire

import (
	"errors"
	"testing"
)

var allWireTypes = []WireType{
	WireVarint, WireFixed64, WireBytes, WireStartGroup, WireEndGroup, WireFixed32,
}

func TestTag_RoundTrip(t *testing.T) {
	fieldNumbers := []FieldNumber{1, 2, 15, 16, 2047, 2048, 262143, MaxFieldNumber}

	for _, fn := range fieldNumbers {
		for _, wt := range allWireTypes {
			encoder := NewEncoder()
			encoder.EncodeTag(fn, wt)

			decoder := NewDecoder(encoder.Bytes())
			gotFn, gotWt, err := decoder.DecodeTag()
			if err != nil {
				t.Fatalf("DecodeTag(%d, %d) failed: %v", fn, wt, err)
			}
			if gotFn != fn || gotWt != wt {
				t.Errorf("tag round trip: got (%d, %d), want (%d, %d)", gotFn, gotWt, fn, wt)
			}
			if got, want := len(encoder.Bytes()), TagSize(fn, wt); got != want {
				t.Errorf("tag (%d, %d): encoded %d bytes, TagSize says %d", fn, wt, got, want)
			}
		}
	}
}

func TestTag_ParseMakeInverse(t *testing.T) {
	tag := MakeTag(12, WireBytes)
	fn, wt := ParseTag(tag)
	if fn != 12 || wt != WireBytes {
		t.Errorf("ParseTag(MakeTag(12, bytes)) = (%d, %d)", fn, wt)
	}

	// Field 1, varint: the classic first byte 0x08.
	if MakeTag(1, WireVarint) != 0x08 {
		t.Errorf("MakeTag(1, varint) = %#x, want 0x08", MakeTag(1, WireVarint))
	}
}

func TestTag_FieldNumberZeroRejected(t *testing.T) {
	encoder := NewEncoder()
	encoder.EncodeVarint(uint64(MakeTag(0, WireVarint)))

	decoder := NewDecoder(encoder.Bytes())
	if _, _, err := decoder.DecodeTag(); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("expected ErrInvalidTag for field 0, got %v", err)
	}
}

func TestTag_OversizedFieldNumberRejected(t *testing.T) {
	// Field numbers past 2^29-1 must fail, including ones whose low 32 bits
	// look like a small valid field number.
	oversized := []uint64{
		uint64(MaxFieldNumber) + 1,
		(1<<32 + 5), // would alias field 5 if truncated to 32 bits
	}

	for _, fn := range oversized {
		encoder := NewEncoder()
		encoder.EncodeVarint(fn<<3 | uint64(WireVarint))

		decoder := NewDecoder(encoder.Bytes())
		if _, _, err := decoder.DecodeTag(); !errors.Is(err, ErrInvalidTag) {
			t.Errorf("field number %d: expected ErrInvalidTag, got %v", fn, err)
		}
	}
}

func TestTag_InvalidWireTypeRejected(t *testing.T) {
	for _, wt := range []WireType{6, 7} {
		encoder := NewEncoder()
		encoder.EncodeVarint(uint64(1)<<3 | uint64(wt))

		decoder := NewDecoder(encoder.Bytes())
		if _, _, err := decoder.DecodeTag(); !errors.Is(err, ErrInvalidWireType) {
			t.Errorf("expected ErrInvalidWireType for wire type %d, got %v", wt, err)
		}
	}
}

func TestDecodeField_Sequence(t *testing.T) {
	encoder := NewEncoder()
	encoder.EncodeTag(1, WireVarint)
	encoder.EncodeVarint(150)
	encoder.EncodeTag(2, WireBytes)
	encoder.EncodeString("testing")
	encoder.EncodeTag(3, WireFixed32)
	encoder.EncodeFixed32(7)

	decoder := NewDecoder(encoder.Bytes())

	field, err := decoder.DecodeField()
	if err != nil {
		t.Fatalf("first field: %v", err)
	}
	if field.FieldNumber != 1 || field.Data.(uint64) != 150 {
		t.Errorf("first field = %+v", field)
	}

	field, err = decoder.DecodeField()
	if err != nil {
		t.Fatalf("second field: %v", err)
	}
	if field.FieldNumber != 2 || string(field.Data.([]byte)) != "testing" {
		t.Errorf("second field = %+v", field)
	}

	field, err = decoder.DecodeField()
	if err != nil {
		t.Fatalf("third field: %v", err)
	}
	if field.FieldNumber != 3 || field.Data.(uint32) != 7 {
		t.Errorf("third field = %+v", field)
	}

	field, err = decoder.DecodeField()
	if err != nil || field != nil {
		t.Errorf("expected clean end of input, got (%+v, %v)", field, err)
	}
}

func TestSkipField_AllWireTypes(t *testing.T) {
	encoder := NewEncoder()
	encoder.EncodeVarint(1 << 40)
	encoder.EncodeFixed64(99)
	encoder.EncodeBytes([]byte("payload"))
	encoder.EncodeFixed32(7)
	encoder.EncodeVarint(5) // sentinel

	decoder := NewDecoder(encoder.Bytes())
	for _, wt := range []WireType{WireVarint, WireFixed64, WireBytes, WireFixed32} {
		if err := decoder.SkipField(wt); err != nil {
			t.Fatalf("SkipField(%d) failed: %v", wt, err)
		}
	}

	v, err := decoder.DecodeVarint()
	if err != nil {
		t.Fatalf("sentinel decode failed: %v", err)
	}
	if v != 5 {
		t.Errorf("expected sentinel 5 after skips, got %d", v)
	}
}
