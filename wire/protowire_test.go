package wire

import (
	"bytes"
	"math"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

// Cross-checks against the reference implementation's wire encoder. Output
// must be bit-exact.

func TestVarint_MatchesReference(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1<<32 - 1, 1<<53 - 1, math.MaxUint64}

	for _, v := range values {
		encoder := NewEncoder()
		encoder.EncodeVarint(v)

		want := protowire.AppendVarint(nil, v)
		if !bytes.Equal(encoder.Bytes(), want) {
			t.Errorf("varint %d: got %x, reference %x", v, encoder.Bytes(), want)
		}

		got, n := protowire.ConsumeVarint(encoder.Bytes())
		if n != len(encoder.Bytes()) || got != v {
			t.Errorf("reference decoder rejected our varint for %d", v)
		}
	}
}

func TestNegativeVarint_MatchesReference(t *testing.T) {
	values := []int64{-1, -123456789, math.MinInt64}

	for _, v := range values {
		encoder := NewEncoder()
		encoder.EncodeInt64(v)

		want := protowire.AppendVarint(nil, uint64(v))
		if !bytes.Equal(encoder.Bytes(), want) {
			t.Errorf("int64 %d: got %x, reference %x", v, encoder.Bytes(), want)
		}
	}
}

func TestTag_MatchesReference(t *testing.T) {
	for _, fn := range []FieldNumber{1, 16, 2048, MaxFieldNumber} {
		for _, wt := range allWireTypes {
			encoder := NewEncoder()
			encoder.EncodeTag(fn, wt)

			want := protowire.AppendTag(nil, protowire.Number(fn), protowire.Type(wt))
			if !bytes.Equal(encoder.Bytes(), want) {
				t.Errorf("tag (%d, %d): got %x, reference %x", fn, wt, encoder.Bytes(), want)
			}
		}
	}
}

func TestFixed_MatchesReference(t *testing.T) {
	encoder := NewEncoder()
	encoder.EncodeFixed32(0xCAFEBABE)
	want := protowire.AppendFixed32(nil, 0xCAFEBABE)
	if !bytes.Equal(encoder.Bytes(), want) {
		t.Errorf("fixed32: got %x, reference %x", encoder.Bytes(), want)
	}

	encoder = NewEncoder()
	encoder.EncodeFixed64(0xDEADBEEFCAFEBABE)
	want = protowire.AppendFixed64(nil, 0xDEADBEEFCAFEBABE)
	if !bytes.Equal(encoder.Bytes(), want) {
		t.Errorf("fixed64: got %x, reference %x", encoder.Bytes(), want)
	}

	encoder = NewEncoder()
	encoder.EncodeFloat64(2.718281828)
	want = protowire.AppendFixed64(nil, math.Float64bits(2.718281828))
	if !bytes.Equal(encoder.Bytes(), want) {
		t.Errorf("double: got %x, reference %x", encoder.Bytes(), want)
	}
}

func TestBytes_MatchesReference(t *testing.T) {
	payload := []byte("length-delimited payload")

	encoder := NewEncoder()
	encoder.EncodeBytes(payload)
	want := protowire.AppendBytes(nil, payload)
	if !bytes.Equal(encoder.Bytes(), want) {
		t.Errorf("bytes: got %x, reference %x", encoder.Bytes(), want)
	}

	got, n := protowire.ConsumeBytes(encoder.Bytes())
	if n != len(encoder.Bytes()) || !bytes.Equal(got, payload) {
		t.Errorf("reference decoder rejected our length-delimited framing")
	}
}

func TestZigZag_MatchesReference(t *testing.T) {
	values := []int64{0, 1, -1, 63, -64, math.MaxInt64, math.MinInt64}

	for _, v := range values {
		if got, want := EncodeZigZag64(v), protowire.EncodeZigZag(v); got != want {
			t.Errorf("EncodeZigZag64(%d) = %d, reference %d", v, got, want)
		}
		if got, want := DecodeZigZag64(protowire.EncodeZigZag(v)), v; got != want {
			t.Errorf("DecodeZigZag64 disagrees with reference for %d", v)
		}
	}
}
