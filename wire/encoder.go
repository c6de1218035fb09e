package wire

// Encoder handles low-level protobuf wire format encoding
type Encoder struct {
	buf *Buffer
}

// NewEncoder creates a new wire format encoder
func NewEncoder() *Encoder {
	return &Encoder{
		buf: NewBuffer(0),
	}
}

// NewEncoderWithBuffer creates an encoder writing into the given buffer,
// appending after any bytes already written.
func NewEncoderWithBuffer(buf *Buffer) *Encoder {
	return &Encoder{
		buf: buf,
	}
}

// Bytes returns the encoded bytes
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded bytes
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Reset clears the encoder buffer
func (e *Encoder) Reset() {
	e.buf.Reset()
}

// EncodeTag encodes a field tag (field number + wire type) as a varint
func (e *Encoder) EncodeTag(fieldNumber FieldNumber, wireType WireType) {
	e.EncodeVarint(uint64(MakeTag(fieldNumber, wireType)))
}
