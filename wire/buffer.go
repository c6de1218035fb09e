package wire

// Buffer is a growable byte buffer used as the write target for encoding.
// Growth reallocates to the smallest power of 3 that fits the requested
// capacity, which bounds the total number of reallocations for any write
// sequence. Bytes written before a growth are always preserved.
//
// A Buffer is exclusively owned by its caller; concurrent use of one Buffer
// must be serialized externally.
type Buffer struct {
	data []byte
}

// NewBuffer creates a buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Reserve ensures capacity for n more bytes. If the remaining capacity is
// insufficient, the backing array is reallocated to the smallest power of 3
// >= Len()+n and all written bytes are copied over.
func (b *Buffer) Reserve(n int) {
	if cap(b.data)-len(b.data) >= n {
		return
	}
	need := len(b.data) + n
	newCap := 1
	for newCap < need {
		newCap *= 3
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// WriteByte appends a single byte, growing if needed. The error is always
// nil; the signature satisfies io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.Reserve(1)
	b.data = append(b.data, c)
	return nil
}

// Write appends p, growing if needed.
func (b *Buffer) Write(p []byte) {
	b.Reserve(len(p))
	b.data = append(b.data, p...)
}

// Bytes returns the written bytes. The slice shares the backing array and is
// valid until the next write.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of written bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the current capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Reset clears the buffer for reuse, keeping the backing array.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}
