package wire

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType represents protobuf wire format types
type WireType int32

const (
	WireVarint     WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	WireFixed64    WireType = 1 // fixed64, sfixed64, double
	WireBytes      WireType = 2 // string, bytes, embedded messages, packed repeated fields
	WireStartGroup WireType = 3 // group start (deprecated encoding, still valid in tags)
	WireEndGroup   WireType = 4 // group end
	WireFixed32    WireType = 5 // fixed32, sfixed32, float
)

// FieldNumber represents a protobuf field number
type FieldNumber int32

// MaxFieldNumber is the largest encodable field number (2^29 - 1).
const MaxFieldNumber FieldNumber = 1<<29 - 1

// Tag represents a protobuf field tag (field number + wire type)
type Tag uint64

// MakeTag creates a tag from field number and wire type
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<3 | uint64(wireType))
}

// ParseTag parses a tag into field number and wire type
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> 3), WireType(tag & 0x7)
}

// Value represents a decoded protobuf value
type Value struct {
	FieldNumber FieldNumber
	WireType    WireType
	Data        interface{} // Actual value
}
