package wire

import (
	"errors"
)

// Wire format decoding errors
var (
	ErrVarintOverflow  = errors.New("varint overflow")
	ErrVarintTooLong   = errors.New("varint too long")
	ErrUnexpectedEOF   = errors.New("unexpected EOF while reading varint")
	ErrInvalidTag      = errors.New("invalid field tag")
	ErrInvalidWireType = errors.New("invalid wire type")
)
