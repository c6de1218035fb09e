package wkt

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	minTimestampSeconds = -62135596800 // 0001-01-01T00:00:00Z
	maxTimestampSeconds = 253402300799 // 9999-12-31T23:59:59Z
)

// Timestamp represents a UTC point in time as epoch seconds plus a
// non-negative nanosecond remainder.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

// CheckValid reports whether the timestamp lies within [0001-01-01,
// 9999-12-31] and its nanos within [0, 999999999].
func (t Timestamp) CheckValid() error {
	if t.Seconds < minTimestampSeconds || t.Seconds > maxTimestampSeconds {
		return fmt.Errorf("%w: timestamp seconds %d", ErrRange, t.Seconds)
	}
	if t.Nanos < 0 || t.Nanos >= nanosPerSecond {
		return fmt.Errorf("%w: timestamp nanos %d", ErrRange, t.Nanos)
	}
	return nil
}

// MarshalJSON emits RFC3339 UTC text with a trailing Z; the fractional suffix
// uses 3, 6 or 9 digits and is omitted when Nanos is 0.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if err := t.CheckValid(); err != nil {
		return nil, err
	}
	base := time.Unix(t.Seconds, 0).UTC().Format("2006-01-02T15:04:05")
	if t.Nanos == 0 {
		return []byte(`"` + base + `Z"`), nil
	}
	return []byte(`"` + base + "." + fractionDigits(t.Nanos) + `Z"`), nil
}

func fractionDigits(nanos int32) string {
	switch {
	case nanos%1000000 == 0:
		return fmt.Sprintf("%03d", nanos/1000000)
	case nanos%1000 == 0:
		return fmt.Sprintf("%06d", nanos/1000)
	default:
		return fmt.Sprintf("%09d", nanos)
	}
}

// UnmarshalJSON parses RFC3339 text with optional fractional seconds and UTC
// offset; pattern mismatch fails without touching the receiver.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: timestamp must be a JSON string", ErrMalformed)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("%w: invalid timestamp %q", ErrMalformed, s)
	}
	out := Timestamp{Seconds: parsed.Unix(), Nanos: int32(parsed.Nanosecond())}
	if err := out.CheckValid(); err != nil {
		return err
	}
	*t = out
	return nil
}
