// Package wkt implements the protobuf well-known types (Duration, Timestamp,
// the scalar wrapper types, NullValue, and the recursive Value/Struct/ListValue
// family) with their canonical JSON mapping and binary wire codecs.
package wkt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	maxDurationSeconds = 315576000000  // approx. 10000 years
	minDurationSeconds = -315576000000
	maxDurationNanos   = 999999999
	nanosPerSecond     = 1000000000
)

// Duration represents a signed span of time as seconds plus a nanosecond
// remainder. Seconds and Nanos must agree in sign.
type Duration struct {
	Seconds int64
	Nanos   int32
}

// CheckValid reports whether the duration is within the representable range
// and its components agree in sign.
func (d Duration) CheckValid() error {
	if d.Seconds < minDurationSeconds || d.Seconds > maxDurationSeconds {
		return fmt.Errorf("%w: duration seconds %d", ErrRange, d.Seconds)
	}
	if d.Nanos < -maxDurationNanos || d.Nanos > maxDurationNanos {
		return fmt.Errorf("%w: duration nanos %d", ErrRange, d.Nanos)
	}
	if (d.Seconds > 0 && d.Nanos < 0) || (d.Seconds < 0 && d.Nanos > 0) {
		return fmt.Errorf("%w: duration seconds and nanos have opposite signs", ErrRange)
	}
	return nil
}

// MarshalJSON emits the canonical "Ns" form, with 3, 6 or 9 fractional digits
// when a sub-second remainder is present (the minimal precision that exactly
// represents the nanos).
func (d Duration) MarshalJSON() ([]byte, error) {
	if err := d.CheckValid(); err != nil {
		return nil, err
	}
	return []byte(`"` + formatSeconds(d.Seconds, d.Nanos) + `s"`), nil
}

// formatSeconds renders seconds plus an optional fractional suffix. The
// integer component carries no sign when seconds is 0, so a negative nanos
// remainder supplies the leading minus itself.
func formatSeconds(seconds int64, nanos int32) string {
	if nanos == 0 {
		return strconv.FormatInt(seconds, 10)
	}
	var sign string
	if seconds == 0 && nanos < 0 {
		sign = "-"
	}
	frac := nanos
	if frac < 0 {
		frac = -frac
	}
	var digits int
	var value int32
	switch {
	case frac%1000000 == 0:
		digits, value = 3, frac/1000000
	case frac%1000 == 0:
		digits, value = 6, frac/1000
	default:
		digits, value = 9, frac
	}
	return fmt.Sprintf("%s%d.%0*d", sign, seconds, digits, value)
}

// UnmarshalJSON parses "<int>s" or "<int>.<digits>s". The fractional text is
// treated as a right-padded fixed-point value scaled to 9 digits; the sign
// applies to both components.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: duration must be a JSON string", ErrMalformed)
	}
	parsed, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseDuration(s string) (Duration, error) {
	if !strings.HasSuffix(s, "s") {
		return Duration{}, fmt.Errorf("%w: duration %q missing 's' suffix", ErrMalformed, s)
	}
	core := strings.TrimSuffix(s, "s")
	neg := false
	if strings.HasPrefix(core, "-") {
		neg = true
		core = core[1:]
	} else if strings.HasPrefix(core, "+") {
		core = core[1:]
	}
	secPart := core
	fracPart := ""
	if i := strings.IndexByte(core, '.'); i >= 0 {
		secPart = core[:i]
		fracPart = core[i+1:]
		if len(fracPart) > 9 || !isASCIIDigits(fracPart) {
			return Duration{}, fmt.Errorf("%w: duration %q fractional digits", ErrMalformed, s)
		}
	}
	// At least one component must carry explicit digits, and any sign was
	// consumed above, so both parts must be plain decimal digits.
	if secPart == "" {
		if fracPart == "" {
			return Duration{}, fmt.Errorf("%w: duration %q has no digits", ErrMalformed, s)
		}
		secPart = "0"
	} else if !isASCIIDigits(secPart) {
		return Duration{}, fmt.Errorf("%w: duration seconds %q", ErrMalformed, secPart)
	}
	seconds, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return Duration{}, fmt.Errorf("%w: duration seconds %q", ErrMalformed, secPart)
	}
	var nanos int64
	if fracPart != "" {
		padded := fracPart + strings.Repeat("0", 9-len(fracPart))
		nanos, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return Duration{}, fmt.Errorf("%w: duration nanos %q", ErrMalformed, fracPart)
		}
	}
	if neg {
		seconds = -seconds
		nanos = -nanos
	}
	parsed := Duration{Seconds: seconds, Nanos: int32(nanos)}
	if err := parsed.CheckValid(); err != nil {
		return Duration{}, err
	}
	return parsed, nil
}
