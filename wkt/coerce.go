package wkt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// decodeJSONValue decodes raw JSON into its generic Go shape, keeping numbers
// as json.Number so 64-bit integers survive intact.
func decodeJSONValue(b []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return v, nil
}

// Helpers to coerce decoded JSON values to integers. The canonical JSON
// mapping allows both number and string forms for integer fields.

func coerceToInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case json.Number:
		if iv, err := t.Int64(); err == nil {
			return iv, nil
		}
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil || f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: non-integer numeric %q", ErrMalformed, t.String())
		}
		return int64(f), nil
	case string:
		iv, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid integer string %q", ErrMalformed, t)
		}
		return iv, nil
	default:
		return 0, fmt.Errorf("%w: expected integer, got %T", ErrMalformed, v)
	}
}

func coerceToUint64(v interface{}) (uint64, error) {
	switch t := v.(type) {
	case json.Number:
		if uv, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return uv, nil
		}
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil || f < 0 || f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: non-integer numeric %q", ErrMalformed, t.String())
		}
		return uint64(f), nil
	case string:
		uv, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid unsigned integer string %q", ErrMalformed, t)
		}
		return uv, nil
	default:
		return 0, fmt.Errorf("%w: expected unsigned integer, got %T", ErrMalformed, v)
	}
}

// coerceToFloat64 accepts JSON numbers plus the canonical string spellings of
// the non-finite values.
func coerceToFloat64(v interface{}) (float64, error) {
	switch t := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid number %q", ErrMalformed, t.String())
		}
		return f, nil
	case string:
		switch t {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid number string %q", ErrMalformed, t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrMalformed, v)
	}
}
