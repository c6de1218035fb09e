package wkt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_MarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		timestamp Timestamp
		expected  string
	}{
		{"epoch", Timestamp{}, `"1970-01-01T00:00:00Z"`},
		{"one second", Timestamp{Seconds: 1}, `"1970-01-01T00:00:01Z"`},
		{"pre-epoch", Timestamp{Seconds: -1}, `"1969-12-31T23:59:59Z"`},
		{"milliseconds", Timestamp{Seconds: 0, Nanos: 500000000}, `"1970-01-01T00:00:00.500Z"`},
		{"microseconds", Timestamp{Seconds: 0, Nanos: 1000}, `"1970-01-01T00:00:00.000001Z"`},
		{"nanoseconds", Timestamp{Seconds: 0, Nanos: 1}, `"1970-01-01T00:00:00.000000001Z"`},
		{"min", Timestamp{Seconds: -62135596800}, `"0001-01-01T00:00:00Z"`},
		{"max", Timestamp{Seconds: 253402300799}, `"9999-12-31T23:59:59Z"`},
		{"modern date", Timestamp{Seconds: 1672531200}, `"2023-01-01T00:00:00Z"`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := json.Marshal(test.timestamp)
			require.NoError(t, err)
			assert.Equal(t, test.expected, string(got))
		})
	}
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected Timestamp
	}{
		{`"1970-01-01T00:00:00Z"`, Timestamp{}},
		{`"1970-01-01T00:00:01Z"`, Timestamp{Seconds: 1}},
		{`"1970-01-01T00:00:00.500Z"`, Timestamp{Nanos: 500000000}},
		{`"2023-01-01T00:00:00Z"`, Timestamp{Seconds: 1672531200}},
		// Offsets are normalized to epoch seconds.
		{`"1970-01-01T01:00:00+01:00"`, Timestamp{}},
		{`"0001-01-01T00:00:00Z"`, Timestamp{Seconds: -62135596800}},
	}

	for _, test := range tests {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(test.input), &ts), "input %s", test.input)
		assert.Equal(t, test.expected, ts, "input %s", test.input)
	}
}

func TestTimestamp_RoundTrip(t *testing.T) {
	timestamps := []Timestamp{
		{},
		{Seconds: 1},
		{Seconds: 1672531200, Nanos: 123456789},
		{Seconds: -62135596800},
		{Seconds: 253402300799, Nanos: 999999999},
	}

	for _, ts := range timestamps {
		data, err := json.Marshal(ts)
		require.NoError(t, err)

		var back Timestamp
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, ts, back, "through %s", data)
	}
}

func TestTimestamp_MarshalRangeViolations(t *testing.T) {
	bad := []Timestamp{
		{Seconds: 253402300800},
		{Seconds: -62135596801},
		{Nanos: -1},
		{Nanos: 1000000000},
	}

	for _, ts := range bad {
		_, err := json.Marshal(ts)
		require.Error(t, err, "%+v", ts)
		assert.ErrorIs(t, err, ErrRange, "%+v", ts)
	}
}

func TestTimestamp_UnmarshalMalformed(t *testing.T) {
	inputs := []string{
		`"not-a-date"`,
		`"2023-01-01"`,           // date only
		`"2023-13-01T00:00:00Z"`, // month 13
		`"2023-01-01 00:00:00"`,  // missing T separator
		`1672531200`,             // not a JSON string
	}

	for _, input := range inputs {
		ts := Timestamp{Seconds: 42}
		err := json.Unmarshal([]byte(input), &ts)
		require.Error(t, err, "input %s", input)
		// Failure never yields a default value.
		assert.Equal(t, Timestamp{Seconds: 42}, ts, "input %s", input)
	}
}
