package wkt

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullValue_JSON(t *testing.T) {
	data, err := json.Marshal(NullValueNull)
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))

	var n NullValue
	require.NoError(t, json.Unmarshal([]byte(`null`), &n))
	assert.Equal(t, NullValueNull, n)

	require.NoError(t, json.Unmarshal([]byte(`"NULL_VALUE"`), &n))
	require.Error(t, json.Unmarshal([]byte(`0`), &n))
}

func TestValue_MarshalVariants(t *testing.T) {
	tests := []struct {
		name     string
		value    *Value
		expected string
	}{
		{"null", NewNullValue(), `null`},
		{"number", NewNumberValue(1.5), `1.5`},
		{"integer number", NewNumberValue(42), `42`},
		{"string", NewStringValue("x"), `"x"`},
		{"bool", NewBoolValue(true), `true`},
		{"empty struct", NewStructValue(&Struct{}), `{}`},
		{"empty list", NewListValue(&ListValue{}), `[]`},
		{"nil struct pointer", &Value{Kind: KindStruct}, `{}`},
		{"nil list pointer", &Value{Kind: KindList}, `[]`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := json.Marshal(test.value)
			require.NoError(t, err)
			assert.Equal(t, test.expected, string(data))
		})
	}
}

func TestValue_MarshalNonFiniteFails(t *testing.T) {
	_, err := json.Marshal(NewNumberValue(math.NaN()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRange)
}

func TestValue_UnmarshalInfersVariant(t *testing.T) {
	tests := []struct {
		input string
		kind  ValueKind
	}{
		{`null`, KindNull},
		{`3.25`, KindNumber},
		{`"text"`, KindString},
		{`false`, KindBool},
		{`{"k":1}`, KindStruct},
		{`[1,2]`, KindList},
		{`[]`, KindList},   // empty array is a list by convention
		{`{}`, KindStruct}, // empty object is a struct by convention
	}

	for _, test := range tests {
		var v Value
		require.NoError(t, json.Unmarshal([]byte(test.input), &v), "input %s", test.input)
		assert.Equal(t, test.kind, v.Kind, "input %s", test.input)
	}
}

func TestStruct_RoundTrip(t *testing.T) {
	input := `{"a":1,"b":[true,null,"x"]}`

	var s Struct
	require.NoError(t, json.Unmarshal([]byte(input), &s))

	require.Contains(t, s.Fields, "a")
	assert.Equal(t, KindNumber, s.Fields["a"].Kind)
	assert.Equal(t, 1.0, s.Fields["a"].Num)

	require.Contains(t, s.Fields, "b")
	require.Equal(t, KindList, s.Fields["b"].Kind)
	elems := s.Fields["b"].List.Values
	require.Len(t, elems, 3)
	assert.Equal(t, KindBool, elems[0].Kind)
	assert.Equal(t, KindNull, elems[1].Kind)
	assert.Equal(t, KindString, elems[2].Kind)

	// Re-serializing yields a structurally identical JSON value.
	data, err := json.Marshal(&s)
	require.NoError(t, err)

	var want, got interface{}
	require.NoError(t, json.Unmarshal([]byte(input), &want))
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestStructMarshal_FieldsUseSerializeDirection(t *testing.T) {
	// Each field must pass through Value serialization and come out as its
	// plain JSON shape, not a variant-tagged object.
	s := &Struct{Fields: map[string]*Value{
		"n": NewNumberValue(3.5),
		"s": NewStringValue("plain"),
	}}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]interface{}{"n": 3.5, "s": "plain"}, got)
}

func TestListValue_RoundTrip(t *testing.T) {
	input := `[1,"two",[3,null],{"four":4}]`

	var l ListValue
	require.NoError(t, json.Unmarshal([]byte(input), &l))
	require.Len(t, l.Values, 4)
	assert.Equal(t, KindList, l.Values[2].Kind)
	assert.Equal(t, KindStruct, l.Values[3].Kind)

	data, err := json.Marshal(&l)
	require.NoError(t, err)

	var want, got interface{}
	require.NoError(t, json.Unmarshal([]byte(input), &want))
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestValue_DeeplyNested(t *testing.T) {
	input := `{"a":{"b":{"c":[[["deep"]]]}}}`

	var v Value
	require.NoError(t, json.Unmarshal([]byte(input), &v))

	data, err := json.Marshal(&v)
	require.NoError(t, err)

	var want, got interface{}
	require.NoError(t, json.Unmarshal([]byte(input), &want))
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestValue_AsInterface(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":[true,null,"x"]}`), &v))

	assert.Equal(t, map[string]interface{}{
		"a": 1.0,
		"b": []interface{}{true, nil, "x"},
	}, v.AsInterface())
}

func TestStruct_UnmarshalRejectsNonObject(t *testing.T) {
	var s Struct
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &s))

	var l ListValue
	require.Error(t, json.Unmarshal([]byte(`{"a":1}`), &l))
}

func TestStruct_NestedErrorCarriesFieldPath(t *testing.T) {
	s := &Struct{Fields: map[string]*Value{
		"outer": NewStructValue(&Struct{Fields: map[string]*Value{
			"inner": NewNumberValue(math.Inf(1)),
		}}),
	}}

	_, err := json.Marshal(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRange)
	assert.Contains(t, err.Error(), "outer.inner")
}
