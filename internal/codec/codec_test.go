package codec

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/mcncl/structconv/internal/encoder"
	"github.com/mcncl/structconv/internal/errors"
	"github.com/mcncl/structconv/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioWire = `{"fields":{` +
	`"a":{"kind":"numberValue","numberValue":1},` +
	`"b":{"kind":"stringValue","stringValue":"x"},` +
	`"c":{"kind":"booleanValue","booleanValue":true},` +
	`"d":{"kind":"listValue","listValue":{"values":[{"kind":"numberValue","numberValue":1},{"kind":"stringValue","stringValue":"y"},{"kind":"booleanValue","booleanValue":false}]}},` +
	`"e":{"kind":"structValue","structValue":{"fields":{"f":{"kind":"numberValue","numberValue":2}}}}` +
	`}}`

func scenarioInput() models.JSONObject {
	return models.JSONObject{
		"a": 1,
		"b": "x",
		"c": true,
		"d": models.JSONArray{1, "y", false},
		"e": models.JSONObject{"f": 2},
	}
}

func TestMarshalStruct_Scenario(t *testing.T) {
	data, err := MarshalStruct(encoder.ToStruct(scenarioInput()), false)
	require.NoError(t, err)
	assert.Equal(t, scenarioWire, string(data))
}

func TestMarshalStruct_LegacyListKinds(t *testing.T) {
	s := encoder.ToStruct(models.JSONObject{"d": models.JSONArray{1, "y"}}, encoder.WithLegacyListKinds(true))

	data, err := MarshalStruct(s, false)
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{"d":{"kind":"listValue","listValue":{"values":[{"numberValue":1},{"stringValue":"y"}]}}}}`, string(data))
}

func TestMarshalStruct_Empty(t *testing.T) {
	data, err := MarshalStruct(encoder.ToStruct(models.JSONObject{"a": nil}), false)
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{}}`, string(data))

	data, err = MarshalStruct(nil, false)
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{}}`, string(data))
}

func TestMarshalStruct_Indent(t *testing.T) {
	data, err := MarshalStruct(encoder.ToStruct(models.JSONObject{"a": "b"}), true)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n")
	assert.Contains(t, string(data), `"stringValue"`)

	compact, err := MarshalStruct(encoder.ToStruct(models.JSONObject{"a": "b"}), false)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")
}

func TestUnmarshalStruct_Scenario(t *testing.T) {
	s, err := UnmarshalStruct([]byte(scenarioWire))
	require.NoError(t, err)
	assert.Equal(t, encoder.ToStruct(scenarioInput()), s)
}

func TestUnmarshalStruct_EmptyFields(t *testing.T) {
	s, err := UnmarshalStruct([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, s.Fields)
	assert.Empty(t, s.Fields)
}

func TestUnmarshalStruct_KeepsUnknownKinds(t *testing.T) {
	s, err := UnmarshalStruct([]byte(`{"fields":{"n":{"kind":"nullValue"}}}`))
	require.NoError(t, err)
	require.Contains(t, s.Fields, "n")
	assert.Equal(t, models.Kind("nullValue"), s.Fields["n"].Kind)
}

func TestUnmarshalStruct_AbsentValues(t *testing.T) {
	s, err := UnmarshalStruct([]byte(`{"fields":{"l":{"kind":"listValue","listValue":{}}}}`))
	require.NoError(t, err)
	require.NotNil(t, s.Fields["l"].ListValue)
	assert.Nil(t, s.Fields["l"].ListValue.Values)
}

func TestUnmarshalStruct_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{"empty", "", errors.ErrEmptyInput},
		{"whitespace", "  \n ", errors.ErrEmptyInput},
		{"array root", `[1,2]`, errors.ErrRootNotObject},
		{"string root", `"x"`, errors.ErrRootNotObject},
		{"syntax error", `{"fields": nope}`, errors.ErrInvalidJSON},
		{"wrong field type", `{"fields": []}`, errors.ErrInvalidJSON},
		{"trailing value", `{"fields":{}} {"fields":{}}`, errors.ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalStruct([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.sentinel), "got %v", err)

			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, errors.ErrorTypeParsing, appErr.Type)
		})
	}
}

func TestReadStruct(t *testing.T) {
	s, err := ReadStruct(strings.NewReader(`{"fields":{"x":{"kind":"stringValue","stringValue":"y"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "y", *s.Fields["x"].StringValue)
}

func TestMarshalPlain(t *testing.T) {
	data, err := MarshalPlain(models.JSONObject{"b": 2.0, "a": models.JSONArray{"x", true}}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":["x",true],"b":2}`, string(data))
}

func TestMarshalPlain_NoHTMLEscaping(t *testing.T) {
	data, err := MarshalPlain(models.JSONObject{"html": "<b>&</b>"}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"html":"<b>&</b>"}`, string(data))
}
