// Package codec reads and writes the tagged tree in its JSON wire shape:
//
//	{"fields":{"a":{"kind":"numberValue","numberValue":1}}}
package codec

import (
	"bytes"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/mcncl/structconv/internal/errors"
	"github.com/mcncl/structconv/internal/models"
)

// JSON sorts map keys so output is stable, and keeps numbers as json.Number
// when decoding into interfaces.
var JSON = jsoniter.Config{
	SortMapKeys:            true,
	UseNumber:              true,
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// MarshalStruct renders s in the tagged wire shape.
func MarshalStruct(s *models.Struct, indent bool) ([]byte, error) {
	if s == nil {
		s = models.NewStruct()
	}
	return marshal(s, indent, "tagged struct")
}

// MarshalPlain renders a plain value as JSON.
func MarshalPlain(v models.JSONValue, indent bool) ([]byte, error) {
	return marshal(v, indent, "plain value")
}

func marshal(v interface{}, indent bool, what string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = JSON.MarshalIndent(v, "", "  ")
	} else {
		data, err = JSON.Marshal(v)
	}
	if err != nil {
		return nil, errors.NewFormatError(fmt.Sprintf("failed to marshal %s", what), err)
	}
	return data, nil
}

// UnmarshalStruct parses a tagged Struct from its wire shape.
func UnmarshalStruct(data []byte) (*models.Struct, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	if trimmed[0] != '{' {
		return nil, errors.NewParsingError("tagged struct must be a JSON object", errors.ErrRootNotObject)
	}

	// Unmarshal rejects bytes left over after the first value.
	s := &models.Struct{}
	if err := JSON.Unmarshal(trimmed, s); err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("invalid tagged struct: %v", err), errors.ErrInvalidJSON)
	}

	if s.Fields == nil {
		s.Fields = make(map[string]*models.Value)
	}
	return s, nil
}

// ReadStruct reads a tagged Struct from r.
func ReadStruct(r io.Reader) (*models.Struct, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInputError("failed to read tagged struct", err)
	}
	return UnmarshalStruct(data)
}
