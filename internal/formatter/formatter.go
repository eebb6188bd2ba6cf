package formatter

import (
	"fmt"

	"github.com/mcncl/structconv/internal/codec"
	"github.com/mcncl/structconv/internal/config"
	"github.com/mcncl/structconv/internal/errors"
	"github.com/mcncl/structconv/internal/models"
	"github.com/mcncl/structconv/internal/protoconv"
)

// Formatter renders conversion results according to the output config
type Formatter struct {
	format string
	indent bool
}

// NewFormatter creates a new Formatter instance
func NewFormatter(cfg config.OutputConfig) *Formatter {
	format := cfg.Format
	if format == "" {
		format = config.FormatTagged
	}
	return &Formatter{format: format, indent: cfg.Indent}
}

// FormatStruct renders a tagged Struct as tagged wire JSON or protobuf JSON
func (f *Formatter) FormatStruct(s *models.Struct, opts ...protoconv.Option) (string, error) {
	var (
		data []byte
		err  error
	)
	switch f.format {
	case config.FormatTagged:
		data, err = codec.MarshalStruct(s, f.indent)
	case config.FormatProtoJSON:
		data, err = protoconv.MarshalJSON(s, f.indent, opts...)
		if err == nil {
			data = f.normalize(data)
		}
	default:
		return "", errors.NewFormatError(fmt.Sprintf("cannot render format '%s'", f.format), errors.ErrUnknownFormat)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatPlain renders a decoded plain value as JSON
func (f *Formatter) FormatPlain(v models.JSONValue) (string, error) {
	data, err := codec.MarshalPlain(v, f.indent)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// normalize re-renders protojson output through the plain codec, since
// protojson randomizes its whitespace.
func (f *Formatter) normalize(data []byte) []byte {
	var v interface{}
	if err := codec.JSON.Unmarshal(data, &v); err != nil {
		return data
	}
	out, err := codec.MarshalPlain(v, f.indent)
	if err != nil {
		return data
	}
	return out
}
