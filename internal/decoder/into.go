package decoder

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mcncl/structconv/internal/errors"
	"github.com/mcncl/structconv/internal/models"
)

// DecodeInto decodes s and maps the result onto dst, which must be a
// non-nil pointer. Fields are matched by their json tag; numbers are
// converted to the destination's numeric type.
func DecodeInto(s *models.Struct, dst interface{}, opts ...Option) error {
	plain := FromStruct(s, opts...)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return errors.NewConvertError("failed to create struct decoder", err)
	}
	if err := dec.Decode(map[string]interface{}(plain)); err != nil {
		return errors.NewConvertError(fmt.Sprintf("failed to map struct into %T", dst), err)
	}
	return nil
}
