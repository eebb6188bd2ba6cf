// Package decoder turns the tagged Struct representation back into plain values.
//
// Dispatch is on each Value's Kind, not on which payload happens to be
// populated. Fields and elements with an unknown or missing Kind, or whose
// payload does not match their Kind, are dropped.
package decoder

import (
	"sort"

	"github.com/mcncl/structconv/internal/models"
	"go.uber.org/zap"
)

// FromStruct decodes s into a plain object. A nil Struct decodes to an empty object.
func FromStruct(s *models.Struct, opts ...Option) models.JSONObject {
	return newOptions(opts).fromStruct(s)
}

// FromListValue decodes lv into a plain array. When lv or its values are
// absent it returns an empty models.JSONObject, not an empty array.
func FromListValue(lv *models.ListValue, opts ...Option) models.JSONValue {
	return newOptions(opts).fromListValue(lv)
}

func (o *options) fromStruct(s *models.Struct) models.JSONObject {
	result := make(models.JSONObject)
	if s == nil {
		return result
	}
	report := o.reporter()

	for _, key := range sortedKeys(s.Fields) {
		field := s.Fields[key]
		value, ok := o.decode(field)
		if !ok {
			report.Skip("field kind is not supported, skipping",
				zap.String("key", key),
				zap.String("kind", kindName(field)))
			continue
		}
		result[o.key(key)] = value
	}

	return result
}

func (o *options) fromListValue(lv *models.ListValue) models.JSONValue {
	if lv == nil || lv.Values == nil {
		return models.JSONObject{}
	}
	report := o.reporter()

	list := make(models.JSONArray, 0, len(lv.Values))
	for i, item := range lv.Values {
		value, ok := o.decode(item)
		if !ok {
			report.Skip("list element kind is not supported, skipping",
				zap.Int("index", i),
				zap.String("kind", kindName(item)))
			continue
		}
		list = append(list, value)
	}

	return list
}

// decode unwraps a single Value. ok is false when the Value cannot be decoded.
func (o *options) decode(v *models.Value) (models.JSONValue, bool) {
	kind := o.kind(v)
	if !v.HasPayload(kind) {
		return nil, false
	}

	switch kind {
	case models.KindStruct:
		return o.fromStruct(v.StructValue), true
	case models.KindList:
		return o.fromListValue(v.ListValue), true
	case models.KindString:
		return *v.StringValue, true
	case models.KindNumber:
		return *v.NumberValue, true
	case models.KindBoolean:
		return *v.BooleanValue, true
	default:
		return nil, false
	}
}

func kindName(v *models.Value) string {
	switch {
	case v == nil:
		return "<nil>"
	case v.Kind == "":
		return "<unset>"
	default:
		return string(v.Kind)
	}
}

func sortedKeys(fields map[string]*models.Value) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
