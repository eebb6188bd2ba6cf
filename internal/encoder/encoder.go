// Package encoder turns plain values into the tagged Struct representation.
//
// Encoding never fails. Values outside the representable domain (nil,
// functions, channels, byte slices and the like) are dropped from the
// output, and reported as diagnostics when WithDebug(true) is passed.
package encoder

import (
	"sort"

	"github.com/mcncl/structconv/internal/models"
	"go.uber.org/zap"
)

// ToStruct encodes obj as a Struct. Every supported field becomes a Value
// carrying its Kind; unsupported fields are omitted.
func ToStruct(obj models.JSONObject, opts ...Option) *models.Struct {
	return newOptions(opts).toStruct(obj)
}

// ToListValue encodes an array as a Value tagged listValue. When v is nil or
// not a sequence it returns an empty Value with no Kind and no payload.
func ToListValue(v models.JSONValue, opts ...Option) *models.Value {
	o := newOptions(opts)
	c := classify(v)
	if c.class != classArray {
		return &models.Value{}
	}
	return o.toListValue(c.value.(models.JSONArray))
}

func (o *options) toStruct(obj models.JSONObject) *models.Struct {
	out := models.NewStruct()
	report := o.reporter()

	for _, key := range sortedKeys(obj) {
		value := obj[key]
		c := classify(value)

		tagged := o.encode(c)
		if tagged == nil {
			report.Skip("field type is not supported, skipping",
				zap.String("key", key),
				zap.String("type", typeName(value)))
			continue
		}
		out.Fields[o.key(key)] = tagged
	}

	return out
}

func (o *options) toListValue(arr models.JSONArray) *models.Value {
	values := make([]*models.Value, 0, len(arr))
	report := o.reporter()

	for i, item := range arr {
		c := classify(item)

		tagged := o.encode(c)
		if tagged == nil {
			report.Skip("list element type is not supported, skipping",
				zap.Int("index", i),
				zap.String("type", typeName(item)))
			continue
		}

		// Nested lists always keep their Kind.
		if o.legacyLists && c.class != classArray {
			tagged.Kind = ""
		}
		values = append(values, tagged)
	}

	return models.NewListValue(values)
}

// encode builds the tagged Value for a classified plain value, or returns nil
// when the value is unsupported.
func (o *options) encode(c classified) *models.Value {
	switch c.class {
	case classArray:
		return o.toListValue(c.value.(models.JSONArray))
	case classObject:
		return models.NewStructValue(o.toStruct(c.value.(models.JSONObject)))
	case classString:
		return models.NewStringValue(c.value.(string))
	case classNumber:
		return models.NewNumberValue(c.value.(float64))
	case classBoolean:
		return models.NewBoolValue(c.value.(bool))
	default:
		return nil
	}
}

func sortedKeys(obj models.JSONObject) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
