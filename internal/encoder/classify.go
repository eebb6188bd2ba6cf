package encoder

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mcncl/structconv/internal/models"
)

// class is the plain-value category a Go value falls into.
type class int

const (
	classUnsupported class = iota
	classObject
	classArray
	classString
	classNumber
	classBoolean
)

// classified is a value normalized to the type its class implies:
// models.JSONObject, models.JSONArray, string, float64 or bool.
type classified struct {
	class class
	value interface{}
}

var unsupported = classified{class: classUnsupported}

// classify sorts v into a plain-value class by its runtime type.
func classify(v models.JSONValue) classified {
	switch t := v.(type) {
	case nil:
		return unsupported
	case models.JSONObject:
		return classified{classObject, t}
	case map[string]interface{}:
		return classified{classObject, models.JSONObject(t)}
	case models.JSONArray:
		return classified{classArray, t}
	case []interface{}:
		return classified{classArray, models.JSONArray(t)}
	case string:
		return classified{classString, t}
	case bool:
		return classified{classBoolean, t}
	case float64:
		return classified{classNumber, t}
	case float32:
		return classified{classNumber, float64(t)}
	case int:
		return classified{classNumber, float64(t)}
	case int64:
		return classified{classNumber, float64(t)}
	case int32:
		return classified{classNumber, float64(t)}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return unsupported
		}
		return classified{classNumber, f}
	case []byte:
		return unsupported
	}
	return classifyReflect(reflect.ValueOf(v))
}

// classifyReflect handles named types, other numeric widths, typed maps and
// slices, and Go structs.
func classifyReflect(rv reflect.Value) classified {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return unsupported
		}
		return classify(rv.Elem().Interface())
	case reflect.String:
		return classified{classString, rv.String()}
	case reflect.Bool:
		return classified{classBoolean, rv.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classified{classNumber, float64(rv.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return classified{classNumber, float64(rv.Uint())}
	case reflect.Float32, reflect.Float64:
		return classified{classNumber, rv.Float()}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return unsupported
		}
		obj := make(models.JSONObject, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			obj[iter.Key().String()] = iter.Value().Interface()
		}
		return classified{classObject, obj}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return unsupported
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return unsupported
		}
		arr := make(models.JSONArray, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			arr[i] = rv.Index(i).Interface()
		}
		return classified{classArray, arr}
	case reflect.Struct:
		obj, err := structToObject(rv.Interface())
		if err != nil {
			return unsupported
		}
		return classified{classObject, obj}
	default:
		return unsupported
	}
}

// structToObject flattens a Go struct into an object keyed by its json tags.
func structToObject(v interface{}) (models.JSONObject, error) {
	out := make(map[string]interface{})
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &out,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("failed to flatten %T: %w", v, err)
	}
	return models.JSONObject(out), nil
}

// typeName describes v for diagnostics.
func typeName(v models.JSONValue) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
