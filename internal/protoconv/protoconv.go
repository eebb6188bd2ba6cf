// Package protoconv bridges the tagged model to google.golang.org/protobuf's
// well-known Struct types, and to their canonical JSON form.
package protoconv

import (
	"fmt"
	"sort"

	"github.com/mcncl/structconv/internal/diag"
	"github.com/mcncl/structconv/internal/errors"
	"github.com/mcncl/structconv/internal/models"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Option configures a single conversion.
type Option func(*options)

type options struct {
	debug  bool
	logger *zap.Logger
}

// WithDebug reports every dropped field or element as a diagnostic.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithLogger sends diagnostics to l instead of the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newReporter(opts []Option) diag.Reporter {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return diag.NewReporter(o.debug, o.logger)
}

// ToProto converts s into a structpb.Struct, dispatching on each Value's Kind.
func ToProto(s *models.Struct, opts ...Option) *structpb.Struct {
	return toProtoStruct(s, newReporter(opts))
}

// FromProto converts a structpb.Struct into the tagged model. Every produced
// Value carries its Kind. Null values are dropped.
func FromProto(s *structpb.Struct, opts ...Option) *models.Struct {
	return fromProtoStruct(s, newReporter(opts))
}

func toProtoStruct(s *models.Struct, report diag.Reporter) *structpb.Struct {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value)}
	if s == nil {
		return out
	}
	for _, key := range sortedKeys(s.Fields) {
		v := toProtoValue(s.Fields[key], report)
		if v == nil {
			report.Skip("field cannot be converted to protobuf, skipping",
				zap.String("key", key),
				zap.String("kind", kindOf(s.Fields[key])))
			continue
		}
		out.Fields[key] = v
	}
	return out
}

func toProtoList(lv *models.ListValue, report diag.Reporter) *structpb.ListValue {
	out := &structpb.ListValue{}
	if lv == nil {
		return out
	}
	for i, item := range lv.Values {
		v := toProtoValue(item, report)
		if v == nil {
			report.Skip("list element cannot be converted to protobuf, skipping",
				zap.Int("index", i),
				zap.String("kind", kindOf(item)))
			continue
		}
		out.Values = append(out.Values, v)
	}
	return out
}

func toProtoValue(v *models.Value, report diag.Reporter) *structpb.Value {
	// structpb needs no tag, so untagged legacy list elements convert by payload.
	kind := v.InferKind()
	if !v.HasPayload(kind) {
		return nil
	}
	switch kind {
	case models.KindStruct:
		return structpb.NewStructValue(toProtoStruct(v.StructValue, report))
	case models.KindList:
		return structpb.NewListValue(toProtoList(v.ListValue, report))
	case models.KindString:
		return structpb.NewStringValue(*v.StringValue)
	case models.KindNumber:
		return structpb.NewNumberValue(*v.NumberValue)
	case models.KindBoolean:
		return structpb.NewBoolValue(*v.BooleanValue)
	default:
		return nil
	}
}

func fromProtoStruct(s *structpb.Struct, report diag.Reporter) *models.Struct {
	out := models.NewStruct()
	fields := s.GetFields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := fromProtoValue(fields[key], report)
		if v == nil {
			report.Skip("protobuf field kind is not supported, skipping",
				zap.String("key", key),
				zap.String("kind", protoKindName(fields[key])))
			continue
		}
		out.Fields[key] = v
	}
	return out
}

func fromProtoValue(v *structpb.Value, report diag.Reporter) *models.Value {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StructValue:
		return models.NewStructValue(fromProtoStruct(k.StructValue, report))
	case *structpb.Value_ListValue:
		values := make([]*models.Value, 0, len(k.ListValue.GetValues()))
		for i, item := range k.ListValue.GetValues() {
			tagged := fromProtoValue(item, report)
			if tagged == nil {
				report.Skip("protobuf list element kind is not supported, skipping",
					zap.Int("index", i),
					zap.String("kind", protoKindName(item)))
				continue
			}
			values = append(values, tagged)
		}
		return models.NewListValue(values)
	case *structpb.Value_StringValue:
		return models.NewStringValue(k.StringValue)
	case *structpb.Value_NumberValue:
		return models.NewNumberValue(k.NumberValue)
	case *structpb.Value_BoolValue:
		return models.NewBoolValue(k.BoolValue)
	default:
		// NullValue and unset kinds have no tagged counterpart.
		return nil
	}
}

// MarshalJSON renders s as canonical protobuf JSON, which is plain JSON.
func MarshalJSON(s *models.Struct, indent bool, opts ...Option) ([]byte, error) {
	m := protojson.MarshalOptions{}
	if indent {
		m.Multiline = true
		m.Indent = "  "
	}
	data, err := m.Marshal(ToProto(s, opts...))
	if err != nil {
		return nil, errors.NewFormatError("failed to marshal protobuf JSON", err)
	}
	return data, nil
}

// UnmarshalJSON reads canonical protobuf JSON for a Struct.
func UnmarshalJSON(data []byte, opts ...Option) (*models.Struct, error) {
	if len(data) == 0 {
		return nil, errors.NewParsingError("input is empty", errors.ErrEmptyInput)
	}
	pb := &structpb.Struct{}
	if err := protojson.Unmarshal(data, pb); err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("invalid protobuf JSON: %v", err), errors.ErrInvalidJSON)
	}
	return FromProto(pb, opts...), nil
}

func kindOf(v *models.Value) string {
	if v == nil {
		return "<nil>"
	}
	if v.Kind == "" {
		return "<unset>"
	}
	return string(v.Kind)
}

func protoKindName(v *structpb.Value) string {
	switch v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return "nullValue"
	case nil:
		return "<unset>"
	default:
		return fmt.Sprintf("%T", v.GetKind())
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
