package models

// Kind is the discriminant tag of a tagged Value.
type Kind string

// The closed set of kinds a Value can carry.
const (
	KindStruct  Kind = "structValue"
	KindList    Kind = "listValue"
	KindString  Kind = "stringValue"
	KindNumber  Kind = "numberValue"
	KindBoolean Kind = "booleanValue"
)

// Kinds lists every known Kind in a stable order.
var Kinds = []Kind{KindStruct, KindList, KindString, KindNumber, KindBoolean}

// Known reports whether k is one of the defined kinds.
func (k Kind) Known() bool {
	switch k {
	case KindStruct, KindList, KindString, KindNumber, KindBoolean:
		return true
	default:
		return false
	}
}

// Value is one tagged JSON-like value. A well-formed Value has exactly one
// non-nil payload and Kind names it.
type Value struct {
	Kind         Kind       `json:"kind,omitempty"`
	StructValue  *Struct    `json:"structValue,omitempty"`
	ListValue    *ListValue `json:"listValue,omitempty"`
	StringValue  *string    `json:"stringValue,omitempty"`
	NumberValue  *float64   `json:"numberValue,omitempty"`
	BooleanValue *bool      `json:"booleanValue,omitempty"`
}

// Struct is the tagged container for an object.
type Struct struct {
	Fields map[string]*Value `json:"fields"`
}

// ListValue is the tagged container for an array.
type ListValue struct {
	Values []*Value `json:"values"`
}

// NewStruct returns a Struct with an empty, non-nil field map.
func NewStruct() *Struct {
	return &Struct{Fields: make(map[string]*Value)}
}

// NewStructValue wraps s in a Value tagged structValue.
func NewStructValue(s *Struct) *Value {
	return &Value{Kind: KindStruct, StructValue: s}
}

// NewListValue wraps values in a Value tagged listValue. A nil slice is
// replaced with an empty one so the list payload always reads as a sequence.
func NewListValue(values []*Value) *Value {
	if values == nil {
		values = []*Value{}
	}
	return &Value{Kind: KindList, ListValue: &ListValue{Values: values}}
}

// NewStringValue returns a Value tagged stringValue.
func NewStringValue(s string) *Value {
	return &Value{Kind: KindString, StringValue: &s}
}

// NewNumberValue returns a Value tagged numberValue.
func NewNumberValue(n float64) *Value {
	return &Value{Kind: KindNumber, NumberValue: &n}
}

// NewBoolValue returns a Value tagged booleanValue.
func NewBoolValue(b bool) *Value {
	return &Value{Kind: KindBoolean, BooleanValue: &b}
}

// payloadKinds returns the kinds whose payload field is populated.
func (v *Value) payloadKinds() []Kind {
	var kinds []Kind
	for _, k := range Kinds {
		if v.HasPayload(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// HasPayload reports whether the payload matching k is populated.
func (v *Value) HasPayload(k Kind) bool {
	if v == nil {
		return false
	}
	switch k {
	case KindStruct:
		return v.StructValue != nil
	case KindList:
		return v.ListValue != nil
	case KindString:
		return v.StringValue != nil
	case KindNumber:
		return v.NumberValue != nil
	case KindBoolean:
		return v.BooleanValue != nil
	default:
		return false
	}
}

// Valid reports whether v carries a known Kind and exactly the one payload
// that Kind names.
func (v *Value) Valid() bool {
	if v == nil || !v.Kind.Known() {
		return false
	}
	kinds := v.payloadKinds()
	return len(kinds) == 1 && kinds[0] == v.Kind
}

// InferKind returns Kind when set. Otherwise it returns the kind implied by
// the single populated payload, or "" when no payload, or more than one, is set.
func (v *Value) InferKind() Kind {
	if v == nil {
		return ""
	}
	if v.Kind != "" {
		return v.Kind
	}
	kinds := v.payloadKinds()
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}
