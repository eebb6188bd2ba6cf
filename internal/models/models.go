package models

// JSONValue is a generic type to represent any plain JSON-like value.
// This can be a string, number, boolean, object, or array.
type JSONValue = interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue
