// Package schema converts raw CSV cell values into typed JSON values.
//
// CSV gives us strings for everything; the target API expects real JSON
// types. The functions here are the ordered coercion rules applied to each
// cell before it is placed in a payload:
//
//   - ParseBool: strict boolean vocabulary (yes/no, true/false, 1/0, t/f, y/n)
//   - ParseStringList: always-an-array fields (JSON literal, comma list, or
//     single value)
//   - Sniff: best-effort typing for everything else (booleans and embedded
//     JSON literals, with strings as the fallthrough)
//
// All functions are pure and operate on a single value, so coercion behavior
// is testable without any I/O.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the typed result of a coercion.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindList
	KindJSON
)

// Value is the discriminated result of coercing one raw cell.
// Exactly one of the payload fields is meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Str  string
	Bool bool
	List []string
	JSON json.RawMessage
}

// StringValue wraps a raw string with no coercion applied.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// ListValue wraps a string array.
func ListValue(list []string) Value { return Value{Kind: KindList, List: list} }

// MarshalJSON emits the underlying typed value.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	case KindJSON:
		return json.Marshal(v.JSON)
	default:
		return json.Marshal(v.Str)
	}
}

// InvalidBoolError reports a value that is not in the boolean vocabulary.
type InvalidBoolError struct {
	Value string
}

func (e *InvalidBoolError) Error() string {
	return fmt.Sprintf("cannot parse boolean from value %q", e.Value)
}

// ParseBool parses a cell into a strict boolean.
//
// Accepted, case-insensitive:
//
//	true:  "true", "1", "yes", "y", "t"
//	false: "false", "0", "no", "n", "f"
//
// Any other value returns an *InvalidBoolError. Callers are expected to skip
// empty cells before calling.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y", "t":
		return true, nil
	case "false", "0", "no", "n", "f":
		return false, nil
	default:
		return false, &InvalidBoolError{Value: raw}
	}
}

// ParseStringList parses a cell into an array of strings.
//
// Rules, in order of precedence:
//  1. A valid JSON array literal is parsed element-wise, each element
//     rendered as a string.
//  2. A comma-separated string is split, parts trimmed, empty parts dropped.
//  3. Anything else becomes a one-element array.
//
// A value that parses as JSON but is not an array falls through to rules
// 2 and 3.
func ParseStringList(raw string) []string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}

	if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
		var parsed []any
		if err := json.Unmarshal([]byte(v), &parsed); err == nil {
			out := make([]string, 0, len(parsed))
			for _, el := range parsed {
				out = append(out, stringify(el))
			}
			return out
		}
	}

	if strings.Contains(v, ",") {
		var out []string
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	}

	return []string{v}
}

// Sniff applies the generic coercion rules to a cell:
// "true"/"false" (case-insensitive) become booleans, bracket-delimited
// values that parse as JSON arrays or objects are kept as parsed JSON, and
// everything else stays a string. No numeric coercion is performed.
func Sniff(raw string) Value {
	v := strings.TrimSpace(raw)

	switch strings.ToLower(v) {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}

	if (strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]")) ||
		(strings.HasPrefix(v, "{") && strings.HasSuffix(v, "}")) {
		if json.Valid([]byte(v)) {
			return Value{Kind: KindJSON, JSON: json.RawMessage(v)}
		}
	}

	return StringValue(v)
}

// stringify renders one JSON array element the way the API expects list
// members: strings pass through, everything else is formatted compactly.
func stringify(el any) string {
	switch t := el.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
