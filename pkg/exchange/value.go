// Package exchange encodes syntax trees into a transport-neutral tagged
// tree and decodes them back.
//
// Every node becomes a Value: the variant tag, a payload of named fields
// and the ordered encoded children. Field values are limited to string,
// uint64, bool and []string so any serializer (JSON, YAML, a host term
// format) can carry them.
package exchange

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// Payload field names.
const (
	FieldListType    = "list_type"
	FieldStart       = "start"
	FieldDelimiter   = "delimiter"
	FieldBulletChar  = "bullet_char"
	FieldTight       = "tight"
	FieldFenced      = "fenced"
	FieldFenceChar   = "fence_char"
	FieldFenceLength = "fence_length"
	FieldInfo        = "info"
	FieldLiteral     = "literal"
	FieldLevel       = "level"
	FieldSetext      = "setext"
	FieldName        = "name"
	FieldAlignments  = "alignments"
	FieldHeader      = "header"
	FieldText        = "text"
	FieldCode        = "code"
	FieldHTML        = "html"
	FieldURL         = "url"
	FieldTitle       = "title"
)

// Fields is the payload of one encoded node.
type Fields map[string]any

// Value is one encoded node: (tag, payload, ordered children).
type Value struct {
	Tag      string  `json:"tag" yaml:"tag"`
	Fields   Fields  `json:"fields" yaml:"fields"`
	Children []Value `json:"children" yaml:"children"`
}

// Len returns the number of nodes in the value, including itself.
func (v Value) Len() int {
	n := 1
	for _, c := range v.Children {
		n += c.Len()
	}
	return n
}

// Equal reports whether a and b have the same tags, payloads and children
// in the same order. Numeric fields compare by value regardless of the Go
// type a serializer decoded them into.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag || len(a.Fields) != len(b.Fields) || len(a.Children) != len(b.Children) {
		return false
	}
	for k, av := range a.Fields {
		bv, ok := b.Fields[k]
		if !ok || !fieldEqual(av, bv) {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func fieldEqual(a, b any) bool {
	if au, ok := asUint(a); ok {
		bu, ok := asUint(b)
		return ok && au == bu
	}
	if as, ok := asStrings(a); ok {
		bs, ok := asStrings(b)
		return ok && reflect.DeepEqual(nonNil(as), nonNil(bs))
	}
	return reflect.DeepEqual(a, b)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// asUint converts the numeric representations produced by encoding/json
// and yaml.v3 to uint64.
func asUint(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case int:
		if n >= 0 {
			return uint64(n), true
		}
	case int64:
		if n >= 0 {
			return uint64(n), true
		}
	case float64:
		if n >= 0 && n == math.Trunc(n) && n <= math.MaxUint32*float64(math.MaxUint32) {
			return uint64(n), true
		}
	case json.Number:
		u, err := strconv.ParseUint(n.String(), 10, 64)
		return u, err == nil
	}
	return 0, false
}

// asStrings converts []string and the []any produced by generic decoders.
func asStrings(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}
