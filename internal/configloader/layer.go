package configloader

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdtree/pkg/config"
)

const keyPreset = "preset"

// errNegative rejects negative values for unsigned keys.
var errNegative = errors.New("must not be negative")

// valueKind is the type a key accepts.
type valueKind int

const (
	kindBool valueKind = iota
	kindUint
	kindInt
	kindString
	kindOptionalString
	kindStringList
)

// value holds one decoded setting. Only the member matching the key's kind
// is meaningful.
type value struct {
	b    bool
	n    int64
	s    string
	opt  *string
	list []string
}

// keySpec describes one configuration key.
type keySpec struct {
	kind  valueKind
	apply func(s *Settings, v value)
}

func boolKey(set func(o *config.Options, b bool)) keySpec {
	return keySpec{kind: kindBool, apply: func(s *Settings, v value) { set(&s.Markdown, v.b) }}
}

func optionalKey(set func(o *config.Options, p *string)) keySpec {
	return keySpec{kind: kindOptionalString, apply: func(s *Settings, v value) { set(&s.Markdown, v.opt) }}
}

// keySpecs lists every key a layer may set. The Markdown keys match the
// yaml tags of config.Options.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keySpecs = map[string]keySpec{
	keyPreset: {kind: kindString},

	"strikethrough":     boolKey(func(o *config.Options, b bool) { o.Strikethrough = b }),
	"tagfilter":         boolKey(func(o *config.Options, b bool) { o.Tagfilter = b }),
	"table":             boolKey(func(o *config.Options, b bool) { o.Table = b }),
	"autolink":          boolKey(func(o *config.Options, b bool) { o.Autolink = b }),
	"tasklist":          boolKey(func(o *config.Options, b bool) { o.Tasklist = b }),
	"superscript":       boolKey(func(o *config.Options, b bool) { o.Superscript = b }),
	"footnotes":         boolKey(func(o *config.Options, b bool) { o.Footnotes = b }),
	"description_lists": boolKey(func(o *config.Options, b bool) { o.DescriptionLists = b }),
	"header_ids":        optionalKey(func(o *config.Options, p *string) { o.HeaderIDs = p }),
	"front_matter_delimiter": optionalKey(func(o *config.Options, p *string) {
		o.FrontMatterDelimiter = p
	}),

	"smart":                     boolKey(func(o *config.Options, b bool) { o.Smart = b }),
	"default_info_string":       optionalKey(func(o *config.Options, p *string) { o.DefaultInfoString = p }),
	"relaxed_tasklist_matching": boolKey(func(o *config.Options, b bool) { o.RelaxedTasklistMatching = b }),
	"relaxed_autolinks":         boolKey(func(o *config.Options, b bool) { o.RelaxedAutolinks = b }),

	"hardbreaks":       boolKey(func(o *config.Options, b bool) { o.Hardbreaks = b }),
	"github_pre_lang":  boolKey(func(o *config.Options, b bool) { o.GithubPreLang = b }),
	"full_info_string": boolKey(func(o *config.Options, b bool) { o.FullInfoString = b }),
	"width": {kind: kindUint, apply: func(s *Settings, v value) {
		s.Markdown.Width = uint(v.n)
	}},
	"unsafe": boolKey(func(o *config.Options, b bool) { o.Unsafe = b }),
	"escape": boolKey(func(o *config.Options, b bool) { o.Escape = b }),
	"list_style": {kind: kindString, apply: func(s *Settings, v value) {
		s.Markdown.ListStyle = config.ListStyle(v.s)
	}},
	"sourcepos": boolKey(func(o *config.Options, b bool) { o.Sourcepos = b }),

	"format": {kind: kindString, apply: func(s *Settings, v value) {
		s.Format = config.OutputFormat(v.s)
	}},
	"jobs": {kind: kindInt, apply: func(s *Settings, v value) {
		s.Jobs = int(v.n)
	}},
	"exclude": {kind: kindStringList, apply: func(s *Settings, v value) {
		s.Exclude = v.list
	}},
	"color": {kind: kindString, apply: func(s *Settings, v value) {
		s.Color = v.s
	}},
}

// Keys returns every configuration key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(keySpecs))
	for k := range keySpecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Setting is one key assigned by a layer.
type Setting struct {
	// Key is the configuration key.
	Key string

	// Line is the line of the key in its file. Zero outside files.
	Line int

	value value
}

// Layer is one configuration source. Keys it does not set leave lower
// layers in place; a key set to null clears an optional value.
type Layer struct {
	// Source names the layer: a file path, "environment" or "flags".
	Source string

	// Settings are the assigned keys in source order.
	Settings []Setting

	// Warnings are non-fatal findings such as unknown keys.
	Warnings []ValidationError
}

// NewLayer creates an empty layer.
func NewLayer(source string) *Layer {
	return &Layer{Source: source}
}

// Set parses raw according to key's type and records it. Booleans use
// strconv.ParseBool, lists are comma separated, and "~" or "null" clears an
// optional string.
func (l *Layer) Set(key, raw string) error {
	spec, ok := keySpecs[key]
	if !ok {
		return &ValidationError{Field: key, Message: "unknown configuration key"}
	}

	v, err := parseRaw(spec.kind, raw)
	if err != nil {
		return &ValidationError{Field: key, Value: raw, Message: err.Error()}
	}
	l.Settings = append(l.Settings, Setting{Key: key, value: v})
	return nil
}

// Len returns the number of settings in the layer.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Settings)
}

func parseRaw(kind valueKind, raw string) (value, error) {
	switch kind {
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return value{}, fmt.Errorf("invalid boolean %q (expected true/false/1/0)", raw)
		}
		return value{b: b}, nil
	case kindUint, kindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return value{}, fmt.Errorf("invalid integer %q", raw)
		}
		if kind == kindUint && n < 0 {
			return value{}, errNegative
		}
		return value{n: n}, nil
	case kindOptionalString:
		if raw == "~" || raw == "null" {
			return value{}, nil
		}
		return value{opt: &raw}, nil
	case kindStringList:
		var list []string
		for part := range strings.SplitSeq(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		return value{list: list}, nil
	default:
		return value{s: raw}, nil
	}
}

// parseFile reads a YAML (or JSON) configuration document into a layer.
func parseFile(path string, data []byte) (*Layer, error) {
	layer := NewLayer(path)

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{FilePath: path, Message: fmt.Sprintf("parse YAML: %v", err)}
	}
	if len(doc.Content) == 0 {
		return layer, nil
	}

	root := doc.Content[0]
	if isNull(root) {
		return layer, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &ValidationError{FilePath: path, Line: root.Line, Message: "configuration must be a mapping"}
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]

		spec, ok := keySpecs[keyNode.Value]
		if !ok {
			layer.Warnings = append(layer.Warnings, ValidationError{
				FilePath: path,
				Line:     keyNode.Line,
				Field:    keyNode.Value,
				Message:  "unknown key; it will be ignored",
			})
			continue
		}

		v, err := decodeNode(spec.kind, valNode)
		if err != nil {
			return nil, &ValidationError{
				FilePath: path,
				Line:     valNode.Line,
				Field:    keyNode.Value,
				Value:    valNode.Value,
				Message:  err.Error(),
			}
		}
		layer.Settings = append(layer.Settings, Setting{Key: keyNode.Value, Line: keyNode.Line, value: v})
	}

	return layer, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func decodeNode(kind valueKind, n *yaml.Node) (value, error) {
	switch kind {
	case kindBool:
		var b bool
		if isNull(n) || n.Decode(&b) != nil {
			return value{}, errors.New("expected true or false")
		}
		return value{b: b}, nil
	case kindUint, kindInt:
		var i int64
		if isNull(n) || n.Decode(&i) != nil {
			return value{}, errors.New("expected a whole number")
		}
		if kind == kindUint && i < 0 {
			return value{}, errNegative
		}
		return value{n: i}, nil
	case kindOptionalString:
		if isNull(n) {
			return value{}, nil
		}
		var s string
		if n.Kind != yaml.ScalarNode || n.Decode(&s) != nil {
			return value{}, errors.New("expected a string or null")
		}
		return value{opt: &s}, nil
	case kindStringList:
		if isNull(n) {
			return value{}, nil
		}
		var list []string
		if n.Kind != yaml.SequenceNode || n.Decode(&list) != nil {
			return value{}, errors.New("expected a list of strings")
		}
		return value{list: list}, nil
	default:
		var s string
		if isNull(n) || n.Kind != yaml.ScalarNode || n.Decode(&s) != nil {
			return value{}, errors.New("expected a string")
		}
		return value{s: s}, nil
	}
}
