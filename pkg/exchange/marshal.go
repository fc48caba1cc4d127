package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdtree/pkg/config"
)

// ErrFormat is returned when a value is marshaled to a format that has no
// byte serialization here.
var ErrFormat = errors.New("unsupported output format")

// Marshal serializes v as JSON or YAML. JSON output is indented with two
// spaces and newline terminated. Payload keys are emitted in sorted order
// by both serializers, so equal values always produce equal bytes.
func Marshal(v Value, format config.OutputFormat) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		return marshalJSON(v)
	case config.FormatYAML:
		data, err := config.MarshalYAML(v)
		if err != nil {
			return nil, fmt.Errorf("marshal value: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
}

// Unmarshal parses JSON or YAML produced by Marshal back into a Value.
func Unmarshal(data []byte, format config.OutputFormat) (Value, error) {
	var v Value
	switch format {
	case config.FormatJSON:
		if err := json.Unmarshal(data, &v); err != nil {
			return Value{}, fmt.Errorf("parse json: %w", err)
		}
	case config.FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return Value{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return v, nil
}

func marshalJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}
