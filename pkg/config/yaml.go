package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes v as a YAML document with the package indentation.
// Option records and documents that embed them share this layout.
func MarshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// Clone creates a deep copy of the options.
func (o *Options) Clone() *Options {
	if o == nil {
		return nil
	}

	clone := *o
	clone.HeaderIDs = cloneString(o.HeaderIDs)
	clone.FrontMatterDelimiter = cloneString(o.FrontMatterDelimiter)
	clone.DefaultInfoString = cloneString(o.DefaultInfoString)
	return &clone
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
