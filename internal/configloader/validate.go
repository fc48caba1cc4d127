package configloader

import (
	"fmt"
	"path"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the invalid key or environment variable (e.g., "list_style").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown keys).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r *ValidationResult) fail(field string, v any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   v,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks resolved settings. Width is checked while parsing since
// the record cannot hold a negative value.
func Validate(s Settings) *ValidationResult {
	result := &ValidationResult{}
	md := s.Markdown

	if !md.ListStyle.IsValid() {
		result.fail("list_style", md.ListStyle,
			"invalid list style %q; must be one of: dash, plus, star", md.ListStyle)
	}

	if d := md.FrontMatterDelimiter; d != nil {
		switch {
		case strings.TrimSpace(*d) == "":
			result.fail("front_matter_delimiter", *d, "delimiter must not be empty")
		case strings.ContainsAny(*d, "\r\n"):
			result.fail("front_matter_delimiter", *d, "delimiter must be a single line")
		}
	}

	if p := md.HeaderIDs; p != nil && strings.ContainsAny(*p, " \t\r\n") {
		result.fail("header_ids", *p, "prefix must not contain whitespace")
	}

	if !s.Format.IsValid() {
		result.fail("format", s.Format, "invalid format %q; must be one of: json, yaml, tree", s.Format)
	}

	if s.Jobs < 0 {
		result.fail("jobs", s.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		result.fail("color", s.Color, "invalid color mode %q; must be one of: auto, always, never", s.Color)
	}

	for i, pattern := range s.Exclude {
		// path.Match reports only malformed patterns.
		if _, err := path.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("exclude[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

// validatePreset checks preset names as layers are applied.
func validatePreset(layer *Layer) *ValidationError {
	for _, s := range layer.Settings {
		if s.Key != keyPreset {
			continue
		}
		if s.value.s != PresetDefault && s.value.s != PresetGFM {
			return &ValidationError{
				FilePath: fileOf(layer),
				Line:     s.Line,
				Field:    keyPreset,
				Value:    s.value.s,
				Message:  fmt.Sprintf("unknown preset %q; must be default or gfm", s.value.s),
			}
		}
	}
	return nil
}

// fileOf returns the layer source when it names a file.
func fileOf(layer *Layer) string {
	switch layer.Source {
	case SourceEnv, SourceFlags:
		return ""
	default:
		return layer.Source
	}
}
