package mdast

import "strconv"

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// NoRange marks a node with no known source location.
//
//nolint:gochecknoglobals // Immutable sentinel value.
var NoRange = SourceRange{StartOffset: -1, EndOffset: -1}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// IsKnown returns true if the range points into the source.
func (r SourceRange) IsKnown() bool {
	return r.StartOffset >= 0 && r.EndOffset >= r.StartOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Union returns the smallest range covering r and other.
// Unknown ranges are ignored.
func (r SourceRange) Union(other SourceRange) SourceRange {
	if !other.IsKnown() {
		return r
	}
	if !r.IsKnown() {
		return other
	}
	return SourceRange{
		StartOffset: min(r.StartOffset, other.StartOffset),
		EndOffset:   max(r.EndOffset, other.EndOffset),
	}
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition represents a range in terms of line/column positions.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if both start and end positions are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 &&
		sp.EndLine > 0 && sp.EndColumn > 0
}

// IsSingleLine returns true if start and end are on the same line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}

// String formats the position as "line:col-line:col", the form used by
// data-sourcepos attributes.
func (sp SourcePosition) String() string {
	return strconv.Itoa(sp.StartLine) + ":" + strconv.Itoa(sp.StartColumn) + "-" +
		strconv.Itoa(sp.EndLine) + ":" + strconv.Itoa(sp.EndColumn)
}
