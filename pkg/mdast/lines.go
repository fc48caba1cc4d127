package mdast

import "sort"

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// Lines is a line index over one source text.
type Lines struct {
	size  int
	lines []LineInfo
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) *Lines {
	idx := &Lines{size: len(content)}
	if len(content) == 0 {
		return idx
	}

	lineStart := 0

	for i, char := range content {
		if char == '\n' {
			// Check for CRLF.
			newlineStart := i
			if i > 0 && content[i-1] == '\r' {
				newlineStart = i - 1
			}

			idx.lines = append(idx.lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    i + 1,
			})
			lineStart = i + 1
		}
	}

	// Handle last line (may not have trailing newline).
	if lineStart < len(content) {
		idx.lines = append(idx.lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return idx
}

// Count returns the number of lines.
func (l *Lines) Count() int {
	return len(l.lines)
}

// At returns the metadata of a 1-based line number.
func (l *Lines) At(line int) (LineInfo, bool) {
	if line < 1 || line > len(l.lines) {
		return LineInfo{}, false
	}
	return l.lines[line-1], true
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (l *Lines) LineAt(offset int) (int, int) {
	if offset < 0 || len(l.lines) == 0 {
		return 0, 0
	}

	// Handle offset at or past end of content.
	if offset >= l.size {
		lastLine := l.lines[len(l.lines)-1]
		return len(l.lines), offset - lastLine.StartOffset + 1
	}

	// Binary search to find the line containing the offset.
	lineIdx := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].EndOffset > offset
	})

	if lineIdx >= len(l.lines) {
		lineIdx = len(l.lines) - 1
	}

	lineInfo := l.lines[lineIdx]

	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	// 1-based line and column.
	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// Position converts a byte range into line/column form. The end column
// points at the last byte of the range, matching CommonMark source
// position conventions. Unknown ranges yield an invalid position.
func (l *Lines) Position(r SourceRange) SourcePosition {
	if !r.IsKnown() {
		return SourcePosition{}
	}

	startLine, startCol := l.LineAt(r.StartOffset)

	end := max(r.EndOffset-1, r.StartOffset)
	// A trailing line ending belongs to the line it terminates.
	if line, _ := l.LineAt(end); line > 0 {
		info := l.lines[line-1]
		if end > r.StartOffset && end >= info.NewlineStart && info.NewlineStart > info.StartOffset {
			end = max(info.NewlineStart-1, r.StartOffset)
		}
	}
	endLine, endCol := l.LineAt(end)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}
