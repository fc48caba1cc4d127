package goldmark

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FrontMatter is a metadata block at the very start of a document, fenced
// by a delimiter line such as "---".
type FrontMatter struct {
	// Delimiter is the fence line that opened and closed the block.
	Delimiter string

	// Raw is the text between the fences.
	Raw []byte

	// End is the byte offset just past the closing fence line.
	End int
}

// Decode unmarshals the front matter as YAML into out.
func (fm FrontMatter) Decode(out any) error {
	if err := yaml.Unmarshal(fm.Raw, out); err != nil {
		return fmt.Errorf("decode front matter: %w", err)
	}
	return nil
}

// Map decodes the front matter into a generic map.
func (fm FrontMatter) Map() (map[string]any, error) {
	meta := map[string]any{}
	if err := fm.Decode(&meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// findFrontMatter locates a front matter block fenced by delim. The opening
// fence must be the first line of source.
func findFrontMatter(source []byte, delim string) (FrontMatter, bool) {
	if delim == "" {
		return FrontMatter{}, false
	}

	line, next := cutLine(source, 0)
	if string(line) != delim {
		return FrontMatter{}, false
	}

	bodyStart := next
	for pos := next; pos < len(source); {
		line, next = cutLine(source, pos)
		if string(line) == delim {
			return FrontMatter{
				Delimiter: delim,
				Raw:       source[bodyStart:pos],
				End:       next,
			}, true
		}
		pos = next
	}
	return FrontMatter{}, false
}

// cutLine returns the line starting at pos without its line ending, and
// the offset of the following line.
func cutLine(source []byte, pos int) ([]byte, int) {
	rest := source[pos:]
	idx := bytes.IndexByte(rest, '\n')
	if idx < 0 {
		return bytes.TrimRight(rest, " \t"), len(source)
	}
	return bytes.TrimRight(rest[:idx], " \t\r"), pos + idx + 1
}

// maskFrontMatter blanks the front matter so the parser sees empty lines.
// Byte offsets and line numbers of the remaining document are unchanged.
func maskFrontMatter(source []byte, fm FrontMatter) []byte {
	masked := make([]byte, len(source))
	copy(masked, source)
	for i := range fm.End {
		if masked[i] != '\n' && masked[i] != '\r' {
			masked[i] = ' '
		}
	}
	return masked
}
