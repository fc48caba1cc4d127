package goldmark

import (
	"strconv"
	"strings"
	"unicode"

	gast "github.com/yuin/goldmark/ast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// headingIDs generates prefixed, unique heading anchors. One instance
// serves a single document.
type headingIDs struct {
	prefix string
	lower  cases.Caser
	used   map[string]int
}

func newHeadingIDs(prefix string) *headingIDs {
	return &headingIDs{
		prefix: prefix,
		lower:  cases.Lower(language.Und),
		used:   make(map[string]int),
	}
}

// Generate implements parser.IDs.
func (s *headingIDs) Generate(value []byte, _ gast.NodeKind) []byte {
	base := s.prefix + anchorize(s.lower.String(string(value)))

	id := base
	if n, seen := s.used[base]; seen {
		for {
			n++
			id = base + "-" + strconv.Itoa(n)
			if _, taken := s.used[id]; !taken {
				s.used[base] = n
				break
			}
		}
	}
	s.used[id] = 0
	return []byte(id)
}

// Put implements parser.IDs.
func (s *headingIDs) Put(value []byte) {
	s.used[string(value)] = 0
}

// anchorize keeps letters, digits, '-' and '_', turns spaces into '-'
// and drops everything else.
func anchorize(text string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(strings.TrimSpace(text)) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.Is(unicode.Mn, r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}
