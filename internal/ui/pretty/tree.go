package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdtree/pkg/exchange"
	"github.com/yaklabco/mdtree/pkg/langdetect"
)

// Tree guide segments.
const (
	guideBranch = "├── "
	guideLast   = "└── "
	guidePipe   = "│   "
	guideSpace  = "    "
)

// FormatTree renders an exchange value as an indented outline, one node
// per line with its payload fields in key order.
//
// Code blocks without an info string get a guessed language hint. The hint
// is display only.
func (s *Styles) FormatTree(v exchange.Value) string {
	var b strings.Builder
	s.writeTreeNode(&b, v, "", "")
	return b.String()
}

func (s *Styles) writeTreeNode(b *strings.Builder, v exchange.Value, guide, childGuide string) {
	if guide != "" {
		b.WriteString(s.Guide.Render(guide))
	}
	b.WriteString(s.Tag.Render(v.Tag))

	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(s.FieldKey.Render(k + "="))
		b.WriteString(s.FieldValue.Render(formatField(v.Fields[k])))
	}

	if hint, ok := codeHint(v); ok {
		b.WriteString(" ")
		b.WriteString(s.Hint.Render("(looks like " + hint + ")"))
	}
	b.WriteString("\n")

	for i, child := range v.Children {
		branch, next := guideBranch, guidePipe
		if i == len(v.Children)-1 {
			branch, next = guideLast, guideSpace
		}
		s.writeTreeNode(b, child, childGuide+branch, childGuide+next)
	}
}

// codeHint guesses the language of a code block that has no info string.
func codeHint(v exchange.Value) (string, bool) {
	if v.Tag != "CodeBlock" {
		return "", false
	}
	if info, _ := v.Fields[exchange.FieldInfo].(string); info != "" {
		return "", false
	}
	literal, _ := v.Fields[exchange.FieldLiteral].(string)
	return langdetect.Guess(literal)
}

// formatField renders a payload value. Strings are quoted so whitespace and
// control characters stay visible.
func formatField(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case uint64:
		return strconv.FormatUint(x, 10)
	case []string:
		return "[" + strings.Join(x, ", ") + "]"
	default:
		return fmt.Sprint(x)
	}
}
