package goldmark

import (
	"regexp"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// relaxedTaskRegexp accepts any single character between the brackets.
var relaxedTaskRegexp = regexp.MustCompile(`^\[([^\]\n])\]\s*`)

// relaxedTaskCheckBoxParser matches task list markers with any single
// character inside the brackets. Whitespace means unchecked; anything
// else means checked.
type relaxedTaskCheckBoxParser struct{}

func (p *relaxedTaskCheckBoxParser) Trigger() []byte {
	return []byte{'['}
}

func (p *relaxedTaskCheckBoxParser) Parse(parent gast.Node, block text.Reader, _ parser.Context) gast.Node {
	// The checkbox must open the first text block of a list item.
	if parent.Parent() == nil || parent.Parent().FirstChild() != parent || parent.HasChildren() {
		return nil
	}
	if _, ok := parent.Parent().(*gast.ListItem); !ok {
		return nil
	}

	line, _ := block.PeekLine()
	m := relaxedTaskRegexp.FindSubmatchIndex(line)
	if m == nil {
		return nil
	}

	value := line[m[2]]
	block.Advance(m[1])
	return east.NewTaskCheckBox(!util.IsSpace(value))
}

func (p *relaxedTaskCheckBoxParser) CloseBlock(_ gast.Node, _ parser.Context) {}

type relaxedTaskListExtension struct{}

func (e *relaxedTaskListExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&relaxedTaskCheckBoxParser{}, 0),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(extension.NewTaskCheckBoxHTMLRenderer(), 500),
	))
}

// checkboxMarkup is the HTML a task checkbox renders to.
func checkboxMarkup(checked bool) string {
	if checked {
		return `<input checked="" disabled="" type="checkbox" /> `
	}
	return `<input disabled="" type="checkbox" /> `
}
