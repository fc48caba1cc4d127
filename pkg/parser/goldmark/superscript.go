package goldmark

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindSuperscript is the goldmark node kind of ^superscript^ spans.
//
//nolint:gochecknoglobals // goldmark node kinds are registered globally.
var KindSuperscript = gast.NewNodeKind("Superscript")

// Superscript is a goldmark inline node for text between single carets.
type Superscript struct {
	gast.BaseInline
}

// Kind implements ast.Node.
func (n *Superscript) Kind() gast.NodeKind {
	return KindSuperscript
}

// Dump implements ast.Node.
func (n *Superscript) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type superscriptDelimiterProcessor struct{}

func (p *superscriptDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '^'
}

func (p *superscriptDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *superscriptDelimiterProcessor) OnMatch(_ int) gast.Node {
	return &Superscript{}
}

//nolint:gochecknoglobals // Stateless processor shared by all parsers.
var defaultSuperscriptDelimiterProcessor = &superscriptDelimiterProcessor{}

type superscriptParser struct{}

func (s *superscriptParser) Trigger() []byte {
	return []byte{'^'}
}

func (s *superscriptParser) Parse(_ gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, defaultSuperscriptDelimiterProcessor)
	if node == nil || node.OriginalLength > 1 || before == '^' {
		return nil
	}

	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func (s *superscriptParser) CloseBlock(_ gast.Node, _ parser.Context) {}

type superscriptHTMLRenderer struct {
	html.Config
}

func (r *superscriptHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSuperscript, r.renderSuperscript)
}

func (r *superscriptHTMLRenderer) renderSuperscript(
	w util.BufWriter, _ []byte, n gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<sup")
		if n.Attributes() != nil {
			html.RenderAttributes(w, n, html.GlobalAttributeFilter)
		}
		_ = w.WriteByte('>')
	} else {
		_, _ = w.WriteString("</sup>")
	}
	return gast.WalkContinue, nil
}

type superscriptExtension struct{}

// superscript enables ^text^ spans.
//
//nolint:gochecknoglobals // Stateless extender.
var superscript = &superscriptExtension{}

func (e *superscriptExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&superscriptParser{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&superscriptHTMLRenderer{Config: html.NewConfig()}, 500),
	))
}
