package goldmark

import (
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// sourceposTransformer annotates block nodes with a data-sourcepos
// attribute of the form "line:col-line:col".
type sourceposTransformer struct{}

// Transform implements parser.ASTTransformer.
func (sourceposTransformer) Transform(doc *gast.Document, reader text.Reader, _ parser.Context) {
	lines := mdast.BuildLines(reader.Source())

	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering || n.Type() != gast.TypeBlock || n.Kind() == gast.KindDocument {
			return gast.WalkContinue, nil
		}
		r := blockRange(n)
		if !r.IsKnown() {
			return gast.WalkContinue, nil
		}
		pos := lines.Position(r)
		if pos.IsValid() {
			n.SetAttributeString(attrSourcepos, []byte(pos.String()))
		}
		return gast.WalkContinue, nil
	})
}

// blockRange returns the byte range covered by a block's own lines or, for
// container blocks, by its descendants.
func blockRange(n gast.Node) mdast.SourceRange {
	r := mdast.NoRange
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		r = mdast.SourceRange{StartOffset: first.Start, EndOffset: last.Stop}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != gast.TypeBlock {
			continue
		}
		r = r.Union(blockRange(c))
	}
	return r
}
