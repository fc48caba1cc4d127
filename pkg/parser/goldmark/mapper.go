package goldmark

import (
	"bytes"

	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Tree.
type mapper struct {
	content     []byte
	tree        *mdast.Tree
	defaultInfo *string

	// footnotes maps goldmark footnote indexes to their labels.
	footnotes map[int]string

	// cursor is the furthest source offset mapped so far.
	cursor int
}

// newMapper creates a mapper for the given content.
func newMapper(content []byte, defaultInfo *string) *mapper {
	return &mapper{
		content:     content,
		tree:        mdast.NewTreeWithCapacity(len(content) / 8),
		defaultInfo: defaultInfo,
		footnotes:   make(map[int]string),
	}
}

// mapDocument converts a goldmark document. Footnote definitions are
// appended to the root after the body, in definition order.
func (m *mapper) mapDocument(doc gast.Node) (*mdast.Tree, error) {
	var lists []*east.FootnoteList
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if list, ok := child.(*east.FootnoteList); ok {
			lists = append(lists, list)
			for fn := list.FirstChild(); fn != nil; fn = fn.NextSibling() {
				if f, ok := fn.(*east.Footnote); ok {
					m.footnotes[f.Index] = string(f.Ref)
				}
			}
		}
	}

	root := m.tree.Root()
	m.tree.SetPos(root, mdast.SourceRange{StartOffset: 0, EndOffset: len(m.content)})

	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if _, ok := child.(*east.FootnoteList); ok {
			continue
		}
		if err := m.mapNode(child, root); err != nil {
			return nil, err
		}
	}

	for _, list := range lists {
		for fn := list.FirstChild(); fn != nil; fn = fn.NextSibling() {
			if err := m.mapNode(fn, root); err != nil {
				return nil, err
			}
		}
	}

	return m.tree, nil
}

// mapChildren maps all children of a goldmark node under parent.
func (m *mapper) mapChildren(gmParent gast.Node, parent mdast.NodeID) error {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := m.mapNode(child, parent); err != nil {
			return err
		}
	}
	return nil
}

// container appends v under parent, records its block range and maps the
// goldmark children beneath it.
func (m *mapper) container(gmNode gast.Node, parent mdast.NodeID, v mdast.Value) error {
	id := m.tree.Append(parent, v)
	if gmNode.Type() == gast.TypeBlock {
		m.setBlockPos(id, gmNode)
	}
	return m.mapChildren(gmNode, id)
}

// leaf appends v under parent with the given range.
func (m *mapper) leaf(parent mdast.NodeID, v mdast.Value, r mdast.SourceRange) mdast.NodeID {
	id := m.tree.Append(parent, v)
	m.tree.SetPos(id, r)
	if r.IsKnown() && r.EndOffset > m.cursor {
		m.cursor = r.EndOffset
	}
	return id
}

// mapNode converts a single goldmark node and its subtree.
func (m *mapper) mapNode(gmNode gast.Node, parent mdast.NodeID) error {
	switch n := gmNode.(type) {
	// Block-level nodes.
	case *gast.Paragraph, *gast.TextBlock:
		return m.container(n, parent, mdast.Paragraph{})

	case *gast.Heading:
		return m.container(n, parent, mdast.Heading{
			Level:  uint8(n.Level), //nolint:gosec // Heading levels are 1-6.
			Setext: m.isSetext(n),
		})

	case *gast.Blockquote:
		return m.container(n, parent, mdast.BlockQuote{})

	case *gast.List:
		return m.mapList(n, parent)

	case *gast.ThematicBreak:
		m.leaf(parent, mdast.ThematicBreak{}, m.blockRange(n))
		return nil

	case *gast.FencedCodeBlock:
		m.mapFencedCodeBlock(n, parent)
		return nil

	case *gast.CodeBlock:
		m.leaf(parent, mdast.CodeBlock{Literal: m.linesLiteral(n)}, m.blockRange(n))
		return nil

	case *gast.HTMLBlock:
		m.leaf(parent, mdast.HTMLBlock{Literal: string(htmlBlockLiteral(n, m.content))}, m.blockRange(n))
		return nil

	// Inline-level nodes.
	case *gast.Text:
		m.mapText(n, parent)
		return nil

	case *gast.String:
		m.mapString(n, parent)
		return nil

	case *gast.CodeSpan:
		m.leaf(parent, mdast.Code{Literal: m.codeSpanLiteral(n)}, mdast.NoRange)
		return nil

	case *gast.Emphasis:
		if n.Level >= 2 {
			return m.container(n, parent, mdast.Strong{})
		}
		return m.container(n, parent, mdast.Emph{})

	case *gast.Link:
		return m.container(n, parent, mdast.Link{URL: string(n.Destination), Title: string(n.Title)})

	case *gast.Image:
		return m.container(n, parent, mdast.Image{URL: string(n.Destination), Title: string(n.Title)})

	case *gast.AutoLink:
		m.mapAutoLink(n, parent)
		return nil

	case *gast.RawHTML:
		m.leaf(parent, mdast.HTMLInline{Literal: string(rawHTMLLiteral(n, m.content))}, mdast.NoRange)
		return nil

	// Extension nodes.
	case *east.Strikethrough:
		return m.container(n, parent, mdast.Strikethrough{})

	case *Superscript:
		return m.container(n, parent, mdast.Superscript{})

	case *east.TaskCheckBox:
		m.leaf(parent, mdast.HTMLInline{Literal: checkboxMarkup(n.IsChecked)}, mdast.NoRange)
		return nil

	case *east.Table:
		return m.mapTable(n, parent)

	case *east.TableHeader:
		return m.container(n, parent, mdast.TableRow{Header: true})

	case *east.TableRow:
		return m.container(n, parent, mdast.TableRow{})

	case *east.TableCell:
		return m.container(n, parent, mdast.TableCell{})

	case *east.Footnote:
		return m.container(n, parent, mdast.FootnoteDefinition{Name: string(n.Ref)})

	case *east.FootnoteLink:
		m.leaf(parent, mdast.FootnoteReference{Name: m.footnotes[n.Index]}, mdast.NoRange)
		return nil

	case *east.FootnoteBacklink:
		// Rendering artifact with no source counterpart.
		return nil

	default:
		return &UnsupportedNodeError{Kind: gmNode.Kind().String(), Offset: m.offsetOf(gmNode)}
	}
}

// mapList converts a list and its items. Items carry the list's attributes.
func (m *mapper) mapList(list *gast.List, parent mdast.NodeID) error {
	attrs := mdast.ListAttrs{
		Type:  mdast.ListBullet,
		Start: 1,
		Tight: list.IsTight,
	}
	if list.IsOrdered() {
		attrs.Type = mdast.ListOrdered
		attrs.Start = uint(max(list.Start, 0)) //nolint:gosec // Clamped above.
		if list.Marker == ')' {
			attrs.Delimiter = mdast.DelimParen
		}
	} else {
		attrs.BulletChar = list.Marker
	}

	id := m.tree.Append(parent, mdast.List{ListAttrs: attrs})
	m.setBlockPos(id, list)

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if _, ok := item.(*gast.ListItem); !ok {
			return &UnsupportedNodeError{Kind: item.Kind().String(), Offset: m.offsetOf(item)}
		}
		if err := m.container(item, id, mdast.Item{ListAttrs: attrs}); err != nil {
			return err
		}
	}
	return nil
}

// mapTable converts a table, recording column alignments.
func (m *mapper) mapTable(table *east.Table, parent mdast.NodeID) error {
	aligns := make([]mdast.Alignment, len(table.Alignments))
	for i, a := range table.Alignments {
		switch a {
		case east.AlignLeft:
			aligns[i] = mdast.AlignLeft
		case east.AlignRight:
			aligns[i] = mdast.AlignRight
		case east.AlignCenter:
			aligns[i] = mdast.AlignCenter
		case east.AlignNone:
			aligns[i] = mdast.AlignNone
		}
	}
	return m.container(table, parent, mdast.Table{Alignments: aligns})
}

// mapFencedCodeBlock converts a fenced code block. The fence character and
// length come from the opening fence line in the source.
func (m *mapper) mapFencedCodeBlock(codeBlock *gast.FencedCodeBlock, parent mdast.NodeID) {
	info := ""
	if codeBlock.Info != nil {
		info = string(unescapeText(codeBlock.Info.Segment.Value(m.content)))
	}
	if info == "" && m.defaultInfo != nil {
		info = *m.defaultInfo
	}

	fenceChar, fenceLength := m.detectFence(codeBlock)

	m.leaf(parent, mdast.CodeBlock{
		Fenced:      true,
		FenceChar:   fenceChar,
		FenceLength: uint(fenceLength), //nolint:gosec // Count of bytes.
		Info:        info,
		Literal:     m.linesLiteral(codeBlock),
	}, m.blockRange(codeBlock))
}

// detectFence finds the opening fence line of a code block and reads its
// character and length.
func (m *mapper) detectFence(codeBlock *gast.FencedCodeBlock) (byte, int) {
	switch {
	case codeBlock.Info != nil:
		return m.fenceOnLineOf(codeBlock.Info.Segment.Start)
	case codeBlock.Lines().Len() > 0:
		start := lineStart(m.content, codeBlock.Lines().At(0).Start)
		if start == 0 {
			return '`', 3
		}
		return m.fenceOnLineOf(start - 1)
	default:
		return m.nextFence()
	}
}

// fenceOnLineOf reads the fence on the line containing offset.
func (m *mapper) fenceOnLineOf(offset int) (byte, int) {
	start := lineStart(m.content, offset)
	end := bytes.IndexByte(m.content[start:], '\n')
	if end < 0 {
		end = len(m.content)
	} else {
		end += start
	}
	m.cursor = max(m.cursor, end)
	return extractFence(m.content[start:end])
}

// nextFence scans forward from the cursor for an opening fence. It serves
// empty code blocks, which carry no source segments.
func (m *mapper) nextFence() (byte, int) {
	pos := m.cursor
	for pos < len(m.content) {
		line, next := cutLine(m.content, pos)
		if char, n := extractFence(line); n > 0 {
			// Skip the closing fence too.
			_, m.cursor = cutLine(m.content, next)
			return char, n
		}
		pos = next
	}
	return '`', 3
}

// extractFence reads a fence from a line, skipping indentation and block
// quote markers. It returns a zero length when the line holds no fence.
func extractFence(line []byte) (byte, int) {
	pos := 0
	for pos < len(line) && (line[pos] == ' ' || line[pos] == '\t' || line[pos] == '>') {
		pos++
	}
	if pos >= len(line) || (line[pos] != '`' && line[pos] != '~') {
		return 0, 0
	}

	fenceChar := line[pos]
	fenceLength := 0
	for pos < len(line) && line[pos] == fenceChar {
		fenceLength++
		pos++
	}
	if fenceLength < 3 {
		return 0, 0
	}
	return fenceChar, fenceLength
}

func lineStart(content []byte, offset int) int {
	offset = min(offset, len(content))
	for offset > 0 && content[offset-1] != '\n' {
		offset--
	}
	return offset
}

// isSetext reports whether a heading was written with an underline. ATX
// heading text is preceded by '#' markers on its line.
func (m *mapper) isSetext(h *gast.Heading) bool {
	lines := h.Lines()
	if lines.Len() == 0 {
		return false
	}
	pos := lines.At(0).Start - 1
	for pos >= 0 && (m.content[pos] == ' ' || m.content[pos] == '\t') {
		pos--
	}
	return pos < 0 || m.content[pos] != '#'
}

// mapText converts a text node. Line break flags become separate
// SoftBreak or LineBreak siblings.
func (m *mapper) mapText(t *gast.Text, parent mdast.NodeID) {
	value := t.Segment.Value(m.content)
	if !t.IsRaw() {
		value = unescapeText(value)
	}
	if len(value) > 0 {
		m.leaf(parent, mdast.Text{Literal: string(value)}, mdast.SourceRange{
			StartOffset: t.Segment.Start,
			EndOffset:   t.Segment.Stop,
		})
	}

	switch {
	case t.HardLineBreak():
		m.leaf(parent, mdast.LineBreak{}, mdast.NoRange)
	case t.SoftLineBreak():
		m.leaf(parent, mdast.SoftBreak{}, mdast.NoRange)
	}
}

// mapString converts a synthesized string, such as typographer output.
func (m *mapper) mapString(s *gast.String, parent mdast.NodeID) {
	value := s.Value
	switch {
	case s.IsRaw():
	case s.IsCode():
		value = resolveReferences(nil, value)
	default:
		value = unescapeText(value)
	}
	if len(value) > 0 {
		m.leaf(parent, mdast.Text{Literal: string(value)}, mdast.NoRange)
	}
}

// mapAutoLink converts an autolink into a link with a text child.
func (m *mapper) mapAutoLink(al *gast.AutoLink, parent mdast.NodeID) {
	url := string(al.URL(m.content))
	if al.AutoLinkType == gast.AutoLinkEmail && !hasPrefixFold(url, "mailto:") {
		url = "mailto:" + url
	}
	id := m.leaf(parent, mdast.Link{URL: url}, mdast.NoRange)
	m.tree.Append(id, mdast.Text{Literal: string(al.Label(m.content))})
}

// codeSpanLiteral joins the code span segments. Line endings become spaces.
func (m *mapper) codeSpanLiteral(cs *gast.CodeSpan) string {
	var buf bytes.Buffer
	for child := cs.FirstChild(); child != nil; child = child.NextSibling() {
		var value []byte
		switch c := child.(type) {
		case *gast.Text:
			value = c.Segment.Value(m.content)
		case *gast.String:
			value = c.Value
		}
		if bytes.HasSuffix(value, []byte("\n")) {
			buf.Write(value[:len(value)-1])
			buf.WriteByte(' ')
			continue
		}
		buf.Write(value)
	}
	return buf.String()
}

// linesLiteral concatenates the content lines of a block.
func (m *mapper) linesLiteral(n gast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		buf.Write(line.Value(m.content))
	}
	return string(terminateLine(buf.Bytes()))
}

// setBlockPos records the range of a block from its lines and children.
func (m *mapper) setBlockPos(id mdast.NodeID, n gast.Node) {
	r := m.blockRange(n)
	m.tree.SetPos(id, r)
}

func (m *mapper) blockRange(n gast.Node) mdast.SourceRange {
	r := blockRange(n)
	if r.IsKnown() && r.EndOffset > m.cursor {
		m.cursor = r.EndOffset
	}
	return r
}

// offsetOf returns the first known source offset of a node, or -1.
func (m *mapper) offsetOf(n gast.Node) int {
	if n.Type() == gast.TypeBlock {
		if r := blockRange(n); r.IsKnown() {
			return r.StartOffset
		}
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && bytes.EqualFold([]byte(s[:len(prefix)]), []byte(prefix))
}
