package goldmark

import (
	"bytes"

	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

const attrSourcepos = "data-sourcepos"

// codeBlockRenderer renders fenced and indented code blocks with the
// info string options applied.
type codeBlockRenderer struct {
	githubPreLang  bool
	fullInfoString bool
	defaultInfo    []byte
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(gast.KindCodeBlock, r.renderCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(
	w util.BufWriter, source []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n, _ := node.(*gast.FencedCodeBlock)

	var info []byte
	if n.Info != nil {
		info = unescapeText(n.Info.Segment.Value(source))
	}
	if len(info) == 0 {
		info = r.defaultInfo
	}
	lang, meta := splitInfo(info)

	_, _ = w.WriteString("<pre")
	writeSourcepos(w, node)
	if len(lang) > 0 && r.githubPreLang {
		_, _ = w.WriteString(` lang="`)
		_, _ = w.Write(util.EscapeHTML(lang))
		_ = w.WriteByte('"')
		r.writeMeta(w, meta)
		_, _ = w.WriteString("><code>")
	} else {
		_, _ = w.WriteString("><code")
		if len(lang) > 0 {
			_, _ = w.WriteString(` class="language-`)
			_, _ = w.Write(util.EscapeHTML(lang))
			_ = w.WriteByte('"')
			r.writeMeta(w, meta)
		}
		_ = w.WriteByte('>')
	}

	writeCodeLines(w, source, node)
	_, _ = w.WriteString("</code></pre>\n")
	return gast.WalkSkipChildren, nil
}

func (r *codeBlockRenderer) renderCodeBlock(
	w util.BufWriter, source []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	_, _ = w.WriteString("<pre")
	writeSourcepos(w, node)
	_, _ = w.WriteString("><code>")
	writeCodeLines(w, source, node)
	_, _ = w.WriteString("</code></pre>\n")
	return gast.WalkSkipChildren, nil
}

func (r *codeBlockRenderer) writeMeta(w util.BufWriter, meta []byte) {
	if !r.fullInfoString || len(meta) == 0 {
		return
	}
	_, _ = w.WriteString(` data-meta="`)
	_, _ = w.Write(util.EscapeHTML(meta))
	_ = w.WriteByte('"')
}

// splitInfo splits an info string into the language word and the rest.
func splitInfo(info []byte) ([]byte, []byte) {
	info = bytes.TrimSpace(info)
	idx := bytes.IndexAny(info, " \t")
	if idx < 0 {
		return info, nil
	}
	return info[:idx], bytes.TrimSpace(info[idx:])
}

func writeCodeLines(w util.BufWriter, source []byte, n gast.Node) {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	_, _ = w.Write(util.EscapeHTML(terminateLine(buf.Bytes())))
}

func writeSourcepos(w util.BufWriter, n gast.Node) {
	if v, ok := n.AttributeString(attrSourcepos); ok {
		if pos, ok := v.([]byte); ok {
			_, _ = w.WriteString(` data-sourcepos="`)
			_, _ = w.Write(pos)
			_ = w.WriteByte('"')
		}
	}
}

// rawHTMLRenderer renders HTML blocks and inline HTML. Escaping wins over
// unsafe output; without either the HTML is replaced by a comment.
type rawHTMLRenderer struct {
	escape    bool
	unsafe    bool
	tagfilter bool
}

const omittedHTML = "<!-- raw HTML omitted -->"

func (r *rawHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(gast.KindRawHTML, r.renderRawHTML)
}

func (r *rawHTMLRenderer) renderHTMLBlock(
	w util.BufWriter, source []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n, _ := node.(*gast.HTMLBlock)

	if !r.escape && !r.unsafe {
		_, _ = w.WriteString(omittedHTML)
		_ = w.WriteByte('\n')
		return gast.WalkSkipChildren, nil
	}
	r.write(w, htmlBlockLiteral(n, source))
	return gast.WalkSkipChildren, nil
}

func (r *rawHTMLRenderer) renderRawHTML(
	w util.BufWriter, source []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkSkipChildren, nil
	}
	n, _ := node.(*gast.RawHTML)

	if !r.escape && !r.unsafe {
		_, _ = w.WriteString(omittedHTML)
		return gast.WalkSkipChildren, nil
	}
	r.write(w, rawHTMLLiteral(n, source))
	return gast.WalkSkipChildren, nil
}

func (r *rawHTMLRenderer) write(w util.BufWriter, literal []byte) {
	switch {
	case r.escape:
		_, _ = w.Write(util.EscapeHTML(literal))
	case r.tagfilter:
		_, _ = w.Write(filterTags(literal))
	default:
		_, _ = w.Write(literal)
	}
}

// htmlBlockLiteral returns the block content including its closing line.
func htmlBlockLiteral(n *gast.HTMLBlock, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	if n.HasClosure() {
		buf.Write(n.ClosureLine.Value(source))
	}
	return terminateLine(buf.Bytes())
}

// terminateLine ends a non-empty block literal with a newline, even when
// its last line runs into the end of input.
func terminateLine(literal []byte) []byte {
	if len(literal) == 0 || literal[len(literal)-1] == '\n' {
		return literal
	}
	return append(literal, '\n')
}

func rawHTMLLiteral(n *gast.RawHTML, source []byte) []byte {
	var buf bytes.Buffer
	for i := range n.Segments.Len() {
		seg := n.Segments.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}

// filteredTags are the tags GitHub neutralizes in raw HTML.
//
//nolint:gochecknoglobals // Read-only lookup table.
var filteredTags = []string{
	"title", "textarea", "style", "xmp", "iframe",
	"noembed", "noframes", "script", "plaintext",
}

// filterTags replaces the '<' of every filtered tag with "&lt;".
func filterTags(literal []byte) []byte {
	out := make([]byte, 0, len(literal))
	for i := 0; i < len(literal); i++ {
		if literal[i] == '<' && isFilteredTag(literal[i+1:]) {
			out = append(out, "&lt;"...)
			continue
		}
		out = append(out, literal[i])
	}
	return out
}

func isFilteredTag(rest []byte) bool {
	if len(rest) > 0 && rest[0] == '/' {
		rest = rest[1:]
	}
	for _, tag := range filteredTags {
		if len(rest) < len(tag) || !bytes.EqualFold(rest[:len(tag)], []byte(tag)) {
			continue
		}
		if len(rest) == len(tag) {
			return true
		}
		switch c := rest[len(tag)]; {
		case c == '>', util.IsSpace(c):
			return true
		case c == '/':
			return len(rest) > len(tag)+1 && rest[len(tag)+1] == '>'
		}
	}
	return false
}

// renderOverrides are registered ahead of goldmark's default HTML renderer.
func renderOverrides(code *codeBlockRenderer, raw *rawHTMLRenderer) renderer.Option {
	return renderer.WithNodeRenderers(
		util.Prioritized(code, 100),
		util.Prioritized(raw, 100),
	)
}

// htmlOptions maps the rendering flags goldmark handles natively.
func htmlOptions(hardbreaks, unsafe bool) []renderer.Option {
	opts := []renderer.Option{html.WithXHTML()}
	if hardbreaks {
		opts = append(opts, html.WithHardWraps())
	}
	if unsafe {
		opts = append(opts, html.WithUnsafe())
	}
	return opts
}
