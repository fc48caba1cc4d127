// Package goldmark adapts the goldmark Markdown engine to the mdast syntax
// tree and to HTML rendering.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/mdast"
)

// relaxedProtocols extends linkify's default allow-list when relaxed
// autolinks are enabled.
//
//nolint:gochecknoglobals // Read-only lookup table.
var relaxedProtocols = [][]byte{
	[]byte("http:"), []byte("https:"), []byte("ftp:"), []byte("mailto:"),
	[]byte("ftps:"), []byte("sftp:"), []byte("ssh:"), []byte("git:"),
	[]byte("irc:"), []byte("ircs:"), []byte("xmpp:"), []byte("file:"),
}

// Engine parses and renders Markdown with a fixed option set. It is
// immutable after construction and safe for concurrent use.
type Engine struct {
	opts config.EngineOptions
	md   goldmark.Markdown
}

// New creates an engine configured from the normalized option groups.
func New(opts config.EngineOptions) *Engine {
	return &Engine{
		opts: opts,
		md:   newGoldmarkInstance(opts),
	}
}

// Options returns the options the engine was built with.
func (e *Engine) Options() config.EngineOptions {
	return e.opts
}

// Parse converts Markdown into a syntax tree.
//
// The method:
//  1. Checks for context cancellation.
//  2. Blanks out front matter, keeping offsets stable.
//  3. Parses the content with goldmark.
//  4. Maps the goldmark AST into a fresh mdast.Tree.
//
// Any input parses; the only failures are cancellation and goldmark node
// kinds without a tree counterpart.
func (e *Engine) Parse(ctx context.Context, source []byte) (*mdast.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	content := e.prepare(source)
	doc := e.md.Parser().Parse(text.NewReader(content), parser.WithContext(e.newContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	var defaultInfo *string
	if e.opts.Parse.HasDefaultInfoString {
		defaultInfo = &e.opts.Parse.DefaultInfoString
	}

	tree, err := newMapper(content, defaultInfo).mapDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("map goldmark ast: %w", err)
	}
	return tree, nil
}

// RenderHTML converts Markdown directly into HTML without building a tree.
func (e *Engine) RenderHTML(ctx context.Context, source []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("render cancelled: %w", err)
	}

	content := e.prepare(source)
	doc := e.md.Parser().Parse(text.NewReader(content), parser.WithContext(e.newContext()))

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("render cancelled: %w", err)
	}

	var buf bytes.Buffer
	if err := e.md.Renderer().Render(&buf, content, doc); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// FrontMatter returns the front matter block of source, if front matter
// is enabled and present.
func (e *Engine) FrontMatter(source []byte) (FrontMatter, bool) {
	if !e.opts.Extension.FrontMatter {
		return FrontMatter{}, false
	}
	return findFrontMatter(source, e.opts.Extension.FrontMatterDelimiter)
}

// prepare returns the content goldmark sees.
func (e *Engine) prepare(source []byte) []byte {
	if fm, ok := e.FrontMatter(source); ok {
		return maskFrontMatter(source, fm)
	}
	return source
}

// newContext creates the per-document parser context.
//
//nolint:ireturn // parser.Context is goldmark's interface type.
func (e *Engine) newContext() parser.Context {
	if e.opts.Extension.HeaderIDs {
		return parser.NewContext(parser.WithIDs(newHeadingIDs(e.opts.Extension.HeaderIDPrefix)))
	}
	return parser.NewContext()
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(opts config.EngineOptions) goldmark.Markdown {
	ext := opts.Extension
	var extenders []goldmark.Extender

	if ext.Strikethrough {
		extenders = append(extenders, extension.Strikethrough)
	}
	if ext.Table {
		extenders = append(extenders, extension.Table)
	}
	if ext.Autolink {
		if opts.Parse.RelaxedAutolinks {
			extenders = append(extenders, extension.NewLinkify(
				extension.WithLinkifyAllowedProtocols(relaxedProtocols),
			))
		} else {
			extenders = append(extenders, extension.Linkify)
		}
	}
	if ext.Tasklist {
		if opts.Parse.RelaxedTasklistMatching {
			extenders = append(extenders, &relaxedTaskListExtension{})
		} else {
			extenders = append(extenders, extension.TaskList)
		}
	}
	if ext.Superscript {
		extenders = append(extenders, superscript)
	}
	if ext.Footnotes {
		extenders = append(extenders, extension.Footnote)
	}
	if ext.DescriptionLists {
		extenders = append(extenders, extension.DefinitionList)
	}
	if opts.Parse.Smart {
		extenders = append(extenders, extension.Typographer)
	}

	var parserOpts []parser.Option
	if ext.HeaderIDs {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}
	if opts.Render.Sourcepos {
		parserOpts = append(parserOpts, parser.WithASTTransformers(
			util.Prioritized(sourceposTransformer{}, 1000),
		))
	}

	code := &codeBlockRenderer{
		githubPreLang:  opts.Render.GithubPreLang,
		fullInfoString: opts.Render.FullInfoString,
	}
	if opts.Parse.HasDefaultInfoString {
		code.defaultInfo = []byte(opts.Parse.DefaultInfoString)
	}
	raw := &rawHTMLRenderer{
		escape:    opts.Render.Escape,
		unsafe:    opts.Render.Unsafe,
		tagfilter: ext.Tagfilter,
	}

	rendererOpts := append(htmlOptions(opts.Render.Hardbreaks, opts.Render.Unsafe), renderOverrides(code, raw))

	return goldmark.New(
		goldmark.WithExtensions(extenders...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

// compile-time checks for the goldmark extension points used here.
var (
	_ parser.IDs                = (*headingIDs)(nil)
	_ parser.ASTTransformer     = sourceposTransformer{}
	_ parser.InlineParser       = (*superscriptParser)(nil)
	_ parser.InlineParser       = (*relaxedTaskCheckBoxParser)(nil)
	_ parser.DelimiterProcessor = (*superscriptDelimiterProcessor)(nil)
	_ renderer.NodeRenderer     = (*codeBlockRenderer)(nil)
	_ renderer.NodeRenderer     = (*rawHTMLRenderer)(nil)
	_ goldmark.Extender         = (*superscriptExtension)(nil)
	_ goldmark.Extender         = (*relaxedTaskListExtension)(nil)
)
