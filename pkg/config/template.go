package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string

	// Preset selects the starting values: "default" or "gfm".
	Preset string
}

// fieldDoc documents one option for the template.
type fieldDoc struct {
	group string
	key   string
	doc   string
	value func(Options) any
}

// fieldDocs lists every option in record order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fieldDocs = []fieldDoc{
	{"Extensions", "strikethrough", "Enable ~~strikethrough~~ text.",
		func(o Options) any { return o.Strikethrough }},
	{"Extensions", "tagfilter", "Escape raw HTML tags that GitHub disallows (script, style, iframe, ...).",
		func(o Options) any { return o.Tagfilter }},
	{"Extensions", "table", "Enable GitHub-style tables.",
		func(o Options) any { return o.Table }},
	{"Extensions", "autolink", "Turn bare URLs and www. addresses into links.",
		func(o Options) any { return o.Autolink }},
	{"Extensions", "tasklist", "Enable - [ ] and - [x] task list items.",
		func(o Options) any { return o.Tasklist }},
	{"Extensions", "superscript", "Enable ^superscript^ text.",
		func(o Options) any { return o.Superscript }},
	{"Extensions", "header_ids", "Prefix for generated heading ids. Leave unset (null) to disable heading ids.",
		func(o Options) any { return stringOrNil(o.HeaderIDs) }},
	{"Extensions", "footnotes", "Enable [^name] footnotes.",
		func(o Options) any { return o.Footnotes }},
	{"Extensions", "description_lists", "Enable description lists (term, then : details).",
		func(o Options) any { return o.DescriptionLists }},
	{"Extensions", "front_matter_delimiter", "Delimiter line of a leading front matter block, e.g. \"---\". Null disables front matter.",
		func(o Options) any { return stringOrNil(o.FrontMatterDelimiter) }},
	{"Parsing", "smart", "Convert straight quotes, dashes and ellipses to typographic punctuation.",
		func(o Options) any { return o.Smart }},
	{"Parsing", "default_info_string", "Info string used for fenced code blocks that have none.",
		func(o Options) any { return stringOrNil(o.DefaultInfoString) }},
	{"Parsing", "relaxed_tasklist_matching", "Accept any single character between task list brackets.",
		func(o Options) any { return o.RelaxedTasklistMatching }},
	{"Parsing", "relaxed_autolinks", "Autolink additional URL schemes.",
		func(o Options) any { return o.RelaxedAutolinks }},
	{"Rendering", "hardbreaks", "Render soft line breaks as <br />.",
		func(o Options) any { return o.Hardbreaks }},
	{"Rendering", "github_pre_lang", "Put the code language on <pre lang=...> instead of a class.",
		func(o Options) any { return o.GithubPreLang }},
	{"Rendering", "full_info_string", "Keep the words after the language in a data-meta attribute.",
		func(o Options) any { return o.FullInfoString }},
	{"Rendering", "width", "Wrap column for text output (0 = no wrapping).",
		func(o Options) any { return o.Width }},
	{"Rendering", "unsafe", "Pass raw HTML and dangerous links through unchanged.",
		func(o Options) any { return o.Unsafe }},
	{"Rendering", "escape", "Escape raw HTML instead of omitting it.",
		func(o Options) any { return o.Escape }},
	{"Rendering", "list_style", "Bullet glyph for text output: dash, plus or star.",
		func(o Options) any { return string(o.ListStyle) }},
	{"Rendering", "sourcepos", "Annotate rendered blocks with data-sourcepos attributes.",
		func(o Options) any { return o.Sourcepos }},
}

// GenerateTemplate creates a documented configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	base := Default()
	switch opts.Preset {
	case "", "default":
	case "gfm":
		base = GFM()
	default:
		return nil, fmt.Errorf("unknown preset %q: must be default or gfm", opts.Preset)
	}

	switch opts.Format {
	case "", "yaml":
		return generateYAMLTemplate(base), nil
	case "json":
		return generateJSONTemplate(base)
	default:
		return nil, fmt.Errorf("unknown template format %q: must be yaml or json", opts.Format)
	}
}

func generateYAMLTemplate(base Options) []byte {
	var buf bytes.Buffer

	buf.WriteString("# mdtree configuration\n")
	buf.WriteString("# See: https://github.com/yaklabco/mdtree\n")

	group := ""
	for _, f := range fieldDocs {
		if f.group != group {
			group = f.group
			buf.WriteString("\n# ")
			buf.WriteString(group)
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
		for _, line := range wrapText(f.doc, commentWrapWidth) {
			buf.WriteString("# ")
			buf.WriteString(line)
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "%s: %s\n", f.key, yamlScalar(f.value(base)))
	}

	return buf.Bytes()
}

func generateJSONTemplate(base Options) ([]byte, error) {
	out, err := json.MarshalIndent(base, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal template: %w", err)
	}
	return append(out, '\n'), nil
}

func yamlScalar(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}

func stringOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current strings.Builder

	for _, word := range words {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}
