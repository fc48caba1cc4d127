// Package config defines the caller-facing Markdown options record and its
// translation into the grouped options consumed by the parser engine.
// These types are pure data structures with no dependency on any loader.
package config

// ListStyle is the bullet glyph preferred when emitting list markers.
type ListStyle string

const (
	ListStyleDash ListStyle = "dash"
	ListStylePlus ListStyle = "plus"
	ListStyleStar ListStyle = "star"
)

// IsValid returns true if the list style is one of the known glyphs.
func (s ListStyle) IsValid() bool {
	switch s {
	case ListStyleDash, ListStylePlus, ListStyleStar:
		return true
	default:
		return false
	}
}

// Options is the flat configuration record supplied with every parse or
// render call. The zero value is not the default; use Default.
type Options struct {
	// Extensions.

	// Strikethrough enables ~~struck~~ text.
	Strikethrough bool `json:"strikethrough" yaml:"strikethrough"`

	// Tagfilter escapes the GFM disallowed raw HTML tags.
	Tagfilter bool `json:"tagfilter" yaml:"tagfilter"`

	// Table enables GFM tables.
	Table bool `json:"table" yaml:"table"`

	// Autolink turns bare URLs and www. links into links.
	Autolink bool `json:"autolink" yaml:"autolink"`

	// Tasklist enables "- [ ]" and "- [x]" task items.
	Tasklist bool `json:"tasklist" yaml:"tasklist"`

	// Superscript enables ^superscript^ text.
	Superscript bool `json:"superscript" yaml:"superscript"`

	// HeaderIDs, when set, adds id attributes to rendered headings, each
	// prefixed with the given string.
	HeaderIDs *string `json:"header_ids" yaml:"header_ids"`

	// Footnotes enables [^name] references and definitions.
	Footnotes bool `json:"footnotes" yaml:"footnotes"`

	// DescriptionLists enables term / ": details" lists.
	DescriptionLists bool `json:"description_lists" yaml:"description_lists"`

	// FrontMatterDelimiter, when set, strips a leading front matter block
	// fenced by lines equal to the delimiter.
	FrontMatterDelimiter *string `json:"front_matter_delimiter" yaml:"front_matter_delimiter"`

	// Parse behavior.

	// Smart converts straight quotes, dashes and ellipses to typographic ones.
	Smart bool `json:"smart" yaml:"smart"`

	// DefaultInfoString is used as the info string of fenced code blocks
	// that have none.
	DefaultInfoString *string `json:"default_info_string" yaml:"default_info_string"`

	// RelaxedTasklistMatching accepts any character inside task brackets.
	RelaxedTasklistMatching bool `json:"relaxed_tasklist_matching" yaml:"relaxed_tasklist_matching"`

	// RelaxedAutolinks accepts more URL schemes when autolinking.
	RelaxedAutolinks bool `json:"relaxed_autolinks" yaml:"relaxed_autolinks"`

	// Render behavior.

	// Hardbreaks renders soft line breaks as <br />.
	Hardbreaks bool `json:"hardbreaks" yaml:"hardbreaks"`

	// GithubPreLang renders the code language as <pre lang="..."> instead
	// of a class on <code>.
	GithubPreLang bool `json:"github_pre_lang" yaml:"github_pre_lang"`

	// FullInfoString keeps the words after the language in a data-meta
	// attribute.
	FullInfoString bool `json:"full_info_string" yaml:"full_info_string"`

	// Width is the wrap column for text output. 0 disables wrapping.
	Width uint `json:"width" yaml:"width"`

	// Unsafe passes raw HTML and dangerous URLs through unchanged.
	Unsafe bool `json:"unsafe" yaml:"unsafe"`

	// Escape writes raw HTML escaped instead of omitting it.
	Escape bool `json:"escape" yaml:"escape"`

	// ListStyle is the preferred bullet glyph for text output.
	ListStyle ListStyle `json:"list_style" yaml:"list_style"`

	// Sourcepos annotates rendered blocks with data-sourcepos attributes.
	Sourcepos bool `json:"sourcepos" yaml:"sourcepos"`
}

// Default returns the options record with every field at its documented
// default: all extensions off, strict rendering with escaping on.
func Default() Options {
	return Options{
		Escape:    true,
		ListStyle: ListStyleDash,
	}
}

// GFM returns the defaults with the GitHub Flavored Markdown extensions
// enabled.
func GFM() Options {
	opts := Default()
	opts.Strikethrough = true
	opts.Tagfilter = true
	opts.Table = true
	opts.Autolink = true
	opts.Tasklist = true
	return opts
}

// String returns a pointer to s, for filling optional string fields.
func String(s string) *string {
	return &s
}
