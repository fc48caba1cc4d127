package config

// ExtensionOptions selects the dialect extensions.
type ExtensionOptions struct {
	Strikethrough    bool
	Tagfilter        bool
	Table            bool
	Autolink         bool
	Tasklist         bool
	Superscript      bool
	Footnotes        bool
	DescriptionLists bool

	// HeaderIDs enables heading ids; HeaderIDPrefix is prepended to each.
	HeaderIDs      bool
	HeaderIDPrefix string

	// FrontMatter enables front matter stripping with FrontMatterDelimiter.
	FrontMatter          bool
	FrontMatterDelimiter string
}

// ParseOptions steers block and inline parsing.
type ParseOptions struct {
	Smart bool

	// DefaultInfoString applies when HasDefaultInfoString is set.
	HasDefaultInfoString bool
	DefaultInfoString    string

	RelaxedTasklistMatching bool
	RelaxedAutolinks        bool
}

// RenderOptions steers output generation.
type RenderOptions struct {
	Hardbreaks     bool
	GithubPreLang  bool
	FullInfoString bool
	Width          uint
	Unsafe         bool
	Escape         bool
	ListStyle      ListStyle
	Sourcepos      bool
}

// EngineOptions is the grouped form of Options consumed by the parser
// engine. It owns all of its data and shares nothing with the Options it
// was built from.
type EngineOptions struct {
	Extension ExtensionOptions
	Parse     ParseOptions
	Render    RenderOptions
}

// Normalize translates an options record into engine options. It is pure
// and total: every record, including nonsensical combinations, yields a
// usable result. Unknown list styles fall back to dash.
func Normalize(opts Options) EngineOptions {
	var eo EngineOptions

	eo.Extension = ExtensionOptions{
		Strikethrough:    opts.Strikethrough,
		Tagfilter:        opts.Tagfilter,
		Table:            opts.Table,
		Autolink:         opts.Autolink,
		Tasklist:         opts.Tasklist,
		Superscript:      opts.Superscript,
		Footnotes:        opts.Footnotes,
		DescriptionLists: opts.DescriptionLists,
	}
	if opts.HeaderIDs != nil {
		eo.Extension.HeaderIDs = true
		eo.Extension.HeaderIDPrefix = *opts.HeaderIDs
	}
	if opts.FrontMatterDelimiter != nil && *opts.FrontMatterDelimiter != "" {
		eo.Extension.FrontMatter = true
		eo.Extension.FrontMatterDelimiter = *opts.FrontMatterDelimiter
	}

	eo.Parse = ParseOptions{
		Smart:                   opts.Smart,
		RelaxedTasklistMatching: opts.RelaxedTasklistMatching,
		RelaxedAutolinks:        opts.RelaxedAutolinks,
	}
	if opts.DefaultInfoString != nil {
		eo.Parse.HasDefaultInfoString = true
		eo.Parse.DefaultInfoString = *opts.DefaultInfoString
	}

	listStyle := opts.ListStyle
	if !listStyle.IsValid() {
		listStyle = ListStyleDash
	}

	eo.Render = RenderOptions{
		Hardbreaks:     opts.Hardbreaks,
		GithubPreLang:  opts.GithubPreLang,
		FullInfoString: opts.FullInfoString,
		Width:          opts.Width,
		Unsafe:         opts.Unsafe,
		Escape:         opts.Escape,
		ListStyle:      listStyle,
		Sourcepos:      opts.Sourcepos,
	}

	return eo
}
