package mdast

// Value is the variant payload of a node. The set of implementations is
// closed: only the types in this file satisfy it.
type Value interface {
	// Kind identifies the variant.
	Kind() Kind

	isValue()
}

// ListType distinguishes bullet lists from ordered lists.
type ListType uint8

const (
	ListBullet ListType = iota
	ListOrdered
)

// String returns "bullet" or "ordered".
func (t ListType) String() string {
	if t == ListOrdered {
		return "ordered"
	}
	return "bullet"
}

// ListDelim is the delimiter following an ordered list number.
type ListDelim uint8

const (
	DelimPeriod ListDelim = iota
	DelimParen
)

// String returns "period" or "paren".
func (d ListDelim) String() string {
	if d == DelimParen {
		return "paren"
	}
	return "period"
}

// Alignment is the alignment of one table column.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// String returns the alignment label. Unset columns are "none".
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "none"
	}
}

// ParseAlignment is the inverse of Alignment.String.
func ParseAlignment(s string) (Alignment, bool) {
	switch s {
	case "none":
		return AlignNone, true
	case "left":
		return AlignLeft, true
	case "right":
		return AlignRight, true
	case "center":
		return AlignCenter, true
	default:
		return AlignNone, false
	}
}

// ListAttrs holds the formatting shared by a list and its items.
type ListAttrs struct {
	// Type is bullet or ordered.
	Type ListType

	// Start is the first number of an ordered list (1 for bullet lists).
	Start uint

	// Delimiter is the character after an ordered list number.
	Delimiter ListDelim

	// BulletChar is '-', '+' or '*' for bullet lists, 0 for ordered lists.
	BulletChar byte

	// Tight is true when items are not separated by blank lines.
	Tight bool
}

// Block-level variants.
type (
	// Document is the root of every tree.
	Document struct{}

	// BlockQuote is a '>' quoted block.
	BlockQuote struct{}

	// List is a bullet or ordered list.
	List struct{ ListAttrs }

	// Item is a list item. It carries its list's formatting.
	Item struct{ ListAttrs }

	// CodeBlock is a fenced or indented code block.
	CodeBlock struct {
		Fenced      bool
		FenceChar   byte
		FenceLength uint
		Info        string
		Literal     string
	}

	// HTMLBlock is a raw HTML block.
	HTMLBlock struct {
		Literal string
	}

	// Paragraph is a run of inline content.
	Paragraph struct{}

	// Heading is an ATX or setext heading.
	Heading struct {
		Level  uint8
		Setext bool
	}

	// ThematicBreak is a horizontal rule.
	ThematicBreak struct{}

	// FootnoteDefinition is the body of a footnote.
	FootnoteDefinition struct {
		Name string
	}

	// Table is a GFM table. Alignments has one entry per column.
	Table struct {
		Alignments []Alignment
	}

	// TableRow is one row of a table.
	TableRow struct {
		Header bool
	}

	// TableCell is one cell of a table row.
	TableCell struct{}
)

// Inline-level variants.
type (
	// Text is literal text with escapes and entities resolved.
	Text struct {
		Literal string
	}

	// SoftBreak is a line ending inside a paragraph.
	SoftBreak struct{}

	// LineBreak is a hard line break.
	LineBreak struct{}

	// Code is an inline code span.
	Code struct {
		Literal string
	}

	// HTMLInline is raw inline HTML.
	HTMLInline struct {
		Literal string
	}

	// Emph is emphasis.
	Emph struct{}

	// Strong is strong emphasis.
	Strong struct{}

	// Strikethrough is GFM struck-out text.
	Strikethrough struct{}

	// Superscript is '^' delimited superscript text.
	Superscript struct{}

	// Link is a hyperlink.
	Link struct {
		URL   string
		Title string
	}

	// Image is an image reference.
	Image struct {
		URL   string
		Title string
	}

	// FootnoteReference points at a FootnoteDefinition by name.
	FootnoteReference struct {
		Name string
	}
)

func (Document) Kind() Kind           { return KindDocument }
func (BlockQuote) Kind() Kind         { return KindBlockQuote }
func (List) Kind() Kind               { return KindList }
func (Item) Kind() Kind               { return KindItem }
func (CodeBlock) Kind() Kind          { return KindCodeBlock }
func (HTMLBlock) Kind() Kind          { return KindHTMLBlock }
func (Paragraph) Kind() Kind          { return KindParagraph }
func (Heading) Kind() Kind            { return KindHeading }
func (ThematicBreak) Kind() Kind      { return KindThematicBreak }
func (FootnoteDefinition) Kind() Kind { return KindFootnoteDefinition }
func (Table) Kind() Kind              { return KindTable }
func (TableRow) Kind() Kind           { return KindTableRow }
func (TableCell) Kind() Kind          { return KindTableCell }
func (Text) Kind() Kind               { return KindText }
func (SoftBreak) Kind() Kind          { return KindSoftBreak }
func (LineBreak) Kind() Kind          { return KindLineBreak }
func (Code) Kind() Kind               { return KindCode }
func (HTMLInline) Kind() Kind         { return KindHTMLInline }
func (Emph) Kind() Kind               { return KindEmph }
func (Strong) Kind() Kind             { return KindStrong }
func (Strikethrough) Kind() Kind      { return KindStrikethrough }
func (Superscript) Kind() Kind        { return KindSuperscript }
func (Link) Kind() Kind               { return KindLink }
func (Image) Kind() Kind              { return KindImage }
func (FootnoteReference) Kind() Kind  { return KindFootnoteReference }

func (Document) isValue()           {}
func (BlockQuote) isValue()         {}
func (List) isValue()               {}
func (Item) isValue()               {}
func (CodeBlock) isValue()          {}
func (HTMLBlock) isValue()          {}
func (Paragraph) isValue()          {}
func (Heading) isValue()            {}
func (ThematicBreak) isValue()      {}
func (FootnoteDefinition) isValue() {}
func (Table) isValue()              {}
func (TableRow) isValue()           {}
func (TableCell) isValue()          {}
func (Text) isValue()               {}
func (SoftBreak) isValue()          {}
func (LineBreak) isValue()          {}
func (Code) isValue()               {}
func (HTMLInline) isValue()         {}
func (Emph) isValue()               {}
func (Strong) isValue()             {}
func (Strikethrough) isValue()      {}
func (Superscript) isValue()        {}
func (Link) isValue()               {}
func (Image) isValue()              {}
func (FootnoteReference) isValue()  {}
