package mdast

import "strconv"

// Kind classifies the variant held by a node.
type Kind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	KindDocument Kind = iota

	// Block-level nodes.
	KindBlockQuote
	KindList
	KindItem
	KindCodeBlock
	KindHTMLBlock
	KindParagraph
	KindHeading
	KindThematicBreak
	KindFootnoteDefinition
	KindTable
	KindTableRow
	KindTableCell

	// Inline-level nodes.
	KindText
	KindSoftBreak
	KindLineBreak
	KindCode
	KindHTMLInline
	KindEmph
	KindStrong
	KindStrikethrough
	KindSuperscript
	KindLink
	KindImage
	KindFootnoteReference

	kindCount
)

// kindNames holds the exchange label of every kind.
//
//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	KindDocument:           "Document",
	KindBlockQuote:         "BlockQuote",
	KindList:               "List",
	KindItem:               "Item",
	KindCodeBlock:          "CodeBlock",
	KindHTMLBlock:          "HtmlBlock",
	KindParagraph:          "Paragraph",
	KindHeading:            "Heading",
	KindThematicBreak:      "ThematicBreak",
	KindFootnoteDefinition: "FootnoteDefinition",
	KindTable:              "Table",
	KindTableRow:           "TableRow",
	KindTableCell:          "TableCell",
	KindText:               "Text",
	KindSoftBreak:          "SoftBreak",
	KindLineBreak:          "LineBreak",
	KindCode:               "Code",
	KindHTMLInline:         "HtmlInline",
	KindEmph:               "Emph",
	KindStrong:             "Strong",
	KindStrikethrough:      "Strikethrough",
	KindSuperscript:        "Superscript",
	KindLink:               "Link",
	KindImage:              "Image",
	KindFootnoteReference:  "FootnoteReference",
}

// String returns the exchange label for the kind, or "Kind(n)" when the
// value lies outside the taxonomy.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether k names one of the known variants.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := range kindCount {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindByName looks up a kind by its exchange label.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsBlock returns true for block-level kinds, including the document.
func (k Kind) IsBlock() bool {
	return k.Valid() && k <= KindTableCell
}

// IsInline returns true for inline-level kinds.
func (k Kind) IsInline() bool {
	return k >= KindText && k < kindCount
}

// IsLeaf returns true for kinds that never carry children.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindCodeBlock, KindHTMLBlock, KindThematicBreak,
		KindText, KindSoftBreak, KindLineBreak, KindCode, KindHTMLInline,
		KindFootnoteReference:
		return true
	default:
		return false
	}
}

// IsContainer returns true for kinds that may carry children.
func (k Kind) IsContainer() bool {
	return k.Valid() && !k.IsLeaf()
}
