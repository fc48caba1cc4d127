package exchange

import (
	"fmt"
	"math"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Decode rebuilds a syntax tree from an exchange value. The value must be
// rooted at a Document. Decoding an encoded tree yields a tree whose
// encoding is equal to the original.
func Decode(v Value) (*mdast.Tree, error) {
	if v.Tag != mdast.KindDocument.String() {
		return nil, fmt.Errorf("%w: root tag %q, want %s", ErrMalformed, v.Tag, mdast.KindDocument)
	}
	if err := checkNoFields(v); err != nil {
		return nil, err
	}

	t := mdast.NewTreeWithCapacity(v.Len())
	for _, child := range v.Children {
		if err := decodeInto(t, t.Root(), child); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func decodeInto(t *mdast.Tree, parent mdast.NodeID, v Value) error {
	val, err := decodeValue(v)
	if err != nil {
		return err
	}
	id := t.Append(parent, val)
	for _, child := range v.Children {
		if err := decodeInto(t, id, child); err != nil {
			return err
		}
	}
	return nil
}

func decodeValue(v Value) (mdast.Value, error) {
	kind, ok := mdast.KindByName(v.Tag)
	if !ok {
		return nil, &UnsupportedNodeError{Node: mdast.NoNode, Variant: v.Tag}
	}

	r := fieldReader{tag: v.Tag, fields: v.Fields}
	var out mdast.Value

	switch kind {
	case mdast.KindDocument:
		return nil, fmt.Errorf("%w: nested %s", ErrMalformed, v.Tag)
	case mdast.KindBlockQuote:
		out = mdast.BlockQuote{}
	case mdast.KindList:
		out = mdast.List{ListAttrs: r.listAttrs()}
	case mdast.KindItem:
		out = mdast.Item{ListAttrs: r.listAttrs()}
	case mdast.KindCodeBlock:
		out = mdast.CodeBlock{
			Fenced:      r.bool(FieldFenced),
			FenceChar:   r.char(FieldFenceChar),
			FenceLength: uint(r.uint(FieldFenceLength, math.MaxUint32)),
			Info:        r.string(FieldInfo),
			Literal:     r.string(FieldLiteral),
		}
	case mdast.KindHTMLBlock:
		out = mdast.HTMLBlock{Literal: r.string(FieldLiteral)}
	case mdast.KindParagraph:
		out = mdast.Paragraph{}
	case mdast.KindHeading:
		out = mdast.Heading{
			Level:  uint8(r.uint(FieldLevel, math.MaxUint8)),
			Setext: r.bool(FieldSetext),
		}
	case mdast.KindThematicBreak:
		out = mdast.ThematicBreak{}
	case mdast.KindFootnoteDefinition:
		out = mdast.FootnoteDefinition{Name: r.string(FieldName)}
	case mdast.KindTable:
		out = mdast.Table{Alignments: r.alignments()}
	case mdast.KindTableRow:
		out = mdast.TableRow{Header: r.bool(FieldHeader)}
	case mdast.KindTableCell:
		out = mdast.TableCell{}
	case mdast.KindText:
		out = mdast.Text{Literal: r.string(FieldText)}
	case mdast.KindSoftBreak:
		out = mdast.SoftBreak{}
	case mdast.KindLineBreak:
		out = mdast.LineBreak{}
	case mdast.KindCode:
		out = mdast.Code{Literal: r.string(FieldCode)}
	case mdast.KindHTMLInline:
		out = mdast.HTMLInline{Literal: r.string(FieldHTML)}
	case mdast.KindEmph:
		out = mdast.Emph{}
	case mdast.KindStrong:
		out = mdast.Strong{}
	case mdast.KindStrikethrough:
		out = mdast.Strikethrough{}
	case mdast.KindSuperscript:
		out = mdast.Superscript{}
	case mdast.KindLink:
		out = mdast.Link{URL: r.string(FieldURL), Title: r.string(FieldTitle)}
	case mdast.KindImage:
		out = mdast.Image{URL: r.string(FieldURL), Title: r.string(FieldTitle)}
	case mdast.KindFootnoteReference:
		out = mdast.FootnoteReference{Name: r.string(FieldName)}
	default:
		return nil, &UnsupportedNodeError{Node: mdast.NoNode, Variant: v.Tag}
	}

	if r.err != nil {
		return nil, r.err
	}
	if r.read != len(v.Fields) {
		return nil, fmt.Errorf("%w: %s has %d unknown fields", ErrMalformed, v.Tag, len(v.Fields)-r.read)
	}
	return out, nil
}

func checkNoFields(v Value) error {
	if len(v.Fields) != 0 {
		return fmt.Errorf("%w: %s takes no fields", ErrMalformed, v.Tag)
	}
	return nil
}

// fieldReader extracts typed fields and keeps the first error.
type fieldReader struct {
	tag    string
	fields Fields
	read   int
	err    error
}

func (r *fieldReader) get(name string) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.fields[name]
	if !ok {
		r.err = fmt.Errorf("%w: %s: missing field %s", ErrMalformed, r.tag, name)
		return nil, false
	}
	r.read++
	return v, true
}

func (r *fieldReader) fail(name string, want string, got any) {
	r.err = fmt.Errorf("%w: %s: field %s: want %s, got %T", ErrMalformed, r.tag, name, want, got)
}

func (r *fieldReader) string(name string) string {
	v, ok := r.get(name)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(name, "string", v)
	}
	return s
}

func (r *fieldReader) bool(name string) bool {
	v, ok := r.get(name)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(name, "bool", v)
	}
	return b
}

func (r *fieldReader) uint(name string, maxValue uint64) uint64 {
	v, ok := r.get(name)
	if !ok {
		return 0
	}
	u, ok := asUint(v)
	if !ok || u > maxValue {
		r.fail(name, "unsigned integer", v)
		return 0
	}
	return u
}

func (r *fieldReader) char(name string) byte {
	s := r.string(name)
	switch {
	case r.err != nil, s == "":
		return 0
	case len(s) == 1:
		return s[0]
	default:
		r.fail(name, "single character", s)
		return 0
	}
}

func (r *fieldReader) enum(name string, values ...string) int {
	s := r.string(name)
	if r.err != nil {
		return 0
	}
	for i, v := range values {
		if s == v {
			return i
		}
	}
	r.err = fmt.Errorf("%w: %s: field %s: unknown value %q", ErrMalformed, r.tag, name, s)
	return 0
}

func (r *fieldReader) listAttrs() mdast.ListAttrs {
	return mdast.ListAttrs{
		Type:       mdast.ListType(r.enum(FieldListType, "bullet", "ordered")),
		Start:      uint(r.uint(FieldStart, math.MaxUint32)),
		Delimiter:  mdast.ListDelim(r.enum(FieldDelimiter, "period", "paren")),
		BulletChar: r.char(FieldBulletChar),
		Tight:      r.bool(FieldTight),
	}
}

func (r *fieldReader) alignments() []mdast.Alignment {
	v, ok := r.get(FieldAlignments)
	if !ok {
		return nil
	}
	labels, ok := asStrings(v)
	if !ok {
		r.fail(FieldAlignments, "list of strings", v)
		return nil
	}
	out := make([]mdast.Alignment, len(labels))
	for i, label := range labels {
		a, ok := mdast.ParseAlignment(label)
		if !ok {
			r.err = fmt.Errorf("%w: %s: unknown alignment %q", ErrMalformed, r.tag, label)
			return nil
		}
		out[i] = a
	}
	return out
}
