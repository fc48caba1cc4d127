package exchange

import (
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Encode converts the whole tree into an exchange value, starting at the
// root Document.
func Encode(t *mdast.Tree) (Value, error) {
	return EncodeNode(t, t.Root())
}

// EncodeNode converts the subtree rooted at id. Children are encoded in
// document order. Either the whole subtree is encoded or an error is
// returned.
func EncodeNode(t *mdast.Tree, id mdast.NodeID) (Value, error) {
	if !t.Contains(id) {
		return Value{}, fmt.Errorf("%w: node %d not in tree", mdast.ErrInvalidTree, id)
	}

	tag, fields, err := payload(id, t.Value(id))
	if err != nil {
		return Value{}, err
	}

	kids := t.Children(id)
	children := make([]Value, 0, len(kids))
	for _, child := range kids {
		enc, err := EncodeNode(t, child)
		if err != nil {
			return Value{}, err
		}
		children = append(children, enc)
	}

	return Value{Tag: tag, Fields: fields, Children: children}, nil
}

// payload maps one node value to its tag and fields.
func payload(id mdast.NodeID, v mdast.Value) (string, Fields, error) {
	if v == nil || !v.Kind().Valid() {
		return "", nil, &UnsupportedNodeError{Node: id, Variant: fmt.Sprintf("%T", v)}
	}

	tag := v.Kind().String()
	fields := Fields{}
	text := func(field, s string) error {
		if !utf8.ValidString(s) {
			return &InvalidTextError{Node: id, Tag: tag, Field: field}
		}
		fields[field] = s
		return nil
	}

	var err error
	switch n := v.(type) {
	case mdast.List:
		listFields(fields, n.ListAttrs)
	case mdast.Item:
		listFields(fields, n.ListAttrs)
	case mdast.CodeBlock:
		fields[FieldFenced] = n.Fenced
		fields[FieldFenceChar] = charString(n.FenceChar)
		fields[FieldFenceLength] = uint64(n.FenceLength)
		if err = text(FieldInfo, n.Info); err == nil {
			err = text(FieldLiteral, n.Literal)
		}
	case mdast.HTMLBlock:
		err = text(FieldLiteral, n.Literal)
	case mdast.Heading:
		fields[FieldLevel] = uint64(n.Level)
		fields[FieldSetext] = n.Setext
	case mdast.FootnoteDefinition:
		err = text(FieldName, n.Name)
	case mdast.FootnoteReference:
		err = text(FieldName, n.Name)
	case mdast.Table:
		aligns := make([]string, len(n.Alignments))
		for i, a := range n.Alignments {
			aligns[i] = a.String()
		}
		fields[FieldAlignments] = aligns
	case mdast.TableRow:
		fields[FieldHeader] = n.Header
	case mdast.Text:
		err = text(FieldText, n.Literal)
	case mdast.Code:
		err = text(FieldCode, n.Literal)
	case mdast.HTMLInline:
		err = text(FieldHTML, n.Literal)
	case mdast.Link:
		if err = text(FieldURL, n.URL); err == nil {
			err = text(FieldTitle, n.Title)
		}
	case mdast.Image:
		if err = text(FieldURL, n.URL); err == nil {
			err = text(FieldTitle, n.Title)
		}
	case mdast.Document, mdast.BlockQuote, mdast.Paragraph, mdast.ThematicBreak,
		mdast.TableCell, mdast.SoftBreak, mdast.LineBreak, mdast.Emph, mdast.Strong,
		mdast.Strikethrough, mdast.Superscript:
	default:
		return "", nil, &UnsupportedNodeError{Node: id, Variant: fmt.Sprintf("%T", v)}
	}
	if err != nil {
		return "", nil, err
	}

	return tag, fields, nil
}

func listFields(fields Fields, a mdast.ListAttrs) {
	fields[FieldListType] = a.Type.String()
	fields[FieldStart] = uint64(a.Start)
	fields[FieldDelimiter] = a.Delimiter.String()
	fields[FieldBulletChar] = charString(a.BulletChar)
	fields[FieldTight] = a.Tight
}

// charString renders a marker byte. Absent markers are the empty string.
func charString(c byte) string {
	if c == 0 {
		return ""
	}
	return string(rune(c))
}
