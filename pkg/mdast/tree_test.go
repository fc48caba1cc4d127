package mdast_test

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

func TestNewTree(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()

	if tree.Len() != 1 {
		t.Fatalf("expected 1 node, got %d", tree.Len())
	}
	if tree.Kind(tree.Root()) != mdast.KindDocument {
		t.Errorf("expected Document root, got %s", tree.Kind(tree.Root()))
	}
	if _, ok := tree.Parent(tree.Root()); ok {
		t.Error("expected root to have no parent")
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestTree_AppendPreservesOrder(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	list := tree.Append(tree.Root(), mdast.List{ListAttrs: mdast.ListAttrs{BulletChar: '-', Tight: true}})

	var items []mdast.NodeID
	for range 3 {
		items = append(items, tree.Append(list, mdast.Item{}))
	}

	children := tree.Children(list)
	if len(children) != len(items) {
		t.Fatalf("expected %d children, got %d", len(items), len(children))
	}
	for i := range items {
		if children[i] != items[i] {
			t.Errorf("child %d = %d, want %d", i, children[i], items[i])
		}
		parent, ok := tree.Parent(items[i])
		if !ok || parent != list {
			t.Errorf("Parent(%d) = %d, %t; want %d", items[i], parent, ok, list)
		}
	}

	if tree.FirstChild(list) != items[0] {
		t.Errorf("FirstChild = %d, want %d", tree.FirstChild(list), items[0])
	}
	if tree.FirstChild(items[0]) != mdast.NoNode {
		t.Error("expected leaf item to have no first child")
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestTree_AppendPanicsOnBadParent(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range parent")
		}
	}()

	tree := mdast.NewTree()
	tree.Append(42, mdast.Paragraph{})
}

// Nodes are only ever appended; no method may replace, move or remove one.
func TestTree_AppendOnlyMethods(t *testing.T) {
	t.Parallel()

	want := []string{
		"Append", "ChildCount", "Children", "Contains", "FirstChild",
		"HasChildren", "Kind", "Len", "Parent", "Pos", "Root", "SetPos",
		"Validate", "Value",
	}

	typ := reflect.TypeFor[*mdast.Tree]()
	got := make([]string, 0, typ.NumMethod())
	for i := range typ.NumMethod() {
		got = append(got, typ.Method(i).Name)
	}
	slices.Sort(got)

	if !slices.Equal(got, want) {
		t.Errorf("Tree methods = %v, want %v", got, want)
	}
}

func TestTree_Validate(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	para := tree.Append(tree.Root(), mdast.Paragraph{})
	tree.Append(para, mdast.Text{Literal: "x"})
	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	nested := mdast.NewTree()
	nested.Append(nested.Root(), mdast.Document{})
	err := nested.Validate()
	if !errors.Is(err, mdast.ErrInvalidTree) {
		t.Errorf("expected ErrInvalidTree for nested Document, got %v", err)
	}
}

func TestTree_Pos(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	id := tree.Append(tree.Root(), mdast.Paragraph{})

	if tree.Pos(id).IsKnown() {
		t.Error("expected fresh node to have unknown position")
	}

	want := mdast.SourceRange{StartOffset: 2, EndOffset: 9}
	tree.SetPos(id, want)
	if tree.Pos(id) != want {
		t.Errorf("Pos = %+v, want %+v", tree.Pos(id), want)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind mdast.Kind
		want string
	}{
		{mdast.KindDocument, "Document"},
		{mdast.KindHTMLBlock, "HtmlBlock"},
		{mdast.KindHTMLInline, "HtmlInline"},
		{mdast.KindFootnoteReference, "FootnoteReference"},
		{mdast.Kind(999), "Kind(999)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKind_ByNameRoundTrip(t *testing.T) {
	t.Parallel()

	kinds := mdast.Kinds()
	if len(kinds) != 25 {
		t.Fatalf("expected 25 kinds, got %d", len(kinds))
	}

	for _, k := range kinds {
		got, ok := mdast.KindByName(k.String())
		if !ok || got != k {
			t.Errorf("KindByName(%q) = %v, %t", k.String(), got, ok)
		}
	}

	if _, ok := mdast.KindByName("DescriptionList"); ok {
		t.Error("expected DescriptionList to be unknown")
	}
}

func TestKind_BlockInline(t *testing.T) {
	t.Parallel()

	for _, k := range mdast.Kinds() {
		if k.IsBlock() == k.IsInline() {
			t.Errorf("%s: IsBlock=%t IsInline=%t, want exactly one", k, k.IsBlock(), k.IsInline())
		}
	}
}

func TestAlignment_ParseRoundTrip(t *testing.T) {
	t.Parallel()

	for _, a := range []mdast.Alignment{mdast.AlignNone, mdast.AlignLeft, mdast.AlignRight, mdast.AlignCenter} {
		got, ok := mdast.ParseAlignment(a.String())
		if !ok || got != a {
			t.Errorf("ParseAlignment(%q) = %v, %t", a.String(), got, ok)
		}
	}
	if mdast.AlignNone.String() != "none" {
		t.Errorf("AlignNone.String() = %q, want none", mdast.AlignNone.String())
	}
}
