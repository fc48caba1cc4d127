package mdast_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// buildSample builds:
//
//	Document
//	  Heading
//	    Text "Title"
//	  Paragraph
//	    Text "a "
//	    Strong
//	      Text "b"
func buildSample() *mdast.Tree {
	tree := mdast.NewTree()
	h := tree.Append(tree.Root(), mdast.Heading{Level: 1})
	tree.Append(h, mdast.Text{Literal: "Title"})
	p := tree.Append(tree.Root(), mdast.Paragraph{})
	tree.Append(p, mdast.Text{Literal: "a "})
	s := tree.Append(p, mdast.Strong{})
	tree.Append(s, mdast.Text{Literal: "b"})
	return tree
}

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	tree := buildSample()

	var kinds []string
	err := mdast.Walk(tree, tree.Root(), func(t *mdast.Tree, id mdast.NodeID) error {
		kinds = append(kinds, t.Kind(id).String())
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() = %v", err)
	}

	want := "Document Heading Text Paragraph Text Strong Text"
	if got := strings.Join(kinds, " "); got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	tree := buildSample()
	stop := errors.New("stop")

	count := 0
	err := mdast.Walk(tree, tree.Root(), func(t *mdast.Tree, id mdast.NodeID) error {
		count++
		if t.Kind(id) == mdast.KindParagraph {
			return stop
		}
		return nil
	})

	if !errors.Is(err, stop) {
		t.Errorf("expected stop error, got %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 visits, got %d", count)
	}
}

func TestWalkWithContext_EnterLeave(t *testing.T) {
	t.Parallel()

	tree := buildSample()

	var events []string
	err := mdast.WalkWithContext(tree, tree.Root(),
		func(t *mdast.Tree, id mdast.NodeID) error {
			events = append(events, "+"+t.Kind(id).String())
			return nil
		},
		func(t *mdast.Tree, id mdast.NodeID) error {
			events = append(events, "-"+t.Kind(id).String())
			return nil
		},
	)
	if err != nil {
		t.Fatalf("WalkWithContext() = %v", err)
	}

	if events[0] != "+Document" || events[len(events)-1] != "-Document" {
		t.Errorf("unexpected events %v", events)
	}
	if len(events) != 2*tree.Len() {
		t.Errorf("expected %d events, got %d", 2*tree.Len(), len(events))
	}
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()

	tree := buildSample()

	texts := mdast.FindByKind(tree, tree.Root(), mdast.KindText)
	if len(texts) != 3 {
		t.Errorf("expected 3 Text nodes, got %d", len(texts))
	}

	strong := mdast.FindFirst(tree, tree.Root(), func(t *mdast.Tree, id mdast.NodeID) bool {
		return t.Kind(id) == mdast.KindStrong
	})
	if strong == mdast.NoNode {
		t.Fatal("expected to find Strong")
	}

	missing := mdast.FindFirst(tree, tree.Root(), func(t *mdast.Tree, id mdast.NodeID) bool {
		return t.Kind(id) == mdast.KindTable
	})
	if missing != mdast.NoNode {
		t.Errorf("expected NoNode, got %d", missing)
	}

	if got := mdast.TextContent(tree, tree.Root()); got != "Titlea b" {
		t.Errorf("TextContent = %q", got)
	}
}

func TestDump(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := mdast.Dump(&buf, buildSample()); err != nil {
		t.Fatalf("Dump() = %v", err)
	}

	want := `Document
  Heading level=1 setext=false
    Text "Title"
  Paragraph
    Text "a "
    Strong
      Text "b"
`
	if buf.String() != want {
		t.Errorf("Dump() =\n%s\nwant\n%s", buf.String(), want)
	}
}
