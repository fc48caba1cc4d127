package mdast

import (
	"fmt"
	"io"
	"strings"
)

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(t *Tree, id NodeID) error

// Walk performs a pre-order traversal of the subtree rooted at id.
// The callback walkFunc is called for each node. If walkFunc returns a non-nil error,
// the walk stops immediately and returns that error.
func Walk(t *Tree, id NodeID, walkFunc WalkFunc) error {
	if t == nil || !t.Contains(id) {
		return nil
	}

	// Visit the current node.
	if err := walkFunc(t, id); err != nil {
		return err
	}

	// Visit children.
	for _, child := range t.Children(id) {
		if err := Walk(t, child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(t *Tree, id NodeID, enter, leave WalkFunc) error {
	if t == nil || !t.Contains(id) {
		return nil
	}

	// Enter the current node.
	if enter != nil {
		if err := enter(t, id); err != nil {
			return err
		}
	}

	// Visit children.
	for _, child := range t.Children(id) {
		if err := WalkWithContext(t, child, enter, leave); err != nil {
			return err
		}
	}

	// Leave the current node.
	if leave != nil {
		if err := leave(t, id); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes under id matching the predicate, in pre-order.
func FindAll(t *Tree, id NodeID, predicate func(t *Tree, id NodeID) bool) []NodeID {
	var result []NodeID

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(t, id, func(t *Tree, n NodeID) error {
		if predicate(t, n) {
			result = append(result, n)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or NoNode if none found.
func FindFirst(t *Tree, id NodeID, predicate func(t *Tree, id NodeID) bool) NodeID {
	found := NoNode

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(t, id, func(t *Tree, n NodeID) error {
		if predicate(t, n) {
			found = n
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind under id.
func FindByKind(t *Tree, id NodeID, kind Kind) []NodeID {
	return FindAll(t, id, func(t *Tree, n NodeID) bool {
		return t.Kind(n) == kind
	})
}

// TextContent concatenates the literal text of every Text and Code
// descendant of id, in document order.
func TextContent(t *Tree, id NodeID) string {
	var sb strings.Builder

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(t, id, func(t *Tree, n NodeID) error {
		switch v := t.Value(n).(type) {
		case Text:
			sb.WriteString(v.Literal)
		case Code:
			sb.WriteString(v.Literal)
		case SoftBreak, LineBreak:
			sb.WriteByte(' ')
		}
		return nil
	})

	return sb.String()
}

// Dump writes an indented listing of the tree, one node per line.
func Dump(w io.Writer, t *Tree) error {
	depth := 0
	return WalkWithContext(t, t.Root(),
		func(t *Tree, id NodeID) error {
			_, err := fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), t.Kind(id), describe(t.Value(id)))
			depth++
			return err
		},
		func(_ *Tree, _ NodeID) error {
			depth--
			return nil
		},
	)
}

// describe renders the attributes of v for Dump.
func describe(v Value) string {
	switch v := v.(type) {
	case List:
		return describeList(v.ListAttrs)
	case Item:
		return describeList(v.ListAttrs)
	case CodeBlock:
		return fmt.Sprintf(" fenced=%t info=%q literal=%q", v.Fenced, v.Info, v.Literal)
	case HTMLBlock:
		return fmt.Sprintf(" %q", v.Literal)
	case Heading:
		return fmt.Sprintf(" level=%d setext=%t", v.Level, v.Setext)
	case FootnoteDefinition:
		return fmt.Sprintf(" name=%q", v.Name)
	case Table:
		return fmt.Sprintf(" alignments=%v", v.Alignments)
	case TableRow:
		return fmt.Sprintf(" header=%t", v.Header)
	case Text:
		return fmt.Sprintf(" %q", v.Literal)
	case Code:
		return fmt.Sprintf(" %q", v.Literal)
	case HTMLInline:
		return fmt.Sprintf(" %q", v.Literal)
	case Link:
		return fmt.Sprintf(" url=%q title=%q", v.URL, v.Title)
	case Image:
		return fmt.Sprintf(" url=%q title=%q", v.URL, v.Title)
	case FootnoteReference:
		return fmt.Sprintf(" name=%q", v.Name)
	default:
		return ""
	}
}

func describeList(a ListAttrs) string {
	if a.Type == ListOrdered {
		return fmt.Sprintf(" ordered start=%d delim=%s tight=%t", a.Start, a.Delimiter, a.Tight)
	}
	return fmt.Sprintf(" bullet=%q tight=%t", string(a.BulletChar), a.Tight)
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
