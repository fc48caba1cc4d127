package goldmark

import (
	"fmt"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// UnsupportedNodeError reports a goldmark node kind that has no
// counterpart in the syntax tree. It wraps mdast.ErrTaxonomyDrift.
type UnsupportedNodeError struct {
	// Kind is the goldmark node kind name, e.g. "DefinitionList".
	Kind string

	// Offset is the byte offset of the node, or -1 when unknown.
	Offset int
}

// Error implements the error interface.
func (e *UnsupportedNodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("unsupported goldmark node %s", e.Kind)
	}
	return fmt.Sprintf("unsupported goldmark node %s at offset %d", e.Kind, e.Offset)
}

// Unwrap returns mdast.ErrTaxonomyDrift.
func (e *UnsupportedNodeError) Unwrap() error {
	return mdast.ErrTaxonomyDrift
}
