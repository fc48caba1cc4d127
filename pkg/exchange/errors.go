package exchange

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// ErrInvalidUTF8 marks a text attribute that is not valid UTF-8. The parser
// engine must only produce valid text, so this is a contract violation.
var ErrInvalidUTF8 = errors.New("text attribute is not valid UTF-8")

// ErrMalformed marks an exchange value that cannot be decoded.
var ErrMalformed = errors.New("malformed exchange value")

// UnsupportedNodeError reports a node variant or tag the encoder does not
// know. It wraps mdast.ErrTaxonomyDrift.
type UnsupportedNodeError struct {
	// Node is the offending node, or mdast.NoNode when decoding.
	Node mdast.NodeID

	// Variant names the unknown variant (a Go type or a tag label).
	Variant string
}

// Error implements the error interface.
func (e *UnsupportedNodeError) Error() string {
	if e.Node == mdast.NoNode {
		return fmt.Sprintf("unsupported node variant %q", e.Variant)
	}
	return fmt.Sprintf("node %d: unsupported node variant %q", e.Node, e.Variant)
}

// Unwrap returns mdast.ErrTaxonomyDrift.
func (e *UnsupportedNodeError) Unwrap() error {
	return mdast.ErrTaxonomyDrift
}

// InvalidTextError reports a text field holding invalid UTF-8.
type InvalidTextError struct {
	Node  mdast.NodeID
	Tag   string
	Field string
}

// Error implements the error interface.
func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("node %d (%s): field %s: %v", e.Node, e.Tag, e.Field, ErrInvalidUTF8)
}

// Unwrap returns ErrInvalidUTF8.
func (e *InvalidTextError) Unwrap() error {
	return ErrInvalidUTF8
}
