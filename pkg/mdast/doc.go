// Package mdast provides the typed Markdown syntax tree.
//
// A Tree is an arena of nodes addressed by NodeID. Node 0 is the Document
// root; every other node has exactly one parent and appears exactly once in
// that parent's ordered children. Each node holds a Value, one of a closed
// set of variant structs (Paragraph, Heading, Link, ...), so consumers can
// type-switch over every case.
//
// The whole tree is owned by one Tree value and is released with it. Trees
// are built once by a parser and then treated as read-only.
package mdast
