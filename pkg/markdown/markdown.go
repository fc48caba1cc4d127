// Package markdown is the entry point for converting Markdown text into an
// exchange tree or HTML.
//
// Every call is independent: options are normalized, an engine is built,
// the input is converted and everything is discarded. Calls share no
// mutable state and may run in parallel.
package markdown

import (
	"context"
	"fmt"
	"time"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/exchange"
	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser/goldmark"
)

// ToAST parses source and encodes the resulting tree as an exchange value.
func ToAST(ctx context.Context, source string, opts config.Options) (exchange.Value, error) {
	tree, err := Parse(ctx, source, opts)
	if err != nil {
		return exchange.Value{}, err
	}

	value, err := exchange.Encode(tree)
	if err != nil {
		return exchange.Value{}, fmt.Errorf("encode tree: %w", err)
	}
	return value, nil
}

// ToHTML renders source to HTML.
func ToHTML(ctx context.Context, source string, opts config.Options) (string, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	out, err := goldmark.New(config.Normalize(opts)).RenderHTML(ctx, []byte(source))
	if err != nil {
		return "", err
	}

	logger.Debug("rendered html",
		logging.FieldBytes, len(source),
		logging.FieldOutput, len(out),
		"duration", time.Since(start),
	)
	return out, nil
}

// Parse parses source into a typed syntax tree.
func Parse(ctx context.Context, source string, opts config.Options) (*mdast.Tree, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	tree, err := goldmark.New(config.Normalize(opts)).Parse(ctx, []byte(source))
	if err != nil {
		return nil, err
	}

	logger.Debug("parsed markdown",
		logging.FieldBytes, len(source),
		logging.FieldNodes, tree.Len(),
		"duration", time.Since(start),
	)
	return tree, nil
}

// FrontMatter extracts the front matter block of source when opts enables
// it.
func FrontMatter(source string, opts config.Options) (goldmark.FrontMatter, bool) {
	return goldmark.New(config.Normalize(opts)).FrontMatter([]byte(source))
}
