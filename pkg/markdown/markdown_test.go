package markdown_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/exchange"
	"github.com/yaklabco/mdtree/pkg/markdown"
	"github.com/yaklabco/mdtree/pkg/mdast"
)

func text(s string) exchange.Value {
	return exchange.Value{Tag: "Text", Fields: exchange.Fields{"text": s}, Children: []exchange.Value{}}
}

func node(tag string, fields exchange.Fields, children ...exchange.Value) exchange.Value {
	if fields == nil {
		fields = exchange.Fields{}
	}
	if children == nil {
		children = []exchange.Value{}
	}
	return exchange.Value{Tag: tag, Fields: fields, Children: children}
}

func TestToAST_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want exchange.Value
	}{
		{
			name: "paragraph",
			src:  "hello",
			want: node("Document", nil, node("Paragraph", nil, text("hello"))),
		},
		{
			name: "heading",
			src:  "# Title",
			want: node("Document", nil,
				node("Heading", exchange.Fields{"level": uint64(1), "setext": false}, text("Title"))),
		},
		{
			name: "fenced code",
			src:  "```rs\ncode\n```",
			want: node("Document", nil, node("CodeBlock", exchange.Fields{
				"fenced":       true,
				"fence_char":   "`",
				"fence_length": uint64(3),
				"info":         "rs",
				"literal":      "code\n",
			})),
		},
		{
			name: "empty input",
			src:  "",
			want: node("Document", nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := markdown.ToAST(context.Background(), tt.src, config.Default())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToAST_TableAlignments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "unaligned column between aligned ones",
			src:  "| a | b | c |\n|:--|---|:-:|\n| 1 | 2 | 3 |",
			want: []string{"left", "none", "center"},
		},
		{
			name: "every column unaligned",
			src:  "| a | b |\n|---|---|\n| 1 | 2 |",
			want: []string{"none", "none"},
		},
		{
			name: "right aligned last",
			src:  "| a | b |\n|---|--:|",
			want: []string{"none", "right"},
		},
	}

	opts := config.Default()
	opts.Table = true

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := markdown.ToAST(context.Background(), tt.src, opts)
			require.NoError(t, err)
			require.Len(t, got.Children, 1)

			table := got.Children[0]
			require.Equal(t, "Table", table.Tag)
			assert.Equal(t, tt.want, table.Fields[exchange.FieldAlignments])
			for _, row := range table.Children {
				assert.Len(t, row.Children, len(tt.want), "cells per row")
			}
		})
	}
}

func TestToAST_Deterministic(t *testing.T) {
	t.Parallel()

	src := "# A\n\n- x\n- y\n\n> *q* `c`\n"
	first, err := markdown.ToAST(context.Background(), src, config.GFM())
	require.NoError(t, err)

	for range 5 {
		again, err := markdown.ToAST(context.Background(), src, config.GFM())
		require.NoError(t, err)
		assert.True(t, exchange.Equal(first, again))
	}
}

func TestToAST_Parallel(t *testing.T) {
	t.Parallel()

	inputs := []string{"hello", "# Title", "- a\n- b", "**x**", "| a |\n|---|\n| b |"}
	want := make([]exchange.Value, len(inputs))
	for i, src := range inputs {
		v, err := markdown.ToAST(context.Background(), src, config.GFM())
		require.NoError(t, err)
		want[i] = v
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(inputs)*8)
	results := make([][]exchange.Value, 8)
	for worker := range 8 {
		results[worker] = make([]exchange.Value, len(inputs))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, src := range inputs {
				v, err := markdown.ToAST(context.Background(), src, config.GFM())
				if err != nil {
					errs <- err
					return
				}
				results[worker][i] = v
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	for _, got := range results {
		for i := range inputs {
			assert.True(t, exchange.Equal(want[i], got[i]), inputs[i])
		}
	}
}

func TestToAST_JSON(t *testing.T) {
	t.Parallel()

	v, err := markdown.ToAST(context.Background(), "hello", config.Default())
	require.NoError(t, err)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":"Document","fields":{},"children":[
		{"tag":"Paragraph","fields":{},"children":[
			{"tag":"Text","fields":{"text":"hello"},"children":[]}]}]}`, string(data))
}

func TestToAST_TaxonomyDrift(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.DescriptionLists = true

	_, err := markdown.ToAST(context.Background(), "Term\n: Details\n", opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, mdast.ErrTaxonomyDrift)
}

func TestToAST_TaskItems(t *testing.T) {
	t.Parallel()

	src := "- [x] done\n"
	got, err := markdown.ToAST(context.Background(), src, config.GFM())
	require.NoError(t, err)

	require.Len(t, got.Children, 1)
	list := got.Children[0]
	require.Equal(t, "List", list.Tag)
	require.Len(t, list.Children, 1)
	item := list.Children[0]
	require.Equal(t, "Item", item.Tag)
	require.Len(t, item.Children, 1)
	para := item.Children[0]
	require.Equal(t, "Paragraph", para.Tag)
	require.NotEmpty(t, para.Children)

	checkbox := para.Children[0]
	require.Equal(t, "HtmlInline", checkbox.Tag)
	markup, ok := checkbox.Fields[exchange.FieldHTML].(string)
	require.True(t, ok)
	assert.Contains(t, markup, "checkbox")

	html, err := markdown.ToHTML(context.Background(), src, config.GFM())
	require.NoError(t, err)
	assert.Contains(t, html, markup)
}

func TestToHTML(t *testing.T) {
	t.Parallel()

	out, err := markdown.ToHTML(context.Background(), "**x**", config.Default())
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>x</strong>")

	out, err = markdown.ToHTML(context.Background(), "", config.Default())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParse_DebugLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug"))

	tree, err := markdown.Parse(ctx, "# Title\n", config.Default())
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Len())
	assert.True(t, strings.Contains(buf.String(), "parsed markdown"))
}

func TestFrontMatter(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FrontMatterDelimiter = config.String("---")

	fm, ok := markdown.FrontMatter("---\ntitle: T\n---\nbody\n", opts)
	require.True(t, ok)
	meta, err := fm.Map()
	require.NoError(t, err)
	assert.Equal(t, "T", meta["title"])

	_, ok = markdown.FrontMatter("---\ntitle: T\n---\nbody\n", config.Default())
	assert.False(t, ok)
}
