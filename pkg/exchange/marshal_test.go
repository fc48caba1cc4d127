package exchange_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/exchange"
)

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	original, err := exchange.Encode(fullTree())
	require.NoError(t, err)

	for _, format := range []config.OutputFormat{config.FormatJSON, config.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			data, err := exchange.Marshal(original, format)
			require.NoError(t, err)

			again, err := exchange.Marshal(original, format)
			require.NoError(t, err)
			assert.Equal(t, data, again)

			decoded, err := exchange.Unmarshal(data, format)
			require.NoError(t, err)
			assert.True(t, exchange.Equal(original, decoded))
		})
	}
}

func TestMarshal_JSONLayout(t *testing.T) {
	t.Parallel()

	v := exchange.Value{
		Tag:    "Document",
		Fields: exchange.Fields{},
		Children: []exchange.Value{
			{Tag: "HtmlInline", Fields: exchange.Fields{exchange.FieldHTML: "<b>"}, Children: []exchange.Value{}},
		},
	}

	data, err := exchange.Marshal(v, config.FormatJSON)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, "\n  \"fields\": {}")
	assert.Contains(t, out, `"html": "<b>"`, "html must not be escaped")
}

func TestMarshal_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := exchange.Marshal(exchange.Value{Tag: "Document"}, config.FormatTree)
	require.ErrorIs(t, err, exchange.ErrFormat)

	_, err = exchange.Unmarshal([]byte("x"), config.FormatTree)
	require.ErrorIs(t, err, exchange.ErrFormat)
}
