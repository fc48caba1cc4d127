package goldmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescapeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`a\*b`, "a*b"},
		{`a\b`, `a\b`},
		{"&amp;", "&"},
		{`\&amp;`, "&amp;"},
		{"&#65;&#x42;&#X43;", "ABC"},
		{"&#0;", "�"},
		{"&#1114112;", "�"},
		{"&bogus;", "&bogus;"},
		{"&copy", "&copy"},
		{"&amp;#65;", "&#65;"},
		{`trailing\`, `trailing\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, string(unescapeText([]byte(tt.in))), tt.in)
	}
}
