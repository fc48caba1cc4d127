package goldmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark/ast"
)

func TestAnchorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "hello-world"},
		{"  spaced  ", "spaced"},
		{"c++ & go!", "c--go"},
		{"snake_case-name", "snake_case-name"},
		{"über straße", "über-straße"},
		{"v1.2", "v12"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, anchorize(tt.in), tt.in)
	}
}

func TestHeadingIDs_Generate(t *testing.T) {
	t.Parallel()

	ids := newHeadingIDs("p-")

	assert.Equal(t, "p-intro", string(ids.Generate([]byte("Intro"), ast.KindHeading)))
	assert.Equal(t, "p-intro-1", string(ids.Generate([]byte("Intro"), ast.KindHeading)))
	assert.Equal(t, "p-intro-2", string(ids.Generate([]byte("INTRO"), ast.KindHeading)))

	ids.Put([]byte("p-setup"))
	assert.Equal(t, "p-setup-1", string(ids.Generate([]byte("Setup"), ast.KindHeading)))
}
