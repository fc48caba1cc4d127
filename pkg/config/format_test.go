package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdtree/pkg/config"
)

func TestOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format config.OutputFormat
		valid  bool
		ext    string
	}{
		{config.FormatJSON, true, ".json"},
		{config.FormatYAML, true, ".yaml"},
		{config.FormatTree, true, ".txt"},
		{config.OutputFormat("sarif"), false, ".json"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, tt.format.IsValid())
			assert.Equal(t, tt.ext, tt.format.Extension())
		})
	}
}

func TestListStyle(t *testing.T) {
	t.Parallel()

	assert.True(t, config.ListStyleDash.IsValid())
	assert.True(t, config.ListStylePlus.IsValid())
	assert.True(t, config.ListStyleStar.IsValid())
	assert.False(t, config.ListStyle("").IsValid())
	assert.False(t, config.ListStyle("hash").IsValid())
}
