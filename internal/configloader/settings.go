package configloader

import (
	"runtime"
	"slices"

	"github.com/yaklabco/mdtree/pkg/config"
)

// Preset names accepted by the preset key.
const (
	PresetDefault = "default"
	PresetGFM     = "gfm"
)

// Color modes accepted by the color key.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Settings is the resolved configuration: the Markdown option record plus
// the command-level settings that sit beside it in config files.
type Settings struct {
	// Markdown is the option record passed to every conversion.
	Markdown config.Options

	// Format is the default output format of "mdtree ast".
	Format config.OutputFormat

	// Jobs bounds batch concurrency. 0 means runtime.NumCPU().
	Jobs int

	// Exclude lists globs skipped by batch discovery.
	Exclude []string

	// Color is auto, always or never.
	Color string
}

// DefaultSettings returns the settings used before any layer is applied.
func DefaultSettings() Settings {
	return Settings{
		Markdown: config.Default(),
		Format:   config.FormatJSON,
		Color:    ColorAuto,
	}
}

// EffectiveJobs resolves Jobs to a positive worker count.
func (s Settings) EffectiveJobs() int {
	if s.Jobs <= 0 {
		return runtime.NumCPU()
	}
	return s.Jobs
}

// Clone returns a copy that shares no pointers or slices with s.
func (s Settings) Clone() Settings {
	clone := s
	clone.Markdown = *s.Markdown.Clone()
	clone.Exclude = slices.Clone(s.Exclude)
	return clone
}

// apply overlays the settings of one layer. A preset replaces the Markdown
// record before the layer's own keys are applied, so keys in the same
// layer refine the preset.
func (s *Settings) apply(layer *Layer) {
	if layer == nil {
		return
	}
	for _, setting := range layer.Settings {
		if setting.Key == keyPreset {
			s.applyPreset(setting.value.s)
		}
	}
	for _, setting := range layer.Settings {
		if setting.Key == keyPreset {
			continue
		}
		if spec, ok := keySpecs[setting.Key]; ok {
			spec.apply(s, setting.value)
		}
	}
}

func (s *Settings) applyPreset(name string) {
	switch name {
	case PresetGFM:
		s.Markdown = config.GFM()
	case PresetDefault:
		s.Markdown = config.Default()
	}
}
