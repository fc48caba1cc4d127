// Package configloader resolves mdtree settings from defaults, config
// files, environment variables and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"
)

// Layer sources that are not files.
const (
	SourceEnv   = "environment"
	SourceFlags = "flags"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It is applied above the project config.
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// LookupEnv replaces os.LookupEnv for both MDTREE_* variables and
	// XDG_CONFIG_HOME.
	LookupEnv func(string) (string, bool)

	// Flags holds settings from CLI flags. These take highest precedence.
	Flags *Layer
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Settings is the final merged configuration.
	Settings Settings

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.Flags)
//  2. Environment variables (MDTREE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdtree.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdtree/config.yaml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir, opts.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{
		Settings: DefaultSettings(),
		Paths:    paths,
	}

	var files []string
	if !opts.IgnoreUserConfig && paths.User != "" {
		files = append(files, paths.User)
	}
	if !opts.IgnoreProjectConfig && paths.Project != "" {
		files = append(files, paths.Project)
	}
	if paths.Explicit != "" {
		files = append(files, paths.Explicit)
	}

	for _, path := range files {
		layer, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		if err := result.overlay(layer); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if !opts.IgnoreEnv {
		layer, err := LoadFromEnv(opts.LookupEnv)
		if err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
		if err := result.overlay(layer); err != nil {
			return nil, err
		}
	}

	if opts.Flags != nil {
		if err := result.overlay(opts.Flags); err != nil {
			return nil, err
		}
	}

	validation := Validate(result.Settings)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	// Detach from the caller's flag layer.
	result.Settings = result.Settings.Clone()

	return result, nil
}

// overlay applies one layer on top of the settings resolved so far.
func (r *LoadResult) overlay(layer *Layer) error {
	if verr := validatePreset(layer); verr != nil {
		return verr
	}
	for _, w := range layer.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}
	r.Settings.apply(layer)
	return nil
}

// loadConfigFile loads a configuration layer from a YAML or JSON file.
func loadConfigFile(path string) (*Layer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return parseFile(path, content)
}
