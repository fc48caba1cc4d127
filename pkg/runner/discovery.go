package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds the Markdown files selected by opts. It returns sorted,
// deduplicated absolute paths.
//
// Directories are walked recursively, skipping hidden entries and anything
// matching ExcludeGlobs. Explicitly named files are taken as long as their
// extension and the globs allow them, even when hidden.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:            ctx,
		filter:         newPathFilter(workDir, opts),
		followSymlinks: opts.FollowSymlinks,
		seen:           make(map[string]struct{}),
		visitedDirs:    make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if w.filter.acceptFile(abs) {
				w.add(abs)
			}
			continue
		}

		if err := w.walk(abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// walker accumulates files across the requested roots.
type walker struct {
	ctx            context.Context //nolint:containedctx // Scoped to one Discover call.
	filter         pathFilter
	followSymlinks bool
	files          []string
	seen           map[string]struct{}
	visitedDirs    map[string]struct{}
}

func (w *walker) add(file string) {
	if _, ok := w.seen[file]; ok {
		return
	}
	w.seen[file] = struct{}{}
	w.files = append(w.files, file)
}

// walk visits root. Symlinked directories are walked through their
// resolved target; each real directory is walked once, which also breaks
// symlink cycles.
func (w *walker) walk(root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, done := w.visitedDirs[real]; done {
			return nil
		}
		w.visitedDirs[real] = struct{}{}
	}

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (p != root && w.filter.excluded(p)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(p)
		}

		if w.filter.acceptFile(p) {
			w.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink met during a walk. Broken links are skipped.
func (w *walker) symlink(p string) error {
	target, err := filepath.EvalSymlinks(p)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}

	if !info.IsDir() {
		if w.filter.acceptFile(p) {
			w.add(p)
		}
		return nil
	}
	if !w.followSymlinks || w.filter.excluded(p) {
		return nil
	}
	return w.walk(target)
}

// pathFilter decides which paths are selected. Globs are matched against
// slash-separated paths relative to the working directory.
type pathFilter struct {
	workDir    string
	extensions []string
	include    []string
	exclude    []string
}

func newPathFilter(workDir string, opts Options) pathFilter {
	exts := make([]string, 0, len(opts.effectiveExtensions()))
	for _, e := range opts.effectiveExtensions() {
		exts = append(exts, strings.ToLower(e))
	}
	return pathFilter{
		workDir:    workDir,
		extensions: exts,
		include:    opts.IncludeGlobs,
		exclude:    opts.ExcludeGlobs,
	}
}

func (f pathFilter) rel(p string) string {
	rel, err := filepath.Rel(f.workDir, p)
	if err != nil {
		rel = p
	}
	return filepath.ToSlash(rel)
}

// excluded reports whether p, or a directory containing it, matches an
// exclude glob.
func (f pathFilter) excluded(p string) bool {
	return matchAny(f.rel(p), f.exclude, true)
}

func (f pathFilter) acceptFile(p string) bool {
	if !slices.Contains(f.extensions, strings.ToLower(filepath.Ext(p))) {
		return false
	}
	if f.excluded(p) {
		return false
	}
	if len(f.include) > 0 && !matchAny(f.rel(p), f.include, false) {
		return false
	}
	return true
}

// matchAny reports whether rel matches one of patterns. With parents set,
// every leading directory of rel is tried as well.
func matchAny(rel string, patterns []string, parents bool) bool {
	if len(patterns) == 0 {
		return false
	}

	candidates := []string{rel}
	if parents {
		for dir := path.Dir(rel); dir != "." && dir != "/" && !strings.HasPrefix(dir, ".."); dir = path.Dir(dir) {
			candidates = append(candidates, dir)
		}
	}

	for _, pattern := range patterns {
		for _, c := range candidates {
			if matchGlob(c, pattern) {
				return true
			}
		}
	}
	return false
}

// matchGlob matches a slash-separated path against a glob. A "**" segment
// matches any number of path segments. A pattern without a slash is also
// tried against the last path segment, so "*.md" and "README.md" match at
// any depth.
func matchGlob(p, pattern string) bool {
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "/") && pattern != "**" {
		ok, err := path.Match(pattern, path.Base(p))
		if err == nil && ok {
			return true
		}
	}
	return matchSegments(strings.Split(p, "/"), strings.Split(pattern, "/"))
}

func matchSegments(segs, pats []string) bool {
	for len(pats) > 0 {
		if pats[0] == "**" {
			rest := pats[1:]
			for i := 0; i <= len(segs); i++ {
				if matchSegments(segs[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		ok, err := path.Match(pats[0], segs[0])
		if err != nil || !ok {
			return false
		}
		segs, pats = segs[1:], pats[1:]
	}
	return len(segs) == 0
}
