//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binaryName = "mdtree"
	binaryPath = "bin/" + binaryName
	mainPkg    = "./cmd/" + binaryName
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"f":   Test.Fuzz,
	"s":   Smoke,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"bc":  Bench.Corpus,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// fuzzTargets lists every fuzz function with its package.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/parser/goldmark", "FuzzParse"},
	{"./pkg/parser/goldmark", "FuzzParseAllExtensions"},
	{"./pkg/parser/goldmark", "FuzzParseDeterministic"},
	{"./pkg/fsutil", "FuzzWriteAtomic"},
}

// smokeCases are end-to-end conversions checked against the built binary.
var smokeCases = []struct {
	args []string
	src  string
	want string
}{
	{[]string{"html"}, "**x**", "<p><strong>x</strong></p>\n"},
	{[]string{"html", "--strikethrough"}, "~~gone~~", "<p><del>gone</del></p>\n"},
	{[]string{"ast", "--format", "json"}, "hello", `"tag": "Text"`},
	{[]string{"ast", "--format", "yaml"}, "# Title", "tag: Heading"},
}

// Build compiles the mdtree binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir(binaryPath, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Printf("%s is up to date\n", binaryPath)
		return nil
	}
	fmt.Printf("Building %s...\n", binaryName)
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binaryPath, mainPkg)
}

// Smoke runs the built binary over a few fixed documents and checks the
// conversions end to end.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "mdtree-smoke-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	for i, c := range smokeCases {
		path := filepath.Join(dir, fmt.Sprintf("case%d.md", i))
		if err := os.WriteFile(path, []byte(c.src), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		args := append([]string{"--no-config", "--color", "never"}, c.args...)
		out, err := sh.Output(binaryPath, append(args, path)...)
		if err != nil {
			return fmt.Errorf("mdtree %s: %w", strings.Join(c.args, " "), err)
		}
		if !strings.Contains(out+"\n", c.want) {
			return fmt.Errorf("mdtree %s on %q:\n got: %q\nwant: %q",
				strings.Join(c.args, " "), c.src, out, c.want)
		}
		fmt.Printf("  ok  %s %q\n", strings.Join(c.args, " "), c.src)
	}
	return nil
}

// Check runs format, lint, test and smoke sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default, Smoke)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	for _, path := range []string{"bin", "coverage.out", "coverage.html", "testdata/fuzz"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs mdtree to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Printf("Installing %s...\n", binaryName)
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall removes mdtree from $GOBIN or $GOPATH/bin.
func Uninstall() error {
	binPath, err := installedBinary()
	if err != nil {
		return err
	}
	if err := os.Remove(binPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("%s is not installed\n", binaryName)
			return nil
		}
		return fmt.Errorf("remove binary: %w", err)
	}
	fmt.Printf("Removed %s\n", binPath)
	return nil
}

// Deps downloads and tidies module dependencies.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage writes an HTML coverage report to coverage.html.
func Coverage() error {
	st.Deps(Test.Default)
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	fmt.Println("Wrote coverage.html")
	return nil
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-v", "-race")
}

// Fuzz runs each fuzz target for FUZZ_TIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	for _, ft := range fuzzTargets {
		fmt.Printf("Fuzzing %s %s for %s...\n", ft.pkg, ft.name, fuzzTime)
		err := sh.RunV("go", "test", ft.pkg,
			"-run", "^$",
			"-fuzz", "^"+ft.name+"$",
			"-fuzztime", fuzzTime,
		)
		if err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any file needs gofmt.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every CI check in order.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Smoke,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("CI gate passed")
	return nil
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before, err := snapshot(files)
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := snapshot(files)
	if err != nil {
		return err
	}
	for _, name := range files {
		if !bytes.Equal(before[name], after[name]) {
			return fmt.Errorf("%s changed after 'go mod tidy'; commit the result", name)
		}
	}
	return nil
}

// Cross builds every first-class GOOS/GOARCH pair without cgo.
func (CI) Cross() error {
	platforms, err := releasePlatforms()
	if err != nil {
		return err
	}
	for _, p := range platforms {
		goos, goarch, _ := strings.Cut(p, "/")
		fmt.Printf("  Building %s...\n", p)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", p, err)
		}
	}
	return nil
}

// Default runs the Go benchmarks.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./...")
}

// Corpus times a batch conversion of a Markdown corpus with the built binary.
// The corpus directory comes from BENCH_CORPUS (default: current directory).
func (Bench) Corpus() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("BENCH_CORPUS"), ".")
	fmt.Printf("Converting corpus %s...\n", dir)

	start := time.Now()
	err := sh.RunV(binaryPath, "--no-config", "batch", "--report", "summary", dir)
	fmt.Printf("Finished in %s\n", time.Since(start).Round(time.Millisecond))
	return err
}

// gotestsum runs the whole module's tests through the gotestsum tool.
func gotestsum(format string, testFlags ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-p", nCores, "-parallel", nCores}
	args = append(args, testFlags...)
	return sh.RunV("go", append(args, "./...")...)
}

// releasePlatforms returns the first-class ports reported by the toolchain.
func releasePlatforms() ([]string, error) {
	out, err := sh.Output("go", "tool", "dist", "list", "-json")
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	var platforms []string
	for block := range strings.SplitSeq(out, "}") {
		if !strings.Contains(block, `"FirstClass": true`) {
			continue
		}
		goos := jsonField(block, "GOOS")
		goarch := jsonField(block, "GOARCH")
		if goos != "" && goarch != "" {
			platforms = append(platforms, goos+"/"+goarch)
		}
	}
	slices.Sort(platforms)
	return platforms, nil
}

// jsonField extracts a string field from one object of `go tool dist list -json`.
func jsonField(block, name string) string {
	_, rest, ok := strings.Cut(block, `"`+name+`": "`)
	if !ok {
		return ""
	}
	value, _, _ := strings.Cut(rest, `"`)
	return value
}

// snapshot reads each file; a missing file reads as nil.
func snapshot(names []string) (map[string][]byte, error) {
	contents := make(map[string][]byte, len(names))
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		contents[name] = data
	}
	return contents, nil
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}

// installedBinary returns the path where go install places the binary.
func installedBinary() (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, binaryName), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", binaryName), nil
}
