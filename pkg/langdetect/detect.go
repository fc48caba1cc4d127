// Package langdetect guesses the language of code block contents. The
// guess is a display hint for blocks that carry no info string and never
// feeds back into the syntax tree.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates limits go-enry's classifier to languages commonly
// found in Markdown fences.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// sample is code prepared once for the heuristics.
type sample struct {
	raw     []byte
	text    string
	trimmed []byte
	upper   string
}

func newSample(code []byte) sample {
	trimmed := bytes.TrimSpace(code)
	return sample{
		raw:     code,
		text:    string(code),
		trimmed: trimmed,
		upper:   strings.ToUpper(string(trimmed)),
	}
}

// heuristic reports whether a sample is clearly written in lang.
type heuristic struct {
	lang  string
	match func(s sample) bool
}

// heuristics run in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var heuristics = []heuristic{
	{"go", func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("package "))
	}},
	{"python", looksPython},
	{"html", func(s sample) bool {
		lower := bytes.ToLower(s.trimmed)
		for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(marker)) {
				return true
			}
		}
		return false
	}},
	{"json", func(s sample) bool {
		return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
			bytes.Contains(s.trimmed, []byte(`"`))
	}},
	{"dockerfile", func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
			(strings.Contains(s.text, "\nFROM ") && strings.Contains(s.text, "\nRUN ")) ||
			(strings.Contains(s.text, "WORKDIR ") && strings.Contains(s.text, "COPY "))
	}},
	{"sql", func(s sample) bool {
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(s.upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s sample) bool {
		return strings.Contains(s.text, "fn main()") ||
			strings.Contains(s.text, "println!") ||
			strings.Contains(s.text, "let mut ")
	}},
	{"javascript", func(s sample) bool {
		return strings.Contains(s.text, "=>") ||
			strings.Contains(s.text, "const ") ||
			strings.Contains(s.text, "let ") ||
			strings.Contains(s.text, "console.log")
	}},
	{"yaml", looksYAML},
}

// Guess returns a lowercase fence tag for code, or false when no language
// can be told with confidence.
//
// A shebang decides first, then the fixed heuristics, then go-enry's
// classifier when it reports a safe result.
func Guess(code string) (string, bool) {
	raw := []byte(code)
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(raw); safe {
		return fenceTag(lang), true
	}

	s := newSample(raw)
	for _, h := range heuristics {
		if h.match(s) {
			return h.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(raw, classifierCandidates); safe && lang != "" {
		return fenceTag(lang), true
	}
	return "", false
}

func looksPython(s sample) bool {
	if strings.Contains(s.text, "def ") && strings.Contains(s.text, "):") {
		return true
	}
	if strings.Contains(s.text, "__name__") || strings.Contains(s.text, "__main__") {
		return true
	}
	if strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import (") {
		return strings.Contains(s.text, "from ") || bytes.HasPrefix(s.trimmed, []byte("import "))
	}
	return false
}

// looksYAML counts "key: value" lines and top-level list items.
func looksYAML(s sample) bool {
	count := 0
	for line := range bytes.SplitSeq(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

// fenceTag converts a go-enry language name to the tag used after a fence.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
