package goldmark

import (
	"strconv"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"
)

// unescapeText resolves backslash escapes and character references the
// way the HTML writer would, yielding the literal text.
func unescapeText(v []byte) []byte {
	out := make([]byte, 0, len(v))
	start := 0
	for i := 0; i < len(v)-1; i++ {
		if v[i] == '\\' && util.IsPunct(v[i+1]) {
			out = resolveReferences(out, v[start:i])
			out = append(out, v[i+1])
			i++
			start = i + 1
		}
	}
	return resolveReferences(out, v[start:])
}

// resolveReferences appends v to dst with named and numeric character
// references replaced in one pass.
func resolveReferences(dst, v []byte) []byte {
	for i := 0; i < len(v); i++ {
		if v[i] != '&' {
			dst = append(dst, v[i])
			continue
		}
		if resolved, n := characterReference(v[i:]); n > 0 {
			dst = append(dst, resolved...)
			i += n - 1
			continue
		}
		dst = append(dst, '&')
	}
	return dst
}

// characterReference decodes one reference at the start of v. It returns
// the replacement and the number of bytes consumed, or 0 when v does not
// start with a valid reference.
func characterReference(v []byte) ([]byte, int) {
	if len(v) < 3 || v[0] != '&' {
		return nil, 0
	}

	if v[1] == '#' {
		return numericReference(v)
	}

	end := 1
	for end < len(v) && end <= 32 && isAlnum(v[end]) {
		end++
	}
	if end == 1 || end >= len(v) || v[end] != ';' {
		return nil, 0
	}
	entity, ok := util.LookUpHTML5EntityByName(string(v[1:end]))
	if !ok {
		return nil, 0
	}
	return entity.Characters, end + 1
}

func numericReference(v []byte) ([]byte, int) {
	base, pos, maxDigits := 10, 2, 7
	if pos < len(v) && (v[pos] == 'x' || v[pos] == 'X') {
		base, pos, maxDigits = 16, 3, 6
	}

	digits := pos
	for digits < len(v) && digits-pos < maxDigits && isDigit(v[digits], base) {
		digits++
	}
	if digits == pos || digits >= len(v) || v[digits] != ';' {
		return nil, 0
	}

	code, err := strconv.ParseUint(string(v[pos:digits]), base, 32)
	r := rune(code)
	if err != nil || code == 0 || !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	return utf8.AppendRune(nil, r), digits + 1
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isDigit(c byte, base int) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	return base == 16 && ((c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F'))
}
