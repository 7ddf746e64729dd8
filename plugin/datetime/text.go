package datetime

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Normalize lowercases text and folds fullwidth forms to their narrow
// counterparts one rune at a time, so rune offsets into the result are valid
// offsets into the input.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if p := width.LookupRune(r); p.Kind() == width.EastAsianFullwidth {
			if narrow := p.Narrow(); narrow != 0 {
				r = narrow
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// substring slices s by rune offsets, clamping to the string bounds.
func substring(s string, start, length int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		return ""
	}
	end := start + length
	if end > len(runes) {
		end = len(runes)
	}
	if end < start {
		return ""
	}
	return string(runes[start:end])
}

func runeSuffix(s string, start int) string {
	runes := []rune(s)
	if start >= len(runes) {
		return ""
	}
	if start < 0 {
		start = 0
	}
	return string(runes[start:])
}

func runePrefix(s string, end int) string {
	runes := []rune(s)
	if end > len(runes) {
		end = len(runes)
	}
	if end < 0 {
		return ""
	}
	return string(runes[:end])
}

// trimmed returns the candidate text with surrounding whitespace removed and
// lowercased for lexicon lookups.
func trimmed(text string) string {
	return strings.TrimSpace(Normalize(text))
}
