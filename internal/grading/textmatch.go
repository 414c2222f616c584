package grading

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fold lower-cases s with full Unicode case mapping and trims surrounding
// whitespace. Scripts without case pass through unchanged.
func fold(s string) string {
	return trimSpace(cases.Lower(language.Und).String(s))
}

// isSpace is unicode.IsSpace plus the ASCII information separators
// U+001C..U+001F, which text answers treat as whitespace too.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func trimSpace(s string) string { return strings.TrimFunc(s, isSpace) }

// compactRemover drops the separators ignored by the compact comparison.
var compactRemover = strings.NewReplacer(
	",", "",
	"，", "",
	"、", "",
	"。", "",
	" ", "",
	"\n", "",
)

// compact removes commas, ideographic commas and full stops, spaces and
// newlines. Everything else, including tabs, is kept as-is.
func compact(s string) string {
	return compactRemover.Replace(s)
}

func isSeparator(r rune) bool {
	switch r {
	case ',', '，', '、', '。':
		return true
	}
	return isSpace(r)
}

// keywords splits s on separator runs and keeps tokens longer than one rune.
func keywords(s string) []string {
	fields := strings.FieldsFunc(s, isSeparator)
	out := fields[:0]
	for _, f := range fields {
		if runeLen(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// charOverlap is |set(c) ∩ set(u)| / |set(c)| over distinct runes.
func charOverlap(c, u string) float64 {
	cs := runeSet(c)
	if len(cs) == 0 {
		return 0
	}
	us := runeSet(u)
	inter := 0
	for r := range cs {
		if _, ok := us[r]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(cs))
}

func runeSet(s string) map[rune]struct{} {
	m := make(map[rune]struct{}, len(s))
	for _, r := range s {
		m[r] = struct{}{}
	}
	return m
}
