// Package language holds the fixed set of supported target languages and
// the script metadata the post-processing rules depend on.
package language

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Script is the writing system of a target language. It decides which
// spacing and punctuation conventions apply after translation.
type Script int

const (
	// Latin covers alphabetic targets using ASCII punctuation.
	Latin Script = iota
	// Wide covers CJK targets using full-width punctuation.
	Wide
)

// Language describes one supported target language.
type Language struct {
	Code   string
	Name   string
	Script Script
}

var supported = map[string]Language{
	"ja": {Code: "ja", Name: "Japanese", Script: Wide},
	"zh": {Code: "zh", Name: "Chinese (Simplified)", Script: Wide},
	"ko": {Code: "ko", Name: "Korean", Script: Wide},
	"fr": {Code: "fr", Name: "French", Script: Latin},
	"de": {Code: "de", Name: "German", Script: Latin},
	"es": {Code: "es", Name: "Spanish", Script: Latin},
	"pt": {Code: "pt", Name: "Portuguese", Script: Latin},
	"ru": {Code: "ru", Name: "Russian", Script: Latin},
}

// Lookup resolves a language code. The code must be a member of the fixed
// supported set; anything else is an error the caller treats as fatal.
func Lookup(code string) (Language, error) {
	lang, ok := supported[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Language{}, fmt.Errorf("unsupported language code %q (supported: %s)",
			code, strings.Join(Codes(), ", "))
	}
	return lang, nil
}

// Codes returns the supported language codes, sorted.
func Codes() []string {
	codes := make([]string, 0, len(supported))
	for c := range supported {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// IsWideRune reports whether r belongs to a wide (CJK) script. Full-width
// punctuation deliberately does not count; the spacing rules only care
// about script characters proper.
func IsWideRune(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// ContainsWide reports whether s contains at least one wide-script rune.
func ContainsWide(s string) bool {
	for _, r := range s {
		if IsWideRune(r) {
			return true
		}
	}
	return false
}
