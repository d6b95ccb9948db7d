package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/mdtrans/internal/doctree"
	"codeberg.org/snonux/mdtrans/internal/language"
)

// RuleEnv is the sibling context a rewrite rule may consult.
type RuleEnv struct {
	Prev   doctree.Node
	Next   doctree.Node
	Script language.Script
}

// Rule is one pure, idempotent text rewrite. Rules compose in a fixed
// order; each is unit-testable in isolation.
type Rule struct {
	Name  string
	Apply func(s string, env RuleEnv) string
}

const wideClass = `\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}`

var (
	parenSpan       = regexp.MustCompile(`[(\x{FF08}]([^()\x{FF08}\x{FF09}]*)[)\x{FF09}]`)
	wideOrDigit     = regexp.MustCompile(`[0-9` + wideClass + `]`)
	wideBeforeASCII = regexp.MustCompile(`([` + wideClass + `])([A-Za-z0-9])`)
	asciiBeforeWide = regexp.MustCompile(`([A-Za-z0-9])([` + wideClass + `])`)
	widePeriod      = regexp.MustCompile(`([` + wideClass + `])\.`)
	spaceRuns       = regexp.MustCompile(` {2,}`)
)

// quoteChars are the ASCII and curly quotes rule 2 strips next to inline
// code.
const quoteChars = "\"'“”‘’"

// wideToASCII maps full-width punctuation back for Latin targets.
var wideToASCII = strings.NewReplacer(
	"。", ".", // 。
	"、", ",", // 、
	"，", ",", // ，
	"：", ":", // ：
	"；", ";", // ；
	"！", "!", // ！
	"？", "?", // ？
	"（", "(", // （
	"）", ")", // ）
	"「", `"`, // 「
	"」", `"`, // 」
	"『", `"`, // 『
	"』", `"`, // 』
)

// Rules returns the janitor's rewrite sequence in application order.
func Rules() []Rule {
	return []Rule{
		{Name: "unescape", Apply: unescapeArtifacts},
		{Name: "quote-near-code", Apply: stripQuotesNearCode},
		{Name: "wide-parens", Apply: normalizeParens},
		{Name: "space-after-inline", Apply: spaceAfterInline},
		{Name: "boundary-spacing", Apply: boundarySpacing},
		{Name: "punctuation", Apply: normalizePunctuation},
		{Name: "collapse-spaces", Apply: collapseSpaces},
	}
}

// Janitor runs the rewrite sequence over every prose node of the tree.
// The pass is idempotent: running it twice changes nothing further.
func Janitor(doc *doctree.Document, script language.Script) {
	rules := Rules()
	var fix func(kids []doctree.Node)
	fix = func(kids []doctree.Node) {
		for i, k := range kids {
			t, ok := k.(*doctree.Text)
			if !ok {
				fix(doctree.Children(k))
				continue
			}
			env := RuleEnv{Script: script}
			if i > 0 {
				env.Prev = kids[i-1]
			}
			if i+1 < len(kids) {
				env.Next = kids[i+1]
			}
			for _, r := range rules {
				t.Value = r.Apply(t.Value, env)
			}
		}
	}
	fix(doc.Blocks)
}

// unescapeArtifacts removes backslash escapes in front of backticks and
// underscores that translation replies sometimes carry over.
func unescapeArtifacts(s string, _ RuleEnv) string {
	s = strings.ReplaceAll(s, "\\`", "`")
	return strings.ReplaceAll(s, "\\_", "_")
}

// stripQuotesNearCode drops quote characters hugging an inline-code
// sibling; the code span renders its own delimiters.
func stripQuotesNearCode(s string, env RuleEnv) string {
	if _, ok := env.Prev.(*doctree.CodeSpan); ok {
		s = strings.TrimLeft(s, quoteChars)
	}
	if _, ok := env.Next.(*doctree.CodeSpan); ok {
		s = strings.TrimRight(s, quoteChars)
	}
	return s
}

// normalizeParens coerces a parenthesized span to the full-width pair when
// it contains target-script characters or digits, repairing pairs where
// only one side was converted.
func normalizeParens(s string, env RuleEnv) string {
	if env.Script != language.Wide {
		return s
	}
	return parenSpan.ReplaceAllStringFunc(s, func(m string) string {
		inner := parenSpan.FindStringSubmatch(m)[1]
		if wideOrDigit.MatchString(inner) {
			return "（" + inner + "）"
		}
		return "(" + inner + ")"
	})
}

// spaceAfterInline inserts a separating space when prose starts flush
// against a preceding raw-markup or inline-code sibling.
func spaceAfterInline(s string, env RuleEnv) string {
	switch env.Prev.(type) {
	case *doctree.CodeSpan, *doctree.RawMarkup, *doctree.Component:
	default:
		return s
	}
	r, _ := utf8.DecodeRuneInString(s)
	if isASCIIAlnum(r) || language.IsWideRune(r) {
		return " " + s
	}
	return s
}

// boundarySpacing inserts a space on both sides of a wide-script/Latin
// boundary inside the text.
func boundarySpacing(s string, env RuleEnv) string {
	if env.Script != language.Wide {
		return s
	}
	s = wideBeforeASCII.ReplaceAllString(s, "$1 $2")
	return asciiBeforeWide.ReplaceAllString(s, "$1 $2")
}

// normalizePunctuation converts sentence punctuation to the target
// script's convention: a period after a wide-script character becomes the
// ideographic full stop; for Latin targets the converse mapping applies.
func normalizePunctuation(s string, env RuleEnv) string {
	if env.Script == language.Wide {
		return widePeriod.ReplaceAllString(s, "$1。")
	}
	return wideToASCII.Replace(s)
}

// collapseSpaces squeezes runs of ASCII spaces to a single space.
func collapseSpaces(s string, _ RuleEnv) string {
	return spaceRuns.ReplaceAllString(s, " ")
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
