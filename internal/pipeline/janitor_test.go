package pipeline

import (
	"reflect"
	"testing"

	"codeberg.org/snonux/mdtrans/internal/doctree"
	"codeberg.org/snonux/mdtrans/internal/language"
)

func wideEnv() RuleEnv {
	return RuleEnv{Script: language.Wide}
}

func TestUnescapeArtifacts(t *testing.T) {
	got := unescapeArtifacts("use \\`config\\` and snake\\_case", RuleEnv{})
	want := "use `config` and snake_case"
	if got != want {
		t.Errorf("unescapeArtifacts: got %q, want %q", got, want)
	}
}

func TestStripQuotesNearCode(t *testing.T) {
	code := &doctree.CodeSpan{Value: "x"}

	got := stripQuotesNearCode(`" trailing`, RuleEnv{Prev: code})
	if got != " trailing" {
		t.Errorf("leading quote kept: %q", got)
	}
	got = stripQuotesNearCode(`leading "`, RuleEnv{Next: code})
	if got != "leading " {
		t.Errorf("trailing quote kept: %q", got)
	}
	// No code sibling: quotes stay.
	got = stripQuotesNearCode(`"quoted"`, RuleEnv{})
	if got != `"quoted"` {
		t.Errorf("quotes stripped without code sibling: %q", got)
	}
}

func TestNormalizeParens(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"説明(ここ)です", "説明（ここ）です"},
		{"year (2024) given", "year （2024） given"},
		{"ascii (only) stays", "ascii (only) stays"},
		{"repair （半分) pair", "repair （半分） pair"},
		{"repair (半分） pair", "repair （半分） pair"},
	}
	for _, tt := range tests {
		if got := normalizeParens(tt.in, wideEnv()); got != tt.want {
			t.Errorf("normalizeParens(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// Latin targets leave parentheses alone.
	in := "texte (例) ici"
	if got := normalizeParens(in, RuleEnv{Script: language.Latin}); got != in {
		t.Errorf("Latin target parens changed: %q", got)
	}
}

func TestSpaceAfterInline(t *testing.T) {
	code := &doctree.CodeSpan{Value: "flag"}

	if got := spaceAfterInline("glued", RuleEnv{Prev: code}); got != " glued" {
		t.Errorf("Expected separating space, got %q", got)
	}
	if got := spaceAfterInline("値です", RuleEnv{Prev: code}); got != " 値です" {
		t.Errorf("Expected separating space before wide text, got %q", got)
	}
	if got := spaceAfterInline(", punctuation", RuleEnv{Prev: code}); got != ", punctuation" {
		t.Errorf("Punctuation must stay glued, got %q", got)
	}
	if got := spaceAfterInline("no sibling", RuleEnv{}); got != "no sibling" {
		t.Errorf("No-sibling text changed: %q", got)
	}
}

func TestBoundarySpacing(t *testing.T) {
	got := boundarySpacing("漢字abc123字", wideEnv())
	want := "漢字 abc123 字"
	if got != want {
		t.Errorf("boundarySpacing: got %q, want %q", got, want)
	}
	in := "all ascii text"
	if got := boundarySpacing(in, wideEnv()); got != in {
		t.Errorf("ASCII-only text changed: %q", got)
	}
}

func TestNormalizePunctuation(t *testing.T) {
	if got := normalizePunctuation("終わりです.", wideEnv()); got != "終わりです。" {
		t.Errorf("wide period: got %q", got)
	}
	// Latin letter before the period keeps ASCII.
	if got := normalizePunctuation("uses mdtrans.", wideEnv()); got != "uses mdtrans." {
		t.Errorf("ascii period converted: %q", got)
	}
	// Latin target converts wide punctuation back.
	got := normalizePunctuation("Fin。 C'est，tout！「oui」", RuleEnv{Script: language.Latin})
	want := `Fin. C'est,tout!"oui"`
	if got != want {
		t.Errorf("latin converse: got %q, want %q", got, want)
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := collapseSpaces("a  b   c", RuleEnv{}); got != "a b c" {
		t.Errorf("collapseSpaces: got %q", got)
	}
}

// The whole pass must be idempotent: a second run changes nothing.
func TestJanitorIdempotent(t *testing.T) {
	build := func() *doctree.Document {
		return &doctree.Document{Blocks: []doctree.Node{
			&doctree.Paragraph{Children: []doctree.Node{
				&doctree.Text{Value: `これは\` + "`" + `テスト(test)です.  多すぎる空白 "`},
				&doctree.CodeSpan{Value: "snake_case"},
				&doctree.Text{Value: `"続きabc`},
			}},
		}}
	}

	once := build()
	Janitor(once, language.Wide)
	snapshot := treeTexts(once)

	Janitor(once, language.Wide)
	if !reflect.DeepEqual(snapshot, treeTexts(once)) {
		t.Errorf("Janitor not idempotent:\nfirst:  %v\nsecond: %v", snapshot, treeTexts(once))
	}
}

func TestJanitorIdempotentLatin(t *testing.T) {
	doc := &doctree.Document{Blocks: []doctree.Node{
		&doctree.Paragraph{Children: []doctree.Node{
			&doctree.Text{Value: "Texte。 avec，des「guillemets」  et espaces"},
		}},
	}}
	Janitor(doc, language.Latin)
	first := treeTexts(doc)
	Janitor(doc, language.Latin)
	if !reflect.DeepEqual(first, treeTexts(doc)) {
		t.Errorf("Latin janitor not idempotent: %v vs %v", first, treeTexts(doc))
	}
}

func treeTexts(doc *doctree.Document) []string {
	var out []string
	doctree.Walk(doc, func(n doctree.Node) doctree.WalkStatus {
		if t, ok := n.(*doctree.Text); ok {
			out = append(out, t.Value)
		}
		return doctree.WalkContinue
	})
	return out
}
