package render

import (
	"strings"
	"testing"

	"codeberg.org/snonux/mdtrans/internal/doctree"
	"codeberg.org/snonux/mdtrans/internal/parser"
)

const roundTripDoc = `---
title: Hello
description: A guide
---

# First section

Some prose with *emphasis*, **strong**, ` + "`code`" + ` and a [link](https://example.com "Title").

Second line after a soft break
continues here.

:::note

Directive body text.

:::

<Tabs>
<Tab title="One" />
</Tabs>

- item one
- item two with ` + "`code`" + `
- item three

1. first
2. second

> A quoted paragraph.

` + "```go" + `
func main() {}
` + "```" + `

---

Final paragraph.
`

// Rendering is a fixpoint: parse -> render -> parse -> render must be
// byte-identical, so content untouched by any pass only undergoes the
// fixed stylistic normalization once.
func TestRoundTripFixpoint(t *testing.T) {
	doc1, err := parser.Parse([]byte(roundTripDoc))
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	out1, err := Markdown(doc1)
	if err != nil {
		t.Fatalf("first render failed: %v", err)
	}

	doc2, err := parser.Parse(out1)
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	out2, err := Markdown(doc2)
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}

	if string(out1) != string(out2) {
		t.Errorf("render is not a fixpoint:\nfirst:\n%s\nsecond:\n%s", out1, out2)
	}
}

func TestRenderPreservesCodeBlock(t *testing.T) {
	doc, err := parser.Parse([]byte(roundTripDoc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	out, err := Markdown(doc)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	want := "```go\nfunc main() {}\n```"
	if !strings.Contains(string(out), want) {
		t.Errorf("code block not preserved; output:\n%s", out)
	}
}

func TestEscapeProse(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a_b", `a\_b`},
		{"2 * 3", `2 \* 3`},
		{"[x]", `\[x\]`},
		{"plain text!", "plain text!"},
		{"(parens) & symbols: 100%", "(parens) & symbols: 100%"}, // exempt
	}
	for _, tt := range tests {
		if got := escapeProse(tt.in); got != tt.want {
			t.Errorf("escapeProse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCodeSpanWidensFence(t *testing.T) {
	if got := codeSpan("a`b"); got != "``a`b``" {
		t.Errorf("codeSpan: got %q", got)
	}
	if got := codeSpan("plain"); got != "`plain`" {
		t.Errorf("codeSpan: got %q", got)
	}
}

func TestComponentTagRendering(t *testing.T) {
	c := &doctree.Component{
		Name:        "Card",
		Attrs:       []doctree.Attr{{Name: "title", Value: "Hi"}},
		SelfClosing: true,
	}
	if got := componentTag(c); got != `<Card title="Hi" />` {
		t.Errorf("componentTag: got %q", got)
	}
	closing := &doctree.Component{Name: "Card", Closing: true}
	if got := componentTag(closing); got != "</Card>" {
		t.Errorf("componentTag closing: got %q", got)
	}
}
