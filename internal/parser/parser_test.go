package parser

import (
	"testing"

	"codeberg.org/snonux/mdtrans/internal/doctree"
)

const sampleDoc = `---
title: Getting Started
description: A short guide
draft: false
---

# Introduction

Install the tool and run ` + "`mdtrans --help`" + ` to begin.

:::note

Keep your API key secret.

:::

<Tab title="Linux" />

` + "```go" + `
fmt.Println("not translated")
` + "```" + `

Final *paragraph* here.
`

func TestParseFrontMatter(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.FrontMatter == nil {
		t.Fatal("Expected a front-matter block")
	}
	entries := doc.FrontMatter.Entries()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 front-matter entries, got %d", len(entries))
	}
	if entries[0].Key != "title" || entries[0].Value.Value != "Getting Started" {
		t.Errorf("Unexpected first entry: %s=%s", entries[0].Key, entries[0].Value.Value)
	}
	if entries[1].Key != "description" {
		t.Errorf("Expected key order preserved, got %s second", entries[1].Key)
	}
}

func TestParseBrokenFrontMatter(t *testing.T) {
	src := "---\n[not: a: mapping\n---\n\nBody text.\n"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse should recover from broken front matter: %v", err)
	}
	if doc.FrontMatter == nil || !doc.FrontMatter.Broken {
		t.Fatal("Expected front matter marked broken")
	}
	if doc.FrontMatter.Entries() != nil {
		t.Error("Broken front matter must expose no entries")
	}
	if len(doc.Blocks) == 0 {
		t.Error("Body should still parse")
	}
}

func TestParseBlockKinds(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var headings, codeBlocks, components, rawBlocks int
	doctree.Walk(doc, func(n doctree.Node) doctree.WalkStatus {
		switch n.(type) {
		case *doctree.Heading:
			headings++
		case *doctree.CodeBlock:
			codeBlocks++
		case *doctree.Component:
			components++
		case *doctree.RawMarkup:
			rawBlocks++
		}
		return doctree.WalkContinue
	})

	if headings != 1 {
		t.Errorf("Expected 1 heading, got %d", headings)
	}
	if codeBlocks != 1 {
		t.Errorf("Expected 1 code block, got %d", codeBlocks)
	}
	if components != 1 {
		t.Errorf("Expected 1 component, got %d", components)
	}
	if rawBlocks != 2 {
		t.Errorf("Expected 2 directive raw blocks, got %d", rawBlocks)
	}
}

func TestParseComponentAttributes(t *testing.T) {
	doc, err := Parse([]byte(`<Card title="Quick start" icon="rocket" />` + "\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var comp *doctree.Component
	doctree.Walk(doc, func(n doctree.Node) doctree.WalkStatus {
		if c, ok := n.(*doctree.Component); ok {
			comp = c
			return doctree.WalkStop
		}
		return doctree.WalkContinue
	})
	if comp == nil {
		t.Fatal("Expected a component node")
	}
	if comp.Name != "Card" || !comp.SelfClosing {
		t.Errorf("Unexpected component: %+v", comp)
	}
	if len(comp.Attrs) != 2 || comp.Attrs[0].Name != "title" || comp.Attrs[0].Value != "Quick start" {
		t.Errorf("Unexpected attributes: %+v", comp.Attrs)
	}
}

func TestParseComponentTag(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`<Tab title="A">`, true},
		{`</Tab>`, true},
		{`<Icon name="x" />`, true},
		{`<div class="x">`, false}, // lowercase: plain HTML
		{`<!-- comment -->`, false},
		{`not markup`, false},
	}
	for _, tt := range tests {
		got := parseComponentTag(tt.in, false) != nil
		if got != tt.want {
			t.Errorf("parseComponentTag(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnescapeMarkdown(t *testing.T) {
	if got := unescapeMarkdown(`a \* b \_c\_`); got != "a * b _c_" {
		t.Errorf("unescapeMarkdown: got %q", got)
	}
	if got := unescapeMarkdown("no escapes"); got != "no escapes" {
		t.Errorf("unescapeMarkdown changed clean text: %q", got)
	}
}
