// Package parser converts Markdown/MDX source into the document tree.
// Block and inline structure comes from goldmark; front matter, directive
// blocks and embedded component tags are recognized on top of it.
package parser

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"codeberg.org/snonux/mdtrans/internal/doctree"
)

// ParseFile reads and parses one Markdown/MDX file.
func ParseFile(path string) (*doctree.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(src)
}

// Parse parses Markdown/MDX source into a document tree.
func Parse(src []byte) (*doctree.Document, error) {
	doc := &doctree.Document{}
	fm, body := splitFrontMatter(src)
	doc.FrontMatter = fm

	body = isolateDirectives(body)

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		doc.Blocks = appendBlock(doc.Blocks, n, body)
	}
	return doc, nil
}

// appendBlock converts one goldmark block node, appending the resulting
// tree nodes to dst. A raw HTML block can expand to several component
// nodes, hence the append shape.
func appendBlock(dst []doctree.Node, n ast.Node, src []byte) []doctree.Node {
	switch node := n.(type) {
	case *ast.Heading:
		return append(dst, &doctree.Heading{
			Level:    node.Level,
			Children: convertInlines(node, src),
		})

	case *ast.Paragraph:
		if raw, ok := directiveParagraph(node, src); ok {
			return append(dst, raw)
		}
		return append(dst, &doctree.Paragraph{Children: convertInlines(node, src)})

	case *ast.TextBlock:
		return append(dst, &doctree.Paragraph{Children: convertInlines(node, src)})

	case *ast.Blockquote:
		bq := &doctree.BlockQuote{}
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			bq.Children = appendBlock(bq.Children, c, src)
		}
		return append(dst, bq)

	case *ast.List:
		list := &doctree.List{
			Ordered: node.IsOrdered(),
			Start:   node.Start,
			Tight:   node.IsTight,
		}
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			item := &doctree.ListItem{}
			for ic := c.FirstChild(); ic != nil; ic = ic.NextSibling() {
				item.Children = appendBlock(item.Children, ic, src)
			}
			list.Items = append(list.Items, item)
		}
		return append(dst, list)

	case *ast.FencedCodeBlock:
		info := ""
		if node.Info != nil {
			info = string(node.Info.Segment.Value(src))
		}
		return append(dst, &doctree.CodeBlock{
			Info:    info,
			Content: blockLines(node, src),
		})

	case *ast.CodeBlock:
		return append(dst, &doctree.CodeBlock{Content: blockLines(node, src)})

	case *ast.ThematicBreak:
		return append(dst, &doctree.ThematicBreak{})

	case *ast.HTMLBlock:
		raw := blockLines(node, src)
		if node.HasClosure() {
			raw += string(node.ClosureLine.Value(src))
		}
		if comps := componentsFromLines(raw, true); comps != nil {
			return append(dst, comps...)
		}
		return append(dst, &doctree.RawMarkup{Value: strings.TrimRight(raw, "\n"), Block: true})

	default:
		// Unknown block kinds degrade to raw markup so nothing is lost.
		return append(dst, &doctree.RawMarkup{Value: blockLines(n, src), Block: true})
	}
}

// convertInlines converts the inline children of a goldmark block node.
func convertInlines(parent ast.Node, src []byte) []doctree.Node {
	var out []doctree.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			out = append(out, &doctree.Text{
				Value:     unescapeMarkdown(string(node.Segment.Value(src))),
				SoftBreak: node.SoftLineBreak(),
				HardBreak: node.HardLineBreak(),
			})
		case *ast.String:
			out = append(out, &doctree.Text{Value: string(node.Value)})
		case *ast.CodeSpan:
			out = append(out, &doctree.CodeSpan{Value: codeSpanValue(node, src)})
		case *ast.Emphasis:
			if node.Level >= 2 {
				out = append(out, &doctree.Strong{Children: convertInlines(node, src)})
			} else {
				out = append(out, &doctree.Emphasis{Children: convertInlines(node, src)})
			}
		case *ast.Link:
			out = append(out, &doctree.Link{
				Destination: string(node.Destination),
				Title:       string(node.Title),
				Children:    convertInlines(node, src),
			})
		case *ast.Image:
			out = append(out, &doctree.Image{
				Destination: string(node.Destination),
				Title:       string(node.Title),
				Alt:         convertInlines(node, src),
			})
		case *ast.AutoLink:
			out = append(out, &doctree.AutoLink{URL: string(node.URL(src))})
		case *ast.RawHTML:
			raw := segmentsValue(node.Segments, src)
			if comp := parseComponentTag(raw, false); comp != nil {
				out = append(out, comp)
			} else {
				out = append(out, &doctree.RawMarkup{Value: raw})
			}
		default:
			// Inline kinds we do not model keep their source text as prose.
			out = append(out, &doctree.Text{Value: string(node.Text(src))})
		}
	}
	return out
}

// directiveParagraph recognizes a container-directive line (":::note")
// that isolateDirectives turned into its own paragraph.
func directiveParagraph(p *ast.Paragraph, src []byte) (doctree.Node, bool) {
	if p.ChildCount() != 1 {
		return nil, false
	}
	t, ok := p.FirstChild().(*ast.Text)
	if !ok {
		return nil, false
	}
	v := string(t.Segment.Value(src))
	if !strings.HasPrefix(v, ":::") {
		return nil, false
	}
	return &doctree.RawMarkup{Value: v, Block: true}, true
}

// isolateDirectives surrounds ::: directive lines outside code fences with
// blank lines so each parses as its own paragraph.
func isolateDirectives(src []byte) []byte {
	lines := bytes.Split(src, []byte("\n"))
	var out [][]byte
	inFence := false
	for _, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~")) {
			inFence = !inFence
		}
		if !inFence && bytes.HasPrefix(trimmed, []byte(":::")) {
			out = append(out, nil, line, nil)
			continue
		}
		out = append(out, line)
	}
	return bytes.Join(out, []byte("\n"))
}

func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

func codeSpanValue(n *ast.CodeSpan, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
		}
	}
	return buf.String()
}

func segmentsValue(segs *text.Segments, src []byte) string {
	var buf bytes.Buffer
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// unescapeMarkdown removes backslash escapes from prose text; the renderer
// re-escapes what its fixed style requires.
func unescapeMarkdown(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
