// Package render serializes a document tree back to Markdown with a fixed,
// deterministic style: ATX headings, * emphasis, ** strong, - bullets,
// fenced code blocks. Content untouched by any pass round-trips: rendering
// the re-parse of rendered output is byte-identical.
package render

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/mdtrans/internal/doctree"
)

// escapeTargets are the only characters escaped in running prose. Every
// other character is on the exemption allow-list and emitted verbatim.
const escapeTargets = "\\`*_[]"

// Markdown serializes the document tree.
func Markdown(doc *doctree.Document) ([]byte, error) {
	var b strings.Builder

	if doc.FrontMatter != nil {
		fm, err := frontMatter(doc.FrontMatter)
		if err != nil {
			return nil, err
		}
		b.WriteString(fm)
	}

	for i, block := range doc.Blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		s, err := renderBlock(block)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func frontMatter(fm *doctree.FrontMatter) (string, error) {
	var body string
	if fm.Broken {
		body = strings.TrimRight(fm.Raw, "\n") + "\n"
	} else {
		out, err := yaml.Marshal(fm.Mapping)
		if err != nil {
			return "", fmt.Errorf("encoding front matter: %w", err)
		}
		body = string(out)
	}
	return "---\n" + body + "---\n\n", nil
}

// renderBlock serializes one block node. The type switch is exhaustive
// over the closed block set; an unexpected kind is a programming error.
func renderBlock(n doctree.Node) (string, error) {
	switch v := n.(type) {
	case *doctree.Heading:
		return strings.Repeat("#", v.Level) + " " + renderInlines(v.Children), nil

	case *doctree.Paragraph:
		return renderInlines(v.Children), nil

	case *doctree.BlockQuote:
		inner, err := renderBlocks(v.Children, "\n\n")
		if err != nil {
			return "", err
		}
		return prefixLines(inner, "> "), nil

	case *doctree.List:
		return renderList(v)

	case *doctree.CodeBlock:
		return renderCodeBlock(v), nil

	case *doctree.ThematicBreak:
		return "---", nil

	case *doctree.RawMarkup:
		return v.Value, nil

	case *doctree.Component:
		return componentTag(v), nil

	default:
		return "", fmt.Errorf("render: unexpected block node %T", n)
	}
}

func renderBlocks(blocks []doctree.Node, sep string) (string, error) {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		s, err := renderBlock(b)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

func renderList(list *doctree.List) (string, error) {
	itemSep := "\n"
	blockSep := "\n"
	if !list.Tight {
		itemSep = "\n\n"
		blockSep = "\n\n"
	}
	var items []string
	for i, item := range list.Items {
		marker := "- "
		if list.Ordered {
			marker = fmt.Sprintf("%d. ", list.Start+i)
		}
		inner, err := renderBlocks(item.Children, blockSep)
		if err != nil {
			return "", err
		}
		indent := strings.Repeat(" ", len(marker))
		lines := strings.Split(inner, "\n")
		for j, line := range lines {
			if j == 0 {
				lines[j] = marker + line
			} else if line != "" {
				lines[j] = indent + line
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}
	return strings.Join(items, itemSep), nil
}

func renderCodeBlock(cb *doctree.CodeBlock) string {
	fence := "```"
	for strings.Contains(cb.Content, fence) {
		fence += "`"
	}
	content := cb.Content
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return fence + cb.Info + "\n" + content + fence
}

func renderInlines(nodes []doctree.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(renderInline(n))
	}
	return b.String()
}

func renderInline(n doctree.Node) string {
	switch v := n.(type) {
	case *doctree.Text:
		s := escapeProse(v.Value)
		if v.HardBreak {
			s += "\\\n"
		} else if v.SoftBreak {
			s += "\n"
		}
		return s

	case *doctree.CodeSpan:
		return codeSpan(v.Value)

	case *doctree.Emphasis:
		return "*" + renderInlines(v.Children) + "*"

	case *doctree.Strong:
		return "**" + renderInlines(v.Children) + "**"

	case *doctree.Link:
		return "[" + renderInlines(v.Children) + "](" + linkTarget(v.Destination, v.Title) + ")"

	case *doctree.Image:
		return "![" + renderInlines(v.Alt) + "](" + linkTarget(v.Destination, v.Title) + ")"

	case *doctree.AutoLink:
		return "<" + v.URL + ">"

	case *doctree.RawMarkup:
		return v.Value

	case *doctree.Component:
		return componentTag(v)

	default:
		// Block kinds never appear among inlines.
		return ""
	}
}

func linkTarget(dest, title string) string {
	if title == "" {
		return dest
	}
	return dest + ` "` + title + `"`
}

// codeSpan emits inline code verbatim, widening the backtick run as needed
// and padding when the value itself starts or ends with a backtick.
func codeSpan(value string) string {
	ticks := "`"
	for strings.Contains(value, ticks) {
		ticks += "`"
	}
	if strings.HasPrefix(value, "`") || strings.HasSuffix(value, "`") {
		value = " " + value + " "
	}
	return ticks + value + ticks
}

// escapeProse backslash-escapes the characters in escapeTargets; the rest
// of running text passes through untouched.
func escapeProse(s string) string {
	if !strings.ContainsAny(s, escapeTargets) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(escapeTargets, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func prefixLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = strings.TrimRight(prefix, " ")
		} else {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func componentTag(c *doctree.Component) string {
	if c.Closing {
		return "</" + c.Name + ">"
	}
	var b strings.Builder
	b.WriteString("<" + c.Name)
	for _, a := range c.Attrs {
		if a.Value == "" {
			b.WriteString(" " + a.Name)
		} else {
			b.WriteString(" " + a.Name + `="` + a.Value + `"`)
		}
	}
	if c.SelfClosing {
		b.WriteString(" />")
	} else {
		b.WriteString(">")
	}
	return b.String()
}
