package parser

import (
	"regexp"
	"strings"

	"codeberg.org/snonux/mdtrans/internal/doctree"
)

// componentTag matches one embedded component tag: a capitalized element
// name with optional name="value" attributes, optionally self-closing, or
// the matching closing tag.
var componentTag = regexp.MustCompile(
	`^<(/?)([A-Z][A-Za-z0-9]*)((?:\s+[A-Za-z_][A-Za-z0-9_-]*(?:="[^"]*")?)*)\s*(/?)>$`)

var componentAttr = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_-]*)(?:="([^"]*)")?`)

// parseComponentTag parses s as a single component tag. It returns nil
// when s is not a component tag (plain HTML, comments, lowercase tags).
func parseComponentTag(s string, block bool) *doctree.Component {
	m := componentTag.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil
	}
	c := &doctree.Component{
		Name:        m[2],
		Closing:     m[1] == "/",
		SelfClosing: m[4] == "/",
		Block:       block,
	}
	if c.Closing {
		return c
	}
	for _, am := range componentAttr.FindAllStringSubmatch(m[3], -1) {
		c.Attrs = append(c.Attrs, doctree.Attr{Name: am[1], Value: am[2]})
	}
	return c
}

// componentsFromLines converts a raw HTML region to component nodes when
// every non-blank line is a component tag. Otherwise it returns nil and
// the caller keeps the region as raw markup.
func componentsFromLines(raw string, block bool) []doctree.Node {
	var nodes []doctree.Node
	for _, line := range strings.Split(strings.TrimRight(raw, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c := parseComponentTag(line, block)
		if c == nil {
			return nil
		}
		nodes = append(nodes, c)
	}
	return nodes
}
