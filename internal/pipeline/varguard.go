package pipeline

import (
	"regexp"

	"codeberg.org/snonux/mdtrans/internal/doctree"
)

// identifierPattern matches snake_case identifiers: alphanumeric runs
// joined by underscores, at least one underscore required.
var identifierPattern = regexp.MustCompile(`[A-Za-z0-9]+(?:_[A-Za-z0-9]+)+`)

// VarGuard reclassifies identifier-like substrings of prose nodes as
// inline code, so the renderer emits them verbatim and later runs never
// send them to translation. Each match is extracted as its own code span;
// the surrounding text stays behind as sibling text nodes in original
// order.
func VarGuard(doc *doctree.Document) {
	for i, b := range doc.Blocks {
		doc.Blocks[i] = guardNode(b)
	}
}

func guardNode(n doctree.Node) doctree.Node {
	switch v := n.(type) {
	case *doctree.Heading:
		v.Children = guardChildren(v.Children)
	case *doctree.Paragraph:
		v.Children = guardChildren(v.Children)
	case *doctree.BlockQuote:
		v.Children = guardChildren(v.Children)
	case *doctree.List:
		for _, item := range v.Items {
			item.Children = guardChildren(item.Children)
		}
	case *doctree.ListItem:
		v.Children = guardChildren(v.Children)
	case *doctree.Emphasis:
		v.Children = guardChildren(v.Children)
	case *doctree.Strong:
		v.Children = guardChildren(v.Children)
	case *doctree.Link:
		v.Children = guardChildren(v.Children)
	case *doctree.Image:
		v.Alt = guardChildren(v.Alt)
	}
	return n
}

func guardChildren(kids []doctree.Node) []doctree.Node {
	out := make([]doctree.Node, 0, len(kids))
	for _, k := range kids {
		if t, ok := k.(*doctree.Text); ok {
			out = append(out, splitIdentifiers(t)...)
			continue
		}
		out = append(out, guardNode(k))
	}
	return out
}

// splitIdentifiers splits one text node into text/code/text fragments
// around every identifier match. The final fragment inherits the node's
// trailing line break.
func splitIdentifiers(t *doctree.Text) []doctree.Node {
	locs := identifierPattern.FindAllStringIndex(t.Value, -1)
	if locs == nil {
		return []doctree.Node{t}
	}

	var out []doctree.Node
	pos := 0
	for _, loc := range locs {
		if loc[0] > pos {
			out = append(out, &doctree.Text{Value: t.Value[pos:loc[0]]})
		}
		out = append(out, &doctree.CodeSpan{Value: t.Value[loc[0]:loc[1]]})
		pos = loc[1]
	}
	if pos < len(t.Value) {
		out = append(out, &doctree.Text{Value: t.Value[pos:]})
	}

	// Carry the source line break on whatever fragment now ends the node.
	if t.SoftBreak || t.HardBreak {
		if last, ok := out[len(out)-1].(*doctree.Text); ok {
			last.SoftBreak = t.SoftBreak
			last.HardBreak = t.HardBreak
		} else {
			out = append(out, &doctree.Text{SoftBreak: t.SoftBreak, HardBreak: t.HardBreak})
		}
	}
	return out
}
