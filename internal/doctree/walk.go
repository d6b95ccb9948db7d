package doctree

// WalkStatus controls traversal from a Walk callback.
type WalkStatus int

const (
	// WalkContinue descends into the node's children.
	WalkContinue WalkStatus = iota
	// WalkSkipChildren moves on without descending.
	WalkSkipChildren
	// WalkStop aborts the traversal.
	WalkStop
)

// Walk visits every node of the document in depth-first pre-order,
// front matter first.
func Walk(doc *Document, fn func(Node) WalkStatus) {
	if doc.FrontMatter != nil {
		if fn(doc.FrontMatter) == WalkStop {
			return
		}
	}
	for _, b := range doc.Blocks {
		if walkNode(b, fn) == WalkStop {
			return
		}
	}
}

func walkNode(n Node, fn func(Node) WalkStatus) WalkStatus {
	switch fn(n) {
	case WalkStop:
		return WalkStop
	case WalkSkipChildren:
		return WalkContinue
	}
	for _, c := range Children(n) {
		if walkNode(c, fn) == WalkStop {
			return WalkStop
		}
	}
	return WalkContinue
}

// Children returns the child nodes of n in document order. The switch is
// exhaustive over the closed node set; leaf kinds return nil.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Heading:
		return v.Children
	case *Paragraph:
		return v.Children
	case *BlockQuote:
		return v.Children
	case *List:
		kids := make([]Node, len(v.Items))
		for i, it := range v.Items {
			kids[i] = it
		}
		return kids
	case *ListItem:
		return v.Children
	case *Emphasis:
		return v.Children
	case *Strong:
		return v.Children
	case *Link:
		return v.Children
	case *Image:
		return v.Alt
	case *FrontMatter, *CodeBlock, *ThematicBreak, *Text, *CodeSpan,
		*AutoLink, *RawMarkup, *Component:
		return nil
	}
	return nil
}
