// Package doctree defines the document tree that one parsed Markdown/MDX
// file is represented as. Every node kind is a concrete struct implementing
// the sealed Node interface, so the collector and the renderer can
// type-switch over the full closed set.
package doctree

import "gopkg.in/yaml.v3"

// Node is the sealed interface implemented by every tree node kind.
type Node interface {
	node()
}

// Document is the root of one parsed file. It is not itself a Node.
type Document struct {
	FrontMatter *FrontMatter // nil when the file has no front-matter block
	Blocks      []Node
}

// FrontMatter is the YAML metadata block preceding the document body.
// Mapping holds the decoded yaml document so key order and scalar styles
// survive the round trip. When the block could not be decoded, Broken is
// set and Raw carries the original text verbatim.
type FrontMatter struct {
	Mapping *yaml.Node
	Raw     string
	Broken  bool
}

// Entries returns the scalar key/value pairs of the mapping in source
// order. The returned value nodes alias the mapping, so mutating a value
// node's Value mutates the front matter.
func (f *FrontMatter) Entries() []FrontMatterEntry {
	if f.Broken || f.Mapping == nil || len(f.Mapping.Content) == 0 {
		return nil
	}
	root := f.Mapping.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	var entries []FrontMatterEntry
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			continue
		}
		entries = append(entries, FrontMatterEntry{Key: key.Value, Value: val})
	}
	return entries
}

// FrontMatterEntry is one scalar field of the front matter.
type FrontMatterEntry struct {
	Key   string
	Value *yaml.Node
}

// Heading is an ATX heading with inline children.
type Heading struct {
	Level    int
	Children []Node
}

// Paragraph is a block of inline content.
type Paragraph struct {
	Children []Node
}

// BlockQuote wraps nested block content.
type BlockQuote struct {
	Children []Node
}

// List is an ordered or bullet list.
type List struct {
	Ordered bool
	Start   int
	Tight   bool
	Items   []*ListItem
}

// ListItem holds the block children of one list entry.
type ListItem struct {
	Children []Node
}

// CodeBlock is a fenced or indented code block. Content is the literal
// text including the trailing newline of the last line.
type CodeBlock struct {
	Info    string
	Content string
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Text is a run of prose. SoftBreak/HardBreak record a line break that
// followed this run in the source.
type Text struct {
	Value     string
	SoftBreak bool
	HardBreak bool
}

// CodeSpan is inline code. Its value is emitted verbatim, never escaped.
type CodeSpan struct {
	Value string
}

// Emphasis is *single* emphasis around inline children.
type Emphasis struct {
	Children []Node
}

// Strong is **double** emphasis around inline children.
type Strong struct {
	Children []Node
}

// Link is an inline link with label children.
type Link struct {
	Destination string
	Title       string
	Children    []Node
}

// Image is an inline image; Alt holds the label children.
type Image struct {
	Destination string
	Title       string
	Alt         []Node
}

// AutoLink is a bare <https://...> style link.
type AutoLink struct {
	URL string
}

// RawMarkup is HTML or other raw markup passed through verbatim. Block
// distinguishes block-level markup from inline fragments. Raw script and
// style regions also land here and are never translated.
type RawMarkup struct {
	Value string
	Block bool
}

// Component is an embedded component tag (MDX style): an element with a
// capitalized name and named attributes. Only the tag itself is modelled;
// component children parse as ordinary sibling blocks. Closing marks a
// </Name> tag.
type Component struct {
	Name        string
	Attrs       []Attr
	SelfClosing bool
	Closing     bool
	Block       bool
}

// Attr is one name/value attribute of a Component.
type Attr struct {
	Name  string
	Value string
}

func (*FrontMatter) node()   {}
func (*Heading) node()       {}
func (*Paragraph) node()     {}
func (*BlockQuote) node()    {}
func (*List) node()          {}
func (*ListItem) node()      {}
func (*CodeBlock) node()     {}
func (*ThematicBreak) node() {}
func (*Text) node()          {}
func (*CodeSpan) node()      {}
func (*Emphasis) node()      {}
func (*Strong) node()        {}
func (*Link) node()          {}
func (*Image) node()         {}
func (*AutoLink) node()      {}
func (*RawMarkup) node()     {}
func (*Component) node()     {}
