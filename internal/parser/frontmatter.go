package parser

import (
	"regexp"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/mdtrans/internal/doctree"
)

// frontMatterBlock matches a YAML front-matter block at the start of the
// file, delimited by --- lines.
var frontMatterBlock = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n?`)

// splitFrontMatter extracts the front-matter block from src, if present.
// It returns the parsed block (or nil) and the remaining body. A block
// that fails to decode as a YAML mapping is kept as opaque raw text so the
// rest of the document can still be processed; such a block is never
// translated.
func splitFrontMatter(src []byte) (*doctree.FrontMatter, []byte) {
	m := frontMatterBlock.FindSubmatchIndex(src)
	if m == nil {
		return nil, src
	}
	raw := string(src[m[2]:m[3]])
	body := src[m[1]:]

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil ||
		len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return &doctree.FrontMatter{Raw: raw, Broken: true}, body
	}
	return &doctree.FrontMatter{Mapping: &node, Raw: raw}, body
}
