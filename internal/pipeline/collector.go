// Package pipeline implements the tree passes of a translation run:
// collecting translatable units, dispatching them to the translator,
// repairing formatting artifacts, and guarding identifier-like tokens.
package pipeline

import (
	"strings"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/mdtrans/internal/doctree"
)

// Unit is one translatable string together with the write-back target
// owning it. Units are collected once per run; each owns a disjoint
// location in the tree, so write-backs need no locking.
type Unit struct {
	Text  string
	write func(string)
}

// Write patches the translated text back into the tree.
func (u *Unit) Write(translated string) {
	u.write(translated)
}

// attrAllowList names the component attributes whose values are
// translatable.
var attrAllowList = map[string]bool{
	"title":       true,
	"label":       true,
	"alt":         true,
	"placeholder": true,
	"summary":     true,
}

// frontMatterAllowList names the front-matter keys whose values are
// translatable.
var frontMatterAllowList = map[string]bool{
	"title":         true,
	"description":   true,
	"sidebar_label": true,
	"summary":       true,
}

// Collect walks the tree once, depth-first pre-order, and gathers every
// translatable unit. Code spans, code blocks and raw markup are never
// descended into or collected.
func Collect(doc *doctree.Document) []*Unit {
	var units []*Unit

	doctree.Walk(doc, func(n doctree.Node) doctree.WalkStatus {
		switch v := n.(type) {
		case *doctree.CodeSpan, *doctree.CodeBlock, *doctree.RawMarkup:
			return doctree.WalkSkipChildren

		case *doctree.Text:
			if strings.TrimSpace(v.Value) == "" {
				return doctree.WalkContinue
			}
			node := v
			units = append(units, &Unit{
				Text:  node.Value,
				write: func(s string) { node.Value = s },
			})

		case *doctree.Component:
			if v.Closing {
				return doctree.WalkContinue
			}
			comp := v
			for i := range comp.Attrs {
				a := comp.Attrs[i]
				if !attrAllowList[a.Name] || strings.TrimSpace(a.Value) == "" {
					continue
				}
				idx := i
				units = append(units, &Unit{
					Text:  a.Value,
					write: func(s string) { comp.Attrs[idx].Value = s },
				})
			}

		case *doctree.FrontMatter:
			for _, e := range v.Entries() {
				if !frontMatterAllowList[e.Key] || strings.TrimSpace(e.Value.Value) == "" {
					continue
				}
				val := e.Value
				units = append(units, &Unit{
					Text: val.Value,
					write: func(s string) {
						val.Value = s
						// Let the encoder re-pick a scalar style that can
						// carry the translated text.
						val.Style = yaml.Style(0)
					},
				})
			}
			return doctree.WalkSkipChildren
		}
		return doctree.WalkContinue
	})

	return units
}
