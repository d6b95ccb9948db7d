// Package glossary loads the optional per-language term dictionary and the
// global forbidden-term list. Both files are plain YAML; a missing file is
// not an error and yields a neutral empty glossary.
package glossary

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Glossary carries translation hints handed to the prompt builder.
type Glossary struct {
	// Terms maps a source term to its preferred translation.
	Terms map[string]string
	// Forbidden lists terms that must stay untranslated.
	Forbidden []string
}

// Load reads the dictionary and forbidden-term files. Either path may be
// empty or point to a missing file; only a malformed file is an error.
func Load(dictPath, forbiddenPath string) (*Glossary, error) {
	g := &Glossary{Terms: map[string]string{}}

	if dictPath != "" {
		data, err := os.ReadFile(dictPath)
		switch {
		case os.IsNotExist(err):
			// proceed with the neutral default
		case err != nil:
			return nil, fmt.Errorf("reading dictionary %s: %w", dictPath, err)
		default:
			if err := yaml.Unmarshal(data, &g.Terms); err != nil {
				return nil, fmt.Errorf("parsing dictionary %s: %w", dictPath, err)
			}
		}
	}

	if forbiddenPath != "" {
		data, err := os.ReadFile(forbiddenPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("reading forbidden terms %s: %w", forbiddenPath, err)
		default:
			if err := yaml.Unmarshal(data, &g.Forbidden); err != nil {
				return nil, fmt.Errorf("parsing forbidden terms %s: %w", forbiddenPath, err)
			}
		}
	}
	return g, nil
}

// SortedTerms returns the dictionary keys in stable order, so prompts are
// deterministic.
func (g *Glossary) SortedTerms() []string {
	keys := make([]string, 0, len(g.Terms))
	for k := range g.Terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Empty reports whether the glossary carries no hints at all.
func (g *Glossary) Empty() bool {
	return len(g.Terms) == 0 && len(g.Forbidden) == 0
}
