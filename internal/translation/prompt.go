package translation

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/mdtrans/internal/glossary"
	"codeberg.org/snonux/mdtrans/internal/language"
)

// systemPrompt is the fixed instruction every translation request carries.
// It pins down the formatting-preservation rules so the reply can be
// patched back into the tree.
const systemPrompt = `You are a professional translator for software documentation.
Translate the user's text from English to %s.

Rules:
- Preserve ALL Markdown formatting exactly: emphasis markers, links, inline code, placeholders.
- Do NOT translate code, identifiers, URLs, or anything inside backticks.
- Do NOT add explanations, notes, or quotation marks around the translation.
- Respond with the translated text only.`

// buildSystemPrompt composes the instruction prompt for one target
// language, appending glossary hints when present.
func buildSystemPrompt(lang language.Language, gloss *glossary.Glossary) string {
	var b strings.Builder
	fmt.Fprintf(&b, systemPrompt, lang.Name)

	if gloss == nil || gloss.Empty() {
		return b.String()
	}
	if len(gloss.Terms) > 0 {
		b.WriteString("\n\nUse these fixed translations for the following terms:")
		for _, term := range gloss.SortedTerms() {
			fmt.Fprintf(&b, "\n- %s = %s", term, gloss.Terms[term])
		}
	}
	if len(gloss.Forbidden) > 0 {
		b.WriteString("\n\nNever translate these terms; keep them verbatim:")
		for _, term := range gloss.Forbidden {
			fmt.Fprintf(&b, "\n- %s", term)
		}
	}
	return b.String()
}
