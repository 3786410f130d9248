package pipeline

import (
	"strings"

	"github.com/wrlin/tshiau"
)

// DefaultPrompt is the instruction block appended to the document for the
// downstream translation model.
const DefaultPrompt = `---
### LLM INSTRUCTION

Based on the original text and the provided dictionary lookups for each word, please translate the "Original Input" from 北平方言 to hokkien （需要漢字和音標）. Use the dictionary examples to ensure the translation is natural and accurate.`

// Section body markers. These labels are consumed downstream and must
// stay stable.
const (
	markerNoEntry      = "*（無查詢結果）*"
	markerLookupFailed = "*（查詢失敗）*"
)

// Format renders a document to its markdown wire form. The output is a
// pure function of the document: identical documents yield identical bytes.
func Format(doc *tshiau.Document) string {
	parts := []string{
		"# Translation Pre-processing Document\n",
		"## Original Input\n",
		"> " + doc.Input + "\n",
		"---\n",
		"## Dictionary Lookup Results\n",
	}

	for _, section := range doc.Sections {
		parts = append(parts, formatSection(section))
	}

	prompt := doc.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	parts = append(parts, strings.TrimSpace(prompt))

	return strings.Join(parts, "\n") + "\n"
}

func formatSection(section tshiau.Section) string {
	blocks := []string{formatEntry("### 詞語查詢", section.Entry)}
	for _, child := range section.Children {
		blocks = append(blocks, formatEntry("#### └─ 字元查詢", child))
	}
	return strings.Join(blocks, "\n")
}

func formatEntry(heading string, entry tshiau.ResolvedEntry) string {
	var body string
	switch entry.Status {
	case tshiau.EntryFound:
		body = entry.Content
	case tshiau.EntryMissing:
		body = markerNoEntry
	case tshiau.EntryFailed:
		body = markerLookupFailed
	}
	return heading + "：「" + entry.Key + "」\n\n" + body + "\n\n---"
}
