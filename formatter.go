package webster

import (
	"fmt"
	"strings"
)

// FormatSearchResults formats search results as context for an LLM prompt.
// Each chunk is prefixed with its source URL so the model can cite sources.
// Results are separated by blank lines.
func FormatSearchResults(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, res := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "[%d] Source: %s\n", i+1, res.Chunk.Metadata.SourceURL)
		if section := formatHeaders(res.Chunk.Metadata.Headers); section != "" {
			fmt.Fprintf(&b, "Section: %s\n", section)
		}
		b.WriteString(res.Chunk.Content)
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

// formatHeaders flattens a heading hierarchy into "H1 > H2 > H3" form.
func formatHeaders(headers map[string]string) string {
	if len(headers) == 0 {
		return ""
	}
	var parts []string
	for level := 1; level <= 6; level++ {
		if title, ok := headers[fmt.Sprintf("h%d", level)]; ok {
			parts = append(parts, title)
		}
	}
	return strings.Join(parts, " > ")
}

// FormatDocuments formats documents for display or LLM context.
// Uses title if available, falls back to source URL.
// Documents are separated by blank lines.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		header := doc.Title
		if header == "" {
			header = doc.SourceURL
		}
		parts = append(parts, "## Document: "+header+"\n"+doc.Content)
	}

	return strings.Join(parts, "\n\n")
}
