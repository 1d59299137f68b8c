package summary

import (
	"fmt"
	"strings"
)

const leafPrompt = `Summarize the following text content from a document. Be comprehensive but concise, capturing all important details as this will be used for answering questions later.

Content type: %s
Text: %s

Provide a detailed but brief summary:`

// BuildLeafPrompt creates the prompt for summarizing a single content node.
func BuildLeafPrompt(label, text string) string {
	return fmt.Sprintf(leafPrompt, label, text)
}

// BuildSectionPrompt creates the prompt for summarizing a structural node
// from its own text plus the summaries already computed for its content
// and child sections.
func BuildSectionPrompt(req SectionRequest) string {
	var sb strings.Builder
	sb.WriteString("Summarize this document section comprehensively. Capture all important information as this will be used for answering questions later. Be detailed but concise.\n\n")

	if strings.TrimSpace(req.Text) != "" {
		fmt.Fprintf(&sb, "Section: %s - %s\n", req.Label, req.Text)
	} else {
		fmt.Fprintf(&sb, "Section: %s\n", req.Label)
	}

	if len(req.ContentSummaries) > 0 {
		sb.WriteString("\nContent elements in this section:\n")
		for _, cs := range req.ContentSummaries {
			fmt.Fprintf(&sb, "- %s: %s\n", cs.Label, cs.Summary)
		}
	}

	if len(req.ChildSummaries) > 0 {
		sb.WriteString("\nSubsections:\n")
		for _, cs := range req.ChildSummaries {
			fmt.Fprintf(&sb, "- Section %q: %s\n", cs.Label, cs.Summary)
		}
	}

	sb.WriteString(`
Provide a comprehensive summary that captures:
1. Main concepts and themes
2. Key technical details and findings
3. Important relationships and context
4. Specific data, numbers, or examples mentioned

Summary:`)

	return sb.String()
}
