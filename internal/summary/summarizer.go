package summary

import "context"

// LabeledSummary pairs a summary with the label (or heading) it describes,
// preserving document order when composed into a section prompt.
type LabeledSummary struct {
	Label   string
	Summary string
}

// SectionRequest carries everything needed to summarize a structural node:
// its own text plus the already-computed summaries of its direct content
// and child sections, in order.
type SectionRequest struct {
	Label            string
	Text             string
	ContentSummaries []LabeledSummary
	ChildSummaries   []LabeledSummary
}

// Summarizer produces text summaries for hierarchy nodes. Both calls may
// fail; callers are expected to substitute a deterministic fallback rather
// than abort.
type Summarizer interface {
	SummarizeLeaf(ctx context.Context, label, text string) (string, error)
	SummarizeSection(ctx context.Context, req SectionRequest) (string, error)
}
