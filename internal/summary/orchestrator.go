package summary

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/lexreed/docgraph/internal/hierarchy"
)

// Orchestrator runs the bottom-up summarization pass over a built
// hierarchy. Sibling subtrees are summarized concurrently; a node's own
// summary is computed only after every child and content summary below it
// has resolved. External calls are gated by a shared semaphore.
//
// The pass is idempotent: nodes carrying a non-empty summary are skipped,
// so a rerun only fills gaps. Any summarizer failure (including
// cancellation) resolves to a deterministic fallback string and the pass
// continues.
type Orchestrator struct {
	summarizer Summarizer
	log        *slog.Logger
	sem        chan struct{}
}

// NewOrchestrator creates the pass. maxConcurrent bounds in-flight
// summarizer calls across the whole tree.
func NewOrchestrator(s Summarizer, log *slog.Logger, maxConcurrent int) *Orchestrator {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Orchestrator{
		summarizer: s,
		log:        log,
		sem:        make(chan struct{}, maxConcurrent),
	}
}

// Summarize fills the Summary field of every node reachable from root.
func (o *Orchestrator) Summarize(ctx context.Context, root *hierarchy.Node) {
	o.summarizeNode(ctx, root)
}

func (o *Orchestrator) summarizeNode(ctx context.Context, n *hierarchy.Node) {
	// Children first, in parallel. No error ever propagates out of a
	// subtree, so a plain group is enough; Wait is the per-node join.
	var children errgroup.Group
	for _, child := range n.Children {
		child := child
		children.Go(func() error {
			o.summarizeNode(ctx, child)
			return nil
		})
	}
	children.Wait()

	var leaves errgroup.Group
	for _, content := range n.ContentElements {
		if content.Summary != "" {
			continue
		}
		content := content
		leaves.Go(func() error {
			content.Summary = o.leafSummary(ctx, content)
			return nil
		})
	}
	leaves.Wait()

	if n.IsStructural() && n.Summary == "" {
		n.Summary = o.sectionSummary(ctx, n)
	}
}

func (o *Orchestrator) leafSummary(ctx context.Context, n *hierarchy.Node) string {
	if err := o.acquire(ctx); err != nil {
		o.log.Warn("summary skipped", "node", n.ID, "error", err)
		return FallbackLeaf(n.Label, n.Text)
	}
	defer o.release()

	text, err := o.summarizer.SummarizeLeaf(ctx, n.Label, n.Text)
	if err != nil || text == "" {
		o.log.Warn("leaf summary failed", "node", n.ID, "label", n.Label, "error", err)
		return FallbackLeaf(n.Label, n.Text)
	}
	return text
}

func (o *Orchestrator) sectionSummary(ctx context.Context, n *hierarchy.Node) string {
	req := SectionRequest{Label: n.Label, Text: n.Text}
	for _, content := range n.ContentElements {
		s := content.Summary
		if s == "" {
			s = truncate(content.Text, 200)
		}
		req.ContentSummaries = append(req.ContentSummaries, LabeledSummary{
			Label:   content.Label,
			Summary: s,
		})
	}
	for _, child := range n.Children {
		if child.Summary == "" {
			continue
		}
		req.ChildSummaries = append(req.ChildSummaries, LabeledSummary{
			Label:   child.Text,
			Summary: child.Summary,
		})
	}

	if err := o.acquire(ctx); err != nil {
		o.log.Warn("summary skipped", "node", n.ID, "error", err)
		return FallbackSection(n.Label)
	}
	defer o.release()

	text, err := o.summarizer.SummarizeSection(ctx, req)
	if err != nil || text == "" {
		o.log.Warn("section summary failed", "node", n.ID, "label", n.Label, "error", err)
		return FallbackSection(n.Label)
	}
	return text
}

func (o *Orchestrator) acquire(ctx context.Context) error {
	select {
	case o.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) release() {
	<-o.sem
}

// FallbackLeaf is the deterministic summary substituted when a content
// node cannot be summarized.
func FallbackLeaf(label, text string) string {
	return fmt.Sprintf("Summary unavailable for %s: %s", label, truncate(text, 100))
}

// FallbackSection is the deterministic summary substituted when a
// structural node cannot be summarized.
func FallbackSection(label string) string {
	return fmt.Sprintf("Summary unavailable for section %s", label)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
