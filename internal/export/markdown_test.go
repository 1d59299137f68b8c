package export

import (
	"strings"
	"testing"

	"github.com/lexreed/docgraph/internal/element"
	"github.com/lexreed/docgraph/internal/hierarchy"
)

func buildTree(t *testing.T) *hierarchy.Node {
	t.Helper()
	res := hierarchy.Build([]element.DocumentElement{
		{Label: "title", Text: "Doc", Page: 1, ReadingOrder: 0},
		{Label: "sec", Text: "1 Intro", Page: 1, ReadingOrder: 1},
		{Label: "para", Text: "hello world", Page: 1, ReadingOrder: 2},
		{Label: "sub_sec", Text: "1.1 Detail", Page: 1, ReadingOrder: 3},
		{Label: "fig", Text: "img", Page: 1, ReadingOrder: 4},
		{Label: "cap", Text: "Figure 1", Page: 1, ReadingOrder: 5},
	})
	res.Root.Summary = "whole document summary"
	res.Root.Children[0].Summary = "intro summary"
	return res.Root
}

func TestWrite_HeadingsFollowDepth(t *testing.T) {
	var sb strings.Builder
	if err := NewMarkdownWriter(&sb).Write(buildTree(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "# Doc") {
		t.Errorf("missing H1:\n%s", out)
	}
	if !strings.Contains(out, "## 1 Intro") {
		t.Errorf("missing H2:\n%s", out)
	}
	if !strings.Contains(out, "### 1.1 Detail") {
		t.Errorf("missing H3:\n%s", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("missing content paragraph:\n%s", out)
	}
}

func TestWrite_SummariesAsBlockquotes(t *testing.T) {
	var sb strings.Builder
	if err := NewMarkdownWriter(&sb).Write(buildTree(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "> whole document summary") {
		t.Errorf("missing root summary blockquote:\n%s", out)
	}
	if !strings.Contains(out, "> intro summary") {
		t.Errorf("missing section summary blockquote:\n%s", out)
	}
}

func TestWrite_ProvenanceTable(t *testing.T) {
	var sb strings.Builder
	if err := NewMarkdownWriter(&sb).Write(buildTree(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "Original Text") {
		t.Errorf("missing provenance table header:\n%s", out)
	}
	// Original pre-merge rows survive in the table.
	for _, cell := range []string{"fig", "cap", "img", "Figure 1"} {
		if !strings.Contains(out, cell) {
			t.Errorf("provenance table missing %q:\n%s", cell, out)
		}
	}
}

func TestWrite_ProvenanceDisabled(t *testing.T) {
	var sb strings.Builder
	w := NewMarkdownWriter(&sb)
	w.IncludeProvenance = false
	if err := w.Write(buildTree(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Contains(sb.String(), "Original Text") {
		t.Errorf("provenance table should be omitted:\n%s", sb.String())
	}
}
