package visual

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
		{Label: "para", Text: "hello", Page: 1, ReadingOrder: 2},
		{Label: "fig", Text: "img", Page: 1, ReadingOrder: 3},
		{Label: "cap", Text: "Figure 1", Page: 1, ReadingOrder: 4},
		{Label: "sec", Text: "2 More", Page: 2, ReadingOrder: 0},
	})
	return res.Root
}

func plainRenderer() Renderer {
	r := NewRenderer()
	r.Plain = true
	return r
}

func TestTree_PlainOutline(t *testing.T) {
	out := plainRenderer().Tree(buildTree(t))
	lines := strings.Split(out, "\n")

	if !strings.HasPrefix(lines[0], "[title] Doc") {
		t.Errorf("expected root first, got %q", lines[0])
	}
	if !strings.Contains(out, "[sec] 1 Intro (page 1)") {
		t.Errorf("missing section line:\n%s", out)
	}
	if !strings.Contains(out, "para hello") {
		t.Errorf("missing content line:\n%s", out)
	}
	// Merged nodes carry a provenance marker.
	if !strings.Contains(out, "[merged: 2]") {
		t.Errorf("missing merge marker:\n%s", out)
	}
	// Sections are indented one level below the root.
	found := false
	for _, line := range lines {
		if strings.HasPrefix(line, "  [sec]") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected indented section lines:\n%s", out)
	}
}

func TestGraph_PlainBranches(t *testing.T) {
	out := plainRenderer().Graph(buildTree(t))
	lines := strings.Split(out, "\n")

	if !strings.HasPrefix(lines[0], "● [title] Doc") {
		t.Errorf("expected root bullet first, got %q", lines[0])
	}
	if !strings.Contains(out, "├─● [sec] 1 Intro") {
		t.Errorf("missing mid-branch section:\n%s", out)
	}
	if !strings.Contains(out, "└─● [sec] 2 More") {
		t.Errorf("missing last-branch section:\n%s", out)
	}
	// Content under a non-last section continues the parent branch line.
	if !strings.Contains(out, "│ ├─○ para hello") {
		t.Errorf("missing continued content branch:\n%s", out)
	}
}

func TestClip_TruncatesAndFlattensNewlines(t *testing.T) {
	r := Renderer{MaxTextLen: 5, Plain: true}
	if got := r.clip("ab\ncd", 10); got != "ab cd" {
		t.Errorf("expected newlines flattened, got %q", got)
	}
	if got := r.clip("abcdefgh", 5); got != "abcde..." {
		t.Errorf("expected truncation, got %q", got)
	}
	// Rune-safe truncation.
	if got := r.clip("ααααββββ", 4); got != "αααα..." {
		t.Errorf("expected rune-safe truncation, got %q", got)
	}
}
