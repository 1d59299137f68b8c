package hierarchy

import (
	"sort"

	"github.com/lexreed/docgraph/internal/element"
)

// Result is a fully assembled hierarchy plus assembly diagnostics.
type Result struct {
	Root *Node

	// Dropped counts input elements whose label is neither structural nor
	// content. They are excluded from the tree; the count is surfaced so
	// the data loss is observable.
	Dropped int
}

// Build assembles the nested hierarchy from a flat element stream: classify,
// merge related content, nest structural nodes by label-derived depth, and
// attach every content node to its nearest preceding structural ancestor.
func Build(elements []element.DocumentElement) *Result {
	sorted := make([]element.DocumentElement, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return element.Before(sorted[i].Page, sorted[i].ReadingOrder, sorted[j].Page, sorted[j].ReadingOrder)
	})

	var structural, content []*Node
	dropped := 0
	for _, el := range sorted {
		switch element.Classify(el.Label).Kind {
		case element.KindStructural:
			structural = append(structural, FromElement(el))
		case element.KindContent:
			content = append(content, FromElement(el))
		default:
			dropped++
		}
	}

	content = MergeCaptionPairs(content)
	content = MergeListRuns(content)

	root, structural := extractRoot(structural)
	attachStructural(root, structural)
	assignContent(root, content)

	return &Result{Root: root, Dropped: dropped}
}

// extractRoot promotes the first title element to root, or synthesizes a
// document node when the stream has no title. The synthetic root sorts
// before every real element and never receives a parent.
func extractRoot(structural []*Node) (*Node, []*Node) {
	for i, n := range structural {
		if n.Label == "title" {
			rest := make([]*Node, 0, len(structural)-1)
			rest = append(rest, structural[:i]...)
			rest = append(rest, structural[i+1:]...)
			return n, rest
		}
	}
	root := &Node{
		ID:           "document_root",
		Label:        "document",
		Text:         "Document Root",
		Level:        -1,
		Page:         0,
		ReadingOrder: -1,
	}
	return root, structural
}

// attachStructural nests the structural stream under root using an
// open-ancestor table indexed by level. A node at level L attaches to the
// nearest shallower still-open ancestor (skipped intermediate levels fall
// through to it), becomes the open ancestor at L, and closes every open
// branch deeper than L.
func attachStructural(root *Node, structural []*Node) {
	open := map[int]*Node{0: root}

	for _, n := range structural {
		if n.Level <= 0 {
			continue
		}

		parentLevel := n.Level - 1
		for parentLevel >= 0 && open[parentLevel] == nil {
			parentLevel--
		}
		parent := root
		if parentLevel >= 0 {
			parent = open[parentLevel]
		}
		parent.AddChild(n)

		open[n.Level] = n
		for level := range open {
			if level > n.Level {
				delete(open, level)
			}
		}
	}
}

// assignContent attaches each content node to the structural node that most
// closely precedes it in document order, falling back to root. The
// structural list is collected once and globally sorted; the per-content
// scan updates its best candidate monotonically and stops at the first
// structural node not before the content node.
func assignContent(root *Node, content []*Node) {
	var structural []*Node
	collectStructural(root, &structural)
	sort.SliceStable(structural, func(i, j int) bool {
		return element.Before(structural[i].Page, structural[i].ReadingOrder, structural[j].Page, structural[j].ReadingOrder)
	})

	for _, c := range content {
		best := root
		for _, s := range structural {
			if !element.Before(s.Page, s.ReadingOrder, c.Page, c.ReadingOrder) {
				break
			}
			best = s
		}
		best.AddContent(c)
	}
}

func collectStructural(n *Node, out *[]*Node) {
	if n.IsStructural() {
		*out = append(*out, n)
	}
	for _, child := range n.Children {
		collectStructural(child, out)
	}
}
