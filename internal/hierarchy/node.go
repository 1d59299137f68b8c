package hierarchy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexreed/docgraph/internal/element"
)

// Node is one entry in the document hierarchy. Structural nodes own
// Children (nested sections) and ContentElements (body content attached
// directly under them); content nodes own neither. Parent is tracked by id
// only, for diagnostics — the ownership edges are Children and
// ContentElements.
type Node struct {
	ID           string
	Label        string
	Text         string
	Level        int
	Page         int
	ReadingOrder int
	Bbox         []int

	// Summary is write-once: the summarization pass never overwrites a
	// non-empty value, which makes reruns incremental.
	Summary string

	// MergedElements holds the pre-merge snapshot of every constituent
	// element, in merge order, including the element that survives as
	// this node. Non-empty iff the node is merged.
	MergedElements []element.DocumentElement

	ParentID        string
	Children        []*Node
	ContentElements []*Node
}

// NodeID derives the deterministic node id from document position.
func NodeID(page, readingOrder int) string {
	return fmt.Sprintf("page_%d_order_%d", page, readingOrder)
}

// FromElement creates a hierarchy node from a recognized element.
func FromElement(el element.DocumentElement) *Node {
	return &Node{
		ID:           NodeID(el.Page, el.ReadingOrder),
		Label:        el.Label,
		Text:         el.Text,
		Level:        element.Classify(el.Label).Depth,
		Page:         el.Page,
		ReadingOrder: el.ReadingOrder,
		Bbox:         el.Bbox,
	}
}

// IsMerged reports whether this node absorbed other elements.
func (n *Node) IsMerged() bool {
	return len(n.MergedElements) > 0
}

// IsStructural reports whether this node organizes the document rather
// than carrying body content.
func (n *Node) IsStructural() bool {
	return element.Classify(n.Label).Kind == element.KindStructural
}

// AddChild appends a structural descendant.
func (n *Node) AddChild(child *Node) {
	child.ParentID = n.ID
	n.Children = append(n.Children, child)
}

// AddContent appends a content leaf.
func (n *Node) AddContent(content *Node) {
	content.ParentID = n.ID
	n.ContentElements = append(n.ContentElements, content)
}

// snapshot captures the node's current state as a plain element record.
func (n *Node) snapshot() element.DocumentElement {
	return element.DocumentElement{
		Label:        n.Label,
		Text:         n.Text,
		Bbox:         n.Bbox,
		Page:         n.Page,
		ReadingOrder: n.ReadingOrder,
	}
}

// MergeWith absorbs other into n. The first merge records n's own pre-merge
// snapshot before the text rewrite, so provenance is always fully
// recoverable from MergedElements.
func (n *Node) MergeWith(other *Node) {
	if len(n.MergedElements) == 0 {
		n.MergedElements = append(n.MergedElements, n.snapshot())
	}
	n.MergedElements = append(n.MergedElements, other.snapshot())

	switch {
	case n.Label == "fig" && other.Label == "cap":
		n.Text = fmt.Sprintf("%s [IMAGE: %s]", other.Text, n.Text)
		n.Label = "figure"
	case n.Label == "tab" && other.Label == "cap":
		n.Text = fmt.Sprintf("%s [TABLE: %s]", other.Text, n.Text)
		n.Label = "table"
	case n.Label == "list" || n.Label == "list_group":
		n.Text = n.Text + "\n" + other.Text
		n.Label = "list_group"
	}
}

var sectionNumberRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)`)

// SectionNumber extracts the dotted numeric prefix of the node text
// (e.g. "2.3"), or "" when the text does not start with one.
func (n *Node) SectionNumber() string {
	m := sectionNumberRe.FindStringSubmatch(strings.TrimSpace(n.Text))
	if m == nil {
		return ""
	}
	return m[1]
}

// Serial is the nested record emitted for a node. Children precede
// content elements, and both keep their (page, reading_order) ordering.
type Serial struct {
	ID              string                    `json:"id"`
	Label           string                    `json:"label"`
	Text            string                    `json:"text"`
	Level           int                       `json:"level"`
	Page            int                       `json:"page"`
	ReadingOrder    int                       `json:"reading_order"`
	Bbox            []int                     `json:"bbox"`
	SectionNumber   *string                   `json:"section_number"`
	Summary         *string                   `json:"summary"`
	Children        []*Serial                 `json:"children"`
	ContentElements []*Serial                 `json:"content_elements"`
	MergedElements  []element.DocumentElement `json:"merged_elements,omitempty"`
	IsMerged        bool                      `json:"is_merged,omitempty"`
}

// Serialize converts the subtree rooted at n into its emitted form.
func (n *Node) Serialize() *Serial {
	s := &Serial{
		ID:              n.ID,
		Label:           n.Label,
		Text:            n.Text,
		Level:           n.Level,
		Page:            n.Page,
		ReadingOrder:    n.ReadingOrder,
		Bbox:            n.Bbox,
		Children:        make([]*Serial, 0, len(n.Children)),
		ContentElements: make([]*Serial, 0, len(n.ContentElements)),
	}
	if num := n.SectionNumber(); num != "" {
		s.SectionNumber = &num
	}
	if n.Summary != "" {
		sum := n.Summary
		s.Summary = &sum
	}
	for _, child := range n.Children {
		s.Children = append(s.Children, child.Serialize())
	}
	for _, content := range n.ContentElements {
		s.ContentElements = append(s.ContentElements, content.Serialize())
	}
	if n.IsMerged() {
		s.MergedElements = n.MergedElements
		s.IsMerged = true
	}
	return s
}

// FromSerial rebuilds a node tree from its emitted form, so saved
// hierarchies can be rendered, exported, or re-summarized.
func FromSerial(s *Serial) *Node {
	n := &Node{
		ID:             s.ID,
		Label:          s.Label,
		Text:           s.Text,
		Level:          s.Level,
		Page:           s.Page,
		ReadingOrder:   s.ReadingOrder,
		Bbox:           s.Bbox,
		MergedElements: s.MergedElements,
	}
	if s.Summary != nil {
		n.Summary = *s.Summary
	}
	for _, child := range s.Children {
		n.AddChild(FromSerial(child))
	}
	for _, content := range s.ContentElements {
		n.AddContent(FromSerial(content))
	}
	return n
}
