package visual

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lexreed/docgraph/internal/hierarchy"
)

var (
	structuralStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mergeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	pageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Renderer draws a built hierarchy as text art. Plain disables styling,
// which keeps output stable for tests and piping.
type Renderer struct {
	MaxTextLen int
	Plain      bool
}

func NewRenderer() Renderer {
	return Renderer{MaxTextLen: 80}
}

// Tree renders the hierarchy as an indented outline.
func (r Renderer) Tree(root *hierarchy.Node) string {
	var sb strings.Builder
	r.treeNode(&sb, root, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func (r Renderer) treeNode(sb *strings.Builder, n *hierarchy.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	sb.WriteString(pad)
	sb.WriteString(r.structuralLine(n))
	sb.WriteString("\n")

	for _, content := range n.ContentElements {
		sb.WriteString(pad)
		sb.WriteString("    ")
		sb.WriteString(r.contentLine(content))
		sb.WriteString("\n")
	}
	for _, child := range n.Children {
		r.treeNode(sb, child, indent+1)
	}
}

// Graph renders the hierarchy as a git-style branch graph: structural
// nodes as ●, content leaves as ○, connected with branch lines.
func (r Renderer) Graph(root *hierarchy.Node) string {
	var sb strings.Builder
	sb.WriteString("● ")
	sb.WriteString(r.structuralLine(root))
	sb.WriteString("\n")
	r.graphChildren(&sb, root, "")
	return strings.TrimRight(sb.String(), "\n")
}

func (r Renderer) graphChildren(sb *strings.Builder, n *hierarchy.Node, prefix string) {
	total := len(n.ContentElements) + len(n.Children)
	drawn := 0

	for _, content := range n.ContentElements {
		drawn++
		connector, _ := branchParts(drawn == total)
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString("○ ")
		sb.WriteString(r.contentLine(content))
		sb.WriteString("\n")
	}

	for _, child := range n.Children {
		drawn++
		connector, continuation := branchParts(drawn == total)
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString("● ")
		sb.WriteString(r.structuralLine(child))
		sb.WriteString("\n")
		r.graphChildren(sb, child, prefix+continuation)
	}
}

func branchParts(last bool) (connector, continuation string) {
	if last {
		return "└─", "  "
	}
	return "├─", "│ "
}

func (r Renderer) structuralLine(n *hierarchy.Node) string {
	label := fmt.Sprintf("[%s]", n.Label)
	text := r.clip(n.Text, r.maxLen())
	page := fmt.Sprintf("(page %d)", n.Page)
	if r.Plain {
		return fmt.Sprintf("%s %s %s", label, text, page)
	}
	return fmt.Sprintf("%s %s %s",
		structuralStyle.Render(label), text, pageStyle.Render(page))
}

func (r Renderer) contentLine(n *hierarchy.Node) string {
	text := r.clip(n.Text, r.maxLen()*2/3)
	line := fmt.Sprintf("%s %s", n.Label, text)
	if !r.Plain {
		line = contentStyle.Render(line)
	}
	if n.IsMerged() {
		merged := fmt.Sprintf(" [merged: %d]", len(n.MergedElements))
		if r.Plain {
			line += merged
		} else {
			line += mergeStyle.Render(merged)
		}
	}
	return line
}

func (r Renderer) maxLen() int {
	if r.MaxTextLen > 0 {
		return r.MaxTextLen
	}
	return 80
}

func (r Renderer) clip(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
