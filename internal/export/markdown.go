package export

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/lexreed/docgraph/internal/hierarchy"
)

// MarkdownWriter renders a built hierarchy as a Markdown document:
// sections become headings by depth, content elements become paragraphs,
// summaries become blockquotes, and merge provenance becomes a table.
type MarkdownWriter struct {
	output io.Writer

	// IncludeProvenance adds a merged-elements table under each merged
	// content node.
	IncludeProvenance bool
}

func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output, IncludeProvenance: true}
}

// Write renders the hierarchy rooted at root and flushes it.
func (w *MarkdownWriter) Write(root *hierarchy.Node) error {
	md := markdown.NewMarkdown(w.output)

	md.H1(root.Text)
	md.PlainText("")
	w.writeSummary(md, root)
	w.writeContent(md, root)
	for _, child := range root.Children {
		w.writeSection(md, child, 2)
	}

	return md.Build()
}

func (w *MarkdownWriter) writeSection(md *markdown.Markdown, n *hierarchy.Node, depth int) {
	heading := n.Text
	switch depth {
	case 2:
		md.H2(heading)
	case 3:
		md.H3(heading)
	case 4:
		md.H4(heading)
	case 5:
		md.H5(heading)
	default:
		md.H6(heading)
	}
	md.PlainText("")

	w.writeSummary(md, n)
	w.writeContent(md, n)

	for _, child := range n.Children {
		w.writeSection(md, child, depth+1)
	}
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, n *hierarchy.Node) {
	if n.Summary == "" {
		return
	}
	md.Blockquote(n.Summary)
	md.PlainText("")
}

func (w *MarkdownWriter) writeContent(md *markdown.Markdown, n *hierarchy.Node) {
	for _, content := range n.ContentElements {
		md.PlainText(content.Text)
		md.PlainText("")

		if content.Summary != "" {
			md.Blockquote(content.Summary)
			md.PlainText("")
		}

		if w.IncludeProvenance && content.IsMerged() {
			rows := make([][]string, 0, len(content.MergedElements))
			for _, el := range content.MergedElements {
				rows = append(rows, []string{
					el.Label,
					strconv.Itoa(el.Page),
					strconv.Itoa(el.ReadingOrder),
					el.Text,
				})
			}
			md.Table(markdown.TableSet{
				Header: []string{"Label", "Page", "Order", "Original Text"},
				Rows:   rows,
			})
			md.PlainText("")
		}
	}
}
