package hierarchy

// Stats aggregates counts over a built hierarchy.
type Stats struct {
	StructuralNodes     int `json:"structural_nodes"`
	ContentElements     int `json:"content_elements"`
	NodesWithSummaries  int `json:"nodes_with_summaries"`
	MergedFigures       int `json:"merged_figures"`
	MergedTables        int `json:"merged_tables"`
	MergedLists         int `json:"merged_lists"`
	MaxDepth            int `json:"max_depth"`
	SectionsWithContent int `json:"sections_with_content"`
	DroppedElements     int `json:"dropped_elements"`
}

// CollectStats walks the result tree and tallies its composition.
func CollectStats(res *Result) Stats {
	stats := Stats{DroppedElements: res.Dropped}
	countNodes(res.Root, 0, &stats)
	return stats
}

func countNodes(n *Node, depth int, stats *Stats) {
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	if n.Summary != "" {
		stats.NodesWithSummaries++
	}
	if n.IsStructural() {
		stats.StructuralNodes++
		if len(n.ContentElements) > 0 {
			stats.SectionsWithContent++
		}
	}

	for _, content := range n.ContentElements {
		stats.ContentElements++
		if content.Summary != "" {
			stats.NodesWithSummaries++
		}
		switch content.Label {
		case "figure":
			stats.MergedFigures++
		case "table":
			stats.MergedTables++
		case "list_group":
			stats.MergedLists++
		}
	}

	for _, child := range n.Children {
		countNodes(child, depth+1, stats)
	}
}
