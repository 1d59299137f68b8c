package hierarchy

// MergeCaptionPairs merges each fig or tab immediately followed by a cap on
// the same page into a single figure/table node. Runs before MergeListRuns;
// both passes only ever shrink the sequence.
func MergeCaptionPairs(content []*Node) []*Node {
	merged := make([]*Node, 0, len(content))
	i := 0
	for i < len(content) {
		cur := content[i]
		if i+1 < len(content) &&
			(cur.Label == "fig" || cur.Label == "tab") &&
			content[i+1].Label == "cap" &&
			cur.Page == content[i+1].Page {
			cur.MergeWith(content[i+1])
			merged = append(merged, cur)
			i += 2
			continue
		}
		merged = append(merged, cur)
		i++
	}
	return merged
}

// MergeListRuns collapses runs of consecutive list elements on the same page
// with strictly contiguous reading order into a single list_group node.
func MergeListRuns(content []*Node) []*Node {
	merged := make([]*Node, 0, len(content))
	i := 0
	for i < len(content) {
		cur := content[i]
		if cur.Label != "list" {
			merged = append(merged, cur)
			i++
			continue
		}

		group := cur
		prevOrder := cur.ReadingOrder
		j := i + 1
		for j < len(content) &&
			content[j].Label == "list" &&
			content[j].Page == cur.Page &&
			content[j].ReadingOrder == prevOrder+1 {
			prevOrder = content[j].ReadingOrder
			group.MergeWith(content[j])
			j++
		}
		merged = append(merged, group)
		i = j
	}
	return merged
}
