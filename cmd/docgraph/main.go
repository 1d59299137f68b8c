package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexreed/docgraph/internal/hierarchy"
)

var rootCmd = &cobra.Command{
	Use:   "docgraph",
	Short: "Build nested document hierarchies from layout recognition output",
	Long: `docgraph turns the flat, per-page element stream produced by a layout
recognition model into a nested document hierarchy: sections nest by
label-derived depth, figure/table captions and list runs are merged, body
content attaches to its nearest preceding section, and every node can carry
an AI-generated summary.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadHierarchy reads a previously built hierarchy JSON file.
func loadHierarchy(path string) (*hierarchy.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var serial hierarchy.Serial
	if err := json.Unmarshal(data, &serial); err != nil {
		return nil, fmt.Errorf("parse hierarchy file %s: %w", path, err)
	}
	return hierarchy.FromSerial(&serial), nil
}
