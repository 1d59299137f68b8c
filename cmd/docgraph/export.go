package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lexreed/docgraph/internal/export"
)

var (
	exportOutput       string
	exportNoProvenance bool
)

var exportCmd = &cobra.Command{
	Use:   "export <hierarchy.json>",
	Short: "Export a built hierarchy as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := loadHierarchy(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		w := export.NewMarkdownWriter(out)
		w.IncludeProvenance = !exportNoProvenance
		return w.Write(root)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportNoProvenance, "no-provenance", false, "Omit merged-element provenance tables")

	rootCmd.AddCommand(exportCmd)
}
