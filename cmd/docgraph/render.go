package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexreed/docgraph/internal/visual"
)

var (
	renderStyle   string
	renderPlain   bool
	renderMaxText int
)

var renderCmd = &cobra.Command{
	Use:   "render <hierarchy.json>",
	Short: "Render a built hierarchy as text art",
	Long:  `Render draws a hierarchy JSON file as an indented outline (tree) or a git-style branch graph (graph).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := loadHierarchy(args[0])
		if err != nil {
			return err
		}

		r := visual.NewRenderer()
		r.Plain = renderPlain
		r.MaxTextLen = renderMaxText

		switch renderStyle {
		case "tree":
			fmt.Fprintln(cmd.OutOrStdout(), r.Tree(root))
		case "graph":
			fmt.Fprintln(cmd.OutOrStdout(), r.Graph(root))
		default:
			return fmt.Errorf("unknown style %q (want tree or graph)", renderStyle)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderStyle, "style", "graph", "Rendering style: tree or graph")
	renderCmd.Flags().BoolVar(&renderPlain, "plain", false, "Disable colors")
	renderCmd.Flags().IntVar(&renderMaxText, "max-text", 80, "Maximum text length per line")

	rootCmd.AddCommand(renderCmd)
}
