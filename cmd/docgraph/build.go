package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexreed/docgraph/internal/element"
	"github.com/lexreed/docgraph/internal/hierarchy"
	"github.com/lexreed/docgraph/internal/summary"
)

var (
	buildOutput      string
	buildNoSummaries bool
	buildModel       string
	buildConcurrency int
)

var buildCmd = &cobra.Command{
	Use:   "build <recognition.json>",
	Short: "Build a hierarchy from recognition JSON",
	Long: `Build reads the recognition JSON emitted by the layout model, assembles
the nested hierarchy, and writes it as JSON. Summaries are generated when
ANTHROPIC_API_KEY is set; pass --no-summaries to skip them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		elements, err := element.Decode(f)
		if err != nil {
			return err
		}
		if len(elements) == 0 {
			return fmt.Errorf("%s contains no elements", args[0])
		}

		res := hierarchy.Build(elements)

		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		switch {
		case buildNoSummaries:
			fmt.Fprintln(cmd.ErrOrStderr(), "summaries disabled")
		case apiKey == "":
			fmt.Fprintln(cmd.ErrOrStderr(), "ANTHROPIC_API_KEY not set, skipping summaries")
		default:
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			client := summary.NewClaudeClient(apiKey, buildModel)
			defer client.Close()
			orch := summary.NewOrchestrator(client, log, buildConcurrency)
			orch.Summarize(cmd.Context(), res.Root)
		}

		data, err := json.MarshalIndent(res.Root.Serialize(), "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(buildOutput, data, 0o644); err != nil {
			return err
		}

		stats := hierarchy.CollectStats(res)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Hierarchy written to %s\n", buildOutput)
		fmt.Fprintf(out, "  structural nodes:      %d\n", stats.StructuralNodes)
		fmt.Fprintf(out, "  content elements:      %d\n", stats.ContentElements)
		fmt.Fprintf(out, "  nodes with summaries:  %d\n", stats.NodesWithSummaries)
		fmt.Fprintf(out, "  merged figures:        %d\n", stats.MergedFigures)
		fmt.Fprintf(out, "  merged tables:         %d\n", stats.MergedTables)
		fmt.Fprintf(out, "  merged list groups:    %d\n", stats.MergedLists)
		fmt.Fprintf(out, "  max depth:             %d\n", stats.MaxDepth)
		fmt.Fprintf(out, "  sections with content: %d\n", stats.SectionsWithContent)
		fmt.Fprintf(out, "  dropped elements:      %d\n", stats.DroppedElements)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "hierarchy.json", "Output file for the hierarchy JSON")
	buildCmd.Flags().BoolVar(&buildNoSummaries, "no-summaries", false, "Skip AI summary generation")
	buildCmd.Flags().StringVar(&buildModel, "model", "claude-sonnet-4-5-20250929", "Model used for summaries")
	buildCmd.Flags().IntVar(&buildConcurrency, "concurrency", 4, "Maximum concurrent summary calls")

	rootCmd.AddCommand(buildCmd)
}
