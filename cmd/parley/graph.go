package main

import (
	"fmt"

	"github.com/aretw0/parley/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the tree as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the tree. With --session the nodes
the session has visited and its current position are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := treeSource(cmd).Load()
		if err != nil {
			return fmt.Errorf("failed to load tree: %w", err)
		}

		var overlay *graph.GraphOverlay
		if sessionID, _ := cmd.Flags().GetString("session"); sessionID != "" {
			b, err := openBackend(logger)
			if err != nil {
				return err
			}
			defer b.Close()

			s, err := b.Store.Load(cmd.Context(), sessionID)
			if err != nil {
				return fmt.Errorf("error loading session '%s': %w", sessionID, err)
			}
			overlay = graph.OverlayFor(tree, s.Context)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(tree, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addTreeFlags(graphCmd)
	graphCmd.Flags().String("session", "", "Highlight the path of this session")
}
