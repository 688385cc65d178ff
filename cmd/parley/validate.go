package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/parley/internal/cli"
	"github.com/aretw0/parley/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the tree for consistency",
	Long: `Checks the required start and end nodes, resolves every next and choice
target, and reports nodes that no walk from 'start' can reach.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd.OutOrStdout(), treeSource(cmd)); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Tree is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addTreeFlags(validateCmd)
}

func runValidate(w io.Writer, src cli.TreeSource) error {
	tree, err := src.Load()
	if err != nil {
		return fmt.Errorf("failed to load tree: %w", err)
	}

	report := validator.ValidateTree(tree)
	printReport(w, src, report)
	return report.Err()
}

func printReport(w io.Writer, src cli.TreeSource, r *validator.Report) {
	fmt.Fprintf(w, "Source:  %s\n", src.Describe())
	fmt.Fprintf(w, "Tree:    %s (%s) v%s\n", r.TreeID, r.Name, r.Version)
	fmt.Fprintf(w, "Nodes:   %d\n", r.Nodes)
	fmt.Fprintf(w, "Choices: %d\n", r.Choices)

	for _, id := range r.MissingRequired {
		fmt.Fprintf(w, "Missing required node: '%s'\n", id)
	}
	fmt.Fprintf(w, "Connections: %d valid, %d invalid\n", r.ValidConnections, len(r.InvalidConnections))
	for _, c := range r.InvalidConnections {
		fmt.Fprintf(w, "  - %s\n", c)
	}
	if len(r.Unreachable) > 0 {
		fmt.Fprintf(w, "Unreachable: %s\n", strings.Join(r.Unreachable, ", "))
	}
}
