package main

import (
	"fmt"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/cli"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Walk the tree automatically and print a transcript",
	Long: `Plays the dialogue without input. At each choice node the next id from
--path is taken, or the first visible choice once the path runs out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := treeSource(cmd)
		path, _ := cmd.Flags().GetStringSlice("path")
		start, _ := cmd.Flags().GetString("start")
		maxSteps, _ := cmd.Flags().GetInt("max-steps")

		tree, err := src.Load()
		if err != nil {
			return fmt.Errorf("failed to load tree: %w", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Walking %s\n", src.Describe())
		_, err = cli.Walk(parley.New(tree, parley.WithLogger(logger)), cli.WalkOptions{
			StartNode: start,
			Path:      path,
			MaxSteps:  maxSteps,
		}, w)
		return err
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
	addTreeFlags(testCmd)
	testCmd.Flags().StringSlice("path", nil, "Choice ids to take, in order (a,b,c)")
	testCmd.Flags().String("start", "", "Start node id (default \"start\")")
	testCmd.Flags().Int("max-steps", cli.DefaultMaxSteps, "Stop after this many steps")
}
