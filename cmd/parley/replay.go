package main

import (
	"io"
	"os"
	"time"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/replay"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [init|teardown|<input.json>|-]",
	Short: "Replay a choice path over a tree and print the trace as JSON",
	Long: `Reads {"tree", "startNode", "path"} and walks the path choice by choice.
The trace is written to stdout as one JSON document. Failures are written to
stderr as {"op", "status": "error", "error"} with exit code 1.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		seed, _ := cmd.Flags().GetString("seed")
		if err := runReplay(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], seed, time.Now()); err != nil {
			logger.Debug("Replay failed", "input", args[0], "err", err)
			_ = replay.Write(cmd.ErrOrStderr(), replay.NewErrorOutput(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().String("seed", "", "Seed for deterministic branch selection")
}

func runReplay(w io.Writer, stdin io.Reader, arg, seed string, now time.Time) error {
	switch arg {
	case "init":
		return replay.Write(w, replay.NewLifecycle(replay.OpInit, now))
	case "teardown":
		return replay.Write(w, replay.NewLifecycle(replay.OpTeardown, now))
	}

	var (
		in  *replay.Input
		err error
	)
	if arg == "-" {
		in, err = replay.ReadInput(stdin)
	} else {
		in, err = replay.ReadInputFile(arg)
	}
	if err != nil {
		return err
	}

	out, err := replay.Run(in, seed, parley.WithLogger(logger))
	if err != nil {
		return err
	}
	return replay.Write(w, out)
}
