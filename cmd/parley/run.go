package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/parley/internal/cli"
	"github.com/aretw0/parley/internal/presentation/tui"
	"github.com/aretw0/parley/pkg/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the dialogue interactively",
	Long: `Plays the dialogue in the terminal. Type a choice number or id, press Enter
to continue past text, or type 'quit' to leave. With --session the context is
saved on exit and the next run picks up where it stopped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		start, _ := cmd.Flags().GetString("start")
		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		debug, _ := cmd.Flags().GetBool("debug")
		jsonMode, _ := cmd.Flags().GetBool("json")

		opts := cli.RunOptions{
			Tree:      treeSource(cmd),
			StartNode: start,
			SessionID: sessionID,
			Fresh:     fresh,
			Headless:  headless,
			JSON:      jsonMode,
			Debug:     debug,
		}

		tty := term.IsTerminal(int(os.Stdout.Fd()))
		if tty && !headless && !jsonMode {
			opts.Banner = true
			if render, err := tui.NewRenderer(); err == nil {
				opts.Renderer = render
			} else {
				logger.Warn("Markdown rendering disabled", "err", err)
			}
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		var sessions *session.Manager
		if sessionID != "" {
			b, err := openBackend(logger)
			if err != nil {
				return err
			}
			defer b.Close()
			sessions = session.NewManager(b.Store,
				session.WithLocker(b.Locker),
				session.WithLogger(logger),
			)
		}

		err := cli.RunSession(sigCtx, opts, sessions, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		if sig := sigCtx.Signal(); sig != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "\nInterrupted (%v).\n", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addTreeFlags(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts between text nodes, no styling)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (JSON Lines frames out, choice ids in)")
	runCmd.Flags().String("start", "", "Start node id (default \"start\")")
	runCmd.Flags().String("session", "", "Persist and resume the dialogue under this session id")
	runCmd.Flags().Bool("fresh", false, "Discard the stored session before starting")
	runCmd.Flags().Bool("debug", false, "Log lifecycle events")
}
