package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/parley/internal/cli"
	"github.com/aretw0/parley/internal/config"
	"github.com/aretw0/parley/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.Default()
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Parley is a branching dialogue engine",
	Long: `Parley walks dialogue trees: nodes with conditions, actions and choices
evaluated against a per-session context of variables, flags, inventory and quests.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML config file (PARLEY_* environment variables override it)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// setup loads the configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path, os.Environ())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	level, err := logging.ParseLevel(loaded.LogLevel)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = logging.New(level)
	logger.Debug("Configuration loaded", "config", path, "level", level.String())
	return nil
}

// addTreeFlags registers the flags read by treeSource.
func addTreeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Tree file (.json, .yaml or .yml)")
	cmd.Flags().String("tree", "", "Inline tree JSON")
}

func treeSource(cmd *cobra.Command) cli.TreeSource {
	file, _ := cmd.Flags().GetString("file")
	tree, _ := cmd.Flags().GetString("tree")
	return cli.TreeSource{File: file, JSON: tree}
}

// openBackend opens the configured session store. Callers must Close it.
func openBackend(log *slog.Logger) (*cli.Backend, error) {
	b, err := cli.OpenBackend(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error opening session store: %w", err)
	}
	return b, nil
}
