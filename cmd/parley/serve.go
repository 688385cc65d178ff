package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/parley"
	httpAdapter "github.com/aretw0/parley/pkg/adapters/http"
	"github.com/aretw0/parley/pkg/adapters/file"
	"github.com/aretw0/parley/pkg/observability"
	"github.com/aretw0/parley/pkg/session"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP dialogue host",
	Long: `Serves the trees in --trees over a JSON API. Sessions live in session_dir,
or in Redis when --redis is given, and every mutation runs under the session lock.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("trees") {
			cfg.TreesDir, _ = cmd.Flags().GetString("trees")
		}
		if cmd.Flags().Changed("redis") {
			cfg.RedisURL, _ = cmd.Flags().GetString("redis")
		}

		b, err := openBackend(logger)
		if err != nil {
			return err
		}
		defer b.Close()

		engineOpts := []parley.Option{parley.WithLogger(logger)}
		serverOpts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
		if cfg.Metrics {
			metrics := observability.NewMetrics(nil)
			engineOpts = append(engineOpts, parley.WithLifecycleHooks(metrics.Hooks()))
			serverOpts = append(serverOpts, httpAdapter.WithMetricsHandler(metrics.Handler()))
		}

		sessions := session.NewManager(b.Store,
			session.WithTrees(file.NewLoader(cfg.TreesDir, logger)),
			session.WithLocker(b.Locker),
			session.WithLogger(logger),
			session.WithEngineOptions(engineOpts...),
		)

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           httpAdapter.NewHandler(sessions, serverOpts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting Parley Server",
				"addr", srv.Addr,
				"trees", cfg.TreesDir,
				"sessions", b.Kind,
				"metrics", cfg.Metrics,
			)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Parley Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides addr)")
	serveCmd.Flags().String("trees", "trees", "Directory of tree files (overrides trees_dir)")
	serveCmd.Flags().String("redis", "", "Redis URL for sessions and locks (overrides redis_url)")
}
