package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/presentation/tui"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/observability"
	"github.com/aretw0/parley/pkg/runner"
	"github.com/aretw0/parley/pkg/session"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Tree      TreeSource
	StartNode string

	// SessionID enables persistence: the dialogue resumes from the stored
	// session and the final context is saved back.
	SessionID string
	// Fresh discards the stored session before starting.
	Fresh bool

	Headless bool
	// JSON speaks JSON Lines instead of text; it implies Headless.
	JSON     bool
	Banner   bool
	Debug    bool
	Renderer runner.ContentRenderer
}

// RunSession plays a dialogue interactively over in/out.
// sessions may be nil when opts.SessionID is empty.
func RunSession(ctx context.Context, opts RunOptions, sessions *session.Manager, in io.Reader, out io.Writer, logger *slog.Logger) error {
	tree, err := opts.Tree.Load()
	if err != nil {
		return fmt.Errorf("error loading tree: %w", err)
	}

	engineOpts := []parley.Option{parley.WithLogger(logger)}
	if opts.Debug {
		engineOpts = append(engineOpts, parley.WithLifecycleHooks(observability.LogHooks(logger)))
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(in, out)
	} else {
		if opts.Banner && !opts.Headless {
			tui.PrintBanner(out)
		}
		handler = runner.NewTextHandler(in, out, runner.WithTextHandlerRenderer(opts.Renderer))
	}

	r := runner.NewRunner(
		runner.WithInputHandler(handler),
		runner.WithHeadless(opts.Headless || opts.JSON),
		runner.WithLogger(logger),
	)

	if opts.SessionID == "" {
		return handleExecutionError(r.Run(ctx, parley.New(tree, engineOpts...), opts.StartNode))
	}
	if sessions == nil {
		return fmt.Errorf("session %q requested without a session store", opts.SessionID)
	}

	eng, loaded, err := hydrate(ctx, sessions, tree, opts, engineOpts)
	if err != nil {
		return fmt.Errorf("failed to init session: %w", err)
	}

	var runErr error
	if loaded {
		logger.Info("Resuming session", "session_id", opts.SessionID, "node_id", eng.CurrentNode())
		runErr = r.Resume(ctx, eng)
		if errors.Is(runErr, domain.ErrNoCurrentNode) {
			fmt.Fprintf(out, "Session '%s' already finished. Use --fresh to start over.\n", opts.SessionID)
			return nil
		}
	} else {
		logger.Info("Starting session", "session_id", opts.SessionID, "tree_id", tree.ID)
		runErr = r.Run(ctx, eng, opts.StartNode)
	}

	// Persist even when interrupted so the player can come back later.
	saveCtx := context.WithoutCancel(ctx)
	if err := sessions.Save(saveCtx, domain.NewSession(opts.SessionID, tree.ID, eng.Snapshot())); err != nil {
		return errors.Join(handleExecutionError(runErr), fmt.Errorf("failed to save session: %w", err))
	}
	logger.Debug("Session saved", "session_id", opts.SessionID, "node_id", eng.CurrentNode())

	return handleExecutionError(runErr)
}

func hydrate(ctx context.Context, sessions *session.Manager, tree *domain.Tree, opts RunOptions, engineOpts []parley.Option) (*parley.Engine, bool, error) {
	if opts.Fresh {
		if err := sessions.Delete(ctx, opts.SessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, false, err
		}
	}

	stored, err := sessions.Load(ctx, opts.SessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return parley.New(tree, engineOpts...), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if stored.TreeID != "" && stored.TreeID != tree.ID {
		return nil, false, fmt.Errorf("session %q belongs to tree %q, not %q", opts.SessionID, stored.TreeID, tree.ID)
	}
	return parley.Resume(tree, stored.Context, engineOpts...), true, nil
}

// handleExecutionError turns a user interrupt into a clean exit.
func handleExecutionError(err error) error {
	if err == nil || IsInterrupted(err) {
		return nil
	}
	return err
}
