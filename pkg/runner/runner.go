package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
)

// Runner handles the execution loop of a dialogue engine using provided IO.
type Runner struct {
	// Handler is the strategy for IO. NewRunner defaults it to stdin/stdout text.
	Handler IOHandler

	// Headless skips the acknowledgement prompt between text nodes.
	Headless bool

	// Logger is used for internal debug logging.
	Logger *slog.Logger
}

// NewRunner creates a Runner over stdin/stdout unless an option overrides it.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r
}

// Run starts the dialogue at startNodeID and loops until it ends,
// the input is exhausted or the player types "exit"/"quit".
func (r *Runner) Run(ctx context.Context, engine *parley.Engine, startNodeID string) error {
	if err := r.check(); err != nil {
		return err
	}
	res, err := engine.Start(startNodeID)
	if err != nil {
		return err
	}
	return r.loop(ctx, engine, res)
}

// Resume picks a restored engine up at its current node.
// It fails with domain.ErrNoCurrentNode when the dialogue already ended.
func (r *Runner) Resume(ctx context.Context, engine *parley.Engine) error {
	if err := r.check(); err != nil {
		return err
	}
	res, err := engine.Continue()
	if err != nil {
		return err
	}
	return r.loop(ctx, engine, res)
}

func (r *Runner) check() error {
	if r.Handler == nil {
		return fmt.Errorf("runner has no IO handler (use NewRunner)")
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

func (r *Runner) loop(ctx context.Context, engine *parley.Engine, res *domain.Result) error {
	var err error

	for {
		if err := r.Handler.Output(ctx, res); err != nil {
			return fmt.Errorf("output error: %w", err)
		}

		switch {
		case len(res.Choices) > 0:
			input, ok, err := r.prompt(ctx)
			if err != nil || !ok {
				return err
			}
			id := resolveChoice(res.Choices, input)
			next, err := engine.SelectChoice(id)
			if errors.Is(err, domain.ErrChoiceNotFound) {
				r.Logger.Debug("Unknown choice", "node_id", res.Node.ID, "input", input)
				if err := r.Handler.SystemOutput(ctx, fmt.Sprintf("Unknown choice %q.", input)); err != nil {
					return fmt.Errorf("output error: %w", err)
				}
				continue
			}
			if err != nil {
				return err
			}
			res = next

		case res.CanContinue:
			if !r.Headless {
				if _, ok, err := r.prompt(ctx); err != nil || !ok {
					return err
				}
			}
			if res, err = engine.Continue(); err != nil {
				return err
			}

		default:
			// Moving onto "end" stops before showing it.
			if engine.CurrentNode() == domain.EndNodeID {
				if res, err = engine.Continue(); err != nil {
					return err
				}
				if err := r.Handler.Output(ctx, res); err != nil {
					return fmt.Errorf("output error: %w", err)
				}
			}
			r.Logger.Debug("Dialogue ended", "node_id", res.Node.ID)
			return nil
		}
	}
}

// prompt reads one line. ok is false on EOF or when the player quits.
func (r *Runner) prompt(ctx context.Context) (string, bool, error) {
	input, err := r.Handler.Input(ctx)
	if errors.Is(err, io.EOF) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("input error: %w", err)
	}
	if input == "exit" || input == "quit" {
		return "", false, r.Handler.SystemOutput(ctx, "Bye!")
	}
	return input, true, nil
}

// resolveChoice accepts a 1-based index into the visible choices or a choice id.
func resolveChoice(choices []domain.Choice, input string) string {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1].ID
	}
	return input
}
