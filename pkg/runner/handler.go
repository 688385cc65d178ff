package runner

import (
	"context"

	"github.com/aretw0/parley/pkg/domain"
)

// IOHandler defines the strategy for interacting with the player.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents one engine result.
	Output(ctx context.Context, res *domain.Result) error

	// Input reads the player's next line. io.EOF ends the session.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message, e.g. an unknown choice.
	// This is distinct from content rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)
