package parley

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/parley/internal/runtime"
	"github.com/aretw0/parley/pkg/codec"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/script"
)

// Engine is the high-level entry point for the Parley library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime     *runtime.Engine
	runtimeOpts []runtime.EngineOption
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithLifecycleHooks(hooks))
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// RandomSource yields floats in [0, 1) for branch selection.
type RandomSource = runtime.RandomSource

// WithRandom injects the source used by branch nodes, e.g. a seeded one for replays.
func WithRandom(r RandomSource) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithRandom(r))
	}
}

// WithEvaluator overrides how conditions are evaluated.
// script.ShallowEvaluator restores the legacy operator-only checks.
func WithEvaluator(eval script.Evaluator) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithEvaluator(eval))
	}
}

// New initializes an engine over the tree with a fresh context.
func New(tree *domain.Tree, opts ...Option) *Engine {
	eng := build(opts)
	eng.runtime = runtime.NewEngine(tree, eng.runtimeOpts...)
	return eng
}

// Resume initializes an engine positioned at a context captured by Snapshot.
func Resume(tree *domain.Tree, snapshot *domain.Context, opts ...Option) *Engine {
	eng := build(opts)
	eng.runtime = runtime.Resume(tree, snapshot, eng.runtimeOpts...)
	return eng
}

func build(opts []Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	// Ensure logger is initialized so the runtime default is not replaced by nil.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	eng.runtimeOpts = append([]runtime.EngineOption{runtime.WithLogger(eng.logger)}, eng.runtimeOpts...)
	return eng
}

// Load reads a tree file (.json, .yaml, .yml) and creates an engine for it.
func Load(path string, opts ...Option) (*Engine, error) {
	tree, err := codec.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dialogue: %w", err)
	}
	return New(tree, opts...), nil
}

// Deserialize decodes a tree produced by Serialize.
func Deserialize(data []byte) (*domain.Tree, error) {
	return codec.Deserialize(data)
}

// Start begins the dialogue at startNodeID ("" means "start").
func (e *Engine) Start(startNodeID string) (*domain.Result, error) {
	return e.runtime.Start(startNodeID)
}

// Continue processes the node at the current position.
func (e *Engine) Continue() (*domain.Result, error) {
	return e.runtime.Continue()
}

// SelectChoice picks a choice of the current node.
func (e *Engine) SelectChoice(choiceID string) (*domain.Result, error) {
	return e.runtime.SelectChoice(choiceID)
}

// Context returns a deep copy of the dialogue context.
func (e *Engine) Context() *domain.Context { return e.runtime.Context() }

// Snapshot captures the context for a later Resume.
func (e *Engine) Snapshot() *domain.Context { return e.runtime.Snapshot() }

func (e *Engine) Tree() *domain.Tree { return e.runtime.Tree() }
func (e *Engine) CurrentNode() string { return e.runtime.CurrentNode() }
func (e *Engine) History() []string { return e.runtime.History() }
func (e *Engine) SetVariable(name string, value any) { e.runtime.SetVariable(name, value) }
func (e *Engine) Variable(name string) (any, bool) { return e.runtime.Variable(name) }
func (e *Engine) SetFlag(name string, value bool) { e.runtime.SetFlag(name, value) }
func (e *Engine) HasFlag(name string) bool { return e.runtime.HasFlag(name) }
func (e *Engine) AddToInventory(item string) { e.runtime.AddToInventory(item) }
func (e *Engine) RemoveFromInventory(item string) { e.runtime.RemoveFromInventory(item) }
func (e *Engine) HasItem(item string) bool { return e.runtime.HasItem(item) }

// Serialize encodes the tree (not the context) as indented JSON.
func (e *Engine) Serialize() ([]byte, error) { return e.runtime.Serialize() }
