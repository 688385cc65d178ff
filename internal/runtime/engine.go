package runtime

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/script"
)

// Engine walks a dialogue tree. It owns exactly one context and is not safe
// for concurrent use; hosts serialize access (see pkg/session).
type Engine struct {
	tree   *domain.Tree
	ctx    *domain.Context
	interp *script.Interpreter
	random RandomSource
	hooks  domain.LifecycleHooks
	logger *slog.Logger

	evaluator script.Evaluator
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRandom replaces the source used to pick between branch targets.
func WithRandom(r RandomSource) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.random = r
		}
	}
}

// WithEvaluator sets the condition evaluator. Defaults to script.ContextEvaluator.
func WithEvaluator(eval script.Evaluator) EngineOption {
	return func(e *Engine) {
		e.evaluator = eval
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// NewEngine creates an engine with a fresh context seeded from the tree.
func NewEngine(tree *domain.Tree, opts ...EngineOption) *Engine {
	return newEngine(tree, domain.NewContext(tree), opts...)
}

// Resume creates an engine positioned at a previously captured context.
// The context is copied; later changes to snapshot do not leak in.
func Resume(tree *domain.Tree, snapshot *domain.Context, opts ...EngineOption) *Engine {
	ctx := snapshot.Clone()
	if ctx == nil {
		ctx = domain.NewContext(tree)
	}
	ctx.Normalize()
	return newEngine(tree, ctx, opts...)
}

func newEngine(tree *domain.Tree, ctx *domain.Context, opts ...EngineOption) *Engine {
	if tree == nil {
		tree = &domain.Tree{}
	}
	tree.Normalize()

	e := &Engine{
		tree:   tree,
		ctx:    ctx,
		random: DefaultRandom(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tree.ID != "" {
		e.logger = e.logger.With("tree", e.tree.ID)
	}
	e.interp = script.NewInterpreter(
		script.WithEvaluator(e.evaluator),
		script.WithLogger(e.logger),
	)
	return e
}

// Start positions the dialogue at startNodeID ("" means "start") and processes it.
func (e *Engine) Start(startNodeID string) (*domain.Result, error) {
	if startNodeID == "" {
		startNodeID = domain.DefaultStartNodeID
	}
	node, err := e.lookup(startNodeID)
	if err != nil {
		return nil, err
	}
	e.ctx.CurrentNode = node.ID
	return e.processNode(node), nil
}

// Continue processes the node at the current position.
// Calling it twice without advancing re-applies that node's actions.
func (e *Engine) Continue() (*domain.Result, error) {
	if e.ctx.CurrentNode == "" {
		return nil, domain.ErrNoCurrentNode
	}
	node, err := e.lookup(e.ctx.CurrentNode)
	if err != nil {
		return nil, err
	}
	return e.processNode(node), nil
}

// SelectChoice applies a choice of the current node and processes its target.
// The choice's own condition is not re-checked.
func (e *Engine) SelectChoice(choiceID string) (*domain.Result, error) {
	if e.ctx.CurrentNode == "" {
		return nil, domain.ErrNoCurrentNode
	}
	node, err := e.lookup(e.ctx.CurrentNode)
	if err != nil {
		return nil, err
	}
	choice, ok := node.FindChoice(choiceID)
	if !ok {
		return nil, &domain.ChoiceNotFoundError{NodeID: node.ID, ChoiceID: choiceID}
	}

	if choice.Action != nil {
		e.execute(node.ID, *choice.Action)
	}
	e.ctx.CurrentNode = choice.Next
	e.ctx.History = append(e.ctx.History, choice.ID)
	e.emitChoiceSelected(node.ID, choice)

	next, err := e.lookup(choice.Next)
	if err != nil {
		return nil, err
	}
	return e.processNode(next), nil
}

func (e *Engine) lookup(id string) (*domain.Node, error) {
	node, ok := e.tree.Node(id)
	if !ok {
		e.logger.Error("node not found", "node_id", id)
		return nil, &domain.NodeNotFoundError{NodeID: id}
	}
	return node, nil
}

// Context returns a deep copy of the live context.
func (e *Engine) Context() *domain.Context {
	return e.ctx.Clone()
}

// Snapshot captures the live context for persistence. See Resume.
func (e *Engine) Snapshot() *domain.Context {
	return e.ctx.Clone()
}

// Tree returns the tree this engine walks.
func (e *Engine) Tree() *domain.Tree {
	return e.tree
}

// CurrentNode returns the id of the node Continue would process, or "".
func (e *Engine) CurrentNode() string {
	return e.ctx.CurrentNode
}

// History returns a copy of the visited content and selected choice ids.
func (e *Engine) History() []string {
	return append([]string{}, e.ctx.History...)
}

func (e *Engine) SetVariable(name string, value any) {
	e.ctx.Variables[name] = value
}

func (e *Engine) Variable(name string) (any, bool) {
	v, ok := e.ctx.Variables[name]
	return v, ok
}

func (e *Engine) SetFlag(name string, value bool) {
	if value {
		e.ctx.Flags.Add(name)
	} else {
		e.ctx.Flags.Remove(name)
	}
}

func (e *Engine) HasFlag(name string) bool {
	return e.ctx.Flags.Has(name)
}

func (e *Engine) AddToInventory(item string) {
	e.ctx.Inventory.Add(item)
}

func (e *Engine) RemoveFromInventory(item string) {
	e.ctx.Inventory.Remove(item)
}

func (e *Engine) HasItem(item string) bool {
	return e.ctx.Inventory.Has(item)
}

// Serialize encodes the tree (not the context) as indented JSON.
func (e *Engine) Serialize() ([]byte, error) {
	data, err := json.MarshalIndent(e.tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tree: %w", err)
	}
	return data, nil
}
