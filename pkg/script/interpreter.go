package script

import (
	"io"
	"log/slog"

	"github.com/aretw0/parley/pkg/domain"
)

// Interpreter evaluates conditions and applies actions to a context.
// It holds no dialogue state and can be shared between engines.
type Interpreter struct {
	evaluator Evaluator
	logger    *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithEvaluator replaces the default ContextEvaluator.
func WithEvaluator(e Evaluator) Option {
	return func(i *Interpreter) {
		if e != nil {
			i.evaluator = e
		}
	}
}

// WithLogger sets the logger used for sound cues and ignored scripts.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewInterpreter creates an interpreter. By default conditions are evaluated
// against the context and nothing is logged.
func NewInterpreter(opts ...Option) *Interpreter {
	i := &Interpreter{
		evaluator: ContextEvaluator{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Evaluate reports whether the condition holds.
func (i *Interpreter) Evaluate(cond domain.Condition, c *domain.Context) bool {
	return i.evaluator.Evaluate(cond, c)
}

// EvaluateAll reports whether every condition holds. An empty list holds.
func (i *Interpreter) EvaluateAll(conds []domain.Condition, c *domain.Context) bool {
	for _, cond := range conds {
		if !i.Evaluate(cond, c) {
			return false
		}
	}
	return true
}

// Execute applies the action to the context. Every branch is total; unknown
// action types and non-assignment scripts are logged and ignored.
func (i *Interpreter) Execute(action domain.Action, c *domain.Context) {
	if action.Script != "" {
		i.executeScript(Parse(action.Script), c)
		return
	}

	switch action.Type {
	case domain.ActionSetVariable:
		c.Variables[action.Target] = action.Value
	case domain.ActionSetFlag:
		if Truthy(action.Value) {
			c.Flags.Add(action.Target)
		} else {
			c.Flags.Remove(action.Target)
		}
	case domain.ActionAddItem:
		c.Inventory.Add(action.Target)
	case domain.ActionRemoveItem:
		c.Inventory.Remove(action.Target)
	case domain.ActionStartQuest:
		c.Quests[action.Target] = domain.Quest{Status: domain.QuestActive, Progress: 0}
	case domain.ActionCompleteQuest:
		if q, ok := c.Quests[action.Target]; ok {
			q.Status = domain.QuestCompleted
			q.Progress = 100
			c.Quests[action.Target] = q
		}
	case domain.ActionPlaySound:
		i.logger.Info("playing sound", "sound", action.Target)
	default:
		i.logger.Warn("ignoring unknown action", "type", action.Type, "target", action.Target)
	}
}

func (i *Interpreter) executeScript(parsed Parsed, c *domain.Context) {
	switch parsed.Kind {
	case KindAssignment:
		c.Variables[parsed.Variable] = parsed.Value
	case KindConditional:
		i.logger.Info("conditional script not executed", "condition", parsed.Condition, "action", parsed.Action)
	default:
		i.logger.Info("script not executed", "tokens", parsed.Tokens)
	}
}

var defaultInterpreter = NewInterpreter()

// ExecuteAction applies an action with the default interpreter.
func ExecuteAction(action domain.Action, c *domain.Context) {
	defaultInterpreter.Execute(action, c)
}

// EvaluateCondition evaluates a condition with the default interpreter.
func EvaluateCondition(cond domain.Condition, c *domain.Context) bool {
	return defaultInterpreter.Evaluate(cond, c)
}
