package script

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// Evaluator decides whether a condition holds for a context.
type Evaluator interface {
	Evaluate(cond domain.Condition, c *domain.Context) bool
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(cond domain.Condition, c *domain.Context) bool

func (f EvaluatorFunc) Evaluate(cond domain.Condition, c *domain.Context) bool { return f(cond, c) }

// ShallowEvaluator reproduces the legacy operator-shape checks. It ignores the
// condition's target and value and never reads the context:
//
//   - script: true iff Parse classifies the script as KindConditional
//   - variable: exists or equals
//   - flag: exists
//   - inventory: contains
//   - quest: equals
type ShallowEvaluator struct{}

func (ShallowEvaluator) Evaluate(cond domain.Condition, _ *domain.Context) bool {
	if cond.Script != "" {
		return Parse(cond.Script).Kind == KindConditional
	}
	switch cond.Type {
	case domain.ConditionVariable:
		return cond.Operator == domain.OpExists || cond.Operator == domain.OpEquals
	case domain.ConditionFlag:
		return cond.Operator == domain.OpExists
	case domain.ConditionInventory:
		return cond.Operator == domain.OpContains
	case domain.ConditionQuest:
		return cond.Operator == domain.OpEquals
	default:
		return false
	}
}

// ContextEvaluator compares conditions against the live context.
type ContextEvaluator struct{}

func (ContextEvaluator) Evaluate(cond domain.Condition, c *domain.Context) bool {
	if c == nil {
		return false
	}
	if cond.Script != "" {
		parsed, ok := ParseConditional(cond.Script)
		if !ok {
			return false
		}
		return evalExpression(parsed.Condition, c)
	}
	switch cond.Type {
	case domain.ConditionVariable:
		return evalVariable(cond, c)
	case domain.ConditionFlag:
		return evalMembership(cond, c.Flags.Has(cond.Target), domain.OpExists)
	case domain.ConditionInventory:
		return evalMembership(cond, c.Inventory.Has(cond.Target), domain.OpContains, domain.OpExists)
	case domain.ConditionQuest:
		return evalQuest(cond, c)
	default:
		return false
	}
}

func evalVariable(cond domain.Condition, c *domain.Context) bool {
	actual, ok := c.Variables[cond.Target]
	switch cond.Operator {
	case domain.OpExists:
		return ok
	case domain.OpEquals:
		return ok && looseEqual(actual, cond.Value)
	case domain.OpNotEquals:
		return !ok || !looseEqual(actual, cond.Value)
	case domain.OpGreater, domain.OpLess:
		if !ok {
			return false
		}
		return compareNumbers(actual, cond.Value, cond.Operator)
	case domain.OpContains:
		return ok && contains(actual, cond.Value)
	default:
		return false
	}
}

// evalMembership handles flags and inventory: presence checked against an
// expected boolean (the condition value, true when absent).
func evalMembership(cond domain.Condition, present bool, presenceOps ...domain.Operator) bool {
	for _, op := range presenceOps {
		if cond.Operator == op {
			return present
		}
	}
	expected := cond.Value == nil || Truthy(cond.Value)
	switch cond.Operator {
	case domain.OpEquals:
		return present == expected
	case domain.OpNotEquals:
		return present != expected
	default:
		return false
	}
}

func evalQuest(cond domain.Condition, c *domain.Context) bool {
	q, ok := c.Quests[cond.Target]
	want := domain.QuestActive
	if s, isString := cond.Value.(string); isString && s != "" {
		want = domain.QuestStatus(s)
	}
	switch cond.Operator {
	case domain.OpExists:
		return ok
	case domain.OpEquals:
		return ok && q.Status == want
	case domain.OpNotEquals:
		return !ok || q.Status != want
	case domain.OpGreater, domain.OpLess:
		return ok && compareNumbers(q.Progress, cond.Value, cond.Operator)
	default:
		return false
	}
}

// evalExpression evaluates "lhs [op rhs]" from a conditional script.
func evalExpression(expr string, c *domain.Context) bool {
	tokens := strings.Fields(expr)
	switch len(tokens) {
	case 1:
		name := tokens[0]
		negate := strings.HasPrefix(name, "!")
		name = strings.TrimPrefix(name, "!")
		v, ok := c.Variables[name]
		result := c.Flags.Has(name) || (ok && Truthy(v))
		return result != negate
	case 3:
		lhs, ok := c.Variables[tokens[0]]
		if !ok {
			return tokens[1] == "!="
		}
		rhs := literal(tokens[2], c)
		switch tokens[1] {
		case "==":
			return looseEqual(lhs, rhs)
		case "!=":
			return !looseEqual(lhs, rhs)
		case ">":
			return compareNumbers(lhs, rhs, domain.OpGreater)
		case "<":
			return compareNumbers(lhs, rhs, domain.OpLess)
		case ">=":
			return looseEqual(lhs, rhs) || compareNumbers(lhs, rhs, domain.OpGreater)
		case "<=":
			return looseEqual(lhs, rhs) || compareNumbers(lhs, rhs, domain.OpLess)
		}
	}
	return false
}

// literal resolves the right-hand side of an expression.
func literal(tok string, c *domain.Context) any {
	if unquoted, err := strconv.Unquote(tok); err == nil {
		return unquoted
	}
	if strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'") && len(tok) >= 2 {
		return tok[1 : len(tok)-1]
	}
	switch tok {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f
	}
	if v, ok := c.Variables[tok]; ok {
		return v
	}
	return tok
}

// Truthy mirrors loose scripting truthiness: nil, false, zero, NaN and "" are false.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	}
	if f, ok := toFloat(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

func looseEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			return ba == bb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func compareNumbers(a, b any, op domain.Operator) bool {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if !okA || !okB {
		return false
	}
	if op == domain.OpGreater {
		return fa > fb
	}
	return fa < fb
}

func contains(haystack, needle any) bool {
	switch h := haystack.(type) {
	case string:
		return strings.Contains(h, fmt.Sprint(needle))
	case []any:
		for _, item := range h {
			if looseEqual(item, needle) {
				return true
			}
		}
	case []string:
		for _, item := range h {
			if item == fmt.Sprint(needle) {
				return true
			}
		}
	case map[string]any:
		_, ok := h[fmt.Sprint(needle)]
		return ok
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
