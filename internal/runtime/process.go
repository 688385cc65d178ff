package runtime

import (
	"github.com/aretw0/parley/pkg/domain"
)

// processNode runs a node: actions, conditions, next resolution, history.
func (e *Engine) processNode(node *domain.Node) *domain.Result {
	e.emitNodeEnter(node)

	for _, action := range node.Actions {
		e.execute(node.ID, action)
	}

	if !e.interp.EvaluateAll(node.Conditions, e.ctx) {
		return e.handleConditionFailure(node)
	}

	next := e.resolveNext(node)

	e.ctx.CurrentNode = next
	if node.Content != "" {
		e.ctx.History = append(e.ctx.History, node.Content)
	}

	result := &domain.Result{
		Node:        node,
		CanContinue: next != "" && next != domain.EndNodeID,
	}
	result.IsEnd = !result.CanContinue

	if node.Type == domain.NodeTypeChoice {
		result.Choices = e.visibleChoices(node)
		if len(result.Choices) > 0 && next == "" {
			// Hold the position so SelectChoice resolves against this node.
			e.ctx.CurrentNode = node.ID
			result.IsEnd = false
		}
	}

	result.Context = e.ctx.Clone()
	if result.IsEnd {
		e.emitDialogueEnd(node)
	}

	e.logger.Debug("node processed",
		"node_id", node.ID,
		"type", node.Type,
		"next", next,
		"can_continue", result.CanContinue,
		"is_end", result.IsEnd,
	)
	return result
}

// handleConditionFailure shows the fallback node (or end, or the failing node)
// and ends the dialogue. The position is left untouched.
func (e *Engine) handleConditionFailure(node *domain.Node) *domain.Result {
	e.emitConditionFailed(node)

	shown := node
	if fallback, ok := e.tree.Node(domain.FallbackNodeID); ok {
		shown = fallback
	} else if end, ok := e.tree.Node(domain.EndNodeID); ok {
		shown = end
	}

	e.logger.Debug("conditions not met", "node_id", node.ID, "shown", shown.ID)
	e.emitDialogueEnd(shown)

	return &domain.Result{
		Node:        shown,
		CanContinue: false,
		IsEnd:       true,
		Context:     e.ctx.Clone(),
	}
}

func (e *Engine) resolveNext(node *domain.Node) string {
	switch len(node.Next) {
	case 0:
		return ""
	case 1:
		return node.Next[0]
	default:
		return e.selectNextBranch(node.Next)
	}
}

// selectNextBranch picks one target uniformly.
func (e *Engine) selectNextBranch(targets []string) string {
	idx := int(e.random.Float64() * float64(len(targets)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(targets) {
		idx = len(targets) - 1
	}
	return targets[idx]
}

func (e *Engine) visibleChoices(node *domain.Node) []domain.Choice {
	visible := make([]domain.Choice, 0, len(node.Choices))
	for _, c := range node.Choices {
		if c.Condition == nil || e.interp.Evaluate(*c.Condition, e.ctx) {
			visible = append(visible, c)
		}
	}
	return visible
}

func (e *Engine) execute(nodeID string, action domain.Action) {
	e.interp.Execute(action, e.ctx)
	e.emitActionExecuted(nodeID, action)
}
