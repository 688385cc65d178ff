package runtime

import (
	"time"

	"github.com/aretw0/parley/pkg/domain"
)

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		TreeID:    e.tree.ID,
	}
}

func (e *Engine) emitNodeEnter(node *domain.Node) {
	if e.hooks.OnNodeEnter != nil {
		e.hooks.OnNodeEnter(&domain.NodeEvent{
			EventBase: e.base(domain.EventNodeEnter),
			NodeID:    node.ID,
			NodeType:  node.Type,
		})
	}
}

func (e *Engine) emitChoiceSelected(nodeID string, choice *domain.Choice) {
	if e.hooks.OnChoiceSelected != nil {
		e.hooks.OnChoiceSelected(&domain.ChoiceEvent{
			EventBase: e.base(domain.EventChoiceSelected),
			NodeID:    nodeID,
			ChoiceID:  choice.ID,
			Next:      choice.Next,
		})
	}
}

func (e *Engine) emitActionExecuted(nodeID string, action domain.Action) {
	if e.hooks.OnActionExecuted != nil {
		e.hooks.OnActionExecuted(&domain.ActionEvent{
			EventBase: e.base(domain.EventActionExecuted),
			NodeID:    nodeID,
			Action:    action,
		})
	}
}

func (e *Engine) emitConditionFailed(node *domain.Node) {
	if e.hooks.OnConditionFailed != nil {
		e.hooks.OnConditionFailed(&domain.NodeEvent{
			EventBase: e.base(domain.EventConditionFailed),
			NodeID:    node.ID,
			NodeType:  node.Type,
		})
	}
}

func (e *Engine) emitDialogueEnd(node *domain.Node) {
	if e.hooks.OnDialogueEnd != nil {
		e.hooks.OnDialogueEnd(&domain.NodeEvent{
			EventBase: e.base(domain.EventDialogueEnd),
			NodeID:    node.ID,
			NodeType:  node.Type,
		})
	}
}
