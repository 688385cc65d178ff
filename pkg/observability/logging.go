package observability

import (
	"log/slog"

	"github.com/aretw0/parley/pkg/domain"
)

// LogHooks returns lifecycle hooks that log every event at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			logger.Debug("node_enter", "tree", e.TreeID, "node_id", e.NodeID, "type", e.NodeType)
		},
		OnChoiceSelected: func(e *domain.ChoiceEvent) {
			logger.Debug("choice_selected", "tree", e.TreeID, "node_id", e.NodeID, "choice_id", e.ChoiceID, "next", e.Next)
		},
		OnActionExecuted: func(e *domain.ActionEvent) {
			logger.Debug("action_executed", "tree", e.TreeID, "node_id", e.NodeID, "type", actionLabel(e.Action), "target", e.Action.Target)
		},
		OnConditionFailed: func(e *domain.NodeEvent) {
			logger.Debug("condition_failed", "tree", e.TreeID, "node_id", e.NodeID)
		},
		OnDialogueEnd: func(e *domain.NodeEvent) {
			logger.Debug("dialogue_end", "tree", e.TreeID, "node_id", e.NodeID)
		},
	}
}
