package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter       EventType = "node_enter"
	EventChoiceSelected  EventType = "choice_selected"
	EventActionExecuted  EventType = "action_executed"
	EventConditionFailed EventType = "condition_failed"
	EventDialogueEnd     EventType = "dialogue_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	TreeID    string    `json:"tree_id"`
}

// NodeEvent represents entry into a node, a condition failure on it, or the end of the dialogue.
type NodeEvent struct {
	EventBase
	NodeID   string `json:"node_id"`
	NodeType string `json:"node_type"`
}

// ChoiceEvent represents a choice selected by the host.
type ChoiceEvent struct {
	EventBase
	NodeID   string `json:"node_id"`
	ChoiceID string `json:"choice_id"`
	Next     string `json:"next"`
}

// ActionEvent represents an action applied to the context.
type ActionEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Action Action `json:"action"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the engine's goroutine.
type LifecycleHooks struct {
	OnNodeEnter       func(*NodeEvent)
	OnChoiceSelected  func(*ChoiceEvent)
	OnActionExecuted  func(*ActionEvent)
	OnConditionFailed func(*NodeEvent)
	OnDialogueEnd     func(*NodeEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeEnter:       chain(h.OnNodeEnter, other.OnNodeEnter),
		OnChoiceSelected:  chain(h.OnChoiceSelected, other.OnChoiceSelected),
		OnActionExecuted:  chain(h.OnActionExecuted, other.OnActionExecuted),
		OnConditionFailed: chain(h.OnConditionFailed, other.OnConditionFailed),
		OnDialogueEnd:     chain(h.OnDialogueEnd, other.OnDialogueEnd),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
