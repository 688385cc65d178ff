package domain

import "time"

// Result is what the engine returns after processing a node.
type Result struct {
	// Node is the processed node (or the fallback node after a condition failure).
	// It points into the tree and must be treated as read-only.
	Node *Node

	// Choices holds the visible choices of a choice node.
	Choices []Choice

	CanContinue bool
	IsEnd       bool

	// Context is a deep copy of the engine context taken after processing.
	Context *Context
}

// ChoiceIDs lists the ids of the visible choices.
func (r *Result) ChoiceIDs() []string {
	ids := make([]string, 0, len(r.Choices))
	for _, c := range r.Choices {
		ids = append(ids, c.ID)
	}
	return ids
}

// Session is a persisted, resumable dialogue: the tree it runs plus its live context.
type Session struct {
	ID        string    `json:"id"`
	TreeID    string    `json:"tree_id"`
	Context   *Context  `json:"context"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession wraps a context snapshot for persistence.
func NewSession(id, treeID string, ctx *Context) *Session {
	return &Session{
		ID:        id,
		TreeID:    treeID,
		Context:   ctx,
		UpdatedAt: time.Now().UTC(),
	}
}
