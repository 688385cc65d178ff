package http

import (
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/session"
)

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	TreeID    string `json:"tree_id"`
	SessionID string `json:"session_id,omitempty"`
	StartNode string `json:"start_node,omitempty"`
}

// NodeView is the public part of a node.
type NodeView struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ChoiceView is a visible choice.
type ChoiceView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ResultView is returned by every dialogue step.
type ResultView struct {
	SessionID   string              `json:"session_id"`
	Node        NodeView            `json:"node"`
	Choices     []ChoiceView        `json:"choices"`
	CanContinue bool                `json:"can_continue"`
	IsEnd       bool                `json:"is_end"`
	Diff        *domain.ContextDiff `json:"diff,omitempty"`
}

func viewOf(turn *session.Turn) ResultView {
	res := turn.Result
	v := ResultView{
		SessionID:   turn.Session.ID,
		Node:        NodeView{ID: res.Node.ID, Type: res.Node.Type, Content: res.Node.Content},
		Choices:     make([]ChoiceView, 0, len(res.Choices)),
		CanContinue: res.CanContinue,
		IsEnd:       res.IsEnd,
		Diff:        turn.Diff,
	}
	for _, c := range res.Choices {
		v.Choices = append(v.Choices, ChoiceView{ID: c.ID, Text: c.Text})
	}
	return v
}
