package domain

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is returned when a node id cannot be resolved in the tree.
var ErrNodeNotFound = errors.New("node not found")

// ErrNoCurrentNode is returned by Continue and SelectChoice before Start or after the dialogue ended.
var ErrNoCurrentNode = errors.New("no current node")

// ErrChoiceNotFound is returned when the current node has no choice with the requested id.
var ErrChoiceNotFound = errors.New("choice not found")

// ErrTreeNotFound is returned when a loader has no tree with the requested id.
var ErrTreeNotFound = errors.New("tree not found")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSessionID is returned by stores that cannot address a session id.
var ErrInvalidSessionID = errors.New("invalid session id")

// NodeNotFoundError reports a dangling node reference.
type NodeNotFoundError struct {
	NodeID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node '%s' not found", e.NodeID)
}

func (e *NodeNotFoundError) Unwrap() error { return ErrNodeNotFound }

// ChoiceNotFoundError reports a choice id that the current node does not offer.
type ChoiceNotFoundError struct {
	NodeID   string
	ChoiceID string
}

func (e *ChoiceNotFoundError) Error() string {
	return fmt.Sprintf("node '%s' has no choice '%s'", e.NodeID, e.ChoiceID)
}

func (e *ChoiceNotFoundError) Unwrap() error { return ErrChoiceNotFound }
