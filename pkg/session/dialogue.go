package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
)

// Turn is the outcome of one dialogue step on a persisted session.
type Turn struct {
	Session *domain.Session
	Result  *domain.Result
	// Diff is what the step changed in the context.
	Diff *domain.ContextDiff
}

// Step drives an engine positioned at the session's context.
type Step func(eng *parley.Engine) (*domain.Result, error)

// Continue is the Step form of Engine.Continue.
func Continue(eng *parley.Engine) (*domain.Result, error) { return eng.Continue() }

// Select returns a Step that picks choiceID.
func Select(choiceID string) Step {
	return func(eng *parley.Engine) (*domain.Result, error) { return eng.SelectChoice(choiceID) }
}

// Start creates a session on treeID and processes its start node.
// The session is only persisted when the start node exists.
func (m *Manager) Start(ctx context.Context, treeID, sessionID, startNodeID string) (*Turn, error) {
	tree, err := m.tree(ctx, treeID)
	if err != nil {
		return nil, err
	}

	var turn *Turn
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if _, err := m.store.Load(ctx, sessionID); err == nil {
			return fmt.Errorf("%w: %s", ErrSessionExists, sessionID)
		} else if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		eng := parley.New(tree, m.engineOpts...)
		before := eng.Snapshot()
		res, err := eng.Start(startNodeID)
		if err != nil {
			return err
		}

		turn, err = m.commit(ctx, sessionID, treeID, before, eng, res)
		return err
	})
	if err == nil {
		m.logger.Info("Session Created", "session_id", sessionID, "tree", treeID, "node", turn.Session.Context.CurrentNode)
	}
	return turn, err
}

// Advance loads the session, applies step and persists the new context.
// Nothing is persisted when step fails.
func (m *Manager) Advance(ctx context.Context, sessionID string, step Step) (*Turn, error) {
	var turn *Turn
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		tree, err := m.tree(ctx, s.TreeID)
		if err != nil {
			return err
		}

		eng := parley.Resume(tree, s.Context, m.engineOpts...)
		res, err := step(eng)
		if err != nil {
			return err
		}

		turn, err = m.commit(ctx, sessionID, s.TreeID, s.Context, eng, res)
		return err
	})
	return turn, err
}

func (m *Manager) commit(ctx context.Context, sessionID, treeID string, before *domain.Context, eng *parley.Engine, res *domain.Result) (*Turn, error) {
	after := eng.Snapshot()
	s := &domain.Session{
		ID:        sessionID,
		TreeID:    treeID,
		Context:   after,
		UpdatedAt: m.now().UTC(),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return &Turn{
		Session: s,
		Result:  res,
		Diff:    domain.Diff(before, after),
	}, nil
}

func (m *Manager) tree(ctx context.Context, treeID string) (*domain.Tree, error) {
	if m.trees == nil {
		return nil, ErrNoTrees
	}
	return m.trees.GetTree(ctx, treeID)
}
