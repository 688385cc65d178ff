package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/parley/pkg/domain"
)

// Loader implements ports.TreeLoader over trees held in memory.
type Loader struct {
	mu    sync.RWMutex
	trees map[string]*domain.Tree
}

// NewLoader creates a loader seeded with trees. Every tree needs an id.
func NewLoader(trees ...*domain.Tree) (*Loader, error) {
	l := &Loader{trees: make(map[string]*domain.Tree)}
	for _, t := range trees {
		if err := l.Add(t); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add registers or replaces a tree.
func (l *Loader) Add(tree *domain.Tree) error {
	if tree == nil || tree.ID == "" {
		return fmt.Errorf("tree missing ID")
	}
	tree.Normalize()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.trees[tree.ID] = tree
	return nil
}

// GetTree returns the tree registered under treeID.
func (l *Loader) GetTree(ctx context.Context, treeID string) (*domain.Tree, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tree, ok := l.trees[treeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTreeNotFound, treeID)
	}
	return tree, nil
}

// ListTrees returns all registered tree ids, sorted.
func (l *Loader) ListTrees(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.trees))
	for id := range l.trees {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}
