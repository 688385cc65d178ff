package ports

import (
	"context"

	"github.com/aretw0/parley/pkg/domain"
)

// TreeLoader defines how hosts retrieve dialogue trees.
// This allows the storage layer (FS, Memory) to be decoupled.
type TreeLoader interface {
	// GetTree returns the tree with the given id.
	// Returns domain.ErrTreeNotFound if it does not exist.
	GetTree(ctx context.Context, treeID string) (*domain.Tree, error)

	// ListTrees returns the ids of every available tree, sorted.
	ListTrees(ctx context.Context) ([]string, error)
}
