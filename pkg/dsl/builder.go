package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/parley/pkg/domain"
)

// Builder manages the tree construction.
type Builder struct {
	tree  domain.Tree
	order []string
	nodes map[string]*NodeBuilder
}

// New creates a new tree builder.
func New(treeID string) *Builder {
	return &Builder{
		tree: domain.Tree{
			ID:        treeID,
			Variables: make(map[string]any),
			Flags:     make(domain.StringSet),
		},
		nodes: make(map[string]*NodeBuilder),
	}
}

// Name sets the human readable tree name.
func (b *Builder) Name(name string) *Builder {
	b.tree.Name = name
	return b
}

// Version sets the tree version.
func (b *Builder) Version(version string) *Builder {
	b.tree.Version = version
	return b
}

// Var declares an initial variable.
func (b *Builder) Var(name string, value any) *Builder {
	b.tree.Variables[name] = value
	return b
}

// Flag declares an initially set flag.
func (b *Builder) Flag(names ...string) *Builder {
	for _, name := range names {
		b.tree.Flags.Add(name)
	}
	return b
}

// Add creates a new node in the tree.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.Node{ID: id},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build compiles the tree. Nodes without a type and duplicate choice ids are rejected.
func (b *Builder) Build() (*domain.Tree, error) {
	var errs []error
	tree := b.tree
	tree.Nodes = make(map[string]*domain.Node, len(b.nodes))

	for _, id := range b.order {
		node := b.nodes[id].node
		if node.Type == "" {
			errs = append(errs, fmt.Errorf("node '%s' has no type", id))
		}
		seen := make(map[string]bool, len(node.Choices))
		for _, c := range node.Choices {
			if seen[c.ID] {
				errs = append(errs, fmt.Errorf("node '%s' has duplicate choice '%s'", id, c.ID))
			}
			seen[c.ID] = true
		}
		tree.Nodes[id] = &node
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to build tree '%s': %w", b.tree.ID, err)
	}
	return &tree, nil
}

// MustBuild is like Build but panics on error. Intended for fixtures.
func (b *Builder) MustBuild() *domain.Tree {
	tree, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tree
}
