package domain

import "sort"

// Tree is an immutable dialogue template. Engines copy its variables and flags
// into their own context and never mutate the tree.
type Tree struct {
	ID        string           `json:"id" yaml:"id"`
	Name      string           `json:"name" yaml:"name"`
	Version   string           `json:"version" yaml:"version"`
	Nodes     map[string]*Node `json:"nodes" yaml:"nodes"`
	Variables map[string]any   `json:"variables" yaml:"variables"`
	Flags     StringSet        `json:"flags" yaml:"flags"`
	Metadata  map[string]any   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Node looks up a node by id.
func (t *Tree) Node(id string) (*Node, bool) {
	if t == nil || id == "" {
		return nil, false
	}
	n, ok := t.Nodes[id]
	return n, ok && n != nil
}

// NodeIDs returns all node ids in lexical order.
func (t *Tree) NodeIDs() []string {
	ids := make([]string, 0, len(t.Nodes))
	for id := range t.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Normalize fills in missing maps and node ids taken from their keys.
// Decoders call it so that a tree is always safe to walk.
func (t *Tree) Normalize() {
	if t.Nodes == nil {
		t.Nodes = make(map[string]*Node)
	}
	if t.Variables == nil {
		t.Variables = make(map[string]any)
	}
	if t.Flags == nil {
		t.Flags = make(StringSet)
	}
	for id, n := range t.Nodes {
		if n == nil {
			delete(t.Nodes, id)
			continue
		}
		if n.ID == "" {
			n.ID = id
		}
	}
}
