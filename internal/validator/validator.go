package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// Connection is one edge of a tree: a node's next target or a choice target.
type Connection struct {
	From string
	// Choice is empty for next edges.
	Choice string
	To     string
}

func (c Connection) String() string {
	if c.Choice != "" {
		return fmt.Sprintf("%s[%s] -> %s", c.From, c.Choice, c.To)
	}
	return fmt.Sprintf("%s -> %s", c.From, c.To)
}

// Report summarizes the structure of a tree.
type Report struct {
	TreeID  string
	Name    string
	Version string

	Nodes   int
	Choices int

	// MissingRequired lists reserved nodes the tree lacks ("start", "end").
	MissingRequired []string

	ValidConnections   int
	InvalidConnections []Connection

	// Unreachable lists nodes no walk from "start" can visit.
	Unreachable []string
}

// Valid reports whether the tree can be run: it has a start node and every edge resolves.
// A missing "end" node or unreachable nodes are warnings only.
func (r *Report) Valid() bool {
	if len(r.InvalidConnections) > 0 {
		return false
	}
	for _, id := range r.MissingRequired {
		if id == domain.DefaultStartNodeID {
			return false
		}
	}
	return true
}

// Err returns the blocking problems as a single error, or nil.
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	var problems []string
	for _, id := range r.MissingRequired {
		if id == domain.DefaultStartNodeID {
			problems = append(problems, fmt.Sprintf("Missing required node: '%s'", id))
		}
	}
	for _, c := range r.InvalidConnections {
		problems = append(problems, fmt.Sprintf("Missing node: '%s' (%s)", c.To, c))
	}
	return fmt.Errorf("found %d errors:\n- %s", len(problems), strings.Join(problems, "\n- "))
}

// ValidateTree checks required nodes, referential integrity and reachability.
func ValidateTree(tree *domain.Tree) *Report {
	r := &Report{
		TreeID:  tree.ID,
		Name:    tree.Name,
		Version: tree.Version,
		Nodes:   len(tree.Nodes),
	}

	for _, id := range []string{domain.DefaultStartNodeID, domain.EndNodeID} {
		if _, ok := tree.Node(id); !ok {
			r.MissingRequired = append(r.MissingRequired, id)
		}
	}

	for _, id := range tree.NodeIDs() {
		node, _ := tree.Node(id)
		r.Choices += len(node.Choices)
		for _, c := range connections(node) {
			if _, ok := tree.Node(c.To); ok {
				r.ValidConnections++
			} else {
				r.InvalidConnections = append(r.InvalidConnections, c)
			}
		}
	}

	r.Unreachable = unreachable(tree)
	return r
}

func connections(node *domain.Node) []Connection {
	out := make([]Connection, 0, len(node.Next)+len(node.Choices))
	for _, to := range node.Next {
		if to != "" {
			out = append(out, Connection{From: node.ID, To: to})
		}
	}
	for _, c := range node.Choices {
		if c.Next != "" {
			out = append(out, Connection{From: node.ID, Choice: c.ID, To: c.Next})
		}
	}
	return out
}

// unreachable walks breadth-first from "start". The reserved fallback and end
// nodes are roots too, since the engine shows them when conditions fail.
func unreachable(tree *domain.Tree) []string {
	visited := make(map[string]bool)
	var queue []string
	for _, root := range []string{domain.DefaultStartNodeID, domain.FallbackNodeID, domain.EndNodeID} {
		if _, ok := tree.Node(root); ok {
			queue = append(queue, root)
		}
	}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		node, ok := tree.Node(currentID)
		if !ok {
			continue
		}
		for _, target := range node.Targets() {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	var out []string
	for id := range tree.Nodes {
		if !visited[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
