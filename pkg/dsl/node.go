package dsl

import "github.com/aretw0/parley/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Text marks the node as a text node with the given line.
func (n *NodeBuilder) Text(content string) *NodeBuilder {
	n.node.Type = domain.NodeTypeText
	n.node.Content = content
	return n
}

// Prompt marks the node as a choice node; content is the question shown.
func (n *NodeBuilder) Prompt(content string) *NodeBuilder {
	n.node.Type = domain.NodeTypeChoice
	n.node.Content = content
	return n
}

// Action marks the node as an action node.
func (n *NodeBuilder) Action() *NodeBuilder {
	n.node.Type = domain.NodeTypeAction
	return n
}

// Gate marks the node as a condition node guarded by conds.
func (n *NodeBuilder) Gate(conds ...domain.Condition) *NodeBuilder {
	n.node.Type = domain.NodeTypeCondition
	return n.When(conds...)
}

// Branch marks the node as a random branch between targets.
func (n *NodeBuilder) Branch(targets ...string) *NodeBuilder {
	n.node.Type = domain.NodeTypeBranch
	n.node.Next = append(domain.Next{}, targets...)
	return n
}

// End marks the node as terminal.
func (n *NodeBuilder) End(content string) *NodeBuilder {
	n.node.Type = domain.NodeTypeEnd
	n.node.Content = content
	n.node.Next = nil
	return n
}

// Say overrides the content without changing the type.
func (n *NodeBuilder) Say(content string) *NodeBuilder {
	n.node.Content = content
	return n
}

// Go sets the single next node.
func (n *NodeBuilder) Go(nodeID string) *NodeBuilder {
	n.node.Next = domain.Next{nodeID}
	return n
}

// Do appends actions run whenever the node is processed.
func (n *NodeBuilder) Do(actions ...domain.Action) *NodeBuilder {
	n.node.Actions = append(n.node.Actions, actions...)
	return n
}

// When appends conditions that must all hold.
func (n *NodeBuilder) When(conds ...domain.Condition) *NodeBuilder {
	n.node.Conditions = append(n.node.Conditions, conds...)
	return n
}

// Choice appends a selectable choice.
func (n *NodeBuilder) Choice(id, text, next string, opts ...ChoiceOption) *NodeBuilder {
	c := domain.Choice{ID: id, Text: text, Next: next}
	for _, opt := range opts {
		opt(&c)
	}
	n.node.Choices = append(n.node.Choices, c)
	return n
}

// Meta attaches free-form metadata.
func (n *NodeBuilder) Meta(key string, value any) *NodeBuilder {
	if n.node.Metadata == nil {
		n.node.Metadata = make(map[string]any)
	}
	n.node.Metadata[key] = value
	return n
}

// Add is a shortcut to start the next node.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

// ChoiceOption configures a choice.
type ChoiceOption func(*domain.Choice)

// If gates the choice's visibility.
func If(cond domain.Condition) ChoiceOption {
	return func(c *domain.Choice) { c.Condition = &cond }
}

// Then runs an action when the choice is selected.
func Then(action domain.Action) ChoiceOption {
	return func(c *domain.Choice) { c.Action = &action }
}
