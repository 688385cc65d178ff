package domain

// NodeType constants define the control flow behavior of a node.
const (
	// NodeTypeText displays content and moves on to its next node.
	NodeTypeText = "text"
	// NodeTypeChoice displays a prompt and waits for the host to select one of its choices.
	NodeTypeChoice = "choice"
	// NodeTypeCondition gates progress on its conditions.
	NodeTypeCondition = "condition"
	// NodeTypeAction runs its actions and moves on.
	NodeTypeAction = "action"
	// NodeTypeBranch picks one of several next nodes at random.
	NodeTypeBranch = "branch"
	// NodeTypeEnd marks a sink node.
	NodeTypeEnd = "end"
)

// Reserved node identifiers.
const (
	// DefaultStartNodeID is used when Start is called without an explicit node.
	DefaultStartNodeID = "start"
	// EndNodeID is the conventional terminal node. Moving to it ends the dialogue.
	EndNodeID = "end"
	// FallbackNodeID is shown when a node's conditions fail.
	FallbackNodeID = "fallback"
)

// Node represents a single step of a dialogue tree.
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`

	// Content is the line displayed to the player. For choice nodes it is the prompt.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Choices is only meaningful when Type == "choice".
	Choices []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`

	// Conditions must all hold, otherwise the node is treated as unreachable.
	Conditions []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`

	// Actions run unconditionally, in order, every time the node is processed.
	Actions []Action `json:"actions,omitempty" yaml:"actions,omitempty"`

	// Next is a single node id, several ids (random branch) or empty (terminal).
	Next Next `json:"next,omitempty" yaml:"next,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Choice is one selectable answer of a choice node.
type Choice struct {
	ID        string         `json:"id" yaml:"id"`
	Text      string         `json:"text" yaml:"text"`
	Condition *Condition     `json:"condition,omitempty" yaml:"condition,omitempty"`
	Action    *Action        `json:"action,omitempty" yaml:"action,omitempty"`
	Next      string         `json:"next" yaml:"next"`
	Metadata  map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FindChoice returns the choice with the given id, regardless of its condition.
func (n *Node) FindChoice(id string) (*Choice, bool) {
	for i := range n.Choices {
		if n.Choices[i].ID == id {
			return &n.Choices[i], true
		}
	}
	return nil, false
}

// Targets lists every node id this node can lead to, including choice targets.
func (n *Node) Targets() []string {
	targets := make([]string, 0, len(n.Next)+len(n.Choices))
	targets = append(targets, n.Next...)
	for _, c := range n.Choices {
		if c.Next != "" {
			targets = append(targets, c.Next)
		}
	}
	return targets
}
