package domain

// QuestStatus is the lifecycle of a quest tracked by the dialogue context.
type QuestStatus string

const (
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
)

// Quest is the per-quest entry of a context. Progress ranges from 0 to 100.
type Quest struct {
	Status   QuestStatus `json:"status" yaml:"status"`
	Progress int         `json:"progress" yaml:"progress"`
}

// Context is the mutable state owned by one engine instance.
type Context struct {
	Variables map[string]any   `json:"variables"`
	Flags     StringSet        `json:"flags"`
	Inventory StringSet        `json:"inventory"`
	Quests    map[string]Quest `json:"quests"`

	// History interleaves visited node content and selected choice ids.
	History []string `json:"history"`

	// CurrentNode is empty before Start and after a terminal node.
	CurrentNode string `json:"current_node,omitempty"`
}

// NewContext seeds a fresh context from the tree's initial variables and flags.
func NewContext(tree *Tree) *Context {
	c := &Context{
		Variables: make(map[string]any),
		Flags:     make(StringSet),
		Inventory: make(StringSet),
		Quests:    make(map[string]Quest),
		History:   []string{},
	}
	if tree == nil {
		return c
	}
	for k, v := range tree.Variables {
		c.Variables[k] = cloneValue(v)
	}
	for f := range tree.Flags {
		c.Flags.Add(f)
	}
	return c
}

// Clone returns a deep copy. Mutating the copy never affects the original.
func (c *Context) Clone() *Context {
	if c == nil {
		return nil
	}
	next := &Context{
		Variables:   make(map[string]any, len(c.Variables)),
		Flags:       c.Flags.Clone(),
		Inventory:   c.Inventory.Clone(),
		Quests:      make(map[string]Quest, len(c.Quests)),
		History:     make([]string, len(c.History)),
		CurrentNode: c.CurrentNode,
	}
	for k, v := range c.Variables {
		next.Variables[k] = cloneValue(v)
	}
	for k, q := range c.Quests {
		next.Quests[k] = q
	}
	copy(next.History, c.History)
	return next
}

// Normalize fills in nil collections, e.g. after decoding a partial snapshot.
func (c *Context) Normalize() {
	if c.Variables == nil {
		c.Variables = make(map[string]any)
	}
	if c.Flags == nil {
		c.Flags = make(StringSet)
	}
	if c.Inventory == nil {
		c.Inventory = make(StringSet)
	}
	if c.Quests == nil {
		c.Quests = make(map[string]Quest)
	}
	if c.History == nil {
		c.History = []string{}
	}
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = cloneValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = cloneValue(inner)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
