package domain

// ConditionType selects which part of the context a condition inspects.
type ConditionType string

const (
	ConditionVariable  ConditionType = "variable"
	ConditionFlag      ConditionType = "flag"
	ConditionInventory ConditionType = "inventory"
	ConditionQuest     ConditionType = "quest"
	ConditionScript    ConditionType = "script"
)

// Operator is the comparison applied by a condition.
type Operator string

const (
	OpEquals    Operator = "equals"
	OpNotEquals Operator = "not_equals"
	OpGreater   Operator = "greater"
	OpLess      Operator = "less"
	OpContains  Operator = "contains"
	OpExists    Operator = "exists"
)

// Condition gates a node or a choice.
type Condition struct {
	Type     ConditionType `json:"type" yaml:"type"`
	Operator Operator      `json:"operator" yaml:"operator"`
	Target   string        `json:"target" yaml:"target"`
	Value    any           `json:"value,omitempty" yaml:"value,omitempty"`

	// Script holds a CEL-like expression. When set it takes precedence over Type.
	Script string `json:"script,omitempty" yaml:"script,omitempty"`
}

// ActionType identifies the context mutation performed by an action.
type ActionType string

const (
	ActionSetVariable   ActionType = "set_variable"
	ActionSetFlag       ActionType = "set_flag"
	ActionAddItem       ActionType = "add_item"
	ActionRemoveItem    ActionType = "remove_item"
	ActionStartQuest    ActionType = "start_quest"
	ActionCompleteQuest ActionType = "complete_quest"
	ActionPlaySound     ActionType = "play_sound"
	ActionScript        ActionType = "script"
)

// Action mutates the dialogue context when a node is visited or a choice is selected.
type Action struct {
	Type   ActionType `json:"type" yaml:"type"`
	Target string     `json:"target" yaml:"target"`
	Value  any        `json:"value,omitempty" yaml:"value,omitempty"`

	// Script holds a CEL-like statement. When set it takes precedence over Type.
	Script string `json:"script,omitempty" yaml:"script,omitempty"`
}
