package dsl

import "github.com/aretw0/parley/pkg/domain"

func SetVar(name string, value any) domain.Action {
	return domain.Action{Type: domain.ActionSetVariable, Target: name, Value: value}
}

func SetFlag(name string) domain.Action {
	return domain.Action{Type: domain.ActionSetFlag, Target: name, Value: true}
}

func ClearFlag(name string) domain.Action {
	return domain.Action{Type: domain.ActionSetFlag, Target: name, Value: false}
}

func AddItem(item string) domain.Action {
	return domain.Action{Type: domain.ActionAddItem, Target: item}
}

func RemoveItem(item string) domain.Action {
	return domain.Action{Type: domain.ActionRemoveItem, Target: item}
}

func StartQuest(id string) domain.Action {
	return domain.Action{Type: domain.ActionStartQuest, Target: id}
}

func CompleteQuest(id string) domain.Action {
	return domain.Action{Type: domain.ActionCompleteQuest, Target: id}
}

func PlaySound(name string) domain.Action {
	return domain.Action{Type: domain.ActionPlaySound, Target: name}
}

// Run builds a script action, e.g. "reputation = 10".
func Run(script string) domain.Action {
	return domain.Action{Type: domain.ActionScript, Script: script}
}

func HasFlag(name string) domain.Condition {
	return domain.Condition{Type: domain.ConditionFlag, Operator: domain.OpExists, Target: name}
}

func HasItem(item string) domain.Condition {
	return domain.Condition{Type: domain.ConditionInventory, Operator: domain.OpContains, Target: item}
}

func VarEquals(name string, value any) domain.Condition {
	return domain.Condition{Type: domain.ConditionVariable, Operator: domain.OpEquals, Target: name, Value: value}
}

func VarGreater(name string, value any) domain.Condition {
	return domain.Condition{Type: domain.ConditionVariable, Operator: domain.OpGreater, Target: name, Value: value}
}

func VarLess(name string, value any) domain.Condition {
	return domain.Condition{Type: domain.ConditionVariable, Operator: domain.OpLess, Target: name, Value: value}
}

func QuestActive(id string) domain.Condition {
	return domain.Condition{Type: domain.ConditionQuest, Operator: domain.OpEquals, Target: id}
}

// Expr builds a script condition, e.g. "if (level > 5) reward".
func Expr(script string) domain.Condition {
	return domain.Condition{Type: domain.ConditionScript, Script: script}
}
