package script_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteAction(t *testing.T) {
	c := domain.NewContext(nil)

	script.ExecuteAction(domain.Action{Type: domain.ActionSetVariable, Target: "gold", Value: 12}, c)
	assert.Equal(t, 12, c.Variables["gold"])

	script.ExecuteAction(domain.Action{Type: domain.ActionSetFlag, Target: "met", Value: true}, c)
	assert.True(t, c.Flags.Has("met"))
	script.ExecuteAction(domain.Action{Type: domain.ActionSetFlag, Target: "met", Value: false}, c)
	assert.False(t, c.Flags.Has("met"))

	// Only empty strings are falsy.
	script.ExecuteAction(domain.Action{Type: domain.ActionSetFlag, Target: "met", Value: "false"}, c)
	assert.True(t, c.Flags.Has("met"))
	script.ExecuteAction(domain.Action{Type: domain.ActionSetFlag, Target: "met", Value: ""}, c)
	assert.False(t, c.Flags.Has("met"))

	script.ExecuteAction(domain.Action{Type: domain.ActionAddItem, Target: "potion"}, c)
	assert.True(t, c.Inventory.Has("potion"))
	script.ExecuteAction(domain.Action{Type: domain.ActionRemoveItem, Target: "potion"}, c)
	assert.False(t, c.Inventory.Has("potion"))

	script.ExecuteAction(domain.Action{Script: "mood = very happy"}, c)
	assert.Equal(t, "very happy", c.Variables["mood"])
}

func TestQuestActions(t *testing.T) {
	t.Run("Start Overwrites", func(t *testing.T) {
		c := domain.NewContext(nil)
		c.Quests["wolf_hunt"] = domain.Quest{Status: domain.QuestFailed, Progress: 70}

		script.ExecuteAction(domain.Action{Type: domain.ActionStartQuest, Target: "wolf_hunt"}, c)
		assert.Equal(t, domain.Quest{Status: domain.QuestActive, Progress: 0}, c.Quests["wolf_hunt"])
	})

	t.Run("Complete Active Quest", func(t *testing.T) {
		c := domain.NewContext(nil)
		script.ExecuteAction(domain.Action{Type: domain.ActionStartQuest, Target: "wolf_hunt"}, c)
		script.ExecuteAction(domain.Action{Type: domain.ActionCompleteQuest, Target: "wolf_hunt"}, c)

		assert.Equal(t, domain.Quest{Status: domain.QuestCompleted, Progress: 100}, c.Quests["wolf_hunt"])
	})

	t.Run("Complete Missing Quest Is No-op", func(t *testing.T) {
		c := domain.NewContext(nil)
		before := c.Clone()

		script.ExecuteAction(domain.Action{Type: domain.ActionCompleteQuest, Target: "wolf_hunt"}, c)
		assert.Equal(t, before, c)
	})
}

func TestInterpreter_LogsStubs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	interp := script.NewInterpreter(script.WithLogger(logger))
	c := domain.NewContext(nil)
	before := c.Clone()

	interp.Execute(domain.Action{Type: domain.ActionPlaySound, Target: "door_creak"}, c)
	interp.Execute(domain.Action{Script: "if ( x > 1 ) explode"}, c)
	interp.Execute(domain.Action{Script: "jump around"}, c)
	interp.Execute(domain.Action{Type: "teleport", Target: "moon"}, c)

	require.Equal(t, before, c, "stubs must not mutate the context")
	out := buf.String()
	assert.Contains(t, out, "door_creak")
	assert.Contains(t, out, "conditional script not executed")
	assert.Contains(t, out, "script not executed")
	assert.Contains(t, out, "ignoring unknown action")
}

func TestInterpreter_EvaluatorSwap(t *testing.T) {
	c := domain.NewContext(nil)
	cond := domain.Condition{Type: domain.ConditionFlag, Operator: domain.OpExists, Target: "quests_available"}

	full := script.NewInterpreter()
	shallow := script.NewInterpreter(script.WithEvaluator(script.ShallowEvaluator{}))
	never := script.NewInterpreter(script.WithEvaluator(script.EvaluatorFunc(func(domain.Condition, *domain.Context) bool { return false })))

	assert.False(t, full.Evaluate(cond, c))
	assert.True(t, shallow.Evaluate(cond, c))
	assert.False(t, never.Evaluate(cond, c))
	assert.True(t, full.EvaluateAll(nil, c))
	assert.False(t, shallow.EvaluateAll([]domain.Condition{cond, {Type: domain.ConditionFlag, Operator: domain.OpEquals}}, c))
}
