package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNext_DecodesStringOrList(t *testing.T) {
	var single struct {
		Next domain.Next `json:"next"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"next":"end"}`), &single))
	assert.Equal(t, domain.Next{"end"}, single.Next)
	assert.False(t, single.Next.IsBranch())

	var branch struct {
		Next domain.Next `json:"next"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"next":["a","b"]}`), &branch))
	assert.Equal(t, domain.Next{"a", "b"}, branch.Next)
	assert.True(t, branch.Next.IsBranch())

	var bad struct {
		Next domain.Next `json:"next"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"next":42}`), &bad))
}

func TestNext_EncodesSingleAsString(t *testing.T) {
	out, err := json.Marshal(domain.Node{ID: "start", Type: domain.NodeTypeText, Next: domain.Next{"end"}})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"next":"end"`)

	out, err = json.Marshal(domain.Node{ID: "end", Type: domain.NodeTypeEnd})
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"next"`)
}

func TestStringSet_YAMLAndJSON(t *testing.T) {
	var tree domain.Tree
	src := `
id: t
flags: [b, a]
nodes:
  start:
    type: text
    next: [x, y]
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &tree))
	tree.Normalize()

	assert.True(t, tree.Flags.Has("a"))
	assert.True(t, tree.Flags.Has("b"))
	assert.Equal(t, "start", tree.Nodes["start"].ID, "Normalize should fill ids from map keys")
	assert.Equal(t, domain.Next{"x", "y"}, tree.Nodes["start"].Next)

	out, err := json.Marshal(tree.Flags)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(out))
}

func TestContext_CloneIsDeep(t *testing.T) {
	tree := &domain.Tree{
		Variables: map[string]any{"stats": map[string]any{"hp": 10}},
		Flags:     domain.NewStringSet("intro"),
	}
	original := domain.NewContext(tree)
	original.Quests["q"] = domain.Quest{Status: domain.QuestActive}
	original.History = append(original.History, "line")

	clone := original.Clone()
	clone.Flags.Add("other")
	clone.Inventory.Add("item")
	clone.Quests["q"] = domain.Quest{Status: domain.QuestCompleted, Progress: 100}
	clone.Variables["stats"].(map[string]any)["hp"] = 1
	clone.History[0] = "changed"

	assert.False(t, original.Flags.Has("other"))
	assert.False(t, original.Inventory.Has("item"))
	assert.Equal(t, domain.QuestActive, original.Quests["q"].Status)
	assert.Equal(t, 10, original.Variables["stats"].(map[string]any)["hp"])
	assert.Equal(t, "line", original.History[0])

	// The tree template must not be touched either.
	original.Variables["stats"].(map[string]any)["hp"] = 99
	assert.Equal(t, 10, tree.Variables["stats"].(map[string]any)["hp"])
}

func TestNode_FindChoiceAndTargets(t *testing.T) {
	n := domain.Node{
		ID:   "ask",
		Type: domain.NodeTypeChoice,
		Choices: []domain.Choice{
			{ID: "yes", Next: "accepted"},
			{ID: "no", Next: "declined"},
		},
		Next: domain.Next{"end"},
	}

	c, ok := n.FindChoice("no")
	require.True(t, ok)
	assert.Equal(t, "declined", c.Next)

	_, ok = n.FindChoice("maybe")
	assert.False(t, ok)

	assert.Equal(t, []string{"end", "accepted", "declined"}, n.Targets())
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnNodeEnter: func(*domain.NodeEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{
		OnNodeEnter:   func(*domain.NodeEvent) { calls = append(calls, "b") },
		OnDialogueEnd: func(*domain.NodeEvent) { calls = append(calls, "end") },
	}

	merged := a.Merge(b)
	merged.OnNodeEnter(&domain.NodeEvent{})
	merged.OnDialogueEnd(&domain.NodeEvent{})

	assert.Equal(t, []string{"a", "b", "end"}, calls)
	assert.Nil(t, merged.OnChoiceSelected)
}
