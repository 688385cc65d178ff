package dsl

import (
	"testing"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := New("smith").Name("Smithy").Version("1.0").Var("gold", 10).Flag("shop_open")

	b.Add("start").
		Text("Hello, DSL!").
		Go("menu")

	b.Add("menu").
		Prompt("What do you need?").
		Choice("buy", "A sword.", "buy_sword", If(HasFlag("shop_open")), Then(SetVar("gold", 0))).
		Choice("leave", "Nothing.", "end")

	b.Add("buy_sword").
		Text("Fine steel.").
		Do(AddItem("sword"), PlaySound("clang")).
		Go("end")

	b.Add("end").End("Goodbye!")

	tree, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "smith", tree.ID)
	assert.Equal(t, "Smithy", tree.Name)
	assert.Equal(t, "1.0", tree.Version)
	assert.Equal(t, 10, tree.Variables["gold"])
	assert.True(t, tree.Flags.Has("shop_open"))
	assert.Len(t, tree.Nodes, 4)

	start := tree.Nodes["start"]
	assert.Equal(t, domain.NodeTypeText, start.Type)
	assert.Equal(t, domain.Next{"menu"}, start.Next)

	menu := tree.Nodes["menu"]
	require.Len(t, menu.Choices, 2)
	require.NotNil(t, menu.Choices[0].Condition)
	assert.Equal(t, "shop_open", menu.Choices[0].Condition.Target)
	require.NotNil(t, menu.Choices[0].Action)
	assert.Equal(t, domain.ActionSetVariable, menu.Choices[0].Action.Type)
	assert.Nil(t, menu.Choices[1].Condition)

	assert.Len(t, tree.Nodes["buy_sword"].Actions, 2)
	assert.Equal(t, domain.NodeTypeEnd, tree.Nodes["end"].Type)
	assert.Empty(t, tree.Nodes["end"].Next)
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New("t")
	b.Add("start").Text("one")
	b.Add("start").Go("end")

	tree, err := b.Add("end").End("").builder.Build()
	require.NoError(t, err)
	assert.Equal(t, "one", tree.Nodes["start"].Content)
	assert.Equal(t, domain.Next{"end"}, tree.Nodes["start"].Next)
}

func TestBuilder_Branch(t *testing.T) {
	b := New("t")
	b.Add("start").Branch("a", "b", "c")
	tree := b.MustBuild()

	assert.True(t, tree.Nodes["start"].Next.IsBranch())
	assert.Equal(t, domain.NodeTypeBranch, tree.Nodes["start"].Type)
}

func TestBuilder_Errors(t *testing.T) {
	b := New("broken")
	b.Add("untyped")
	b.Add("menu").
		Prompt("?").
		Choice("a", "A", "end").
		Choice("a", "A again", "end")

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node 'untyped' has no type")
	assert.Contains(t, err.Error(), "duplicate choice 'a'")

	assert.Panics(t, func() { b.MustBuild() })
}
