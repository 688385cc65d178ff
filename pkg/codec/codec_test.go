package codec_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/parley/internal/runtime"
	"github.com/aretw0/parley/internal/samples"
	"github.com/aretw0/parley/pkg/codec"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip_PreservesStart(t *testing.T) {
	tree := samples.Village()

	data, err := codec.Serialize(tree)
	require.NoError(t, err)

	decoded, err := codec.Deserialize(data)
	require.NoError(t, err)

	r1, err := runtime.NewEngine(tree).Start("")
	require.NoError(t, err)
	r2, err := runtime.NewEngine(decoded).Start("")
	require.NoError(t, err)

	assert.Equal(t, r1.Node.Content, r2.Node.Content)
	assert.Equal(t, r1.CanContinue, r2.CanContinue)
	assert.Equal(t, tree.NodeIDs(), decoded.NodeIDs())
	assert.True(t, decoded.Flags.Has("quests_available"))
	assert.Equal(t, "Traveler", decoded.Variables["player_name"])

	gate := decoded.Nodes["greeting_choice"].Choices[2].Condition
	require.NotNil(t, gate)
	assert.Equal(t, domain.OpExists, gate.Operator)
}

func TestSerialize_Shape(t *testing.T) {
	data, err := codec.Serialize(samples.Village())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "\n  \"nodes\": {")
	assert.Contains(t, s, "\"flags\": [\n    \"quests_available\"\n  ]")
	assert.Contains(t, s, "\"next\": \"greeting_choice\"")
}

func TestDeserialize_Minimal(t *testing.T) {
	tree, err := codec.Deserialize([]byte(`{"id":"tiny","nodes":{"start":{"type":"end","content":"Bye"}}}`))
	require.NoError(t, err)

	assert.Equal(t, "start", tree.Nodes["start"].ID, "ids default to their key")
	assert.NotNil(t, tree.Variables)
	assert.NotNil(t, tree.Flags)
}

func TestDeserialize_BranchNext(t *testing.T) {
	tree, err := codec.Deserialize([]byte(`{"nodes":{"start":{"type":"branch","next":["a","b"]}}}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Next{"a", "b"}, tree.Nodes["start"].Next)
}

func TestDeserialize_Invalid(t *testing.T) {
	_, err := codec.Deserialize([]byte(`{"nodes": [`))
	assert.Error(t, err)

	_, err = codec.Deserialize([]byte(`not json`))
	assert.Error(t, err)

	_, err = codec.Deserialize([]byte(`{"id": "t", "nodes": {}} junk`))
	assert.Error(t, err, "trailing data after the document")

	_, err = codec.Deserialize([]byte(`{"id": "t"} {"id": "u"}`))
	assert.Error(t, err)
}

func TestYAML(t *testing.T) {
	src := `
id: smithy
name: Smithy
variables:
  gold: 3
flags: [shop_open]
nodes:
  start:
    type: choice
    content: What do you need?
    choices:
      - id: buy
        text: A sword
        next: sold
        condition: {type: variable, operator: greater, target: gold, value: 2}
  sold:
    type: text
    content: Here you go.
    actions:
      - {type: add_item, target: sword}
    next: end
  end:
    type: end
`
	tree, err := codec.DecodeYAML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "smithy", tree.ID)
	assert.Equal(t, 3, tree.Variables["gold"])
	assert.True(t, tree.Flags.Has("shop_open"))
	assert.Equal(t, domain.Next{"end"}, tree.Nodes["sold"].Next)

	result, err := runtime.NewEngine(tree).Start("")
	require.NoError(t, err)
	assert.Equal(t, []string{"buy"}, result.ChoiceIDs())

	out, err := codec.EncodeYAML(tree)
	require.NoError(t, err)
	again, err := codec.DecodeYAML(out)
	require.NoError(t, err)
	assert.Equal(t, tree.NodeIDs(), again.NodeIDs())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "village.json")
	require.NoError(t, codec.WriteFile(jsonPath, samples.Village()))
	tree, err := codec.LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, samples.VillageTreeID, tree.ID)

	yamlPath := filepath.Join(dir, "anon.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("nodes:\n  start: {type: end}\n"), 0644))
	tree, err = codec.LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "anon", tree.ID)

	_, err = codec.LoadFile(filepath.Join(dir, "tree.toml"))
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)

	_, err = codec.LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
