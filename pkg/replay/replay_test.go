package replay_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/parley/internal/samples"
	"github.com/aretw0/parley/pkg/codec"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/dsl"
	"github.com/aretw0/parley/pkg/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func villageInput(t *testing.T, path ...string) *replay.Input {
	t.Helper()
	data, err := codec.Serialize(samples.Village())
	require.NoError(t, err)
	return &replay.Input{Tree: data, Path: path}
}

func TestRun_QuestPath(t *testing.T) {
	out, err := replay.Run(villageInput(t, "quest", "accept"), "")
	require.NoError(t, err)

	assert.Equal(t, replay.OpReplay, out.Op)
	assert.Equal(t, replay.StatusOK, out.Status)
	assert.Nil(t, out.Seed)
	assert.Equal(t, []replay.Step{
		{Node: "start", Type: "text", Choices: []string{}},
		{Node: "quest_offer", Type: "text", Choices: []string{}},
		{Node: "quest_accepted", Type: "text", Choices: []string{}},
	}, out.Steps)
	assert.Equal(t, []string{"forest_map"}, out.Context.Inventory)
	assert.Equal(t, []string{"quests_available"}, out.Context.Flags)
	assert.Equal(t, domain.Quest{Status: domain.QuestActive, Progress: 0}, out.Context.Quests["wolf_hunt"])
	assert.Equal(t, "Traveler", out.Context.Variables["player_name"])
	assert.Equal(t, []string{
		"Hello, traveler! Welcome to our village.",
		"quest",
		"Actually, we do have a problem with wolves in the forest.",
		"accept",
		"Thank you! Here's a map to the forest.",
	}, out.History)
}

func TestRun_StopsAtEnd(t *testing.T) {
	out, err := replay.Run(villageInput(t, "friendly", "accept"), "")
	require.NoError(t, err)
	require.Len(t, out.Steps, 2)
	assert.Equal(t, "friendly_response", out.Steps[1].Node)
}

func TestRun_StopsOnUnknownChoice(t *testing.T) {
	out, err := replay.Run(villageInput(t, "bogus", "friendly"), "")
	require.NoError(t, err)
	assert.Len(t, out.Steps, 1)
}

func TestRun_MissingStartNodeRecordsNoSteps(t *testing.T) {
	in := villageInput(t, "friendly")
	in.StartNode = "nowhere"

	out, err := replay.Run(in, "")
	require.NoError(t, err)
	assert.Empty(t, out.Steps)
	assert.Empty(t, out.History)
}

func TestRun_TreeAsString(t *testing.T) {
	data, err := codec.Serialize(samples.Village())
	require.NoError(t, err)
	encoded, err := json.Marshal(string(data))
	require.NoError(t, err)

	out, err := replay.Run(&replay.Input{Tree: encoded, Path: []string{"rude"}}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"quests_available", "rude_reputation"}, out.Context.Flags)
}

func TestRun_InvalidTree(t *testing.T) {
	_, err := replay.Run(&replay.Input{}, "")
	assert.ErrorIs(t, err, replay.ErrMissingTree)

	_, err = replay.Run(&replay.Input{Tree: json.RawMessage(`"{not json"`)}, "")
	assert.Error(t, err)
}

func branchInput(t *testing.T) *replay.Input {
	t.Helper()
	b := dsl.New("dice")
	b.Add("start").Branch("a", "b", "c")
	for _, id := range []string{"a", "b", "c"} {
		b.Add(id).Prompt("Landed on " + id).Choice("pick", "Take it", id+"_done")
		b.Add(id + "_done").End("Took " + id)
	}
	data, err := codec.Serialize(b.MustBuild())
	require.NoError(t, err)
	return &replay.Input{Tree: data, Path: []string{"pick"}}
}

func TestRun_SeedIsDeterministic(t *testing.T) {
	cases := []struct {
		seed string
		want string
	}{
		{seed: "42", want: "a_done"},      // 0.3077 * 3
		{seed: "village", want: "c_done"}, // 0.7587 * 3
	}
	for _, tc := range cases {
		t.Run(tc.seed, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				out, err := replay.Run(branchInput(t), tc.seed)
				require.NoError(t, err)
				require.Len(t, out.Steps, 2)
				assert.Equal(t, tc.want, out.Steps[1].Node)
				require.NotNil(t, out.Seed)
				assert.Equal(t, tc.seed, *out.Seed)
			}
		})
	}
}

func TestSeededRandom_Sequence(t *testing.T) {
	r := replay.SeededRandom("42")
	want := []float64{0.3077305785845965, 0.3676118436269462, 0.23133554426021874, 0.01758907549083233, 0.009130497695878148}
	for i, w := range want {
		assert.InDelta(t, w, r.Float64(), 1e-15, "draw %d", i)
	}
}

func TestWrite_NoTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	out, err := replay.Run(villageInput(t), "7")
	require.NoError(t, err)
	require.NoError(t, replay.Write(&buf, out))

	s := buf.String()
	assert.False(t, strings.HasSuffix(s, "\n"))
	assert.True(t, strings.HasPrefix(s, `{"op":"dialogue_replay","status":"ok","seed":"7","steps":[`))
}

func TestErrorAndLifecycleDocuments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, replay.Write(&buf, replay.NewErrorOutput(replay.ErrMissingTree)))
	assert.JSONEq(t, `{"op":"dialogue_replay","status":"error","error":"replay input has no tree"}`, buf.String())

	buf.Reset()
	now := time.UnixMilli(1700000000123)
	require.NoError(t, replay.Write(&buf, replay.NewLifecycle(replay.OpInit, now)))
	assert.JSONEq(t, `{"op":"init","module":"parley","status":"ok","timestamp":1700000000123}`, buf.String())
}

func TestReadInput(t *testing.T) {
	in, err := replay.ReadInput(strings.NewReader(`{"tree":{"id":"x","nodes":{}},"startNode":"intro","path":["a","b"]}`))
	require.NoError(t, err)
	assert.Equal(t, "intro", in.StartNode)
	assert.Equal(t, []string{"a", "b"}, in.Path)

	_, err = replay.ReadInput(strings.NewReader(`{`))
	assert.Error(t, err)
}
