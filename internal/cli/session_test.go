package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/parley/internal/config"
	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/adapters/memory"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, mgr *session.Manager, opts RunOptions, input string) string {
	t.Helper()
	var out bytes.Buffer
	err := RunSession(context.Background(), opts, mgr, strings.NewReader(input), &out, logging.NewNop())
	require.NoError(t, err)
	return out.String()
}

func TestRunSession_Ephemeral(t *testing.T) {
	s := play(t, nil, RunOptions{Headless: true}, "1\n")
	assert.Contains(t, s, "Hello, traveler!")
	assert.Contains(t, s, "You seem like a nice person!")
	assert.Contains(t, s, "Thank you for visiting our village!")
}

func TestRunSession_PersistsAndResumes(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore())
	opts := RunOptions{SessionID: "s1", Headless: true}

	first := play(t, mgr, opts, "quit\n")
	assert.Contains(t, first, "Bye!")

	stored, err := mgr.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "village_greeting", stored.TreeID)
	assert.Equal(t, "greeting_choice", stored.Context.CurrentNode)

	second := play(t, mgr, opts, "2\n")
	assert.NotContains(t, second, "Hello, traveler!")
	assert.Contains(t, second, "Well, the inn is down the street.")

	stored, err = mgr.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, stored.Context.Flags.Has("rude_reputation"))
	assert.Empty(t, stored.Context.CurrentNode)

	third := play(t, mgr, opts, "")
	assert.Contains(t, third, "already finished")

	fresh := opts
	fresh.Fresh = true
	again := play(t, mgr, fresh, "quit\n")
	assert.Contains(t, again, "Hello, traveler!")
}

func TestRunSession_TreeMismatch(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore())
	require.NoError(t, mgr.Save(ctx, domain.NewSession("s1", "other_tree", domain.NewContext(nil))))

	var out bytes.Buffer
	err := RunSession(ctx, RunOptions{SessionID: "s1"}, mgr, strings.NewReader(""), &out, logging.NewNop())
	assert.ErrorContains(t, err, "belongs to tree")
}

func TestRunSession_RequiresStoreForSessions(t *testing.T) {
	var out bytes.Buffer
	err := RunSession(context.Background(), RunOptions{SessionID: "s1"}, nil, strings.NewReader(""), &out, logging.NewNop())
	assert.Error(t, err)
}

func TestRunSession_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mgr := session.NewManager(memory.NewStore())
	var out bytes.Buffer
	err := RunSession(ctx, RunOptions{SessionID: "s1", Headless: true}, mgr, strings.NewReader("1\n"), &out, logging.NewNop())
	require.NoError(t, err, "an interrupt is a clean exit")

	stored, err := mgr.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "greeting_choice", stored.Context.CurrentNode)
}

func TestOpenBackend_File(t *testing.T) {
	cfg := config.Default()
	cfg.SessionDir = t.TempDir()
	cfg.MaskVariables = []string{"^secret"}
	cfg.EncryptionKey = strings.Repeat("ab", 32)

	b, err := OpenBackend(cfg, logging.NewNop())
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, "file", b.Kind)
	assert.Nil(t, b.Locker)

	ctx := context.Background()
	c := domain.NewContext(nil)
	c.Variables["secret_code"] = "1234"
	require.NoError(t, b.Store.Save(ctx, domain.NewSession("s1", "t", c)))

	loaded, err := b.Store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "***", loaded.Context.Variables["secret_code"])
}

func TestOpenBackend_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.RedisURL = "redis://" + mr.Addr()

	b, err := OpenBackend(cfg, logging.NewNop())
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, "redis", b.Kind)
	assert.NotNil(t, b.Locker)

	mgr := session.NewManager(b.Store, session.WithLocker(b.Locker))
	ctx := context.Background()
	require.NoError(t, mgr.Save(ctx, domain.NewSession("s1", "t", domain.NewContext(nil))))

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestOpenBackend_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.SessionDir = t.TempDir()

	bad := cfg
	bad.EncryptionKey = "zz"
	_, err := OpenBackend(bad, logging.NewNop())
	assert.Error(t, err)

	bad = cfg
	bad.MaskVariables = []string{"("}
	_, err = OpenBackend(bad, logging.NewNop())
	assert.Error(t, err)

	bad = cfg
	bad.RedisURL = "not-a-url"
	_, err = OpenBackend(bad, logging.NewNop())
	assert.Error(t, err)
}

func TestRunSession_JSON(t *testing.T) {
	s := play(t, nil, RunOptions{JSON: true}, "\"friendly\"\n")
	lines := strings.Split(strings.TrimSpace(s), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"node_id":"start"`)
	assert.Contains(t, lines[1], `"id":"quest"`)
	assert.Contains(t, lines[3], `"is_end":true`)
	assert.NotContains(t, s, "> ")
}
