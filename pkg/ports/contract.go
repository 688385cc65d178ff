package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	newSession := func(id string) *domain.Session {
		c := domain.NewContext(nil)
		c.CurrentNode = "greeting_choice"
		c.Variables["foo"] = "bar"
		c.Variables["count"] = 42
		c.Flags.Add("met_elder")
		c.Inventory.Add("forest_map")
		c.Quests["wolf_hunt"] = domain.Quest{Status: domain.QuestActive, Progress: 10}
		c.History = append(c.History, "Hello", "friendly")
		return domain.NewSession(id, "village_greeting", c)
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, newSession(sessionID))
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, "village_greeting", loaded.TreeID)
		require.NotNil(t, loaded.Context)
		assert.Equal(t, "greeting_choice", loaded.Context.CurrentNode)
		assert.Equal(t, "bar", loaded.Context.Variables["foo"])
		// JSON persistence turns ints into float64; only existence is part of the contract.
		assert.NotNil(t, loaded.Context.Variables["count"])
		assert.True(t, loaded.Context.Flags.Has("met_elder"))
		assert.True(t, loaded.Context.Inventory.Has("forest_map"))
		assert.Equal(t, domain.Quest{Status: domain.QuestActive, Progress: 10}, loaded.Context.Quests["wolf_hunt"])
		assert.Equal(t, []string{"Hello", "friendly"}, loaded.Context.History)
		assert.False(t, loaded.UpdatedAt.IsZero())
	})

	t.Run("Overwrite", func(t *testing.T) {
		s := newSession(sessionID)
		s.Context.CurrentNode = "quest_details"
		require.NoError(t, store.Save(ctx, s))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "quest_details", loaded.Context.CurrentNode)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newSession(sessionID)))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, newSession(id1)))
		require.NoError(t, store.Save(ctx, newSession(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunTreeLoaderContract verifies a TreeLoader that was seeded with the given trees.
func RunTreeLoaderContract(t *testing.T, loader TreeLoader, seeded ...*domain.Tree) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetTree", func(t *testing.T) {
		for _, want := range seeded {
			got, err := loader.GetTree(ctx, want.ID)
			require.NoError(t, err, "tree %s", want.ID)
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.NodeIDs(), got.NodeIDs())
		}
	})

	t.Run("GetTree NotFound", func(t *testing.T) {
		_, err := loader.GetTree(ctx, "non-existent-tree")
		assert.ErrorIs(t, err, domain.ErrTreeNotFound)
	})

	t.Run("ListTrees", func(t *testing.T) {
		ids, err := loader.ListTrees(ctx)
		require.NoError(t, err)
		for _, want := range seeded {
			assert.Contains(t, ids, want.ID)
		}
		assert.IsNonDecreasing(t, ids)
	})
}
