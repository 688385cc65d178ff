package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/parley/internal/samples"
	"github.com/aretw0/parley/pkg/adapters/file"
	"github.com/aretw0/parley/pkg/adapters/memory"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *session.Manager) {
	t.Helper()
	loader, err := memory.NewLoader(samples.Village())
	require.NoError(t, err)
	mgr := session.NewManager(memory.NewStore(), session.WithTrees(loader))
	return NewHandler(mgr, opts...), mgr
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) ResultView {
	t.Helper()
	var v ResultView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestDialogueFlow(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, "POST", "/sessions", `{"tree_id":"village_greeting","session_id":"s1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	v := decodeView(t, w)
	assert.Equal(t, "s1", v.SessionID)
	assert.Equal(t, NodeView{ID: "start", Type: "text", Content: "Hello, traveler! Welcome to our village."}, v.Node)
	assert.True(t, v.CanContinue)
	assert.Empty(t, v.Choices)

	w = do(t, h, "POST", "/sessions/s1/continue", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	v = decodeView(t, w)
	assert.Equal(t, "greeting_choice", v.Node.ID)
	require.Len(t, v.Choices, 3)
	assert.Equal(t, ChoiceView{ID: "quest", Text: "I'm looking for work. Any quests available?"}, v.Choices[2])

	w = do(t, h, "POST", "/sessions/s1/choices/quest", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	v = decodeView(t, w)
	assert.Equal(t, "quest_offer", v.Node.ID)
	require.NotNil(t, v.Diff)
	assert.Equal(t, domain.Quest{Status: domain.QuestActive}, v.Diff.Quests["wolf_hunt"])

	w = do(t, h, "POST", "/sessions/s1/continue", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, "POST", "/sessions/s1/choices/accept", "")
	require.Equal(t, http.StatusOK, w.Code)
	v = decodeView(t, w)
	assert.True(t, v.IsEnd)
	assert.Equal(t, []string{"forest_map"}, v.Diff.Inventory.Added)

	w = do(t, h, "GET", "/sessions/s1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sess domain.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.Equal(t, "village_greeting", sess.TreeID)
	assert.True(t, sess.Context.Inventory.Has("forest_map"))

	w = do(t, h, "GET", "/sessions", "")
	assert.JSONEq(t, `["s1"]`, w.Body.String())

	w = do(t, h, "DELETE", "/sessions/s1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, "GET", "/sessions/s1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSession_GeneratesID(t *testing.T) {
	h, _ := newTestHandler(t, WithIDGenerator(func() string { return "generated" }))

	w := do(t, h, "POST", "/sessions", `{"tree_id":"village_greeting"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "generated", decodeView(t, w).SessionID)
}

func TestErrorMapping(t *testing.T) {
	h, _ := newTestHandler(t)
	require.Equal(t, http.StatusCreated, do(t, h, "POST", "/sessions", `{"tree_id":"village_greeting","session_id":"s1"}`).Code)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"bad json", "POST", "/sessions", `{`, http.StatusBadRequest},
		{"missing tree id", "POST", "/sessions", `{}`, http.StatusBadRequest},
		{"unknown tree", "POST", "/sessions", `{"tree_id":"nope"}`, http.StatusNotFound},
		{"unknown start node", "POST", "/sessions", `{"tree_id":"village_greeting","start_node":"nowhere"}`, http.StatusNotFound},
		{"duplicate session", "POST", "/sessions", `{"tree_id":"village_greeting","session_id":"s1"}`, http.StatusConflict},
		{"unknown session", "POST", "/sessions/ghost/continue", "", http.StatusNotFound},
		{"unknown choice", "POST", "/sessions/s1/choices/bogus", "", http.StatusBadRequest},
		{"unknown tree graph", "GET", "/trees/nope/graph", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestErrorMapping_InvalidSessionID(t *testing.T) {
	loader, err := memory.NewLoader(samples.Village())
	require.NoError(t, err)
	mgr := session.NewManager(file.NewStore(t.TempDir()), session.WithTrees(loader))
	h := NewHandler(mgr)

	w := do(t, h, "POST", "/sessions", `{"tree_id":"village_greeting","session_id":"../x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = do(t, h, "GET", "/sessions/.hidden", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestTrees(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, "GET", "/trees", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["village_greeting"]`, w.Body.String())

	w = do(t, h, "GET", "/trees/village_greeting", "")
	require.Equal(t, http.StatusOK, w.Code)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "village_greeting", raw["id"])
	assert.Contains(t, raw["nodes"], "greeting_choice")

	w = do(t, h, "GET", "/trees/village_greeting/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD\n"))
}

func TestHealthInfoAndCORS(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("parley_up 1\n"))
	})
	h, _ := newTestHandler(t, WithMetricsHandler(metrics))

	w := do(t, h, "GET", "/health", "")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	assert.Contains(t, w.Body.String(), `"app":"parley-http"`)

	w = do(t, h, "OPTIONS", "/sessions", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, h, "GET", "/metrics", "")
	assert.Equal(t, "parley_up 1\n", w.Body.String())
}

// subscribe streams /sessions/{id}/events into a recorder until the returned stop is called.
func subscribe(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", target, nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(w, req)
	}()
	time.Sleep(100 * time.Millisecond) // Wait for subscription to register
	return w, func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
		<-done
	}
}

func TestSubscribeEvents_ResultViews(t *testing.T) {
	h, _ := newTestHandler(t)
	require.Equal(t, http.StatusCreated, do(t, h, "POST", "/sessions", `{"tree_id":"village_greeting","session_id":"sess-1"}`).Code)

	w, stop := subscribe(t, h, "/sessions/sess-1/events")
	require.Equal(t, http.StatusOK, do(t, h, "POST", "/sessions/sess-1/continue", "").Code)
	stop()

	var frame string
	for _, line := range strings.Split(w.Body.String(), "\n") {
		if strings.HasPrefix(line, "data: {") {
			frame = strings.TrimPrefix(line, "data: ")
		}
	}
	require.NotEmpty(t, frame, w.Body.String())

	var v ResultView
	require.NoError(t, json.Unmarshal([]byte(frame), &v))
	assert.Equal(t, "sess-1", v.SessionID)
	assert.Equal(t, "greeting_choice", v.Node.ID)
	assert.Len(t, v.Choices, 3)
	require.NotNil(t, v.Diff)
}

func TestSubscribeEvents_Watch(t *testing.T) {
	h, _ := newTestHandler(t)
	require.Equal(t, http.StatusCreated, do(t, h, "POST", "/sessions", `{"tree_id":"village_greeting","session_id":"sess-1"}`).Code)

	w, stop := subscribe(t, h, "/sessions/sess-1/events?watch=quests")
	// Filtered out: only history and position change.
	require.Equal(t, http.StatusOK, do(t, h, "POST", "/sessions/sess-1/continue", "").Code)
	// Delivered: starts a quest.
	require.Equal(t, http.StatusOK, do(t, h, "POST", "/sessions/sess-1/choices/quest", "").Code)
	stop()

	output := w.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, `"node":{"id":"quest_offer"`)
	assert.Contains(t, output, `"wolf_hunt":{"status":"active","progress":0}`)
	assert.Equal(t, 1, strings.Count(output, "data: {"), output)
}

func TestWatched(t *testing.T) {
	msg := `{"session_id":"s","diff":{"flags":{"added":["x"]}}}`
	assert.True(t, watched(msg, []string{"flags"}))
	assert.False(t, watched(msg, []string{"history", "quests"}))
	assert.False(t, watched(`{"session_id":"s"}`, []string{"flags"}))
	assert.True(t, watched("not json", []string{"flags"}))
}
