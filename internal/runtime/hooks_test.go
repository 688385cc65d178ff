package runtime_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/parley/internal/runtime"
	"github.com/aretw0/parley/internal/samples"
	"github.com/aretw0/parley/pkg/domain"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	var entered, choices, actions, ended []string

	hooks := domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			entered = append(entered, e.NodeID)
			if e.TreeID != samples.VillageTreeID {
				t.Errorf("Expected tree id on event, got %q", e.TreeID)
			}
		},
		OnChoiceSelected: func(e *domain.ChoiceEvent) {
			choices = append(choices, e.NodeID+"/"+e.ChoiceID+"->"+e.Next)
		},
		OnActionExecuted: func(e *domain.ActionEvent) {
			actions = append(actions, string(e.Action.Type)+":"+e.Action.Target)
		},
		OnDialogueEnd: func(e *domain.NodeEvent) {
			ended = append(ended, e.NodeID)
		},
	}

	engine := runtime.NewEngine(samples.Village(), runtime.WithLifecycleHooks(hooks))
	if _, err := engine.Start(""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := engine.Continue(); err != nil {
		t.Fatalf("Continue failed: %v", err)
	}
	if _, err := engine.SelectChoice("friendly"); err != nil {
		t.Fatalf("SelectChoice failed: %v", err)
	}

	if len(entered) != 3 || entered[0] != "start" || entered[1] != "greeting_choice" || entered[2] != "friendly_response" {
		t.Errorf("Expected enter [start greeting_choice friendly_response], got: %v", entered)
	}
	if len(choices) != 1 || choices[0] != "greeting_choice/friendly->friendly_response" {
		t.Errorf("Unexpected choice events: %v", choices)
	}
	if len(actions) != 1 || actions[0] != "set_flag:friendly_reputation" {
		t.Errorf("Unexpected action events: %v", actions)
	}
	if len(ended) != 1 || ended[0] != "friendly_response" {
		t.Errorf("Expected dialogue end on friendly_response, got: %v", ended)
	}
}

func TestEngine_ConditionFailedHook(t *testing.T) {
	var failed []string
	tree := &domain.Tree{
		Nodes: map[string]*domain.Node{
			"start": {
				ID:         "start",
				Type:       domain.NodeTypeCondition,
				Conditions: []domain.Condition{{Type: domain.ConditionVariable, Operator: domain.OpExists, Target: "gold"}},
			},
		},
	}
	engine := runtime.NewEngine(tree,
		runtime.WithLifecycleHooks(domain.LifecycleHooks{OnConditionFailed: func(e *domain.NodeEvent) { failed = append(failed, e.NodeID) }}),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{OnConditionFailed: func(e *domain.NodeEvent) { failed = append(failed, "second") }}),
	)
	if _, err := engine.Start(""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(failed) != 2 || failed[0] != "start" || failed[1] != "second" {
		t.Errorf("Expected both hooks to fire in order, got %v", failed)
	}
}

func TestEngine_LogsMissingNode(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	engine := runtime.NewEngine(samples.Village(), runtime.WithLogger(logger))

	if _, err := engine.Start("ghost"); err == nil {
		t.Fatal("Expected error for missing node")
	}
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("level=ERROR")) || !bytes.Contains([]byte(out), []byte("node_id=ghost")) {
		t.Errorf("Expected error log for missing node, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("tree=village_greeting")) {
		t.Errorf("Expected tree attribute on logger, got %q", out)
	}
}
