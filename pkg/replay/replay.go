package replay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/codec"
	"github.com/aretw0/parley/pkg/domain"
)

// Op values written by the harness.
const (
	OpReplay   = "dialogue_replay"
	OpInit     = "init"
	OpTeardown = "teardown"

	StatusOK    = "ok"
	StatusError = "error"

	// Module names the harness in lifecycle documents.
	Module = "parley"
)

// ErrMissingTree is returned when an input carries no tree.
var ErrMissingTree = errors.New("replay input has no tree")

// Input is a replay request.
type Input struct {
	// Tree is either a tree object or a string holding serialized tree JSON.
	Tree      json.RawMessage `json:"tree"`
	StartNode string          `json:"startNode,omitempty"`
	// Path lists choice ids to select in order.
	Path []string `json:"path,omitempty"`
}

// Step records one engine result.
type Step struct {
	Node    string   `json:"node"`
	Type    string   `json:"type"`
	Choices []string `json:"choices"`
}

// ContextView is the final context in harness form.
type ContextView struct {
	Variables map[string]any          `json:"variables"`
	Flags     []string                `json:"flags"`
	Inventory []string                `json:"inventory"`
	Quests    map[string]domain.Quest `json:"quests"`
}

// Output is the document written on success.
type Output struct {
	Op      string      `json:"op"`
	Status  string      `json:"status"`
	Seed    *string     `json:"seed"`
	Steps   []Step      `json:"steps"`
	Context ContextView `json:"context"`
	History []string    `json:"history"`
}

// ErrorOutput is the document written on failure.
type ErrorOutput struct {
	Op     string `json:"op"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Lifecycle is the document written by init and teardown.
type Lifecycle struct {
	Op        string `json:"op"`
	Module    string `json:"module"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// NewLifecycle stamps op with now in Unix milliseconds.
func NewLifecycle(op string, now time.Time) Lifecycle {
	return Lifecycle{Op: op, Module: Module, Status: StatusOK, Timestamp: now.UnixMilli()}
}

// ReadInput decodes an input document.
func ReadInput(r io.Reader) (*Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode replay input: %w", err)
	}
	return &in, nil
}

// ReadInputFile decodes the input document at path.
func ReadInputFile(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadInput(f)
}

// DecodeTree parses the embedded tree, unwrapping string-encoded JSON first.
func (in *Input) DecodeTree() (*domain.Tree, error) {
	raw := bytes.TrimSpace(in.Tree)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrMissingTree
	}
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, fmt.Errorf("failed to decode tree string: %w", err)
		}
		raw = []byte(encoded)
	}
	return codec.Deserialize(raw)
}

// Run replays in. A non-empty seed makes branch selection deterministic.
// A missing start node is not an error: the replay simply records no steps.
func Run(in *Input, seed string, opts ...parley.Option) (*Output, error) {
	tree, err := in.DecodeTree()
	if err != nil {
		return nil, err
	}
	if seed != "" {
		opts = append(opts, parley.WithRandom(SeededRandom(seed)))
	}
	eng := parley.New(tree, opts...)

	steps := []Step{}
	startNode := in.StartNode
	if startNode == "" {
		startNode = domain.DefaultStartNodeID
	}
	if res, err := eng.Start(startNode); err == nil {
		steps = append(steps, stepOf(res))
		for _, choiceID := range in.Path {
			res, err := eng.SelectChoice(choiceID)
			if err != nil {
				break
			}
			steps = append(steps, stepOf(res))
			if res.IsEnd {
				break
			}
		}
	}

	out := &Output{
		Op:      OpReplay,
		Status:  StatusOK,
		Steps:   steps,
		Context: viewOf(eng.Context()),
		History: eng.History(),
	}
	if seed != "" {
		out.Seed = &seed
	}
	return out, nil
}

// NewErrorOutput wraps err for the error stream.
func NewErrorOutput(err error) ErrorOutput {
	return ErrorOutput{Op: OpReplay, Status: StatusError, Error: err.Error()}
}

// Write encodes doc as a single JSON document without a trailing newline.
func Write(w io.Writer, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func stepOf(res *domain.Result) Step {
	return Step{
		Node:    res.Node.ID,
		Type:    res.Node.Type,
		Choices: res.ChoiceIDs(),
	}
}

func viewOf(c *domain.Context) ContextView {
	return ContextView{
		Variables: c.Variables,
		Flags:     c.Flags.Sorted(),
		Inventory: c.Inventory.Sorted(),
		Quests:    c.Quests,
	}
}
