package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
)

// DefaultMaxSteps bounds an automatic walk.
const DefaultMaxSteps = 20

// WalkOptions drives Walk.
type WalkOptions struct {
	StartNode string

	// Path lists choice ids taken in order at choice nodes. Once exhausted the
	// first visible choice is taken.
	Path     []string
	MaxSteps int
}

// WalkResult summarizes an automatic walk.
type WalkResult struct {
	Steps int
	Ended bool

	// Choices lists the choice ids taken, in order.
	Choices []string
}

// Walk plays the dialogue without input and writes a transcript to w.
func Walk(eng *parley.Engine, opts WalkOptions, w io.Writer) (*WalkResult, error) {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}

	res, err := eng.Start(opts.StartNode)
	if err != nil {
		return nil, err
	}

	out := &WalkResult{}
	pathIdx := 0
	for {
		out.Steps++
		printStep(w, out.Steps, res)

		if out.Steps >= opts.MaxSteps {
			fmt.Fprintf(w, "Stopped after %d steps.\n", opts.MaxSteps)
			break
		}

		switch {
		case len(res.Choices) > 0:
			pick := res.Choices[0].ID
			if pathIdx < len(opts.Path) {
				pick = opts.Path[pathIdx]
				pathIdx++
			}
			fmt.Fprintf(w, "    -> %s\n", pick)
			out.Choices = append(out.Choices, pick)
			if res, err = eng.SelectChoice(pick); err != nil {
				return out, err
			}
			continue

		case res.CanContinue:
			if res, err = eng.Continue(); err != nil {
				return out, err
			}
			continue

		case eng.CurrentNode() == domain.EndNodeID:
			if res, err = eng.Continue(); err != nil {
				return out, err
			}
			continue
		}

		out.Ended = true
		break
	}

	printSummary(w, eng.Context())
	return out, nil
}

func printStep(w io.Writer, n int, res *domain.Result) {
	fmt.Fprintf(w, "[%d] %s (%s)", n, res.Node.ID, res.Node.Type)
	if res.Node.Content != "" {
		fmt.Fprintf(w, ": %s", res.Node.Content)
	}
	fmt.Fprintln(w)
	if len(res.Choices) > 0 {
		fmt.Fprintf(w, "    choices: %s\n", strings.Join(res.ChoiceIDs(), ", "))
	}
}

func printSummary(w io.Writer, c *domain.Context) {
	fmt.Fprintln(w, "--- Final context ---")
	fmt.Fprintf(w, "Variables: %v\n", c.Variables)
	fmt.Fprintf(w, "Flags: %s\n", strings.Join(c.Flags.Sorted(), ", "))
	fmt.Fprintf(w, "Inventory: %s\n", strings.Join(c.Inventory.Sorted(), ", "))

	quests := make([]string, 0, len(c.Quests))
	for _, id := range slices.Sorted(maps.Keys(c.Quests)) {
		q := c.Quests[id]
		quests = append(quests, fmt.Sprintf("%s=%s(%d)", id, q.Status, q.Progress))
	}
	fmt.Fprintf(w, "Quests: %s\n", strings.Join(quests, ", "))
	fmt.Fprintf(w, "History: %d entries\n", len(c.History))
}
