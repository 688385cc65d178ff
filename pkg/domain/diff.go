package domain

import (
	"reflect"
	"sort"
)

// ContextDiff represents the changes between two context snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type ContextDiff struct {
	CurrentNode *string `json:"current_node,omitempty"`

	// Variables contains only changed, added or deleted keys.
	// For deletions, the key is present with a nil value.
	Variables map[string]any `json:"variables,omitempty"`

	Flags     *SetDelta        `json:"flags,omitempty"`
	Inventory *SetDelta        `json:"inventory,omitempty"`
	Quests    map[string]Quest `json:"quests,omitempty"`

	// History holds entries appended since the old snapshot.
	History []string `json:"history,omitempty"`
}

// SetDelta lists members added to and removed from a set.
type SetDelta struct {
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// Diff calculates the difference between oldCtx and newCtx.
// If oldCtx is nil, it returns a diff representing the entire newCtx (initial load).
// It returns nil when nothing changed.
func Diff(oldCtx, newCtx *Context) *ContextDiff {
	if newCtx == nil {
		return nil
	}
	if oldCtx == nil {
		oldCtx = &Context{}
	}

	diff := &ContextDiff{
		Variables: diffVariables(oldCtx.Variables, newCtx.Variables),
		Flags:     diffSet(oldCtx.Flags, newCtx.Flags),
		Inventory: diffSet(oldCtx.Inventory, newCtx.Inventory),
		Quests:    diffQuests(oldCtx.Quests, newCtx.Quests),
		History:   diffHistory(oldCtx.History, newCtx.History),
	}
	if oldCtx.CurrentNode != newCtx.CurrentNode {
		current := newCtx.CurrentNode
		diff.CurrentNode = &current
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *ContextDiff) IsEmpty() bool {
	return d.CurrentNode == nil &&
		len(d.Variables) == 0 &&
		d.Flags == nil &&
		d.Inventory == nil &&
		len(d.Quests) == 0 &&
		len(d.History) == 0
}

func diffVariables(old, new map[string]any) map[string]any {
	delta := make(map[string]any)
	for k, newVal := range new {
		oldVal, exists := old[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}
	for k := range old {
		if _, exists := new[k]; !exists {
			delta[k] = nil
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

func diffSet(old, new StringSet) *SetDelta {
	var d SetDelta
	for m := range new {
		if !old.Has(m) {
			d.Added = append(d.Added, m)
		}
	}
	for m := range old {
		if !new.Has(m) {
			d.Removed = append(d.Removed, m)
		}
	}
	if len(d.Added) == 0 && len(d.Removed) == 0 {
		return nil
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	return &d
}

func diffQuests(old, new map[string]Quest) map[string]Quest {
	delta := make(map[string]Quest)
	for id, q := range new {
		if prev, ok := old[id]; !ok || prev != q {
			delta[id] = q
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// diffHistory assumes append-only history.
func diffHistory(old, new []string) []string {
	if len(new) <= len(old) {
		return nil
	}
	appended := make([]string, len(new)-len(old))
	copy(appended, new[len(old):])
	return appended
}
