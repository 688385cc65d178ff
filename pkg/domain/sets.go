package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// StringSet is an unordered set of names (flags, inventory items).
// It serializes as a sorted array.
type StringSet map[string]struct{}

// NewStringSet builds a set from the given members.
func NewStringSet(members ...string) StringSet {
	s := make(StringSet, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

func (s StringSet) Add(member string) { s[member] = struct{}{} }
func (s StringSet) Remove(member string) { delete(s, member) }

// Has reports whether member is in the set. Safe on a nil set.
func (s StringSet) Has(member string) bool {
	_, ok := s[member]
	return ok
}

// Sorted returns the members in lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy. A nil set clones to an empty set.
func (s StringSet) Clone() StringSet {
	out := make(StringSet, len(s))
	for m := range s {
		out[m] = struct{}{}
	}
	return out
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var members []string
	if err := json.Unmarshal(data, &members); err != nil {
		return fmt.Errorf("string set: %w", err)
	}
	*s = NewStringSet(members...)
	return nil
}

func (s StringSet) MarshalYAML() (any, error) {
	return s.Sorted(), nil
}

func (s *StringSet) UnmarshalYAML(unmarshal func(any) error) error {
	var members []string
	if err := unmarshal(&members); err != nil {
		return fmt.Errorf("string set: %w", err)
	}
	*s = NewStringSet(members...)
	return nil
}

// Next holds the outgoing edge(s) of a node. One id is a plain transition,
// several ids form a random branch, none means the node is terminal.
// It accepts either a string or a list of strings when decoded.
type Next []string

// IsBranch reports whether the node picks among several targets.
func (n Next) IsBranch() bool { return len(n) > 1 }

func (n Next) MarshalJSON() ([]byte, error) {
	switch len(n) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(n[0])
	default:
		return json.Marshal([]string(n))
	}
}

func (n *Next) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = nil
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*n = fromSingle(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("next: expected string or list of strings: %w", err)
	}
	*n = many
	return nil
}

func (n Next) MarshalYAML() (any, error) {
	switch len(n) {
	case 0:
		return nil, nil
	case 1:
		return n[0], nil
	default:
		return []string(n), nil
	}
}

func (n *Next) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*n = fromSingle(single)
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return fmt.Errorf("next: expected string or list of strings: %w", err)
	}
	*n = many
	return nil
}

func fromSingle(id string) Next {
	if id == "" {
		return nil
	}
	return Next{id}
}
