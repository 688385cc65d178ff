/*
Package parley is a branching dialogue engine for games and interactive fiction.

A dialogue is a Tree of nodes (text, choice, condition, action, branch, end).
An Engine walks one tree with its own mutable Context (variables, flags,
inventory, quests and a history of what was said). Nodes may carry actions
that mutate the context and conditions that gate them; choices may carry
their own condition (visibility) and action (effect on selection).

# Concept

The tree is a template: many engines can share it, each with an isolated
context. The engine never performs I/O. The host renders Result.Node, lists
Result.Choices and feeds the player's decision back through SelectChoice or
Continue.

# Usage

	tree, err := codec.LoadFile("village.json")
	if err != nil {
		log.Fatal(err)
	}

	eng := parley.New(tree)
	res, err := eng.Start("")
	for err == nil {
		fmt.Println(res.Node.Content)
		switch {
		case len(res.Choices) > 0:
			res, err = eng.SelectChoice(res.Choices[0].ID)
		case res.CanContinue:
			res, err = eng.Continue()
		default:
			return
		}
	}

# Persistence

Serialize only encodes the tree. To pause a conversation, persist
Engine.Snapshot (see pkg/ports.SessionStore) and later call Resume.
*/
package parley
