/*
Package domain contains the core domain models of the Parley dialogue engine.

It defines the dialogue graph (Tree, Node, Choice), the rules attached to it
(Condition, Action) and the mutable execution state (Context). This package is
kept pure and free of external dependencies like I/O or persistence.

# Key Entities

  - Tree: An immutable template holding nodes, initial variables and flags.
  - Node: A step of the dialogue (text, choice, condition, action, branch, end).
  - Context: The per-engine state (variables, flags, inventory, quests, history).
  - Result: What the engine hands back after processing a node.
  - Session: A persisted context bound to a tree, used for save/resume.
*/
package domain
