package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// GraphOverlay contains session state to highlight on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// OverlayFor derives an overlay from a context. History stores content, not
// ids, so a node counts as visited when its content appears in the history.
func OverlayFor(tree *domain.Tree, ctx *domain.Context) *GraphOverlay {
	seen := make(map[string]bool, len(ctx.History))
	for _, line := range ctx.History {
		seen[line] = true
	}
	overlay := &GraphOverlay{CurrentNode: ctx.CurrentNode}
	for _, id := range tree.NodeIDs() {
		node, _ := tree.Node(id)
		if node.Content != "" && seen[node.Content] {
			overlay.VisitedNodes = append(overlay.VisitedNodes, id)
		}
	}
	return overlay
}

// GenerateMermaid produces a Mermaid flowchart of the tree, nodes in id order.
// It applies semantic styling:
// - Start: ((Circle))
// - Choice: [/Parallelogram/]
// - Condition: {Rhombus}
// - Branch: {{Hexagon}}
// - Action: [[Subroutine]]
// - End: ([Stadium])
// - Default: [Rectangle]
// Random branch edges are dotted, choice edges carry the choice text.
func GenerateMermaid(tree *domain.Tree, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range tree.NodeIDs() {
		node, _ := tree.Node(id)
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := shape(node)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, node.ID, closer))

		arrow := "-->"
		if node.Next.IsBranch() {
			arrow = "-.->"
		}
		for _, to := range node.Next {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, sanitizeMermaidID(to)))
		}

		for _, c := range node.Choices {
			if c.Next == "" {
				continue
			}
			// Escape double quotes for the Mermaid label
			text := strings.ReplaceAll(c.Text, "\"", "'")
			edge := fmt.Sprintf("-- \"%s\" -->", text)
			if c.Condition != nil {
				edge = fmt.Sprintf("-. \"%s\" .->", text)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, edge, sanitizeMermaidID(c.Next)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func shape(node *domain.Node) (string, string) {
	switch {
	case node.ID == domain.DefaultStartNodeID:
		return "((", "))"
	case node.Type == domain.NodeTypeChoice:
		return "[/", "/]"
	case node.Type == domain.NodeTypeCondition:
		return "{", "}"
	case node.Type == domain.NodeTypeBranch:
		return "{{", "}}"
	case node.Type == domain.NodeTypeAction:
		return "[[", "]]"
	case node.Type == domain.NodeTypeEnd:
		return "([", "])"
	}
	return "[", "]"
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	// "end" is a Mermaid keyword.
	if s == "end" {
		s = "end_"
	}
	return s
}
