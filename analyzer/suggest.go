package analyzer

import (
	"fmt"

	"github.com/canvas-contracts/go-canvas/graph"
)

// NodeSuggestion proposes a node type to place after an existing node,
// with a confidence reflecting how often that continuation is wanted.
type NodeSuggestion struct {
	Type        graph.NodeType `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Confidence  float64        `json:"confidence"`
}

// nextNodeCatalog maps a node's type to its usual continuations, best
// first. Types without an entry get no suggestions.
var nextNodeCatalog = map[graph.NodeType][]NodeSuggestion{
	graph.Logic: {
		{Type: graph.State, Name: "Write Storage", Description: "Store the result of your logic", Confidence: 0.8},
		{Type: graph.End, Name: "End", Description: "End the execution flow", Confidence: 0.6},
	},
	graph.State: {
		{Type: graph.External, Name: "Emit Event", Description: "Notify about state changes", Confidence: 0.7},
	},
}

// SuggestNextNodes proposes what to connect after the given node, based
// on its type and its existing outgoing connections: continuations the
// node already has are not suggested again. Returns an error when the
// node id is not in the graph.
func (a *Analyzer) SuggestNextNodes(g *graph.Graph, nodeID string) ([]NodeSuggestion, error) {
	node := g.NodeByID(nodeID)
	if node == nil {
		return nil, fmt.Errorf("node %q not found", nodeID)
	}

	connected := make(map[graph.NodeType]bool)
	for _, e := range g.Outgoing(nodeID) {
		if target := g.NodeByID(e.Target); target != nil {
			connected[target.Type] = true
		}
	}

	var suggestions []NodeSuggestion
	for _, s := range nextNodeCatalog[node.Type] {
		if connected[s.Type] {
			continue
		}
		suggestions = append(suggestions, s)
	}

	a.log.Info().
		Str("node", nodeID).
		Int("suggestions", len(suggestions)).
		Msg("next nodes suggested")
	return suggestions, nil
}
