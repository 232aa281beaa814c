// Package parser handles JSON import and export for contract graphs.
// It reads the format the graph editor serializes:
//
//	{
//	  "nodes": [
//	    {
//	      "id": "n1",
//	      "type": "state",
//	      "position": {"x": 100, "y": 100},
//	      "inputs":  [{"id": "p1", "name": "amount", "type": "integer", "required": true}],
//	      "outputs": [{"id": "p2", "name": "value", "type": "integer"}],
//	      "properties": {"key": "balances"}
//	    }
//	  ],
//	  "connections": [
//	    {"id": "c1", "source": "n1", "sourcePort": "value", "target": "n2", "targetPort": "amount"}
//	  ]
//	}
//
// Structural problems such as dangling connection endpoints or unknown
// node types are not parse errors; the graph is built as written and the
// validator reports them as findings.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/canvas-contracts/go-canvas/graph"
)

type wirePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type wireNode struct {
	ID         string         `json:"id"`
	Type       graph.NodeType `json:"type"`
	Position   wirePosition   `json:"position"`
	Inputs     []graph.Port   `json:"inputs,omitempty"`
	Outputs    []graph.Port   `json:"outputs,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

type wireGraph struct {
	Nodes       []wireNode    `json:"nodes"`
	Connections []*graph.Edge `json:"connections"`
}

// FromJSON parses a contract graph from JSON bytes.
func FromJSON(data []byte) (*graph.Graph, error) {
	var wire wireGraph
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("invalid graph JSON: %w", err)
	}

	g := graph.New()
	for _, wn := range wire.Nodes {
		g.AddNode(&graph.Node{
			ID:         wn.ID,
			Type:       wn.Type,
			X:          wn.Position.X,
			Y:          wn.Position.Y,
			Inputs:     wn.Inputs,
			Outputs:    wn.Outputs,
			Properties: wn.Properties,
		})
	}
	for _, e := range wire.Connections {
		g.AddEdge(e)
	}
	return g, nil
}

// ToJSON serializes a contract graph to indented JSON in the editor's
// format. Node and edge order is preserved.
func ToJSON(g *graph.Graph) ([]byte, error) {
	wire := wireGraph{
		Nodes:       make([]wireNode, 0, len(g.Nodes)),
		Connections: g.Edges,
	}
	for _, n := range g.Nodes {
		wire.Nodes = append(wire.Nodes, wireNode{
			ID:         n.ID,
			Type:       n.Type,
			Position:   wirePosition{X: n.X, Y: n.Y},
			Inputs:     n.Inputs,
			Outputs:    n.Outputs,
			Properties: n.Properties,
		})
	}
	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}
	return data, nil
}
