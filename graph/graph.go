// Package graph implements the node-graph data model for visual contracts.
// A contract graph is a directed flow of typed nodes connected by edges,
// built by an external editor and handed to the analysis engine read-only.
package graph

import (
	"crypto/sha256"
	"encoding/hex"
)

// NodeType classifies a node by its execution role.
// The set is closed: every cost table, degree table, and rule catalog
// is keyed by these values.
type NodeType string

const (
	Start      NodeType = "start"
	End        NodeType = "end"
	State      NodeType = "state"
	Logic      NodeType = "logic"
	Arithmetic NodeType = "arithmetic"
	External   NodeType = "external"
	Control    NodeType = "control"
)

// NodeTypes lists every node type in a fixed order.
var NodeTypes = []NodeType{Start, End, State, Logic, Arithmetic, External, Control}

// KnownType reports whether t is one of the closed set of node types.
func KnownType(t NodeType) bool {
	for _, nt := range NodeTypes {
		if nt == t {
			return true
		}
	}
	return false
}

// Port is a typed, named slot on a node through which a value
// is received or emitted.
type Port struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     ValueType `json:"type"`
	Required bool      `json:"required,omitempty"`
}

// Node is an atomic unit of contract logic.
type Node struct {
	ID         string         `json:"id"`
	Type       NodeType       `json:"type"`
	X          float64        `json:"x,omitempty"`
	Y          float64        `json:"y,omitempty"`
	Inputs     []Port         `json:"inputs,omitempty"`
	Outputs    []Port         `json:"outputs,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Input returns the input port with the given name, or nil.
func (n *Node) Input(name string) *Port {
	for i := range n.Inputs {
		if n.Inputs[i].Name == name {
			return &n.Inputs[i]
		}
	}
	return nil
}

// Output returns the output port with the given name, or nil.
func (n *Node) Output(name string) *Port {
	for i := range n.Outputs {
		if n.Outputs[i].Name == name {
			return &n.Outputs[i]
		}
	}
	return nil
}

// Edge is a directed control/data link between two nodes.
// Port names are optional; an empty port means the plain flow connection.
type Edge struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	Target     string `json:"target"`
	SourcePort string `json:"sourcePort,omitempty"`
	TargetPort string `json:"targetPort,omitempty"`
}

// Graph is an ordered collection of nodes plus an edge list.
// Node order is insertion order, which window-matching rules rely on.
// Edges may reference missing node or port ids: the graph comes from an
// editor outside this module's control, so lookups return nil instead of
// failing and the validator reports dangling references as findings.
type Graph struct {
	Nodes []*Node
	Edges []*Edge

	index map[string]*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]*Node)}
}

// AddNode appends a node. On a duplicate id the first node wins the
// index slot; the duplicate stays in the node list where validation
// will flag it.
func (g *Graph) AddNode(n *Node) *Node {
	g.Nodes = append(g.Nodes, n)
	if g.index == nil {
		g.index = make(map[string]*Node)
	}
	if _, exists := g.index[n.ID]; !exists {
		g.index[n.ID] = n
	}
	return n
}

// AddEdge appends an edge. Endpoints are not checked here.
func (g *Graph) AddEdge(e *Edge) *Edge {
	g.Edges = append(g.Edges, e)
	return e
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	return g.index[id]
}

// Incoming returns all edges whose target is the given node id.
func (g *Graph) Incoming(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.Target == id {
			result = append(result, e)
		}
	}
	return result
}

// Outgoing returns all edges whose source is the given node id.
func (g *Graph) Outgoing(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.Source == id {
			result = append(result, e)
		}
	}
	return result
}

// NodesOfType returns all nodes of the given type, in insertion order.
func (g *Graph) NodesOfType(t NodeType) []*Node {
	var result []*Node
	for _, n := range g.Nodes {
		if n.Type == t {
			result = append(result, n)
		}
	}
	return result
}

// CountType returns the number of nodes of the given type.
func (g *Graph) CountType(t NodeType) int {
	count := 0
	for _, n := range g.Nodes {
		if n.Type == t {
			count++
		}
	}
	return count
}

// HasEdgeBetweenTypes reports whether any edge connects a node of type
// source to a node of type target. Edges with dangling endpoints are
// skipped.
func (g *Graph) HasEdgeBetweenTypes(source, target NodeType) bool {
	for _, e := range g.Edges {
		s := g.NodeByID(e.Source)
		t := g.NodeByID(e.Target)
		if s != nil && t != nil && s.Type == source && t.Type == target {
			return true
		}
	}
	return false
}

// EdgesBetweenTypes returns all edges connecting a node of type source
// to a node of type target.
func (g *Graph) EdgesBetweenTypes(source, target NodeType) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		s := g.NodeByID(e.Source)
		t := g.NodeByID(e.Target)
		if s != nil && t != nil && s.Type == source && t.Type == target {
			result = append(result, e)
		}
	}
	return result
}

// Fingerprint returns a hex-encoded SHA-256 hash of the ordered node and
// edge lists. Two graphs with the same nodes, types, and connections in
// the same order share a fingerprint; it keys the optimizer result cache.
func (g *Graph) Fingerprint() string {
	h := sha256.New()
	for _, n := range g.Nodes {
		h.Write([]byte(n.ID))
		h.Write([]byte{0})
		h.Write([]byte(n.Type))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})
	for _, e := range g.Edges {
		h.Write([]byte(e.Source))
		h.Write([]byte{0})
		h.Write([]byte(e.Target))
		h.Write([]byte{0})
		h.Write([]byte(e.SourcePort))
		h.Write([]byte{0})
		h.Write([]byte(e.TargetPort))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
