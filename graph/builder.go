package graph

import "github.com/google/uuid"

// NewID returns a fresh node or edge identifier.
// The editor uses UUIDs for both, so generated graphs match its format.
func NewID() string {
	return uuid.NewString()
}

// Builder provides a fluent API for constructing contract graphs.
// It assigns canvas coordinates automatically and generates edge ids,
// so tests and examples stay compact.
//
// Example:
//
//	g := graph.Build().
//	    Node("start", graph.Start).
//	    Node("balance", graph.State).
//	    Node("transfer", graph.Logic).
//	    Node("end", graph.End).
//	    Edge("start", "balance").
//	    Edge("balance", "transfer").
//	    Edge("transfer", "end").
//	    Done()
type Builder struct {
	g     *Graph
	nextX float64
	nextY float64
}

// Build creates a new Builder.
func Build() *Builder {
	return &Builder{g: New(), nextX: 100, nextY: 100}
}

// Node adds a node with the given id and type.
func (b *Builder) Node(id string, t NodeType) *Builder {
	b.g.AddNode(&Node{ID: id, Type: t, X: b.nextX, Y: b.nextY})
	b.nextX += 120
	return b
}

// AutoNode adds a node with a generated UUID id and returns that id
// through out, which may be nil.
func (b *Builder) AutoNode(t NodeType, out *string) *Builder {
	id := NewID()
	if out != nil {
		*out = id
	}
	return b.Node(id, t)
}

// NodeWithPorts adds a node carrying declared input and output ports.
func (b *Builder) NodeWithPorts(id string, t NodeType, inputs, outputs []Port) *Builder {
	b.g.AddNode(&Node{ID: id, Type: t, X: b.nextX, Y: b.nextY, Inputs: inputs, Outputs: outputs})
	b.nextX += 120
	return b
}

// Property sets a property on the most recently added node.
func (b *Builder) Property(key string, value any) *Builder {
	if len(b.g.Nodes) == 0 {
		return b
	}
	n := b.g.Nodes[len(b.g.Nodes)-1]
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	n.Properties[key] = value
	return b
}

// Edge adds an edge from source to target with a generated id.
func (b *Builder) Edge(source, target string) *Builder {
	b.g.AddEdge(&Edge{ID: NewID(), Source: source, Target: target})
	return b
}

// EdgePorts adds an edge naming the source and target ports.
func (b *Builder) EdgePorts(source, sourcePort, target, targetPort string) *Builder {
	b.g.AddEdge(&Edge{
		ID:         NewID(),
		Source:     source,
		Target:     target,
		SourcePort: sourcePort,
		TargetPort: targetPort,
	})
	return b
}

// Chain adds nodes for each (id, type) pair and connects them in
// sequence. ids and types must have equal length.
//
// Example:
//
//	graph.Build().Chain(
//	    []string{"start", "balance", "transfer", "end"},
//	    []graph.NodeType{graph.Start, graph.State, graph.Logic, graph.End},
//	).Done()
func (b *Builder) Chain(ids []string, types []NodeType) *Builder {
	if len(ids) != len(types) {
		return b
	}
	for i := range ids {
		b.Node(ids[i], types[i])
		if i > 0 {
			b.Edge(ids[i-1], ids[i])
		}
	}
	return b
}

// Done returns the completed graph.
func (b *Builder) Done() *Graph {
	return b.g
}
