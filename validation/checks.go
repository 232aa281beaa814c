package validation

import (
	"fmt"

	"github.com/canvas-contracts/go-canvas/graph"
)

// DefaultRules returns the standard rule list in evaluation order.
func DefaultRules(cfg Config) []Rule {
	return []Rule{
		structureRule{},
		portTypeRule{},
		cycleRule{},
		reachabilityRule{},
		inputRule{required: cfg.RequiredInputs},
		cardinalityRule{},
		complexityRule{max: cfg.MaxReasonableNodes},
	}
}

// adjacency builds a source -> targets map from the edge list.
func adjacency(g *graph.Graph) map[string][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

// HasCycles reports whether the graph contains a directed cycle and
// returns the node ids on the first cycle found. Every weakly-connected
// component is covered, not just nodes reachable from Start, and the
// answer does not depend on DFS root order.
func HasCycles(g *graph.Graph) (bool, []string) {
	adj := adjacency(g)

	const (
		white = 0 // unvisited
		grey  = 1 // on the recursion stack
		black = 2 // fully explored
	)
	color := make(map[string]int, len(g.Nodes))
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		color[id] = grey
		path = append(path, id)
		for _, next := range adj[id] {
			switch color[next] {
			case grey:
				// Re-encountered a node still on the stack: the cycle is
				// the path suffix starting at that node.
				for i, p := range path {
					if p == next {
						return append([]string(nil), path[i:]...)
					}
				}
				return []string{next}
			case white:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		color[id] = black
		path = path[:len(path)-1]
		return nil
	}

	for _, n := range g.Nodes {
		if color[n.ID] != white {
			continue
		}
		path = path[:0]
		if cycle := visit(n.ID); cycle != nil {
			return true, cycle
		}
	}
	return false, nil
}

// UnreachableNodes returns the ids of nodes not reachable from any
// Start node via breadth-first traversal, each id exactly once, in
// insertion order. A graph with no Start node reports every node.
func UnreachableNodes(g *graph.Graph) []string {
	reached := make(map[string]bool, len(g.Nodes))
	var queue []string
	for _, n := range g.Nodes {
		if n.Type == graph.Start && !reached[n.ID] {
			reached[n.ID] = true
			queue = append(queue, n.ID)
		}
	}

	adj := adjacency(g)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adj[current] {
			if !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}

	var unreachable []string
	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if !reached[n.ID] && !seen[n.ID] {
			seen[n.ID] = true
			unreachable = append(unreachable, n.ID)
		}
	}
	return unreachable
}

// structureRule flags malformed input: duplicate node ids, unknown node
// types, dangling edge endpoints, and edges naming undeclared ports.
// These are findings, not panics; the graph comes from an editor this
// module does not control.
type structureRule struct{}

func (structureRule) Name() string { return "structure" }

func (structureRule) Evaluate(g *graph.Graph) []Issue {
	var issues []Issue

	counts := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		counts[n.ID]++
	}
	for _, n := range g.Nodes {
		if counts[n.ID] > 1 {
			issues = append(issues, Issue{
				Severity:   SeverityError,
				Category:   "structure",
				Message:    fmt.Sprintf("duplicate node id %q (%d occurrences)", n.ID, counts[n.ID]),
				Nodes:      []string{n.ID},
				Suggestion: "Assign a unique id to every node",
			})
			counts[n.ID] = 1 // report each duplicated id once
		}
		if !graph.KnownType(n.Type) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Category: "structure",
				Message:  fmt.Sprintf("node %q has unknown type %q", n.ID, n.Type),
				Nodes:    []string{n.ID},
			})
		}
	}

	for _, e := range g.Edges {
		source := g.NodeByID(e.Source)
		target := g.NodeByID(e.Target)
		if source == nil {
			issues = append(issues, Issue{
				Severity:   SeverityError,
				Category:   "structure",
				Message:    fmt.Sprintf("edge %q references missing source node %q", e.ID, e.Source),
				Suggestion: "Remove the edge or restore the node",
			})
		}
		if target == nil {
			issues = append(issues, Issue{
				Severity:   SeverityError,
				Category:   "structure",
				Message:    fmt.Sprintf("edge %q references missing target node %q", e.ID, e.Target),
				Suggestion: "Remove the edge or restore the node",
			})
		}
		if source != nil && e.SourcePort != "" && source.Output(e.SourcePort) == nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Category: "structure",
				Message:  fmt.Sprintf("edge %q references missing output port %q on node %q", e.ID, e.SourcePort, e.Source),
				Nodes:    []string{e.Source},
			})
		}
		if target != nil && e.TargetPort != "" && target.Input(e.TargetPort) == nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Category: "structure",
				Message:  fmt.Sprintf("edge %q references missing input port %q on node %q", e.ID, e.TargetPort, e.Target),
				Nodes:    []string{e.Target},
			})
		}
	}
	return issues
}

// portTypeRule checks value-type compatibility across every edge that
// names both of its ports.
type portTypeRule struct{}

func (portTypeRule) Name() string { return "types" }

func (portTypeRule) Evaluate(g *graph.Graph) []Issue {
	var issues []Issue
	for _, e := range g.Edges {
		source := g.NodeByID(e.Source)
		target := g.NodeByID(e.Target)
		if source == nil || target == nil || e.SourcePort == "" || e.TargetPort == "" {
			continue
		}
		out := source.Output(e.SourcePort)
		in := target.Input(e.TargetPort)
		if out == nil || in == nil {
			continue // structureRule already reported the missing port
		}
		if !graph.Compatible(out.Type, in.Type) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Category: "types",
				Message: fmt.Sprintf("type mismatch on edge %q: %s output %q (%s) -> %s input %q (%s)",
					e.ID, e.Source, e.SourcePort, out.Type, e.Target, e.TargetPort, in.Type),
				Nodes:      []string{e.Source, e.Target},
				Suggestion: "Insert a conversion node or change the port types",
			})
		}
	}
	return issues
}

// cycleRule reports directed cycles in the execution flow.
type cycleRule struct{}

func (cycleRule) Name() string { return "cycles" }

func (cycleRule) Evaluate(g *graph.Graph) []Issue {
	hasCycles, nodes := HasCycles(g)
	if !hasCycles {
		return nil
	}
	return []Issue{{
		Severity:   SeverityError,
		Category:   "cycles",
		Message:    "graph contains a cycle in execution flow",
		Nodes:      nodes,
		Suggestion: "Break the cycle; contract execution must terminate",
	}}
}

// reachabilityRule warns about nodes no Start node can reach.
type reachabilityRule struct{}

func (reachabilityRule) Name() string { return "reachability" }

func (reachabilityRule) Evaluate(g *graph.Graph) []Issue {
	if len(g.Nodes) == 0 {
		return nil
	}
	unreachable := UnreachableNodes(g)
	if len(unreachable) == 0 {
		return nil
	}
	if g.CountType(graph.Start) == 0 {
		// A missing Start node is a cardinality error, not a
		// reachability warning on every node.
		return nil
	}
	return []Issue{{
		Severity:   SeverityWarning,
		Category:   "reachability",
		Message:    fmt.Sprintf("found %d unreachable nodes", len(unreachable)),
		Nodes:      unreachable,
		Suggestion: "Connect these nodes to the execution flow or remove them",
	}}
}

// inputRule checks input completeness. Nodes that declare input ports
// get the precise per-port check: every required port must have an edge
// naming it. Nodes without declared ports fall back to the per-type
// incoming-degree table.
type inputRule struct {
	required map[graph.NodeType]int
}

func (inputRule) Name() string { return "inputs" }

func (r inputRule) Evaluate(g *graph.Graph) []Issue {
	var issues []Issue
	for _, n := range g.Nodes {
		if n.Type == graph.Start {
			continue
		}
		incoming := g.Incoming(n.ID)

		if len(n.Inputs) > 0 {
			for _, port := range n.Inputs {
				if !port.Required {
					continue
				}
				connected := false
				for _, e := range incoming {
					if e.TargetPort == port.Name {
						connected = true
						break
					}
				}
				if !connected {
					issues = append(issues, Issue{
						Severity:   SeverityError,
						Category:   "inputs",
						Message:    fmt.Sprintf("node %q has unconnected required input %q", n.ID, port.Name),
						Nodes:      []string{n.ID},
						Suggestion: "Connect the input or mark the port optional",
					})
				}
			}
			continue
		}

		want := r.required[n.Type]
		if len(incoming) < want {
			issues = append(issues, Issue{
				Severity:   SeverityError,
				Category:   "inputs",
				Message:    fmt.Sprintf("node %q has %d of %d required inputs", n.ID, len(incoming), want),
				Nodes:      []string{n.ID},
				Suggestion: "Connect the remaining inputs",
			})
		}
	}
	return issues
}

// cardinalityRule requires exactly one Start and one End node.
type cardinalityRule struct{}

func (cardinalityRule) Name() string { return "cardinality" }

func (cardinalityRule) Evaluate(g *graph.Graph) []Issue {
	starts := g.CountType(graph.Start)
	ends := g.CountType(graph.End)
	if starts == 1 && ends == 1 {
		return nil
	}
	return []Issue{{
		Severity:   SeverityError,
		Category:   "cardinality",
		Message:    fmt.Sprintf("expected 1 start and 1 end, found %d start and %d end", starts, ends),
		Suggestion: "Every contract needs exactly one entry and one exit node",
	}}
}

// complexityRule warns when the graph grows past the configured size.
type complexityRule struct {
	max int
}

func (complexityRule) Name() string { return "complexity" }

func (r complexityRule) Evaluate(g *graph.Graph) []Issue {
	if len(g.Nodes) <= r.max {
		return nil
	}
	return []Issue{{
		Severity:   SeverityWarning,
		Category:   "complexity",
		Message:    fmt.Sprintf("graph has %d nodes, above the recommended limit of %d", len(g.Nodes), r.max),
		Suggestion: "Consider splitting the contract into smaller graphs",
	}}
}
