// Package optimize produces gas-saving suggestions for contract graphs.
// The optimizer never rewrites the graph; it reports what a rewrite
// would save and leaves the transformation to a future codegen pass.
package optimize

import (
	"fmt"

	"github.com/canvas-contracts/go-canvas/gas"
	"github.com/canvas-contracts/go-canvas/graph"
	"github.com/canvas-contracts/go-canvas/patterns"
	"github.com/canvas-contracts/go-canvas/validation"
)

// Suggestion is one proposed gas optimization.
type Suggestion struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Saving         uint64   `json:"estimatedGasSavings"`
	Nodes          []string `json:"nodes,omitempty"`
	Implementation string   `json:"implementation"`
}

// Result is the outcome of one optimization run.
// OptimizedGas is OriginalGas minus GasSavings, floored at zero.
type Result struct {
	OriginalGas  uint64       `json:"originalGas"`
	OptimizedGas uint64       `json:"optimizedGas"`
	GasSavings   uint64       `json:"gasSavings"`
	Suggestions  []Suggestion `json:"suggestions,omitempty"`
}

// RewriteRule proposes a local rewrite when its type window occurs in
// the node list. Each rule contributes at most one suggestion per run,
// built from the first window match.
type RewriteRule struct {
	Title          string
	Description    string
	Window         []graph.NodeType
	Saving         uint64
	Implementation string
}

// DefaultRewriteRules returns the built-in rewrite catalog.
func DefaultRewriteRules() []RewriteRule {
	return []RewriteRule{
		{
			Title:          "Batch Arithmetic Operations",
			Description:    "Combine consecutive arithmetic operations",
			Window:         []graph.NodeType{graph.Arithmetic, graph.Arithmetic},
			Saving:         3,
			Implementation: "Merge adjacent arithmetic nodes into a single expression",
		},
		{
			Title:          "Cache Storage Read",
			Description:    "Cache frequently accessed storage values",
			Window:         []graph.NodeType{graph.State, graph.Logic, graph.State},
			Saving:         100,
			Implementation: "Store storage value in memory variable for multiple uses",
		},
		{
			Title:          "Cache External Call",
			Description:    "Avoid repeating the same external call",
			Window:         []graph.NodeType{graph.External, graph.Logic, graph.External},
			Saving:         2600,
			Implementation: "Cache external call results in state variables",
		},
		{
			Title:          "Optimize Control Flow",
			Description:    "Simplify nested control structures",
			Window:         []graph.NodeType{graph.Control, graph.Control},
			Saving:         1,
			Implementation: "Combine multiple conditions into a single expression",
		},
	}
}

// Optimizer analyzes graphs against a cost table and a rewrite catalog.
// It is stateless and safe for concurrent use; pair it with a Cache when
// repeated runs over identical graphs are expected.
type Optimizer struct {
	table gas.CostTable
	rules []RewriteRule
}

// New returns an optimizer using the given cost table and the built-in
// rewrite catalog.
func New(table gas.CostTable) *Optimizer {
	return &Optimizer{table: table, rules: DefaultRewriteRules()}
}

// NewWithRules returns an optimizer with a custom rewrite catalog.
func NewWithRules(table gas.CostTable, rules []RewriteRule) *Optimizer {
	return &Optimizer{table: table, rules: rules}
}

// Optimize estimates the graph's gas cost and collects suggestions from
// the rewrite catalog, the aggregate heuristics, and the dead-code pass.
// The result is a pure function of the graph and the optimizer's tables.
func (o *Optimizer) Optimize(g *graph.Graph) *Result {
	original := gas.Estimate(g, o.table)

	var suggestions []Suggestion
	suggestions = append(suggestions, o.rewriteSuggestions(g)...)
	suggestions = append(suggestions, aggregateSuggestions(g)...)
	suggestions = append(suggestions, deadCodeSuggestions(g)...)

	var savings uint64
	for _, s := range suggestions {
		savings += s.Saving
	}

	optimized := original - savings
	if savings > original {
		optimized = 0
	}
	return &Result{
		OriginalGas:  original,
		OptimizedGas: optimized,
		GasSavings:   savings,
		Suggestions:  suggestions,
	}
}

func (o *Optimizer) rewriteSuggestions(g *graph.Graph) []Suggestion {
	var suggestions []Suggestion
	for _, rule := range o.rules {
		matches := patterns.WindowMatches(g, rule.Window)
		if len(matches) == 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Title:          rule.Title,
			Description:    rule.Description,
			Saving:         rule.Saving,
			Nodes:          matches[0],
			Implementation: rule.Implementation,
		})
	}
	return suggestions
}

// aggregateSuggestions applies threshold heuristics over node-type counts.
func aggregateSuggestions(g *graph.Graph) []Suggestion {
	var suggestions []Suggestion

	if states := g.NodesOfType(graph.State); len(states) > 5 {
		suggestions = append(suggestions, Suggestion{
			Title:          "Reduce State Operations",
			Description:    "Consider batching state operations to reduce gas costs",
			Saving:         uint64(len(states)-5) * 5000,
			Nodes:          nodeIDs(states),
			Implementation: "Batch multiple state updates into a single operation",
		})
	}
	if externals := g.NodesOfType(graph.External); len(externals) > 3 {
		suggestions = append(suggestions, Suggestion{
			Title:          "Optimize External Calls",
			Description:    "Consider caching external call results",
			Saving:         uint64(len(externals)-3) * 1000,
			Nodes:          nodeIDs(externals),
			Implementation: "Cache external call results in state variables",
		})
	}
	if arithmetics := g.NodesOfType(graph.Arithmetic); len(arithmetics) > 10 {
		suggestions = append(suggestions, Suggestion{
			Title:          "Optimize Arithmetic Operations",
			Description:    "Consider using bit shifting for power-of-2 operations",
			Saving:         uint64(len(arithmetics)) * 10,
			Nodes:          nodeIDs(arithmetics),
			Implementation: "Replace multiplication/division by powers of 2 with bit shifts",
		})
	}
	return suggestions
}

// deadCodeSuggestions proposes removing nodes unreachable from Start.
// Skipped when the graph has no Start node at all: reachability is
// undefined there and the validator already reports the missing entry.
func deadCodeSuggestions(g *graph.Graph) []Suggestion {
	if g.CountType(graph.Start) == 0 {
		return nil
	}
	unreachable := validation.UnreachableNodes(g)
	if len(unreachable) == 0 {
		return nil
	}
	return []Suggestion{{
		Title:          "Remove Unreachable Nodes",
		Description:    fmt.Sprintf("Remove %d nodes never reached from the entry point", len(unreachable)),
		Saving:         uint64(len(unreachable)) * 100,
		Nodes:          unreachable,
		Implementation: "Delete the unreachable nodes or connect them to the flow",
	}}
}

func nodeIDs(nodes []*graph.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
