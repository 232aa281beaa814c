package patterns

import "github.com/canvas-contracts/go-canvas/graph"

// DefaultPatterns returns the built-in contract template catalog.
func DefaultPatterns() []Definition {
	return []Definition{
		{
			Name:        "ERC-20 Token",
			Description: "Standard fungible token contract",
			Category:    CategoryToken,
			Sequence:    []graph.NodeType{graph.State, graph.Logic, graph.External},
			Connections: []Adjacency{
				{Source: graph.State, Target: graph.Logic},
				{Source: graph.Logic, Target: graph.External},
			},
			Optional: []graph.NodeType{graph.Control},
		},
		{
			Name:        "Voting Mechanism",
			Description: "Decentralized voting system",
			Category:    CategoryVoting,
			Sequence:    []graph.NodeType{graph.State, graph.Logic, graph.Control},
			Connections: []Adjacency{
				{Source: graph.State, Target: graph.Logic},
				{Source: graph.Control, Target: graph.Logic},
			},
			Optional: []graph.NodeType{graph.External},
		},
		{
			Name:        "Escrow Contract",
			Description: "Conditional payment system",
			Category:    CategoryEscrow,
			Sequence:    []graph.NodeType{graph.State, graph.Logic, graph.Control},
			Connections: []Adjacency{
				{Source: graph.State, Target: graph.Logic},
				{Source: graph.Control, Target: graph.Logic},
			},
			Optional: []graph.NodeType{graph.External},
		},
	}
}

// DefaultAntiPatterns returns the built-in anti-pattern catalog.
func DefaultAntiPatterns() []AntiPattern {
	return []AntiPattern{
		{
			Name:        "Unchecked Arithmetic",
			Description: "Arithmetic operations without overflow checks",
			Severity:    SeverityHigh,
			Window:      []graph.NodeType{graph.Arithmetic, graph.State},
			Suggestion:  "Add overflow checks before arithmetic operations",
		},
		{
			Name:        "Reentrancy Risk",
			Description: "External calls before state updates",
			Severity:    SeverityCritical,
			Window:      []graph.NodeType{graph.External, graph.State},
			Adjacency:   []Adjacency{{Source: graph.External, Target: graph.State}},
			Suggestion:  "Update state before making external calls",
		},
		{
			Name:        "Missing Access Control",
			Description: "State modifications without permission checks",
			Severity:    SeverityHigh,
			Window:      []graph.NodeType{graph.State},
			Suggestion:  "Add access control checks before state modifications",
		},
	}
}

// DefaultSecurityPatterns returns the built-in security catalog.
// Reentrancy also matches on the External to State edge itself, so the
// finding fires even when the two nodes are not adjacent in the node list.
func DefaultSecurityPatterns() []SecurityPattern {
	return []SecurityPattern{
		{
			Name:        "Integer Overflow",
			Description: "Potential integer overflow in arithmetic operations",
			Severity:    SeverityHigh,
			Reference:   "CVE-2018-10299",
			Window:      []graph.NodeType{graph.Arithmetic, graph.State},
			Mitigation:  "Use checked arithmetic operations or SafeMath library",
		},
		{
			Name:        "Reentrancy Attack",
			Description: "Vulnerable to reentrancy attacks",
			Severity:    SeverityCritical,
			Reference:   "CVE-2016-10709",
			Window:      []graph.NodeType{graph.External, graph.State},
			Adjacency:   []Adjacency{{Source: graph.External, Target: graph.State}},
			Mitigation:  "Follow checks-effects-interactions pattern",
		},
		{
			Name:        "Access Control Bypass",
			Description: "Missing or insufficient access controls",
			Severity:    SeverityHigh,
			Window:      []graph.NodeType{graph.State},
			Mitigation:  "Implement proper access control mechanisms",
		},
	}
}
