// Package patterns recognizes contract templates, anti-patterns, and
// security issues in contract graphs. Pattern definitions are declarative
// catalogs of node-type sequences and type-level adjacencies; the engine
// builds its catalogs once and is safe to share across goroutines.
package patterns

import (
	"fmt"

	"github.com/canvas-contracts/go-canvas/graph"
)

// Category classifies a recognized contract template.
type Category string

const (
	CategoryToken       Category = "token"
	CategoryVoting      Category = "voting"
	CategoryEscrow      Category = "escrow"
	CategoryMarketplace Category = "marketplace"
	CategoryGovernance  Category = "governance"
	CategoryCustom      Category = "custom"
)

// Severity grades anti-pattern and security findings.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Adjacency is a type-level edge requirement: some node of Source type
// connects directly to some node of Target type.
type Adjacency struct {
	Source graph.NodeType
	Target graph.NodeType
}

// Definition describes a known-good contract template.
// Sequence entries are presence criteria; Connections are type-level
// adjacency criteria. Both count toward confidence.
type Definition struct {
	Name        string
	Description string
	Category    Category
	Sequence    []graph.NodeType
	Connections []Adjacency
	Optional    []graph.NodeType
}

// AntiPattern describes a structural shape correlated with a design
// weakness. Window is matched by sliding over node insertion order;
// Adjacency fires on any type-level edge match, independent of order.
type AntiPattern struct {
	Name        string
	Description string
	Severity    Severity
	Window      []graph.NodeType
	Adjacency   []Adjacency
	Suggestion  string
}

// SecurityPattern is an AntiPattern shape with a known exploit class.
// Reference carries a vulnerability identifier when one exists.
type SecurityPattern struct {
	Name        string
	Description string
	Severity    Severity
	Reference   string
	Window      []graph.NodeType
	Adjacency   []Adjacency
	Mitigation  string
}

// Match is one recognized contract template.
type Match struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Confidence  float64  `json:"confidence"`
	Nodes       []string `json:"nodes,omitempty"`
}

// AntiPatternFinding is one detected anti-pattern occurrence.
type AntiPatternFinding struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Nodes       []string `json:"nodes,omitempty"`
	Suggestion  string   `json:"suggestion"`
}

// SecurityFinding is one detected security issue.
type SecurityFinding struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Nodes       []string `json:"nodes,omitempty"`
	Reference   string   `json:"reference,omitempty"`
	Mitigation  string   `json:"mitigation"`
}

// maxWindow bounds sequence-window length; longer windows are a catalog
// authoring mistake, not a runtime condition.
const maxWindow = 3

// Engine matches catalogs of pattern definitions against graphs.
// Catalogs are fixed at construction; methods are read-only and safe
// for concurrent use.
type Engine struct {
	patterns     []Definition
	antiPatterns []AntiPattern
	security     []SecurityPattern
}

// NewEngine returns an engine loaded with the built-in catalogs.
func NewEngine() *Engine {
	e, err := NewEngineWithCatalogs(DefaultPatterns(), DefaultAntiPatterns(), DefaultSecurityPatterns())
	if err != nil {
		// The built-in catalogs are static; a failure here is a bug.
		panic(fmt.Sprintf("patterns: invalid built-in catalog: %v", err))
	}
	return e
}

// NewEngineWithCatalogs returns an engine over the given catalogs,
// rejecting malformed entries up front.
func NewEngineWithCatalogs(patterns []Definition, antiPatterns []AntiPattern, security []SecurityPattern) (*Engine, error) {
	for _, p := range patterns {
		if p.Name == "" {
			return nil, fmt.Errorf("pattern definition with empty name")
		}
		if len(p.Sequence) == 0 && len(p.Connections) == 0 {
			return nil, fmt.Errorf("pattern %q has no matching criteria", p.Name)
		}
	}
	for _, a := range antiPatterns {
		if err := checkShape(a.Name, a.Window, a.Adjacency); err != nil {
			return nil, err
		}
	}
	for _, s := range security {
		if err := checkShape(s.Name, s.Window, s.Adjacency); err != nil {
			return nil, err
		}
	}
	return &Engine{patterns: patterns, antiPatterns: antiPatterns, security: security}, nil
}

func checkShape(name string, window []graph.NodeType, adjacency []Adjacency) error {
	if name == "" {
		return fmt.Errorf("catalog entry with empty name")
	}
	if len(window) == 0 && len(adjacency) == 0 {
		return fmt.Errorf("entry %q has neither a window nor an adjacency rule", name)
	}
	if len(window) > maxWindow {
		return fmt.Errorf("entry %q has window length %d, max %d", name, len(window), maxWindow)
	}
	return nil
}

// Recognize returns every template whose confidence exceeds minConfidence.
// Confidence is matched criteria over total criteria, with the denominator
// fixed up front, so an unmet required adjacency always lowers the score.
func (e *Engine) Recognize(g *graph.Graph, minConfidence float64) []Match {
	var matches []Match
	for _, def := range e.patterns {
		confidence := e.confidence(g, def)
		if confidence <= minConfidence {
			continue
		}
		matches = append(matches, Match{
			Name:        def.Name,
			Description: def.Description,
			Category:    def.Category,
			Confidence:  confidence,
			Nodes:       sequenceNodes(g, def.Sequence),
		})
	}
	return matches
}

func (e *Engine) confidence(g *graph.Graph, def Definition) float64 {
	total := len(def.Sequence) + len(def.Connections)
	if total == 0 {
		return 0
	}
	matched := 0
	for _, t := range def.Sequence {
		if g.CountType(t) > 0 {
			matched++
		}
	}
	for _, conn := range def.Connections {
		if g.HasEdgeBetweenTypes(conn.Source, conn.Target) {
			matched++
		}
	}
	return float64(matched) / float64(total)
}

// sequenceNodes collects every node whose type appears in the sequence.
// This is a coarse membership set, not the exact matched subgraph; the
// trade-off favors recall so the editor can highlight all candidates.
func sequenceNodes(g *graph.Graph, sequence []graph.NodeType) []string {
	inSequence := make(map[graph.NodeType]bool, len(sequence))
	for _, t := range sequence {
		inSequence[t] = true
	}
	var ids []string
	for _, n := range g.Nodes {
		if inSequence[n.Type] {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// DetectAntiPatterns returns a finding for every catalog entry whose
// window or adjacency rule matches the graph.
func (e *Engine) DetectAntiPatterns(g *graph.Graph) []AntiPatternFinding {
	var findings []AntiPatternFinding
	for _, def := range e.antiPatterns {
		nodes := shapeNodes(g, def.Window, def.Adjacency)
		if nodes == nil {
			continue
		}
		findings = append(findings, AntiPatternFinding{
			Name:        def.Name,
			Description: def.Description,
			Severity:    def.Severity,
			Nodes:       nodes,
			Suggestion:  def.Suggestion,
		})
	}
	return findings
}

// DetectSecurityIssues returns a finding for every security catalog entry
// whose window or adjacency rule matches the graph.
func (e *Engine) DetectSecurityIssues(g *graph.Graph) []SecurityFinding {
	var findings []SecurityFinding
	for _, def := range e.security {
		nodes := shapeNodes(g, def.Window, def.Adjacency)
		if nodes == nil {
			continue
		}
		findings = append(findings, SecurityFinding{
			Name:        def.Name,
			Description: def.Description,
			Severity:    def.Severity,
			Nodes:       nodes,
			Reference:   def.Reference,
			Mitigation:  def.Mitigation,
		})
	}
	return findings
}

// shapeNodes returns the node ids matched by a window or adjacency rule,
// or nil when neither matches. Overlapping window matches each contribute
// their own ids; callers wanting a set must deduplicate themselves.
func shapeNodes(g *graph.Graph, window []graph.NodeType, adjacency []Adjacency) []string {
	var nodes []string
	matched := false

	for _, ids := range WindowMatches(g, window) {
		matched = true
		nodes = append(nodes, ids...)
	}
	for _, pair := range adjacency {
		for _, e := range g.EdgesBetweenTypes(pair.Source, pair.Target) {
			matched = true
			nodes = append(nodes, e.Source, e.Target)
		}
	}

	if !matched {
		return nil
	}
	return nodes
}

// WindowMatches slides a window of len(window) over the node list in
// insertion order and returns the node ids of every exact type match.
// Insertion order mirrors what the editor serializes, so adjacent nodes
// in the list are usually adjacent on the canvas.
func WindowMatches(g *graph.Graph, window []graph.NodeType) [][]string {
	if len(window) == 0 || len(g.Nodes) < len(window) {
		return nil
	}
	var matches [][]string
	for i := 0; i+len(window) <= len(g.Nodes); i++ {
		hit := true
		for j, t := range window {
			if g.Nodes[i+j].Type != t {
				hit = false
				break
			}
		}
		if hit {
			ids := make([]string, len(window))
			for j := range window {
				ids[j] = g.Nodes[i+j].ID
			}
			matches = append(matches, ids)
		}
	}
	return matches
}

// categoryAdvice maps recognized template categories to follow-up advice.
var categoryAdvice = map[Category][]string{
	CategoryToken: {
		"Consider adding transfer validation",
		"Add balance checking before transfers",
	},
	CategoryVoting: {
		"Add vote deadline checking",
		"Consider vote weight validation",
	},
	CategoryEscrow: {
		"Add timeout mechanism",
		"Consider dispute resolution",
	},
}

// AdvisorySuggestions combines category advice for recognized templates
// with each anti-pattern finding's own suggestion, in order, without
// deduplication.
func AdvisorySuggestions(matches []Match, antiPatterns []AntiPatternFinding) []string {
	var suggestions []string
	for _, m := range matches {
		suggestions = append(suggestions, categoryAdvice[m.Category]...)
	}
	for _, f := range antiPatterns {
		suggestions = append(suggestions, f.Suggestion)
	}
	return suggestions
}
