// Package validation provides structural analysis for contract graphs:
// cycle detection, reachability, input completeness, cardinality, port
// type compatibility, and complexity limits.
package validation

import (
	"fmt"

	"github.com/canvas-contracts/go-canvas/graph"
)

// Severity grades a finding. Only Error and Critical affect validity.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Issue is a single validation finding.
type Issue struct {
	Severity   Severity `json:"severity"`
	Category   string   `json:"category"` // "structure", "cycles", "reachability", ...
	Message    string   `json:"message"`
	Nodes      []string `json:"nodes,omitempty"` // affected node ids; empty for graph-wide findings
	Suggestion string   `json:"suggestion,omitempty"`
}

// Result contains the outcome of validating one graph.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
	Info     []Issue `json:"info,omitempty"`
	Summary  Summary `json:"summary"`
}

// Summary provides an overview of validation.
type Summary struct {
	Nodes       int      `json:"nodes"`
	Edges       int      `json:"edges"`
	Errors      int      `json:"errors"`
	Warnings    int      `json:"warnings"`
	HasCycles   bool     `json:"hasCycles"`
	Unreachable []string `json:"unreachable,omitempty"`
}

// add routes an issue into the severity bucket it belongs to.
func (r *Result) add(issue Issue) {
	switch issue.Severity {
	case SeverityError, SeverityCritical:
		r.Errors = append(r.Errors, issue)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, issue)
	default:
		r.Info = append(r.Info, issue)
	}
}

// Rule is a single validation check. Rules are stateless: the same rule
// value is reused across graphs and concurrent callers.
type Rule interface {
	Name() string
	Evaluate(g *graph.Graph) []Issue
}

// Config tunes the validator.
type Config struct {
	// MaxReasonableNodes is the complexity threshold; above it the graph
	// gets a warning, never an error.
	MaxReasonableNodes int

	// RequiredInputs maps node types to the minimum incoming edge count
	// used when a node declares no input ports of its own.
	RequiredInputs map[graph.NodeType]int
}

// DefaultRequiredInputs is the fallback incoming-degree table.
// Start needs none; binary operators need two; everything else one.
var DefaultRequiredInputs = map[graph.NodeType]int{
	graph.Logic:      2,
	graph.Arithmetic: 2,
	graph.State:      1,
	graph.External:   1,
	graph.Control:    1,
	graph.End:        1,
}

// DefaultConfig returns the standard validator configuration.
func DefaultConfig() Config {
	return Config{
		MaxReasonableNodes: 50,
		RequiredInputs:     DefaultRequiredInputs,
	}
}

// Validator runs an ordered list of rules over a graph.
// The rule list is built once at construction and never mutated, so a
// single Validator is safe to share across goroutines.
type Validator struct {
	rules []Rule
}

// New creates a validator with the default rule set.
func New(cfg Config) *Validator {
	if cfg.MaxReasonableNodes <= 0 {
		cfg.MaxReasonableNodes = 50
	}
	if cfg.RequiredInputs == nil {
		cfg.RequiredInputs = DefaultRequiredInputs
	}
	return &Validator{rules: DefaultRules(cfg)}
}

// NewWithRules creates a validator with a custom rule list.
func NewWithRules(rules []Rule) *Validator {
	return &Validator{rules: rules}
}

// Validate runs every rule and aggregates the findings.
// A rule that panics is reported as a warning finding and the remaining
// rules still run; partial advisory output beats total failure.
func (v *Validator) Validate(g *graph.Graph) *Result {
	result := &Result{
		Valid: true,
		Summary: Summary{
			Nodes: len(g.Nodes),
			Edges: len(g.Edges),
		},
	}

	for _, rule := range v.rules {
		for _, issue := range evaluate(rule, g) {
			result.add(issue)
		}
	}

	hasCycles, _ := HasCycles(g)
	result.Summary.HasCycles = hasCycles
	// Same suppression as the reachability rule: with no Start node the
	// whole graph is trivially unreachable, and cardinality already
	// reports the missing entry point.
	if g.CountType(graph.Start) > 0 {
		result.Summary.Unreachable = UnreachableNodes(g)
	}

	result.Valid = len(result.Errors) == 0
	result.Summary.Errors = len(result.Errors)
	result.Summary.Warnings = len(result.Warnings)
	return result
}

// evaluate runs one rule, converting a panic into a finding.
func evaluate(rule Rule, g *graph.Graph) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Category: "rules",
				Message:  fmt.Sprintf("rule %q failed to evaluate: %v", rule.Name(), r),
			})
		}
	}()
	return rule.Evaluate(g)
}
