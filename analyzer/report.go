package analyzer

import (
	"time"

	"github.com/canvas-contracts/go-canvas/graph"
	"github.com/canvas-contracts/go-canvas/results"
)

// Report runs the full engine over a graph and bundles everything into
// one archivable report.
func (a *Analyzer) Report(g *graph.Graph, name string) *results.Report {
	analysis := a.Analyze(g)
	profile := a.Profile(g)

	return &results.Report{
		Fingerprint:    g.Fingerprint(),
		Name:           name,
		CreatedAt:      time.Now().UTC(),
		Validation:     a.Validate(g),
		Patterns:       analysis.Patterns,
		AntiPatterns:   analysis.AntiPatterns,
		SecurityIssues: analysis.SecurityIssues,
		Suggestions:    analysis.Suggestions,
		GasEstimate:    a.EstimateGas(g),
		Profile:        &profile,
		Optimization:   a.Optimize(g),
	}
}
