package analyzer

import (
	"testing"

	"github.com/canvas-contracts/go-canvas/graph"
	"github.com/canvas-contracts/go-canvas/patterns"
)

func tokenGraph() *graph.Graph {
	return graph.Build().Chain(
		[]string{"start", "balance", "transfer", "emit", "end"},
		[]graph.NodeType{graph.Start, graph.State, graph.Logic, graph.External, graph.End},
	).Done()
}

func TestNewRejectsBadConfidence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinPatternConfidence = 1.5
	if _, err := New(cfg); err == nil {
		t.Error("confidence 1.5 accepted")
	}
	cfg.MinPatternConfidence = -0.1
	if _, err := New(cfg); err == nil {
		t.Error("confidence -0.1 accepted")
	}
}

func TestAnalyzeTokenGraph(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	analysis := a.Analyze(tokenGraph())
	foundToken := false
	for _, m := range analysis.Patterns {
		if m.Category == patterns.CategoryToken {
			foundToken = true
		}
	}
	if !foundToken {
		t.Errorf("token pattern not recognized: %+v", analysis.Patterns)
	}
	if len(analysis.Suggestions) == 0 {
		t.Error("no advisory suggestions for recognized token pattern")
	}
}

func TestValidateThroughFacade(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	g := graph.Build().Chain(
		[]string{"start", "balance", "end"},
		[]graph.NodeType{graph.Start, graph.State, graph.End},
	).Done()
	result := a.Validate(g)
	if !result.Valid {
		t.Errorf("simple chain invalid: %+v", result.Errors)
	}

	result = a.Validate(graph.New())
	if result.Valid {
		t.Error("empty graph validated")
	}
}

func TestEstimateAndOptimizeAgree(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	g := tokenGraph()

	estimate := a.EstimateGas(g)
	opt := a.Optimize(g)
	if opt.OriginalGas != estimate {
		t.Errorf("optimizer baseline %d != estimate %d", opt.OriginalGas, estimate)
	}
}

func TestOptimizeIsCached(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	g := tokenGraph()

	first := a.Optimize(g)
	second := a.Optimize(g)
	if first != second {
		t.Error("repeat optimize did not return the cached result")
	}

	a.ClearCache()
	if a.CacheStats().Size != 0 {
		t.Error("cache not cleared")
	}
}

func TestReportBundlesEverything(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	g := tokenGraph()

	report := a.Report(g, "token demo")
	if report.Fingerprint != g.Fingerprint() {
		t.Error("report fingerprint mismatch")
	}
	if report.Validation == nil || report.Optimization == nil || report.Profile == nil {
		t.Fatalf("incomplete report: %+v", report)
	}
	if report.GasEstimate == 0 {
		t.Error("gas estimate missing")
	}
	if report.Name != "token demo" {
		t.Errorf("name = %q", report.Name)
	}
}
