package patterns

import (
	"testing"

	"github.com/canvas-contracts/go-canvas/graph"
)

func tokenGraph() *graph.Graph {
	return graph.Build().Chain(
		[]string{"start", "balance", "transfer", "emit"},
		[]graph.NodeType{graph.Start, graph.State, graph.Logic, graph.External},
	).Done()
}

func TestRecognizeTokenPattern(t *testing.T) {
	matches := NewEngine().Recognize(tokenGraph(), 0.6)

	var token *Match
	for i := range matches {
		if matches[i].Category == CategoryToken {
			token = &matches[i]
		}
	}
	if token == nil {
		t.Fatalf("token pattern not recognized, got %+v", matches)
	}
	if token.Confidence < 0.6 {
		t.Errorf("confidence = %v, want >= 0.6", token.Confidence)
	}
	// All three sequence criteria and both adjacencies hold.
	if token.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", token.Confidence)
	}
	// Membership is type-based: start is outside the sequence.
	for _, id := range token.Nodes {
		if id == "start" {
			t.Error("start node included in pattern membership")
		}
	}
}

func TestRecognizeNothingOnEmptyGraph(t *testing.T) {
	if matches := NewEngine().Recognize(graph.New(), 0.6); len(matches) != 0 {
		t.Errorf("empty graph matched %+v", matches)
	}
}

func TestUnmetAdjacencyLowersConfidence(t *testing.T) {
	base := Definition{
		Name:     "presence only",
		Category: CategoryCustom,
		Sequence: []graph.NodeType{graph.State, graph.Logic},
	}
	withMissing := base
	withMissing.Name = "with missing adjacency"
	withMissing.Connections = []Adjacency{{Source: graph.Logic, Target: graph.External}}

	engine, err := NewEngineWithCatalogs([]Definition{base, withMissing}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	// State and Logic present, no edges at all.
	g := graph.Build().
		Node("s", graph.State).
		Node("l", graph.Logic).
		Done()

	if c := engine.confidence(g, base); c != 1.0 {
		t.Errorf("base confidence = %v, want 1.0", c)
	}
	if c := engine.confidence(g, withMissing); c >= 1.0 {
		t.Errorf("unmet adjacency did not lower confidence: %v", c)
	}
}

func TestReentrancyFiresOnEdgeAlone(t *testing.T) {
	// External and State are separated in the node list, so the window
	// never matches; the edge must carry the finding on its own.
	g := graph.Build().
		Node("ext", graph.External).
		Node("spacer", graph.Logic).
		Node("store", graph.State).
		Edge("ext", "store").
		Done()

	findings := NewEngine().DetectSecurityIssues(g)
	var reentrancy *SecurityFinding
	for i := range findings {
		if findings[i].Name == "Reentrancy Attack" {
			reentrancy = &findings[i]
		}
	}
	if reentrancy == nil {
		t.Fatalf("no reentrancy finding in %+v", findings)
	}
	if reentrancy.Severity != SeverityCritical {
		t.Errorf("severity = %q, want critical", reentrancy.Severity)
	}
	if reentrancy.Reference != "CVE-2016-10709" {
		t.Errorf("reference = %q", reentrancy.Reference)
	}
}

func TestWindowMatchesInsertionOrder(t *testing.T) {
	g := graph.Build().
		Node("add", graph.Arithmetic).
		Node("store", graph.State).
		Done()

	matches := WindowMatches(g, []graph.NodeType{graph.Arithmetic, graph.State})
	if len(matches) != 1 {
		t.Fatalf("matches = %v, want one", matches)
	}
	if matches[0][0] != "add" || matches[0][1] != "store" {
		t.Errorf("match ids = %v", matches[0])
	}

	// Separating the pair in the list defeats the window.
	g2 := graph.Build().
		Node("add", graph.Arithmetic).
		Node("spacer", graph.Logic).
		Node("store", graph.State).
		Done()
	if m := WindowMatches(g2, []graph.NodeType{graph.Arithmetic, graph.State}); m != nil {
		t.Errorf("non-adjacent pair matched: %v", m)
	}
}

func TestOverlappingWindowsNotDeduplicated(t *testing.T) {
	g := graph.Build().
		Node("a", graph.State).
		Node("b", graph.State).
		Node("c", graph.State).
		Done()

	findings := NewEngine().DetectAntiPatterns(g)
	for _, f := range findings {
		if f.Name == "Missing Access Control" {
			if len(f.Nodes) != 3 {
				t.Errorf("nodes = %v, want one entry per window match", f.Nodes)
			}
			return
		}
	}
	t.Fatal("missing access control not detected")
}

func TestUncheckedArithmeticSuggestion(t *testing.T) {
	g := graph.Build().
		Node("add", graph.Arithmetic).
		Node("store", graph.State).
		Done()

	findings := NewEngine().DetectAntiPatterns(g)
	for _, f := range findings {
		if f.Name == "Unchecked Arithmetic" {
			if f.Severity != SeverityHigh {
				t.Errorf("severity = %q", f.Severity)
			}
			if f.Suggestion == "" {
				t.Error("empty suggestion")
			}
			return
		}
	}
	t.Fatal("unchecked arithmetic not detected")
}

func TestCatalogValidation(t *testing.T) {
	if _, err := NewEngineWithCatalogs([]Definition{{Name: ""}}, nil, nil); err == nil {
		t.Error("empty pattern name accepted")
	}
	if _, err := NewEngineWithCatalogs([]Definition{{Name: "bare"}}, nil, nil); err == nil {
		t.Error("pattern without criteria accepted")
	}
	if _, err := NewEngineWithCatalogs(nil, []AntiPattern{{Name: "bare"}}, nil); err == nil {
		t.Error("anti-pattern without window or adjacency accepted")
	}
	long := []graph.NodeType{graph.State, graph.State, graph.State, graph.State}
	if _, err := NewEngineWithCatalogs(nil, nil, []SecurityPattern{{Name: "long", Window: long}}); err == nil {
		t.Error("oversized window accepted")
	}
}

func TestAdvisorySuggestions(t *testing.T) {
	matches := []Match{{Name: "ERC-20 Token", Category: CategoryToken}}
	antis := []AntiPatternFinding{{Name: "Reentrancy Risk", Suggestion: "Update state before making external calls"}}

	got := AdvisorySuggestions(matches, antis)
	if len(got) != 3 {
		t.Fatalf("suggestions = %v, want category advice plus anti-pattern suggestion", got)
	}
	if got[len(got)-1] != "Update state before making external calls" {
		t.Errorf("last suggestion = %q", got[len(got)-1])
	}
}
