package analyzer

import (
	"testing"

	"github.com/canvas-contracts/go-canvas/graph"
)

func TestSuggestNextNodesForLogic(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	g := graph.Build().
		Node("start", graph.Start).
		Node("transfer", graph.Logic).
		Edge("start", "transfer").
		Done()

	suggestions, err := a.SuggestNextNodes(g, "transfer")
	if err != nil {
		t.Fatal(err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("suggestions = %+v, want storage write and end", suggestions)
	}
	if suggestions[0].Type != graph.State || suggestions[0].Confidence != 0.8 {
		t.Errorf("first suggestion = %+v", suggestions[0])
	}
	if suggestions[1].Type != graph.End {
		t.Errorf("second suggestion = %+v", suggestions[1])
	}
}

func TestSuggestNextNodesSkipsConnected(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	// transfer already writes storage, so only the End continuation is left.
	g := graph.Build().
		Node("transfer", graph.Logic).
		Node("balance", graph.State).
		Edge("transfer", "balance").
		Done()

	suggestions, err := a.SuggestNextNodes(g, "transfer")
	if err != nil {
		t.Fatal(err)
	}
	if len(suggestions) != 1 || suggestions[0].Type != graph.End {
		t.Errorf("suggestions = %+v, want only the end continuation", suggestions)
	}
}

func TestSuggestNextNodesForState(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	g := graph.Build().Node("balance", graph.State).Done()

	suggestions, err := a.SuggestNextNodes(g, "balance")
	if err != nil {
		t.Fatal(err)
	}
	if len(suggestions) != 1 || suggestions[0].Name != "Emit Event" {
		t.Errorf("suggestions = %+v, want emit event", suggestions)
	}
}

func TestSuggestNextNodesUnknownNode(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.SuggestNextNodes(graph.New(), "ghost"); err == nil {
		t.Error("unknown node id accepted")
	}
}

func TestSuggestNextNodesNoCatalogEntry(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	g := graph.Build().Node("end", graph.End).Done()

	suggestions, err := a.SuggestNextNodes(g, "end")
	if err != nil {
		t.Fatal(err)
	}
	if len(suggestions) != 0 {
		t.Errorf("suggestions for end node = %+v", suggestions)
	}
}
