package gas

import (
	"math"
	"testing"

	"github.com/canvas-contracts/go-canvas/graph"
)

func TestEstimateEmptyGraph(t *testing.T) {
	if got := Estimate(graph.New(), DefaultTable()); got != 0 {
		t.Errorf("estimate = %d, want 0", got)
	}
}

func TestEstimateSimpleChain(t *testing.T) {
	g := graph.Build().Chain(
		[]string{"start", "balance", "end"},
		[]graph.NodeType{graph.Start, graph.State, graph.End},
	).Done()

	// One State node (20000 base + 100 surcharge) plus two edges.
	want := uint64(20000 + 100 + 2*DefaultEdgeCost)
	if got := Estimate(g, DefaultTable()); got != want {
		t.Errorf("estimate = %d, want %d", got, want)
	}
}

func TestEstimateScalesWithStateNodes(t *testing.T) {
	build := func(states int) *graph.Graph {
		b := graph.Build()
		for i := 0; i < states; i++ {
			b.Node(string(rune('a'+i)), graph.State)
		}
		return b.Done()
	}

	three := Estimate(build(3), DefaultTable())
	six := Estimate(build(6), DefaultTable())
	delta := six - three
	if delta != 3*(20000+100) {
		t.Errorf("delta for 3 extra state nodes = %d, want %d", delta, 3*(20000+100))
	}
}

func TestEstimateSaturates(t *testing.T) {
	table := CostTable{
		Base: map[graph.NodeType]uint64{graph.State: math.MaxUint64},
	}
	g := graph.Build().
		Node("a", graph.State).
		Node("b", graph.State).
		Done()

	if got := Estimate(g, table); got != math.MaxUint64 {
		t.Errorf("estimate = %d, want saturation at MaxUint64", got)
	}
}

func TestProfile(t *testing.T) {
	g := graph.Build().Chain(
		[]string{"start", "balance", "call", "end"},
		[]graph.NodeType{graph.Start, graph.State, graph.External, graph.End},
	).Done()

	p := NewProfile(g, DefaultTable())
	if p.PeakMemory != 1024 {
		t.Errorf("peak memory = %d, want 1024 (state node)", p.PeakMemory)
	}
	if p.PeakCPU != 0.5 {
		t.Errorf("peak cpu = %v, want 0.5 (external node)", p.PeakCPU)
	}
	wantAvgMem := uint64(256+1024+512+256) / 4
	if p.AverageMemory != wantAvgMem {
		t.Errorf("average memory = %d, want %d", p.AverageMemory, wantAvgMem)
	}
	if p.Gas == 0 {
		t.Error("profile gas estimate is zero")
	}
	// 20100 + 2600 + 30 edge cost is past the 10k threshold.
	found := false
	for _, r := range p.Recommendations {
		if r == "High gas consumption detected" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing gas recommendation in %v", p.Recommendations)
	}
}

func TestProfileEmptyGraph(t *testing.T) {
	p := NewProfile(graph.New(), DefaultTable())
	if p.PeakMemory != 0 || p.AverageMemory != 0 || p.AverageCPU != 0 {
		t.Errorf("empty graph profile not zero: %+v", p)
	}
}
