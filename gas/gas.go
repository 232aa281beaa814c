// Package gas estimates execution cost for contract graphs.
// Costs follow the EVM flavor the compiler targets: storage writes
// dominate, external calls are expensive, pure computation is cheap.
package gas

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/canvas-contracts/go-canvas/graph"
)

// CostTable drives the estimate: a base cost per node type, a per-type
// surcharge for secondary effects, and a flat cost per edge.
type CostTable struct {
	Base      map[graph.NodeType]uint64
	Surcharge map[graph.NodeType]uint64
	EdgeCost  uint64
}

// DefaultEdgeCost is the flat per-connection cost.
const DefaultEdgeCost = 10

// DefaultTable returns the standard cost table.
// Base costs mirror EVM opcode pricing: SSTORE for State, CALL for
// External, ADD for Arithmetic, AND and JUMP for Logic and Control.
// The State surcharge covers the SLOAD that precedes the write.
func DefaultTable() CostTable {
	return CostTable{
		Base: map[graph.NodeType]uint64{
			graph.Start:      0,
			graph.End:        0,
			graph.State:      20000,
			graph.Logic:      1,
			graph.Arithmetic: 3,
			graph.External:   2600,
			graph.Control:    1,
		},
		Surcharge: map[graph.NodeType]uint64{
			graph.State: 100,
		},
		EdgeCost: DefaultEdgeCost,
	}
}

// Estimate returns the total gas cost of the graph: base cost plus
// surcharge per node, plus the edge cost per connection. Accumulation
// is 256-bit so adversarial tables cannot overflow; a total past
// math.MaxUint64 saturates there.
func Estimate(g *graph.Graph, table CostTable) uint64 {
	total := new(uint256.Int)
	cost := new(uint256.Int)

	for _, n := range g.Nodes {
		total.Add(total, cost.SetUint64(table.Base[n.Type]))
		total.Add(total, cost.SetUint64(table.Surcharge[n.Type]))
	}
	total.Add(total, cost.SetUint64(table.EdgeCost).Mul(cost, uint256.NewInt(uint64(len(g.Edges)))))

	if !total.IsUint64() {
		return math.MaxUint64
	}
	return total.Uint64()
}

// memoryWeights and cpuWeights approximate the runtime footprint of each
// node type for the resource profile.
var memoryWeights = map[graph.NodeType]uint64{
	graph.State:      1024,
	graph.External:   512,
	graph.Arithmetic: 64,
	graph.Logic:      32,
	graph.Control:    128,
	graph.Start:      256,
	graph.End:        256,
}

var cpuWeights = map[graph.NodeType]float64{
	graph.State:      0.3,
	graph.External:   0.5,
	graph.Arithmetic: 0.1,
	graph.Logic:      0.05,
	graph.Control:    0.2,
	graph.Start:      0.1,
	graph.End:        0.1,
}

// Profile is a coarse resource usage report for one graph.
type Profile struct {
	PeakMemory      uint64   `json:"peakMemory"`
	AverageMemory   uint64   `json:"averageMemory"`
	PeakCPU         float64  `json:"peakCpu"`
	AverageCPU      float64  `json:"averageCpu"`
	Gas             uint64   `json:"gas"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// NewProfile estimates peak and average memory and CPU weight across the
// graph's nodes and attaches threshold-based recommendations.
func NewProfile(g *graph.Graph, table CostTable) Profile {
	p := Profile{Gas: Estimate(g, table)}

	var totalMemory uint64
	var totalCPU float64
	for _, n := range g.Nodes {
		mem := memoryWeights[n.Type]
		cpu := cpuWeights[n.Type]
		totalMemory += mem
		totalCPU += cpu
		if mem > p.PeakMemory {
			p.PeakMemory = mem
		}
		if cpu > p.PeakCPU {
			p.PeakCPU = cpu
		}
	}
	if len(g.Nodes) > 0 {
		p.AverageMemory = totalMemory / uint64(len(g.Nodes))
		p.AverageCPU = totalCPU / float64(len(g.Nodes))
	}

	if p.PeakMemory > 1_000_000 {
		p.Recommendations = append(p.Recommendations, "Consider reducing memory usage in state operations")
	}
	if p.PeakCPU > 0.9 {
		p.Recommendations = append(p.Recommendations, "Consider optimizing CPU-intensive operations")
	}
	if p.Gas > 10_000 {
		p.Recommendations = append(p.Recommendations, "High gas consumption detected")
	}
	return p
}
