// Package analyzer is the façade over the analysis engine: validation,
// pattern recognition, gas estimation, and optimization behind a single
// configured entry point.
package analyzer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/canvas-contracts/go-canvas/gas"
	"github.com/canvas-contracts/go-canvas/graph"
	"github.com/canvas-contracts/go-canvas/optimize"
	"github.com/canvas-contracts/go-canvas/patterns"
	"github.com/canvas-contracts/go-canvas/validation"
)

// Config is the full configuration surface of the engine. No environment
// variables, no persisted state; everything flows through this struct.
type Config struct {
	// MinPatternConfidence filters recognized templates; must be in [0,1].
	MinPatternConfidence float64

	// MaxReasonableNodes is the complexity warning threshold.
	MaxReasonableNodes int

	// GasCosts drives gas estimation and the optimizer baseline,
	// including the per-edge cost.
	GasCosts gas.CostTable

	// Logger receives progress events. Use zerolog.Nop to discard them;
	// DefaultConfig does.
	Logger zerolog.Logger
}

// DefaultConfig returns the standard engine configuration with a
// no-op logger.
func DefaultConfig() Config {
	return Config{
		MinPatternConfidence: 0.6,
		MaxReasonableNodes:   50,
		GasCosts:             gas.DefaultTable(),
		Logger:               zerolog.Nop(),
	}
}

// Analysis is the combined pattern-level output for one graph.
type Analysis struct {
	Patterns       []patterns.Match              `json:"patterns,omitempty"`
	AntiPatterns   []patterns.AntiPatternFinding `json:"antiPatterns,omitempty"`
	SecurityIssues []patterns.SecurityFinding    `json:"securityIssues,omitempty"`
	Suggestions    []string                      `json:"suggestions,omitempty"`
}

// Analyzer runs the analysis engine over contract graphs.
// All methods take an immutable graph snapshot and perform no I/O; a
// single Analyzer is safe for concurrent use, including its result cache.
type Analyzer struct {
	cfg       Config
	validator *validation.Validator
	engine    *patterns.Engine
	optimizer *optimize.Optimizer
	cache     *optimize.Cache
	log       zerolog.Logger
}

// New creates an analyzer, rejecting invalid configuration before any
// graph is processed.
func New(cfg Config) (*Analyzer, error) {
	if cfg.MinPatternConfidence < 0 || cfg.MinPatternConfidence > 1 {
		return nil, fmt.Errorf("min pattern confidence %v outside [0,1]", cfg.MinPatternConfidence)
	}
	if cfg.MaxReasonableNodes <= 0 {
		cfg.MaxReasonableNodes = 50
	}
	if cfg.GasCosts.Base == nil {
		cfg.GasCosts = gas.DefaultTable()
	}

	return &Analyzer{
		cfg: cfg,
		validator: validation.New(validation.Config{
			MaxReasonableNodes: cfg.MaxReasonableNodes,
		}),
		engine:    patterns.NewEngine(),
		optimizer: optimize.New(cfg.GasCosts),
		cache:     optimize.NewCache(),
		log:       cfg.Logger,
	}, nil
}

// Validate runs the structural validator.
func (a *Analyzer) Validate(g *graph.Graph) *validation.Result {
	result := a.validator.Validate(g)
	a.log.Info().
		Int("nodes", result.Summary.Nodes).
		Int("edges", result.Summary.Edges).
		Bool("valid", result.Valid).
		Int("errors", result.Summary.Errors).
		Msg("graph validated")
	return result
}

// Analyze recognizes templates, anti-patterns, and security issues, and
// derives advisory suggestions from the findings.
func (a *Analyzer) Analyze(g *graph.Graph) *Analysis {
	matches := a.engine.Recognize(g, a.cfg.MinPatternConfidence)
	antiPatterns := a.engine.DetectAntiPatterns(g)
	security := a.engine.DetectSecurityIssues(g)

	a.log.Info().
		Int("patterns", len(matches)).
		Int("antiPatterns", len(antiPatterns)).
		Int("securityIssues", len(security)).
		Msg("graph analyzed")

	return &Analysis{
		Patterns:       matches,
		AntiPatterns:   antiPatterns,
		SecurityIssues: security,
		Suggestions:    patterns.AdvisorySuggestions(matches, antiPatterns),
	}
}

// EstimateGas returns the gas estimate for the graph.
func (a *Analyzer) EstimateGas(g *graph.Graph) uint64 {
	return gas.Estimate(g, a.cfg.GasCosts)
}

// Profile returns the coarse resource usage profile for the graph.
func (a *Analyzer) Profile(g *graph.Graph) gas.Profile {
	return gas.NewProfile(g, a.cfg.GasCosts)
}

// Optimize returns gas-saving suggestions, memoized by graph fingerprint.
// Repeat calls on an unchanged graph return the identical cached result.
func (a *Analyzer) Optimize(g *graph.Graph) *optimize.Result {
	return a.cache.GetOrCompute(g, func() *optimize.Result {
		result := a.optimizer.Optimize(g)
		a.log.Info().
			Uint64("originalGas", result.OriginalGas).
			Uint64("optimizedGas", result.OptimizedGas).
			Int("suggestions", len(result.Suggestions)).
			Msg("graph optimized")
		return result
	})
}

// ClearCache drops all memoized optimization results.
func (a *Analyzer) ClearCache() {
	a.cache.Clear()
}

// CacheStats reports the optimizer cache's effectiveness.
func (a *Analyzer) CacheStats() optimize.Stats {
	return a.cache.Stats()
}
