// Package results defines the combined analysis report and its
// persistence: JSON serialization for the editor and an optional SQLite
// archive for tracking a contract's analysis history over time.
package results

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/canvas-contracts/go-canvas/gas"
	"github.com/canvas-contracts/go-canvas/optimize"
	"github.com/canvas-contracts/go-canvas/patterns"
	"github.com/canvas-contracts/go-canvas/validation"
)

// Report bundles every analysis product for one graph snapshot.
// Fingerprint identifies the snapshot; two reports with the same
// fingerprint describe the same graph structure.
type Report struct {
	Fingerprint string    `json:"fingerprint"`
	Name        string    `json:"name,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	Validation     *validation.Result            `json:"validation,omitempty"`
	Patterns       []patterns.Match              `json:"patterns,omitempty"`
	AntiPatterns   []patterns.AntiPatternFinding `json:"antiPatterns,omitempty"`
	SecurityIssues []patterns.SecurityFinding    `json:"securityIssues,omitempty"`
	Suggestions    []string                      `json:"suggestions,omitempty"`
	GasEstimate    uint64                        `json:"gasEstimate"`
	Profile        *gas.Profile                  `json:"profile,omitempty"`
	Optimization   *optimize.Result              `json:"optimization,omitempty"`
}

// CriticalFindings returns the security findings with critical severity.
// Downstream reports surface these separately from the rest.
func (r *Report) CriticalFindings() []patterns.SecurityFinding {
	var critical []patterns.SecurityFinding
	for _, f := range r.SecurityIssues {
		if f.Severity == patterns.SeverityCritical {
			critical = append(critical, f)
		}
	}
	return critical
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// ReadJSON parses a report from JSON.
func ReadJSON(r io.Reader) (*Report, error) {
	var report Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
