package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/canvas-contracts/go-canvas/analyzer"
	"github.com/canvas-contracts/go-canvas/patterns"
)

func analyzeCmd(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	minConfidence := fs.Float64("min-confidence", 0.6, "Pattern confidence threshold (0..1)")
	asJSON := fs.Bool("json", false, "Emit the result as JSON")
	verbose := fs.Bool("verbose", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: canvas analyze <graph.json> [options]

Recognize contract templates and detect anti-patterns and security
issues. Critical security findings are listed first.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("graph file required")
	}

	g, err := loadGraph(fs.Arg(0))
	if err != nil {
		return err
	}

	cfg := analyzer.DefaultConfig()
	cfg.MinPatternConfidence = *minConfidence
	cfg.Logger = newLogger(*verbose)
	a, err := analyzer.New(cfg)
	if err != nil {
		return err
	}
	analysis := a.Analyze(g)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	printAnalysis(analysis)
	return nil
}

func printAnalysis(analysis *analyzer.Analysis) {
	var critical, rest []patterns.SecurityFinding
	for _, f := range analysis.SecurityIssues {
		if f.Severity == patterns.SeverityCritical {
			critical = append(critical, f)
		} else {
			rest = append(rest, f)
		}
	}

	if len(critical) > 0 {
		fmt.Println("CRITICAL security issues:")
		for _, f := range critical {
			fmt.Printf("  %s (%s): %s\n", f.Name, f.Reference, f.Description)
			fmt.Printf("    mitigation: %s\n", f.Mitigation)
		}
	}
	if len(rest) > 0 {
		fmt.Println("Security issues:")
		for _, f := range rest {
			fmt.Printf("  [%s] %s: %s\n", f.Severity, f.Name, f.Description)
		}
	}
	if len(analysis.AntiPatterns) > 0 {
		fmt.Println("Anti-patterns:")
		for _, f := range analysis.AntiPatterns {
			fmt.Printf("  [%s] %s: %s\n", f.Severity, f.Name, f.Suggestion)
		}
	}
	if len(analysis.Patterns) > 0 {
		fmt.Println("Recognized patterns:")
		for _, m := range analysis.Patterns {
			fmt.Printf("  %s (%s) confidence %.2f\n", m.Name, m.Category, m.Confidence)
		}
	}
	if len(analysis.Suggestions) > 0 {
		fmt.Println("Suggestions:")
		for _, s := range analysis.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	if len(analysis.Patterns)+len(analysis.AntiPatterns)+len(analysis.SecurityIssues) == 0 {
		fmt.Println("no findings")
	}
}
