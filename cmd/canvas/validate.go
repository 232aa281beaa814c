package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/canvas-contracts/go-canvas/analyzer"
	"github.com/canvas-contracts/go-canvas/validation"
)

func validateCmd(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Emit the result as JSON")
	verbose := fs.Bool("verbose", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: canvas validate <graph.json> [options]

Check graph structure, port types, cycles, reachability, and inputs.
Exits non-zero when the graph has errors.

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
	cfg.Logger = newLogger(*verbose)
	a, err := analyzer.New(cfg)
	if err != nil {
		return err
	}
	result := a.Validate(g)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printValidation(result)
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}

func printValidation(result *validation.Result) {
	if result.Valid {
		fmt.Printf("valid: %d nodes, %d edges\n", result.Summary.Nodes, result.Summary.Edges)
	} else {
		fmt.Printf("invalid: %d errors, %d warnings\n", result.Summary.Errors, result.Summary.Warnings)
	}
	for _, issue := range result.Errors {
		printIssue("error", issue)
	}
	for _, issue := range result.Warnings {
		printIssue("warning", issue)
	}
	for _, issue := range result.Info {
		printIssue("info", issue)
	}
}

func printIssue(level string, issue validation.Issue) {
	fmt.Printf("  [%s/%s] %s\n", level, issue.Category, issue.Message)
	if issue.Suggestion != "" {
		fmt.Printf("    suggestion: %s\n", issue.Suggestion)
	}
}
