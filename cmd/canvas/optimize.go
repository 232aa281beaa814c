package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/canvas-contracts/go-canvas/analyzer"
)

func optimizeCmd(args []string) error {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Emit the result as JSON")
	verbose := fs.Bool("verbose", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: canvas optimize <graph.json> [options]

Suggest gas optimizations. The graph is never modified; each suggestion
describes a rewrite and its estimated saving.

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
	result := a.Optimize(g)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("original gas:  %d\n", result.OriginalGas)
	fmt.Printf("optimized gas: %d\n", result.OptimizedGas)
	fmt.Printf("total savings: %d\n", result.GasSavings)
	for _, s := range result.Suggestions {
		fmt.Printf("  %s (saves %d)\n", s.Title, s.Saving)
		fmt.Printf("    %s\n", s.Implementation)
	}
	return nil
}
